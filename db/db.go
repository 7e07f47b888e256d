package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"sakubun/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var AttemptCollection *mongo.Collection
var ProgressCollection *mongo.Collection

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "sakubun"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "sakubun"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "sakubun"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	AttemptCollection = MongoDatabase.Collection("attempts")
	ProgressCollection = MongoDatabase.Collection("progress")
	return nil
}

// MongoAttemptStore is the MongoDB-backed attempt/progress store.
type MongoAttemptStore struct{}

// NewMongoAttemptStore returns a store over the package-level collections.
// ConnectMongoDB must have been called first.
func NewMongoAttemptStore() *MongoAttemptStore {
	return &MongoAttemptStore{}
}

// InsertAttempt saves a graded attempt and fills in its generated id.
func (s *MongoAttemptStore) InsertAttempt(ctx context.Context, attempt *models.Attempt) error {
	if AttemptCollection == nil {
		return fmt.Errorf("database not initialized")
	}
	if attempt.ID.IsZero() {
		attempt.ID = primitive.NewObjectID()
	}
	_, err := AttemptCollection.InsertOne(ctx, attempt)
	if err != nil {
		log.Printf("Error saving attempt: %v", err)
		return err
	}
	return nil
}

// AttemptedSentences returns every distinct sentence the user has ever been
// graded on for the difficulty.
func (s *MongoAttemptStore) AttemptedSentences(ctx context.Context, userID string, difficulty models.Difficulty) ([]string, error) {
	if AttemptCollection == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	filter := bson.M{"userId": userID, "difficultyLevel": difficulty}
	values, err := AttemptCollection.Distinct(ctx, "japaneseSentence", filter)
	if err != nil {
		return nil, err
	}
	sentences := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// ListAttempts returns the user's attempts, newest first.
func (s *MongoAttemptStore) ListAttempts(ctx context.Context, userID string, limit, offset int) ([]models.Attempt, error) {
	if AttemptCollection == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := AttemptCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	attempts := []models.Attempt{}
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ToggleBookmark flips the bookmark flag and returns the new value.
func (s *MongoAttemptStore) ToggleBookmark(ctx context.Context, userID, attemptID string) (bool, error) {
	if AttemptCollection == nil {
		return false, fmt.Errorf("database not initialized")
	}
	oid, err := primitive.ObjectIDFromHex(attemptID)
	if err != nil {
		return false, fmt.Errorf("invalid attempt id: %w", err)
	}
	filter := bson.M{"_id": oid, "userId": userID}

	var attempt models.Attempt
	if err := AttemptCollection.FindOne(ctx, filter).Decode(&attempt); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, fmt.Errorf("attempt not found")
		}
		return false, err
	}

	newValue := !attempt.IsBookmarked
	update := bson.M{"$set": bson.M{"isBookmarked": newValue}}
	if _, err := AttemptCollection.UpdateOne(ctx, filter, update); err != nil {
		return false, err
	}
	return newValue, nil
}

// MarkReviewed bumps the review counter and stamps the review time.
func (s *MongoAttemptStore) MarkReviewed(ctx context.Context, userID, attemptID string) error {
	if AttemptCollection == nil {
		return fmt.Errorf("database not initialized")
	}
	oid, err := primitive.ObjectIDFromHex(attemptID)
	if err != nil {
		return fmt.Errorf("invalid attempt id: %w", err)
	}
	filter := bson.M{"_id": oid, "userId": userID}
	update := bson.M{
		"$inc": bson.M{"reviewCount": 1},
		"$set": bson.M{"lastReviewed": time.Now()},
	}
	result, err := AttemptCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("attempt not found")
	}
	return nil
}

// DeleteAllForUser removes the user's attempts and progress counters.
// This is the bulk user-data reset, the only hard delete in the system.
func (s *MongoAttemptStore) DeleteAllForUser(ctx context.Context, userID string) error {
	if AttemptCollection == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, err := AttemptCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return err
	}
	if _, err := ProgressCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return err
	}
	return nil
}

// IncrementProblemNumber advances the per-difficulty counter and returns the
// new value, creating the record on first use.
func (s *MongoAttemptStore) IncrementProblemNumber(ctx context.Context, userID string, difficulty models.Difficulty) (int, error) {
	if ProgressCollection == nil {
		return 0, fmt.Errorf("database not initialized")
	}
	filter := bson.M{"userId": userID, "difficulty": difficulty}
	update := bson.M{"$inc": bson.M{"problemNumber": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var progress models.Progress
	if err := ProgressCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress); err != nil {
		return 0, err
	}
	return progress.ProblemNumber, nil
}

// ProblemNumbers returns the user's current problem number per difficulty.
func (s *MongoAttemptStore) ProblemNumbers(ctx context.Context, userID string) (map[models.Difficulty]int, error) {
	if ProgressCollection == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	cursor, err := ProgressCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	numbers := make(map[models.Difficulty]int)
	for cursor.Next(ctx) {
		var progress models.Progress
		if err := cursor.Decode(&progress); err != nil {
			return nil, err
		}
		numbers[progress.Difficulty] = progress.ProblemNumber
	}
	return numbers, cursor.Err()
}

// ListAllAttempts returns attempts across all users, newest first. Used by
// the admin export.
func (s *MongoAttemptStore) ListAllAttempts(ctx context.Context, limit int) ([]models.Attempt, error) {
	if AttemptCollection == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := AttemptCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	attempts := []models.Attempt{}
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
