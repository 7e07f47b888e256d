package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt is one durable record of a graded translation submission.
// Only IsBookmarked, ReviewCount and LastReviewed mutate after creation.
type Attempt struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID             string             `json:"userId" bson:"userId"`
	DifficultyLevel    Difficulty         `json:"difficultyLevel" bson:"difficultyLevel"`
	JapaneseSentence   string             `json:"japaneseSentence" bson:"japaneseSentence"`
	UserTranslation    string             `json:"userTranslation" bson:"userTranslation"`
	CorrectTranslation string             `json:"correctTranslation" bson:"correctTranslation"`
	Feedback           string             `json:"feedback" bson:"feedback"`
	Rating             int                `json:"rating" bson:"rating"`
	IsBookmarked       bool               `json:"isBookmarked" bson:"isBookmarked"`
	ReviewCount        int                `json:"reviewCount" bson:"reviewCount"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	LastReviewed       *time.Time         `json:"lastReviewed,omitempty" bson:"lastReviewed,omitempty"`
}

// Progress tracks a user's current problem number for one difficulty.
type Progress struct {
	UserID        string     `json:"userId" bson:"userId"`
	Difficulty    Difficulty `json:"difficulty" bson:"difficulty"`
	ProblemNumber int        `json:"problemNumber" bson:"problemNumber"`
}
