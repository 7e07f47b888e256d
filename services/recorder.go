package services

import (
	"context"
	"fmt"
	"time"

	"sakubun/models"
)

// AttemptStore is the durable home of graded attempts and per-difficulty
// progress counters. db.MongoAttemptStore is the production implementation;
// tests use an in-memory fake.
type AttemptStore interface {
	InsertAttempt(ctx context.Context, attempt *models.Attempt) error
	AttemptedSentences(ctx context.Context, userID string, difficulty models.Difficulty) ([]string, error)
	ListAttempts(ctx context.Context, userID string, limit, offset int) ([]models.Attempt, error)
	ToggleBookmark(ctx context.Context, userID, attemptID string) (bool, error)
	MarkReviewed(ctx context.Context, userID, attemptID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	IncrementProblemNumber(ctx context.Context, userID string, difficulty models.Difficulty) (int, error)
	ProblemNumbers(ctx context.Context, userID string) (map[models.Difficulty]int, error)
	ListAllAttempts(ctx context.Context, limit int) ([]models.Attempt, error)
}

// Recorder persists graded attempts. Persistence is best-effort from the
// pipeline's perspective: the evaluation must reach the learner even when
// the store is unavailable, so Record reports failure instead of blocking.
type Recorder struct {
	store AttemptStore
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store AttemptStore) *Recorder {
	return &Recorder{store: store}
}

// Record inserts the attempt and advances the user's problem-number counter
// for the difficulty, returning the new counter value. A non-nil error means
// the result was returned to the user but history is degraded.
func (r *Recorder) Record(ctx context.Context, userID string, difficulty models.Difficulty, japaneseSentence, userTranslation string, result models.EvaluationResult) (models.Attempt, int, error) {
	attempt := models.Attempt{
		UserID:             userID,
		DifficultyLevel:    difficulty,
		JapaneseSentence:   japaneseSentence,
		UserTranslation:    userTranslation,
		CorrectTranslation: result.CorrectTranslation,
		Feedback:           result.Feedback,
		Rating:             result.Rating,
		CreatedAt:          time.Now(),
	}

	if err := r.store.InsertAttempt(ctx, &attempt); err != nil {
		return attempt, 0, fmt.Errorf("failed to save attempt: %w", err)
	}
	number, err := r.store.IncrementProblemNumber(ctx, userID, difficulty)
	if err != nil {
		return attempt, 0, fmt.Errorf("failed to advance problem number: %w", err)
	}
	return attempt, number, nil
}
