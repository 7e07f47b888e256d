package models

// EvaluationResult is the graded outcome of one submitted translation.
// Both the Gemini gateway and the local fallback produce this shape; every
// field is always populated, with documented defaults when a producer cannot
// fill one (Rating defaults to 3, slices to empty).
type EvaluationResult struct {
	CorrectTranslation string   `json:"correctTranslation"`
	Feedback           string   `json:"feedback"`
	Rating             int      `json:"rating"`
	Improvements       []string `json:"improvements"`
	Explanation        string   `json:"explanation"`
	SimilarPhrases     []string `json:"similarPhrases"`
	SessionID          int64    `json:"sessionId,omitempty"`
}

// ClampRating bounds a rating to the 1..5 scale. Absence handling is the
// producer's job; by the time a value reaches here it is a real rating.
func ClampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
