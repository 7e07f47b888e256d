package controllers

import (
	"errors"
	"log"

	"sakubun/models"
	"sakubun/services"
	"sakubun/utils"

	"github.com/gin-gonic/gin"
)

// PracticeController serves the problem-dispatch and translation-evaluation
// pipeline: quota check, sentence issuance, Gemini grading with local
// fallback, and best-effort attempt recording.
type PracticeController struct {
	Dispatcher *services.Dispatcher
	Quota      services.QuotaCounter
	Evaluator  *services.Evaluator
	Recorder   *services.Recorder
	Store      services.AttemptStore
}

// ProblemRequest accepts both observed spellings of the difficulty field.
type ProblemRequest struct {
	Difficulty      string `json:"difficulty"`
	DifficultyLevel string `json:"difficultyLevel"`
}

type ProblemResponse struct {
	JapaneseSentence string   `json:"japaneseSentence"`
	Hints            []string `json:"hints"`
	ProblemNumber    int      `json:"problemNumber"`
}

// EvaluateRequest accepts both observed spellings of the difficulty and
// translation fields. UserTranslation is deliberately not required: an empty
// answer is graded (rating 1) rather than rejected.
type EvaluateRequest struct {
	JapaneseSentence string `json:"japaneseSentence" binding:"required"`
	UserTranslation  string `json:"userTranslation"`
	UserAnswer       string `json:"userAnswer"`
	Difficulty       string `json:"difficulty"`
	DifficultyLevel  string `json:"difficultyLevel"`
}

// EvaluateResponse is the evaluation result plus the id of the recorded
// attempt when persistence succeeded.
type EvaluateResponse struct {
	models.EvaluationResult
	AttemptID string `json:"attemptId,omitempty"`
}

// GetProblem issues an unseen practice sentence, consuming one unit of the
// daily quota first.
func (pc *PracticeController) GetProblem(c *gin.Context) {
	var req ProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	difficulty, err := utils.NormalizeDifficulty(utils.FirstNonEmpty(req.DifficultyLevel, req.Difficulty))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid difficulty level"})
		return
	}

	userID := c.GetString("userId")
	sessionID := c.GetString("sessionId")

	if !pc.Quota.TryConsume(userID) {
		c.JSON(429, gin.H{
			"message":           "本日の問題数の上限に達しました。また明日お試しください。",
			"dailyLimitReached": true,
		})
		return
	}

	attempted, err := pc.Store.AttemptedSentences(c.Request.Context(), userID, difficulty)
	if err != nil {
		// History is an optimization for variety, not a requirement.
		log.Printf("Failed to load attempted sentences for %s: %v", userID, err)
	}

	problem, err := pc.Dispatcher.Issue(difficulty, sessionID, attempted)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid difficulty level"})
		return
	}

	problemNumber := 1
	if numbers, err := pc.Store.ProblemNumbers(c.Request.Context(), userID); err == nil {
		problemNumber = numbers[difficulty] + 1
	}

	c.JSON(200, ProblemResponse{
		JapaneseSentence: problem.JapaneseSentence,
		Hints:            problem.Hints,
		ProblemNumber:    problemNumber,
	})
}

// Evaluate grades a submitted translation and records the attempt. The
// response is always a fully-populated evaluation; only a missing API key
// surfaces as a server error.
func (pc *PracticeController) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	difficulty, err := utils.NormalizeDifficulty(utils.FirstNonEmpty(req.DifficultyLevel, req.Difficulty))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid difficulty level"})
		return
	}

	userID := c.GetString("userId")
	translation := utils.FirstNonEmpty(req.UserTranslation, req.UserAnswer)

	result, err := pc.Evaluator.Evaluate(c.Request.Context(), req.JapaneseSentence, translation, difficulty)
	if err != nil {
		if errors.Is(err, services.ErrEvaluatorNotConfigured) {
			c.JSON(500, gin.H{"error": "Evaluation service is not configured"})
			return
		}
		c.JSON(500, gin.H{"error": "Evaluation failed: " + err.Error()})
		return
	}

	response := EvaluateResponse{EvaluationResult: result}
	attempt, number, err := pc.Recorder.Record(c.Request.Context(), userID, difficulty, req.JapaneseSentence, translation, result)
	if err != nil {
		// Degraded: history is lost but the learner still gets feedback.
		log.Printf("Failed to record attempt for %s: %v", userID, err)
	} else {
		response.AttemptID = attempt.ID.Hex()
		response.SessionID = int64(number)
	}

	c.JSON(200, response)
}
