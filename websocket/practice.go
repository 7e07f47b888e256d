package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"sakubun/services"
	"sakubun/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one chat-style frame in either direction. The client sends
// "problem" and "answer" requests; the server replies with "problem",
// "result", "limit" and "error" frames.
type Message struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty,omitempty"`
	DifficultyLevel  string   `json:"difficultyLevel,omitempty"`
	JapaneseSentence string   `json:"japaneseSentence,omitempty"`
	UserTranslation  string   `json:"userTranslation,omitempty"`
	Hints            []string `json:"hints,omitempty"`
	Error            string   `json:"error,omitempty"`
	Result           any      `json:"result,omitempty"`
	Timestamp        int64    `json:"timestamp,omitempty"`
}

// PracticeHandler runs the practice pipeline over a WebSocket for the
// chat-style UI: the same quota, dispatch, evaluation and recording as the
// HTTP endpoints, one JSON frame per turn.
type PracticeHandler struct {
	Dispatcher *services.Dispatcher
	Quota      services.QuotaCounter
	Evaluator  *services.Evaluator
	Recorder   *services.Recorder
	Store      services.AttemptStore
}

const evaluateTimeout = 60 * time.Second

// Handle upgrades the connection and serves practice frames until the
// client disconnects.
func (h *PracticeHandler) Handle(c *gin.Context) {
	userID := c.GetString("userId")
	sessionID := c.GetString("sessionId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for %s: %v", userID, err)
			}
			return
		}

		var reply Message
		switch msg.Type {
		case "problem":
			reply = h.issueProblem(userID, sessionID, msg)
		case "answer":
			reply = h.evaluateAnswer(userID, msg)
		default:
			reply = Message{Type: "error", Error: "Unknown message type: " + msg.Type}
		}
		reply.Timestamp = time.Now().Unix()

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("WebSocket write error for %s: %v", userID, err)
			return
		}
	}
}

func (h *PracticeHandler) issueProblem(userID, sessionID string, msg Message) Message {
	difficulty, err := utils.NormalizeDifficulty(utils.FirstNonEmpty(msg.DifficultyLevel, msg.Difficulty))
	if err != nil {
		return Message{Type: "error", Error: "Invalid difficulty level"}
	}

	if !h.Quota.TryConsume(userID) {
		return Message{Type: "limit", Error: "本日の問題数の上限に達しました。また明日お試しください。"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attempted, err := h.Store.AttemptedSentences(ctx, userID, difficulty)
	if err != nil {
		log.Printf("Failed to load attempted sentences for %s: %v", userID, err)
	}

	problem, err := h.Dispatcher.Issue(difficulty, sessionID, attempted)
	if err != nil {
		return Message{Type: "error", Error: "Invalid difficulty level"}
	}

	return Message{
		Type:             "problem",
		JapaneseSentence: problem.JapaneseSentence,
		Difficulty:       string(problem.Difficulty),
		Hints:            problem.Hints,
	}
}

func (h *PracticeHandler) evaluateAnswer(userID string, msg Message) Message {
	difficulty, err := utils.NormalizeDifficulty(utils.FirstNonEmpty(msg.DifficultyLevel, msg.Difficulty))
	if err != nil {
		return Message{Type: "error", Error: "Invalid difficulty level"}
	}
	if msg.JapaneseSentence == "" {
		return Message{Type: "error", Error: "japaneseSentence is required"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
	defer cancel()

	result, err := h.Evaluator.Evaluate(ctx, msg.JapaneseSentence, msg.UserTranslation, difficulty)
	if err != nil {
		if errors.Is(err, services.ErrEvaluatorNotConfigured) {
			return Message{Type: "error", Error: "Evaluation service is not configured"}
		}
		return Message{Type: "error", Error: "Evaluation failed"}
	}

	if _, number, err := h.Recorder.Record(ctx, userID, difficulty, msg.JapaneseSentence, msg.UserTranslation, result); err != nil {
		log.Printf("Failed to record attempt for %s: %v", userID, err)
	} else {
		result.SessionID = int64(number)
	}

	return Message{Type: "result", Result: result}
}
