package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"sakubun/models"
)

// ErrEvaluatorNotConfigured signals that no Gemini API key was configured at
// all. This is a deployment defect and is surfaced to the client as a hard
// error, unlike a failed call, which falls back silently.
var ErrEvaluatorNotConfigured = errors.New("evaluator not configured: missing gemini api key")

// TextGenerator is the LLM call the evaluator depends on. GeminiClient is
// the production implementation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Evaluator grades a user's English translation of a Japanese sentence via
// Gemini, falling back to the deterministic local evaluator on any call,
// parse, or validation failure. A learner always receives a well-formed
// result from Evaluate unless the service was never configured.
type Evaluator struct {
	llm           TextGenerator
	fallbackCount atomic.Int64
}

// NewEvaluator creates an evaluator over the given LLM client. Pass nil when
// no API key is configured; Evaluate then reports ErrEvaluatorNotConfigured.
func NewEvaluator(llm TextGenerator) *Evaluator {
	return &Evaluator{llm: llm}
}

// sentinel strings a confused model returns in place of a real translation.
var sentinelTranslations = []string{
	"i cannot translate",
	"unable to translate",
	"翻訳できません",
	"n/a",
}

func buildEvaluationPrompt(japaneseSentence, userTranslation string, difficulty models.Difficulty) string {
	return fmt.Sprintf(
		`あなたは経験豊富な英語教師です。生徒が日本語の文を英語に翻訳しました。翻訳を評価し、指定のJSON形式で結果を返してください。

難易度: %s
日本語の文: %s
生徒の英訳: %s

評価の基準:
1. 意味が正確に伝わっているか
2. 文法が正しいか
3. 自然な英語表現になっているか

Required Output Format:
{
  "correctTranslation": "模範的な英訳",
  "feedback": "生徒への講評（日本語で記述）",
  "rating": 1から5の整数,
  "improvements": ["改善点1（日本語）", "改善点2（日本語）"],
  "explanation": "文法や語彙の解説（日本語で記述）",
  "similarPhrases": ["関連する英語表現1", "関連する英語表現2"]
}

feedback・improvements・explanation はすべて日本語で記述してください。
Provide ONLY the JSON output without additional text or markdown formatting.`,
		difficulty, japaneseSentence, userTranslation,
	)
}

// Evaluate grades the translation. The only error it returns is
// ErrEvaluatorNotConfigured; every other failure mode produces the fallback
// result instead.
func (e *Evaluator) Evaluate(ctx context.Context, japaneseSentence, userTranslation string, difficulty models.Difficulty) (models.EvaluationResult, error) {
	if e == nil || e.llm == nil {
		return models.EvaluationResult{}, ErrEvaluatorNotConfigured
	}

	// A blank or sub-threshold answer has nothing for the model to grade;
	// it goes straight to the local evaluator, which rates it 1.
	trimmed := strings.TrimSpace(userTranslation)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < minTranslationLength {
		return e.fallback(japaneseSentence, userTranslation, difficulty, "empty or too-short translation"), nil
	}

	prompt := buildEvaluationPrompt(japaneseSentence, userTranslation, difficulty)
	text, err := e.llm.GenerateText(ctx, prompt)
	if err != nil {
		return e.fallback(japaneseSentence, userTranslation, difficulty, fmt.Sprintf("gemini call failed: %v", err)), nil
	}

	result, err := parseEvaluation(text)
	if err != nil {
		return e.fallback(japaneseSentence, userTranslation, difficulty, fmt.Sprintf("unparseable gemini output: %v", err)), nil
	}
	if !acceptableTranslation(result.CorrectTranslation) {
		return e.fallback(japaneseSentence, userTranslation, difficulty, "gemini returned a sentinel translation"), nil
	}
	return result, nil
}

// FallbackCount reports how many evaluations have taken the fallback path
// since startup. Silent fallback can mask a systemic outage, so the count is
// kept observable.
func (e *Evaluator) FallbackCount() int64 {
	return e.fallbackCount.Load()
}

func (e *Evaluator) fallback(japaneseSentence, userTranslation string, difficulty models.Difficulty, reason string) models.EvaluationResult {
	e.fallbackCount.Add(1)
	log.Printf("evaluator falling back (%s): %s", difficulty, reason)
	return FallbackEvaluate(japaneseSentence, userTranslation, difficulty)
}

func acceptableTranslation(translation string) bool {
	trimmed := strings.TrimSpace(translation)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, sentinel := range sentinelTranslations {
		if lower == sentinel {
			return false
		}
	}
	return true
}

// rawEvaluation tolerates the loosely-typed JSON a language model actually
// produces: ratings as strings, arrays as scalars, and so on.
type rawEvaluation struct {
	CorrectTranslation string `json:"correctTranslation"`
	Feedback           string `json:"feedback"`
	Rating             any    `json:"rating"`
	Improvements       any    `json:"improvements"`
	Explanation        string `json:"explanation"`
	SimilarPhrases     any    `json:"similarPhrases"`
}

// parseEvaluation applies the parse ladder: direct unmarshal, then a
// sanitized retry (control characters stripped, raw newlines escaped), then
// a retry on the first balanced JSON object embedded in the text.
func parseEvaluation(text string) (models.EvaluationResult, error) {
	var raw rawEvaluation

	if err := json.Unmarshal([]byte(text), &raw); err == nil {
		return coerceEvaluation(raw), nil
	}

	sanitized := sanitizeJSON(text)
	if err := json.Unmarshal([]byte(sanitized), &raw); err == nil {
		return coerceEvaluation(raw), nil
	}

	extracted, ok := extractJSONObject(sanitized)
	if ok {
		if err := json.Unmarshal([]byte(extracted), &raw); err == nil {
			return coerceEvaluation(raw), nil
		}
	}

	return models.EvaluationResult{}, errors.New("response is not valid JSON")
}

func coerceEvaluation(raw rawEvaluation) models.EvaluationResult {
	feedback := strings.TrimSpace(raw.Feedback)
	if feedback == "" {
		feedback = "模範訳と比較して、表現の違いを確認しましょう。"
	}
	explanation := strings.TrimSpace(raw.Explanation)
	if explanation == "" {
		explanation = "模範訳を参考に、使われている文法と語彙を復習してください。"
	}
	// An absent or unreadable rating defaults to the middle of the scale; a
	// numeric rating, zero included, is clamped instead.
	rating := 3
	if n, ok := coerceRating(raw.Rating); ok {
		rating = models.ClampRating(n)
	}
	return models.EvaluationResult{
		CorrectTranslation: strings.TrimSpace(raw.CorrectTranslation),
		Feedback:           feedback,
		Rating:             rating,
		Improvements:       coerceStringSlice(raw.Improvements),
		Explanation:        explanation,
		SimilarPhrases:     coerceStringSlice(raw.SimilarPhrases),
	}
}

func coerceRating(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func coerceStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// sanitizeJSON strips control characters that break the JSON decoder and
// escapes raw newlines the model sometimes leaves inside string values.
func sanitizeJSON(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inString := false
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
			sb.WriteRune(r)
		case r == '\\':
			escaped = true
			sb.WriteRune(r)
		case r == '"':
			inString = !inString
			sb.WriteRune(r)
		case r == '\n' || r == '\r':
			if inString {
				sb.WriteString("\\n")
			} else {
				sb.WriteRune(' ')
			}
		case r == '\t':
			if inString {
				sb.WriteString("\\t")
			} else {
				sb.WriteRune(' ')
			}
		case r < 0x20:
			// Drop other control characters entirely.
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// extractJSONObject returns the first balanced {...} block in the text.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
