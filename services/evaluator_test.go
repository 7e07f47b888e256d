package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"sakubun/models"
)

// stubGenerator returns a canned response or error in place of Gemini.
type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

const wellFormedResponse = `{
  "correctTranslation": "The meeting is scheduled to start at 3 p.m.",
  "feedback": "よく書けています。",
  "rating": 4,
  "improvements": ["時制に注意しましょう。"],
  "explanation": "be scheduled to で予定を表します。",
  "similarPhrases": ["The meeting will begin at 3 p.m."]
}`

func TestEvaluateWellFormedResponse(t *testing.T) {
	e := NewEvaluator(&stubGenerator{response: wellFormedResponse})

	result, err := e.Evaluate(context.Background(), "会議は午後3時に開始される予定です。", "The meeting starts at 3pm.", models.DifficultyToeic)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.Rating != 4 {
		t.Errorf("Expected rating 4, got %d", result.Rating)
	}
	if result.CorrectTranslation != "The meeting is scheduled to start at 3 p.m." {
		t.Errorf("Unexpected translation: %q", result.CorrectTranslation)
	}
	if e.FallbackCount() != 0 {
		t.Errorf("Fallback counter should be 0, got %d", e.FallbackCount())
	}
}

func TestEvaluateNotConfigured(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Evaluate(context.Background(), "文", "sentence", models.DifficultyToeic)
	if !errors.Is(err, ErrEvaluatorNotConfigured) {
		t.Errorf("Expected ErrEvaluatorNotConfigured, got %v", err)
	}
}

func TestEvaluateEmptyTranslationSkipsModel(t *testing.T) {
	// Even with a healthy model returning a high rating, a blank answer
	// must be graded locally and rate 1.
	stub := &stubGenerator{response: `{"correctTranslation": "ok", "rating": 4}`}
	e := NewEvaluator(stub)

	for _, translation := range []string{"", "   ", "ab"} {
		result, err := e.Evaluate(context.Background(), knownSentence, translation, models.DifficultyToeic)
		if err != nil {
			t.Fatalf("Evaluate(%q) failed: %v", translation, err)
		}
		expected := FallbackEvaluate(knownSentence, translation, models.DifficultyToeic)
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Translation %q: expected local result %+v, got %+v", translation, expected, result)
		}
		if result.Rating != 1 {
			t.Errorf("Translation %q: expected rating 1, got %d", translation, result.Rating)
		}
	}
	if stub.calls != 0 {
		t.Errorf("Model was called %d times for empty answers", stub.calls)
	}
	if e.FallbackCount() != 3 {
		t.Errorf("Fallback counter should be 3, got %d", e.FallbackCount())
	}
}

func TestEvaluateMalformedJSONFallsBack(t *testing.T) {
	e := NewEvaluator(&stubGenerator{response: "not json at all"})

	result, err := e.Evaluate(context.Background(), knownSentence, "The meeting starts at 3pm.", models.DifficultyToeic)
	if err != nil {
		t.Fatalf("Evaluate must not fail on malformed output: %v", err)
	}

	expected := FallbackEvaluate(knownSentence, "The meeting starts at 3pm.", models.DifficultyToeic)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected fallback result %+v, got %+v", expected, result)
	}
	if e.FallbackCount() != 1 {
		t.Errorf("Fallback counter should be 1, got %d", e.FallbackCount())
	}
}

func TestEvaluateCallFailureFallsBack(t *testing.T) {
	e := NewEvaluator(&stubGenerator{err: errors.New("connection refused")})

	result, err := e.Evaluate(context.Background(), knownSentence, "answer", models.DifficultyToeic)
	if err != nil {
		t.Fatalf("Evaluate must not fail on a call error: %v", err)
	}
	if result.Rating < 1 || result.Rating > 5 {
		t.Errorf("Rating out of bounds: %d", result.Rating)
	}
	if e.FallbackCount() != 1 {
		t.Errorf("Fallback counter should be 1, got %d", e.FallbackCount())
	}
}

func TestEvaluateSentinelTranslationFallsBack(t *testing.T) {
	e := NewEvaluator(&stubGenerator{response: `{"correctTranslation": "N/A", "rating": 3}`})

	result, err := e.Evaluate(context.Background(), knownSentence, "answer", models.DifficultyToeic)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	expected := FallbackEvaluate(knownSentence, "answer", models.DifficultyToeic)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Sentinel translation should route to fallback")
	}
}

func TestEvaluateIsTotal(t *testing.T) {
	inputs := []struct {
		sentence    string
		translation string
	}{
		{"", ""},
		{"会議", "\x00\x01garbage\xff"},
		{"長い文です。", "normal answer"},
	}
	e := NewEvaluator(&stubGenerator{response: "{{{{ broken"})

	for _, input := range inputs {
		result, err := e.Evaluate(context.Background(), input.sentence, input.translation, models.DifficultyHighSchool)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q) failed: %v", input.sentence, input.translation, err)
		}
		if result.Rating < 1 || result.Rating > 5 {
			t.Errorf("Rating out of bounds for %q: %d", input.translation, result.Rating)
		}
		if result.CorrectTranslation == "" || result.Feedback == "" || result.Explanation == "" {
			t.Errorf("String fields must be populated for %q", input.translation)
		}
		if result.Improvements == nil || result.SimilarPhrases == nil {
			t.Errorf("Slice fields must be non-nil for %q", input.translation)
		}
	}
}

func TestParseEvaluationRatingVariants(t *testing.T) {
	cases := []struct {
		name     string
		response string
		expected int
	}{
		{"string rating", `{"correctTranslation": "ok", "rating": "4"}`, 4},
		{"missing rating", `{"correctTranslation": "ok"}`, 3},
		{"zero rating", `{"correctTranslation": "ok", "rating": 0}`, 1},
		{"rating too high", `{"correctTranslation": "ok", "rating": 10}`, 5},
		{"rating too low", `{"correctTranslation": "ok", "rating": -2}`, 1},
		{"non-numeric rating", `{"correctTranslation": "ok", "rating": "great"}`, 3},
	}

	for _, tc := range cases {
		result, err := parseEvaluation(tc.response)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tc.name, err)
		}
		if result.Rating != tc.expected {
			t.Errorf("%s: expected rating %d, got %d", tc.name, tc.expected, result.Rating)
		}
	}
}

func TestParseEvaluationNonArrayFields(t *testing.T) {
	result, err := parseEvaluation(`{"correctTranslation": "ok", "improvements": "be careful", "similarPhrases": 42}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(result.Improvements) != 0 || len(result.SimilarPhrases) != 0 {
		t.Errorf("Non-array fields should coerce to empty slices, got %v / %v", result.Improvements, result.SimilarPhrases)
	}
}

func TestParseEvaluationRawNewlines(t *testing.T) {
	response := "{\"correctTranslation\": \"line one\nline two\", \"rating\": 3}"

	result, err := parseEvaluation(response)
	if err != nil {
		t.Fatalf("parse failed on raw newline: %v", err)
	}
	if result.CorrectTranslation != "line one\nline two" {
		t.Errorf("Unexpected translation: %q", result.CorrectTranslation)
	}
}

func TestParseEvaluationEmbeddedObject(t *testing.T) {
	response := "Here is my evaluation:\n```json\n{\"correctTranslation\": \"He opened the door.\", \"rating\": 5}\n```\nHope that helps!"

	result, err := parseEvaluation(response)
	if err != nil {
		t.Fatalf("parse failed on embedded object: %v", err)
	}
	if result.CorrectTranslation != "He opened the door." {
		t.Errorf("Unexpected translation: %q", result.CorrectTranslation)
	}
	if result.Rating != 5 {
		t.Errorf("Expected rating 5, got %d", result.Rating)
	}
}

func TestParseEvaluationBracesInStrings(t *testing.T) {
	response := `prefix {"correctTranslation": "use { and } carefully", "rating": 2} suffix`

	result, err := parseEvaluation(response)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if result.CorrectTranslation != "use { and } carefully" {
		t.Errorf("Unexpected translation: %q", result.CorrectTranslation)
	}
}

func TestCleanModelOutput(t *testing.T) {
	input := "```json\n{\"rating\": 3}\n```"
	if got := cleanModelOutput(input); got != `{"rating": 3}` {
		t.Errorf("Unexpected cleaned output: %q", got)
	}
}
