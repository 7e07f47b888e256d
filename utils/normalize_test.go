package utils

import (
	"testing"

	"sakubun/models"
	"sakubun/services"
)

func TestNormalizeDifficulty(t *testing.T) {
	cases := []struct {
		input    string
		expected models.Difficulty
	}{
		{"toeic", models.DifficultyToeic},
		{"TOEIC", models.DifficultyToeic},
		{" middle-school ", models.DifficultyMiddleSchool},
		{"middle_school", models.DifficultyMiddleSchool},
		{"Business_Email", models.DifficultyBusinessEmail},
	}

	for _, tc := range cases {
		got, err := NormalizeDifficulty(tc.input)
		if err != nil {
			t.Errorf("NormalizeDifficulty(%q) failed: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("NormalizeDifficulty(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeDifficultyInvalid(t *testing.T) {
	for _, input := range []string{"", "expert", "beginner", "toeic2"} {
		if _, err := NormalizeDifficulty(input); err != services.ErrInvalidDifficulty {
			t.Errorf("NormalizeDifficulty(%q) should fail with ErrInvalidDifficulty, got %v", input, err)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "value", "other"); got != "value" {
		t.Errorf("Expected \"value\", got %q", got)
	}
	if got := FirstNonEmpty("", "   "); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
