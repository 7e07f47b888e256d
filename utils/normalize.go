package utils

import (
	"strings"

	"sakubun/models"
	"sakubun/services"
)

// FirstNonEmpty returns the first value that is not blank after trimming.
// Observed clients disagree on field names (difficulty vs difficultyLevel,
// userAnswer vs userTranslation); the boundary normalizes, the core stays
// canonical.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// NormalizeDifficulty maps the request's difficulty spelling onto the
// canonical enum. Underscores and case differences are tolerated; anything
// else is ErrInvalidDifficulty.
func NormalizeDifficulty(value string) (models.Difficulty, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	difficulty := models.Difficulty(normalized)
	if !difficulty.Valid() {
		return "", services.ErrInvalidDifficulty
	}
	return difficulty, nil
}
