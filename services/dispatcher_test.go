package services

import (
	"testing"

	"sakubun/models"
)

func TestNoImmediateRepeat(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 1)

	entries, err := CatalogSentences(models.DifficultyMiddleSchool)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	seen := make(map[string]struct{})
	for i := 0; i < len(entries); i++ {
		problem, err := d.Issue(models.DifficultyMiddleSchool, "session-1", nil)
		if err != nil {
			t.Fatalf("Issue %d failed: %v", i, err)
		}
		if _, dup := seen[problem.JapaneseSentence]; dup {
			t.Errorf("Sentence repeated before catalog exhaustion: %s", problem.JapaneseSentence)
		}
		seen[problem.JapaneseSentence] = struct{}{}
	}

	if len(seen) != len(entries) {
		t.Errorf("Expected %d distinct sentences, got %d", len(entries), len(seen))
	}
}

func TestExhaustionResets(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 2)

	entries, err := CatalogSentences(models.DifficultyBasicVerbs)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	for i := 0; i < len(entries); i++ {
		if _, err := d.Issue(models.DifficultyBasicVerbs, "session-1", nil); err != nil {
			t.Fatalf("Issue %d failed: %v", i, err)
		}
	}

	// The (N+1)th issuance must succeed even though the session has seen
	// the whole catalog.
	problem, err := d.Issue(models.DifficultyBasicVerbs, "session-1", nil)
	if err != nil {
		t.Fatalf("Issue after exhaustion failed: %v", err)
	}
	if problem.JapaneseSentence == "" {
		t.Error("Expected a sentence after exhaustion reset")
	}
}

func TestInvalidDifficulty(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 3)

	if _, err := d.Issue(models.Difficulty("expert"), "session-1", nil); err != ErrInvalidDifficulty {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestAttemptedSentencesExcluded(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 4)

	entries, err := CatalogSentences(models.DifficultyToeic)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	// Mark every sentence but the last as already attempted.
	attempted := make([]string, 0, len(entries)-1)
	for _, entry := range entries[:len(entries)-1] {
		attempted = append(attempted, entry.Sentence)
	}
	remaining := entries[len(entries)-1].Sentence

	problem, err := d.Issue(models.DifficultyToeic, "session-1", attempted)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if problem.JapaneseSentence != remaining {
		t.Errorf("Expected the only unattempted sentence %q, got %q", remaining, problem.JapaneseSentence)
	}
}

func TestFullyAttemptedFallsBackToCatalog(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 5)

	entries, err := CatalogSentences(models.DifficultySimulation)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	attempted := make([]string, 0, len(entries))
	for _, entry := range entries {
		attempted = append(attempted, entry.Sentence)
	}

	problem, err := d.Issue(models.DifficultySimulation, "session-1", attempted)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if problem.JapaneseSentence == "" {
		t.Error("Expected a sentence even when every sentence was attempted")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	d := NewDispatcherWithSeed(NewMemorySetStore(), 6)

	entries, _ := CatalogSentences(models.DifficultyHighSchool)
	for i := 0; i < len(entries); i++ {
		if _, err := d.Issue(models.DifficultyHighSchool, "session-a", nil); err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
	}

	// A different session still has the full catalog available.
	seen := make(map[string]struct{})
	for i := 0; i < len(entries); i++ {
		problem, err := d.Issue(models.DifficultyHighSchool, "session-b", nil)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		seen[problem.JapaneseSentence] = struct{}{}
	}
	if len(seen) != len(entries) {
		t.Errorf("Expected %d distinct sentences for fresh session, got %d", len(entries), len(seen))
	}
}
