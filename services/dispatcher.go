package services

import (
	"math/rand"
	"sync"
	"time"

	"sakubun/models"
)

// Dispatcher selects a non-repeating practice sentence per session. Two
// scopes of "seen" apply: sentences the user has ever attempted (all-time,
// supplied by the caller from attempt history) and sentences already served
// to this session (tracked here). When either scope empties the pool the
// dispatcher resets and continues rather than failing.
type Dispatcher struct {
	sessions KeyedSetStore
	rng      *rand.Rand
	mutex    sync.Mutex
}

// NewDispatcher creates a dispatcher over the given session store.
func NewDispatcher(sessions KeyedSetStore) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewDispatcherWithSeed creates a dispatcher with a fixed random seed.
func NewDispatcherWithSeed(sessions KeyedSetStore, seed int64) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Issue picks an unseen sentence for the difficulty and session, marks it
// served, and returns it. attempted is the user's all-time attempt history
// for this difficulty. The only error is an unrecognized difficulty.
func (d *Dispatcher) Issue(difficulty models.Difficulty, sessionID string, attempted []string) (models.Problem, error) {
	entries, err := CatalogSentences(difficulty)
	if err != nil {
		return models.Problem{}, err
	}

	attemptedSet := make(map[string]struct{}, len(attempted))
	for _, sentence := range attempted {
		attemptedSet[sentence] = struct{}{}
	}

	// Pool of sentences the user has never attempted. An empty pool means
	// the user has worked through the catalog, so every sentence becomes
	// eligible again.
	pool := make([]CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if _, seen := attemptedSet[entry.Sentence]; !seen {
			pool = append(pool, entry)
		}
	}
	if len(pool) == 0 {
		pool = entries
	}

	sessionKey := sessionID + ":" + string(difficulty)

	d.mutex.Lock()
	defer d.mutex.Unlock()

	served := make(map[string]struct{})
	for _, sentence := range d.sessions.Members(sessionKey) {
		served[sentence] = struct{}{}
	}

	candidates := make([]CatalogEntry, 0, len(pool))
	for _, entry := range pool {
		if _, seen := served[entry.Sentence]; !seen {
			candidates = append(candidates, entry)
		}
	}
	if len(candidates) == 0 {
		// Session has seen the whole pool: reset and continue.
		d.sessions.Clear(sessionKey)
		candidates = pool
	}

	chosen := candidates[d.rng.Intn(len(candidates))]
	d.sessions.Add(sessionKey, chosen.Sentence)

	return models.Problem{
		JapaneseSentence: chosen.Sentence,
		Difficulty:       difficulty,
		Hints:            chosen.Hints,
	}, nil
}
