package services

import (
	"sync"
	"time"
)

// QuotaCounter gates problem issuance on a per-user daily ceiling.
// QuotaService is the in-process implementation; deployments that run more
// than one instance can substitute a shared-cache implementation.
type QuotaCounter interface {
	TryConsume(userID string) bool
	Count(userID string) int
	Ceiling() int
	Reset(userID, date string)
}

// dailyCount is one user's usage for a single calendar day.
type dailyCount struct {
	date  string
	count int
}

// QuotaService enforces the per-user daily ceiling on problem issuance.
// Rollover is lazy: the first call that observes a stored date different
// from today resets that user's count, there is no wall-clock timer.
type QuotaService struct {
	ceiling int
	counts  map[string]*dailyCount
	mutex   sync.Mutex
	now     func() time.Time
}

// NewQuotaService creates a quota service with the given daily ceiling.
func NewQuotaService(ceiling int) *QuotaService {
	return &QuotaService{
		ceiling: ceiling,
		counts:  make(map[string]*dailyCount),
		now:     time.Now,
	}
}

func (q *QuotaService) today() string {
	return q.now().Format("2006-01-02")
}

// entry returns the caller's record for today, rolling over stale dates.
// Callers must hold the mutex.
func (q *QuotaService) entry(userID string) *dailyCount {
	today := q.today()
	dc, ok := q.counts[userID]
	if !ok || dc.date != today {
		dc = &dailyCount{date: today}
		q.counts[userID] = dc
	}
	return dc
}

// TryConsume takes one unit of today's quota. It returns false, with no
// mutation, once the ceiling has been reached; exhaustion is a normal
// condition for the day, not an error.
func (q *QuotaService) TryConsume(userID string) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	dc := q.entry(userID)
	if dc.count >= q.ceiling {
		return false
	}
	dc.count++
	return true
}

// Count returns how much of today's quota the user has consumed.
func (q *QuotaService) Count(userID string) int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return q.entry(userID).count
}

// Ceiling returns the configured daily limit.
func (q *QuotaService) Ceiling() int {
	return q.ceiling
}

// Reset zeroes the user's counter for the given date, or for today when
// date is empty. Administrative operation only.
func (q *QuotaService) Reset(userID, date string) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if date == "" {
		date = q.today()
	}
	q.counts[userID] = &dailyCount{date: date}
}
