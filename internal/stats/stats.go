// Package stats tracks per-user and global usage statistics in memory.
package stats

import (
	"sort"
	"sync"
	"time"

	"bookscout/internal/model"
)

// rollingWindow bounds how much per-user history is retained.
const rollingWindow = 100

// topSearchCount is how many distinct search terms a user's stats report.
const topSearchCount = 5

type userStats struct {
	totalRequests int
	lastRequest   time.Time
	// Rolling last-100 windows.
	responseTimes []float64
	searches      []string
}

// Tracker records request statistics. Safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	users   map[string]*userStats
	total   int
	started time.Time
	now     func() time.Time
}

// NewTracker creates a tracker whose uptime starts now.
func NewTracker() *Tracker {
	return &Tracker{
		users:   make(map[string]*userStats),
		started: time.Now(),
		now:     time.Now,
	}
}

// Record notes one request for a user. Response time is in seconds.
func (t *Tracker) Record(userID, searchTerm string, responseTime float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.users[userID]
	if !ok {
		u = &userStats{}
		t.users[userID] = u
	}

	u.totalRequests++
	u.lastRequest = t.now()
	u.responseTimes = appendCapped(u.responseTimes, responseTime)
	u.searches = appendCapped(u.searches, searchTerm)
	t.total++
}

// UserStats returns the stats for a user, or ok=false if the user has
// never made a request.
func (t *Tracker) UserStats(userID string) (model.StatsResponse, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	u, ok := t.users[userID]
	if !ok {
		return model.StatsResponse{}, false
	}

	last := u.lastRequest
	return model.StatsResponse{
		UserID:          userID,
		TotalRequests:   u.totalRequests,
		AvgResponseTime: mean(u.responseTimes),
		LastRequest:     &last,
		TopSearches:     topSearches(u.searches, topSearchCount),
	}, true
}

// GlobalStats returns service-wide totals.
func (t *Tracker) GlobalStats() model.GlobalStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sum float64
	var n int
	for _, u := range t.users {
		for _, rt := range u.responseTimes {
			sum += rt
			n++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = sum / float64(n)
	}

	return model.GlobalStats{
		TotalUsers:      len(t.users),
		TotalRequests:   t.total,
		AvgResponseTime: avg,
		UptimeSeconds:   t.now().Sub(t.started).Seconds(),
	}
}

// Uptime reports how long the tracker has been alive.
func (t *Tracker) Uptime() time.Duration {
	return t.now().Sub(t.started)
}

func appendCapped[T any](s []T, v T) []T {
	s = append(s, v)
	if len(s) > rollingWindow {
		s = s[len(s)-rollingWindow:]
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// topSearches returns the n most frequent terms, most frequent first.
// Ties break toward the most recently seen term.
func topSearches(searches []string, n int) []string {
	counts := make(map[string]int)
	lastSeen := make(map[string]int)
	for i, s := range searches {
		counts[s]++
		lastSeen[s] = i
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return lastSeen[terms[i]] > lastSeen[terms[j]]
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
