package history

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sandevgo/campusbot/internal/core"
)

const (
	// maxEntries is the hard ceiling of the ledger.
	maxEntries = 100
	// keepEntries is what survives a truncation. Cutting back in a batch
	// instead of evicting one-by-one keeps appends cheap.
	keepEntries = 50
)

// Store is the bounded conversation ledger. It is the only shared mutable
// state in the pipeline, so every access goes through the mutex.
type Store struct {
	mu       sync.Mutex
	entries  []core.ConversationEntry
	requests int
}

func NewStore() *Store {
	return &Store{}
}

// NewEntry builds an immutable ledger record for one processed exchange.
func NewEntry(query, reply, topic string, confidence float64) core.ConversationEntry {
	return core.ConversationEntry{
		ID:         generateID(),
		Query:      query,
		Reply:      reply,
		Topic:      topic,
		Confidence: confidence,
		Timestamp:  time.Now(),
	}
}

func generateID() string {
	return fmt.Sprintf("%d-%09d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
}

// Append records an entry, truncating to the most recent keepEntries once
// the ledger would exceed maxEntries.
func (s *Store) Append(entry core.ConversationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > maxEntries {
		kept := make([]core.ConversationEntry, keepEntries)
		copy(kept, s.entries[len(s.entries)-keepEntries:])
		s.entries = kept
	}
}

// BumpRequests counts one processed request, recorded or not.
func (s *Store) BumpRequests() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

// History returns a defensive copy in chronological order.
func (s *Store) History() []core.ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.ConversationEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Recent returns at most n of the latest entries, oldest first.
func (s *Store) Recent(n int) []core.ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || len(s.entries) == 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]core.ConversationEntry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// Clear empties the ledger unconditionally. The request counter survives.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// Stats derives the aggregate view over the retained entries.
func (s *Store) Stats() core.HistoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := core.HistoryStats{
		TotalRequests:     s.requests,
		ConversationCount: len(s.entries),
		TopicDistribution: make(map[string]int),
	}

	if len(s.entries) == 0 {
		return stats
	}

	sum := 0.0
	for _, e := range s.entries {
		stats.TopicDistribution[e.Topic]++
		sum += e.Confidence
	}
	stats.AverageConfidence = math.Round(sum/float64(len(s.entries))*100) / 100

	last := s.entries[len(s.entries)-1].Timestamp
	stats.LastActivity = &last

	return stats
}
