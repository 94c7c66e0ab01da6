package event

import (
	"sync"
	"time"

	"github.com/mcportal/agenda-sync/app/calendar"
)

// Snapshot holds the latest displayable event set in memory. The HTTP
// layer reads from it instead of the database, so a slow sync cycle
// never blocks serving.
type Snapshot struct {
	mu         sync.RWMutex
	events     []ResolvedEvent
	lastSyncAt time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Publish replaces the snapshot atomically. Callers pass the already
// filtered display set.
func (s *Snapshot) Publish(events []ResolvedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.lastSyncAt = time.Now()
}

func (s *Snapshot) Events() []ResolvedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ResolvedEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Snapshot) LastSyncAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSyncAt
}

// FilterDisplayable drops feed-cancelled items and items whose
// canonical title came out empty. Display state is computed fresh from
// the feed on every cycle, never from persisted status.
func FilterDisplayable(events []ResolvedEvent) []ResolvedEvent {
	out := make([]ResolvedEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status == calendar.StatusCancelled || ev.Title == "" {
			continue
		}
		out = append(out, ev)
	}
	return out
}
