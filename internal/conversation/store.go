package conversation

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/stazcp/macroTrackerTelegramBot/internal/food"
)

const (
	maxEntries      = 5
	maxBatches      = 3
	contextEntries  = 3
	idleExpiry      = 24 * time.Hour
	sweeperInterval = time.Hour
)

// Entry is one remembered message with its classified intent.
type Entry struct {
	Message   string
	Intent    string
	Timestamp time.Time
}

type userConversation struct {
	entries      []Entry
	batches      [][]food.Estimate
	lastActivity time.Time
}

// Store keeps short per-user conversation memory: a ring of the last five
// messages for intent context and a ring of the last three estimate batches
// for modification lookups. Users idle for a day are swept.
type Store struct {
	mu    sync.Mutex
	users map[int64]*userConversation
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

func NewStore() *Store {
	return &Store{
		users: make(map[int64]*userConversation),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
}

func (s *Store) Record(userID int64, message, intent string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.conversation(userID)
	if len(conv.entries) >= maxEntries {
		conv.entries = conv.entries[1:]
	}
	conv.entries = append(conv.entries, Entry{
		Message:   message,
		Intent:    intent,
		Timestamp: s.now(),
	})
	conv.lastActivity = s.now()
}

func (s *Store) RecordEstimates(userID int64, batch []food.Estimate) {
	if len(batch) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.conversation(userID)
	if len(conv.batches) >= maxBatches {
		conv.batches = conv.batches[1:]
	}
	conv.batches = append(conv.batches, batch)
	conv.lastActivity = s.now()
}

// RecentContext renders the last few messages the way the language service
// prompt expects them.
func (s *Store) RecentContext(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.users[userID]
	if !ok || len(conv.entries) == 0 {
		return ""
	}

	start := len(conv.entries) - contextEntries
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, contextEntries)
	for _, e := range conv.entries[start:] {
		lines = append(lines, fmt.Sprintf("User: %s (Intent: %s)", e.Message, e.Intent))
	}
	return strings.Join(lines, "\n")
}

// RecentEstimates returns the latest recorded batch, newest first in ring
// order, or nil.
func (s *Store) RecentEstimates(userID int64) []food.Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.users[userID]
	if !ok || len(conv.batches) == 0 {
		return nil
	}
	return conv.batches[len(conv.batches)-1]
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// StartSweeper evicts idle conversations hourly until Stop is called.
func (s *Store) StartSweeper() {
	go func() {
		ticker := time.NewTicker(sweeperInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep(s.now())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.users {
		if now.Sub(conv.lastActivity) > idleExpiry {
			delete(s.users, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("CONVERSATION_SWEEP removed=%d remaining=%d", removed, len(s.users))
	}
}

// conversation must be called with the lock held.
func (s *Store) conversation(userID int64) *userConversation {
	conv, ok := s.users[userID]
	if !ok {
		conv = &userConversation{}
		s.users[userID] = conv
	}
	return conv
}
