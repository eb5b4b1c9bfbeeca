package chat

import (
	"strings"
	"sync"
	"time"
)

const (
	confirmationKindClear = "clear"
	confirmationExpiry    = 30 * time.Second
	confirmationSweep     = time.Minute
)

var (
	confirmationWords = []string{"YES", "Y", "CONFIRM", "OK"}
	cancellationWords = []string{"NO", "N", "CANCEL", "STOP", "ABORT"}
)

type pendingConfirmation struct {
	Kind      string
	CreatedAt time.Time
}

// confirmationStore tracks destructive actions awaiting a yes/no reply so
// ordinary message processing does not swallow the answer. Entries expire
// quickly; a stale "yes" must never trigger anything.
type confirmationStore struct {
	mu    sync.Mutex
	items map[int64]pendingConfirmation
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

func newConfirmationStore() *confirmationStore {
	return &confirmationStore{
		items: make(map[int64]pendingConfirmation),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
}

func (s *confirmationStore) Set(telegramID int64, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[telegramID] = pendingConfirmation{Kind: kind, CreatedAt: s.now()}
}

func (s *confirmationStore) Get(telegramID int64) (pendingConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[telegramID]
	if !ok {
		return pendingConfirmation{}, false
	}
	if s.now().Sub(p.CreatedAt) > confirmationExpiry {
		delete(s.items, telegramID)
		return pendingConfirmation{}, false
	}
	return p, true
}

func (s *confirmationStore) Clear(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, telegramID)
}

func (s *confirmationStore) StartSweeper() {
	go func() {
		ticker := time.NewTicker(confirmationSweep)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *confirmationStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *confirmationStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-confirmationExpiry)
	for id, p := range s.items {
		if p.CreatedAt.Before(cutoff) {
			delete(s.items, id)
		}
	}
}

func isConfirmationResponse(text string) bool {
	return isPositiveConfirmation(text) || isNegativeConfirmation(text)
}

func isPositiveConfirmation(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, w := range confirmationWords {
		if upper == w {
			return true
		}
	}
	return false
}

func isNegativeConfirmation(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, w := range cancellationWords {
		if upper == w {
			return true
		}
	}
	return false
}
