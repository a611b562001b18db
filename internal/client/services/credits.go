package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/client"
	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/logging"
)

// DefaultCreditsTTL is how long a fetched ledger is served without a refetch.
const DefaultCreditsTTL = 5 * time.Minute

// CreditService is the credit ledger cache.
//
// Contract:
//   - Read: current cached ledger (possibly stale) or nil. Never blocks on I/O.
//   - State: ledger plus loading flag and last error message, for display.
//   - Refresh: one authoritative fetch unless the cache is fresh and force is
//     false. Failures are kept in State, the stale ledger stays readable.
//   - ApplyOptimisticGrant: billing entry point after a confirmed purchase.
//   - ApplyRemaining: authoritative remaining counts reported inline by a
//     generate/edit response.
//   - Reset: forget everything (sign-out).
type CreditService interface {
	Read() *models.Credits
	State() CreditState
	Refresh(ctx context.Context, force bool)
	ApplyOptimisticGrant(screenDelta, revisionDelta int)
	ApplyRemaining(screens, revisions int)
	Reset()
}

type CreditState struct {
	Credits *models.Credits
	Loading bool
	Err     string
}

// creditService orders authoritative writes with tickets: a refresh takes
// its ticket when the request is issued, an inline fold when it is applied.
// A write is applied only if its ticket is newer than the last applied one,
// so a slow refresh can never overwrite a newer server answer. A fold that
// finds the cache empty is kept in pending and laid over the first ledger
// that arrives, stale or not. Optimistic grants take no ticket and are
// overwritten by the next authoritative write.
type creditService struct {
	client client.Client
	logger logging.Logger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	credits  *models.Credits
	inflight int
	errMsg   string
	issued   uint64
	applied  uint64
	pending  *remainingFold
}

type remainingFold struct {
	screens   int
	revisions int
}

func NewCreditService(c client.Client, ttl time.Duration, logger logging.Logger) CreditService {
	if ttl <= 0 {
		ttl = DefaultCreditsTTL
	}
	return &creditService{
		client: c,
		logger: logger.With("module", "credits"),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *creditService) Read() *models.Credits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *creditService) State() CreditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CreditState{Credits: s.copyLocked(), Loading: s.inflight > 0, Err: s.errMsg}
}

func (s *creditService) copyLocked() *models.Credits {
	if s.credits == nil {
		return nil
	}
	c := *s.credits
	return &c
}

func (s *creditService) freshLocked() bool {
	return s.credits != nil &&
		!s.credits.LastUpdated.IsZero() &&
		s.now().Sub(s.credits.LastUpdated) < s.ttl
}

func (s *creditService) Refresh(ctx context.Context, force bool) {
	s.mu.Lock()
	if !force && s.freshLocked() {
		s.mu.Unlock()
		s.logger.Debug(ctx, "credits cache hit")
		return
	}
	s.issued++
	ticket := s.issued
	s.inflight++
	s.errMsg = ""
	s.mu.Unlock()

	fetched, err := s.client.LoadUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if err != nil {
		if ticket > s.applied {
			s.errMsg = err.Error()
		}
		s.logger.Warn(ctx, "credits refresh failed", "error", err)
		return
	}
	if ticket <= s.applied && s.pending == nil {
		s.logger.Debug(ctx, "discarding stale credits response", "ticket", ticket, "applied", s.applied)
		return
	}

	c := *fetched
	if ticket <= s.applied {
		// lifetime totals come from the fetch, remaining from the newer fold
		c.RemainingScreenCredits = s.pending.screens
		c.RemainingRevisionCredits = s.pending.revisions
	} else {
		s.applied = ticket
	}
	s.pending = nil
	c.Normalize()
	c.LastUpdated = s.now()
	s.credits = &c
	s.logger.Info(ctx, "credits refreshed",
		"remaining_screens", c.RemainingScreenCredits,
		"remaining_revisions", c.RemainingRevisionCredits)
}

func (s *creditService) ApplyOptimisticGrant(screenDelta, revisionDelta int) {
	if screenDelta < 0 || revisionDelta < 0 {
		s.logger.Warn(context.Background(), "ignoring negative grant", "screens", screenDelta, "revisions", revisionDelta)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credits == nil {
		return
	}
	s.credits.ScreenCredits += screenDelta
	s.credits.RemainingScreenCredits += screenDelta
	s.credits.RevisionCredits += revisionDelta
	s.credits.RemainingRevisionCredits += revisionDelta
}

func (s *creditService) ApplyRemaining(screens, revisions int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	s.applied = s.issued
	if s.credits == nil {
		s.pending = &remainingFold{screens: screens, revisions: revisions}
		return
	}
	s.credits.RemainingScreenCredits = screens
	s.credits.RemainingRevisionCredits = revisions
	s.credits.Normalize()
	s.credits.LastUpdated = s.now()
}

func (s *creditService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits = nil
	s.pending = nil
	s.errMsg = ""
	// in-flight refreshes belong to the previous session
	s.applied = s.issued
}
