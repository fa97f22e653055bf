// README: Usage service fans records out to the ledger and the counters.
package usage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service fans generation records out to the Postgres ledger and the Redis counters. Either
// backend may be nil.
type Service struct {
	store   *Store
	counter *Counter
	now     func() time.Time
}

// NewService creates a Service backed by the given Store and Counter.
func NewService(store *Store, counter *Counter) *Service {
	return &Service{store: store, counter: counter, now: time.Now}
}

// Record persists rec, filling ID and CreatedAt when unset. Both backends are attempted; their
// errors are joined.
func (s *Service) Record(ctx context.Context, rec Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}

	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Insert(ctx, rec))
	}
	if s.counter != nil {
		errs = append(errs, s.counter.Incr(ctx, rec))
	}
	return errors.Join(errs...)
}

// Daily returns the counters for day (YYYY-MM-DD); an empty day means today in UTC. Without
// Redis the Postgres ledger is rolled up instead.
func (s *Service) Daily(ctx context.Context, day string) (*DailyCounts, error) {
	if s.counter == nil && s.store == nil {
		return nil, ErrDisabled
	}
	t := s.now().UTC()
	if day = strings.TrimSpace(day); day != "" {
		parsed, err := time.Parse(dayLayout, day)
		if err != nil {
			return nil, ErrInvalidDay
		}
		t = parsed
	}
	if s.counter != nil {
		return s.counter.Daily(ctx, t)
	}
	return s.store.Daily(ctx, t)
}
