package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/itinerary"
)

// gatedGenerator blocks every call until release is closed.
type gatedGenerator struct {
	calls   int32
	release chan struct{}
	it      *itinerary.Itinerary
	err     error
}

func newGated(it *itinerary.Itinerary, err error) *gatedGenerator {
	return &gatedGenerator{release: make(chan struct{}), it: it, err: err}
}

func (g *gatedGenerator) Generate(ctx context.Context, _ itinerary.TripPreferences) (*itinerary.Itinerary, error) {
	atomic.AddInt32(&g.calls, 1)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.it, g.err
}

func waitState(t *testing.T, c *Controller) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := c.Wait(ctx)
	require.NoError(t, err)
	return st
}

var sample = &itinerary.Itinerary{Title: "Trip", Days: []itinerary.DayPlan{{Day: 1, Title: "Arrival", Activities: []string{}}}}

func prefs() itinerary.TripPreferences {
	return itinerary.TripPreferences{Destination: "Paris", NumTravelers: 1}
}

func TestEnterWithoutSubmission(t *testing.T) {
	gen := newGated(sample, nil)
	c := NewController(gen)

	assert.True(t, c.Enter(context.Background(), nil))
	st := c.State()
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, itinerary.KindMissingInput, st.ErrKind)
	assert.Equal(t, "No trip data found. Please plan your trip first.", st.ErrMessage)
	assert.Zero(t, atomic.LoadInt32(&gen.calls))

	// terminal: a second empty entry changes nothing
	assert.False(t, c.Enter(context.Background(), nil))
}

func TestDuplicateEntriesWhileLoading(t *testing.T) {
	gen := newGated(sample, nil)
	c := NewController(gen)
	sub := NewSubmission(prefs())

	require.True(t, c.Enter(context.Background(), sub))
	assert.Equal(t, StatusLoading, c.State().Status)

	// rapid re-renders with the same and with a fresh submission are ignored while loading
	assert.False(t, c.Enter(context.Background(), sub))
	assert.False(t, c.Enter(context.Background(), NewSubmission(prefs())))
	assert.False(t, c.Enter(context.Background(), nil))

	close(gen.release)
	st := waitState(t, c)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, sample, st.Itinerary)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))
}

func TestSameTokenAfterCompletionIsIgnored(t *testing.T) {
	gen := newGated(sample, nil)
	close(gen.release)
	c := NewController(gen)
	sub := NewSubmission(prefs())

	require.True(t, c.Enter(context.Background(), sub))
	waitState(t, c)
	assert.False(t, c.Enter(context.Background(), sub))
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))

	// a new submission replaces the result wholesale
	require.True(t, c.Enter(context.Background(), NewSubmission(prefs())))
	st := waitState(t, c)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gen.calls))
}

type kindedErr struct{ kind string }

func (e kindedErr) Error() string { return "server said no" }
func (e kindedErr) Kind() string  { return e.kind }

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind string
	}{
		{"own kind", kindedErr{kind: "http-error"}, "http-error"},
		{"wrapped kind", fmtWrap(kindedErr{kind: "network-error"}), "network-error"},
		{"pipeline error", itinerary.NewProviderError(errors.New("quota")), itinerary.KindProvider},
		{"plain error", errors.New("boom"), KindRequestFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := newGated(nil, tc.err)
			close(gen.release)
			c := NewController(gen)

			require.True(t, c.Enter(context.Background(), NewSubmission(prefs())))
			st := waitState(t, c)
			assert.Equal(t, StatusError, st.Status)
			assert.Equal(t, tc.kind, st.ErrKind)
			assert.Equal(t, tc.err.Error(), st.ErrMessage)
			assert.Nil(t, st.Itinerary)
		})
	}
}

func fmtWrap(err error) error { return &wrapped{err} }

type wrapped struct{ err error }

func (w *wrapped) Error() string { return w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

func TestOnChangeSequence(t *testing.T) {
	var mu sync.Mutex
	var seen []Status
	gen := newGated(sample, nil)
	c := NewController(gen, WithOnChange(func(s State) {
		mu.Lock()
		seen = append(seen, s.Status)
		mu.Unlock()
	}))

	c.Enter(context.Background(), NewSubmission(prefs()))
	close(gen.release)
	waitState(t, c)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, seen)
}

func TestTokenlessSubmissionIsNotMutated(t *testing.T) {
	gen := newGated(sample, nil)
	close(gen.release)
	c := NewController(gen)

	sub := &Submission{Preferences: prefs()}
	require.True(t, c.Enter(context.Background(), sub))
	assert.Empty(t, sub.Token)
	waitState(t, c)
	assert.False(t, c.Enter(context.Background(), sub))
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))

	other := &Submission{Preferences: prefs()}
	require.True(t, c.Enter(context.Background(), other))
	waitState(t, c)
	assert.Empty(t, other.Token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gen.calls))
}

func TestWaitWithoutRequest(t *testing.T) {
	c := NewController(newGated(sample, nil))
	st, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, st.Status)
}
