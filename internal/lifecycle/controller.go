// README: Request lifecycle controller; one generation call per submission, mapped to view states.
package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"wanderplan/internal/itinerary"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	// MsgNoTripData is shown when the view is entered without any preferences.
	MsgNoTripData = "No trip data found. Please plan your trip first."

	// KindRequestFailed classifies errors that carry no kind of their own.
	KindRequestFailed = "request-failed"
)

// State is a snapshot of the controller. Itinerary is set only in StatusSuccess, ErrKind and
// ErrMessage only in StatusError.
type State struct {
	Status     Status
	Itinerary  *itinerary.Itinerary
	ErrKind    string
	ErrMessage string
}

// Submission is one user request for an itinerary. The token identifies it across re-entries.
type Submission struct {
	Token       string
	Preferences itinerary.TripPreferences
}

func NewSubmission(prefs itinerary.TripPreferences) *Submission {
	return &Submission{Token: uuid.NewString(), Preferences: prefs}
}

// Generator performs the generation round trip.
type Generator interface {
	Generate(ctx context.Context, prefs itinerary.TripPreferences) (*itinerary.Itinerary, error)
}

type Option func(*Controller)

// WithOnChange registers a callback invoked, outside the lock, after every state transition.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the state of one itinerary view.
type Controller struct {
	gen      Generator
	onChange func(State)

	mu        sync.Mutex
	state     State
	lastToken string
	lastSub   *Submission
	done      chan struct{}
}

func NewController(gen Generator, opts ...Option) *Controller {
	c := &Controller{gen: gen, state: State{Status: StatusIdle}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enter is called whenever the view is entered or re-rendered with a submission. It reports
// whether the call changed state. At most one generation call is in flight; a submission with the
// last accepted token is a duplicate and is ignored. A submission without a token is identified by
// the pointer itself; Enter never writes to sub.
func (c *Controller) Enter(ctx context.Context, sub *Submission) bool {
	c.mu.Lock()
	if c.state.Status == StatusLoading {
		c.mu.Unlock()
		return false
	}

	if sub == nil {
		if c.state.Status != StatusIdle {
			c.mu.Unlock()
			return false
		}
		c.state = State{Status: StatusError, ErrKind: itinerary.KindMissingInput, ErrMessage: MsgNoTripData}
		st := c.state
		c.mu.Unlock()
		c.notify(st)
		return true
	}

	token := sub.Token
	if token == "" && sub != c.lastSub {
		token = uuid.NewString()
	}
	if sub == c.lastSub || token == c.lastToken {
		c.mu.Unlock()
		return false
	}
	c.lastToken = token
	c.lastSub = sub
	c.state = State{Status: StatusLoading}
	done := make(chan struct{})
	c.done = done
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	go c.run(ctx, sub.Preferences, done)
	return true
}

func (c *Controller) run(ctx context.Context, prefs itinerary.TripPreferences, done chan struct{}) {
	defer close(done)

	it, err := c.gen.Generate(ctx, prefs)

	var next State
	if err != nil {
		next = State{Status: StatusError, ErrKind: errorKind(err), ErrMessage: err.Error()}
	} else {
		next = State{Status: StatusSuccess, Itinerary: it}
	}

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()
	c.notify(next)
}

func (c *Controller) notify(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until the in-flight call, if any, has finished and returns the resulting state.
func (c *Controller) Wait(ctx context.Context) (State, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
	return c.State(), nil
}

func errorKind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) && k.Kind() != "" {
		return k.Kind()
	}
	if kind := itinerary.KindOf(err); kind != "" {
		return kind
	}
	return KindRequestFailed
}
