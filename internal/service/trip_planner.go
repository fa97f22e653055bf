// README: Trip planner runs the prompt -> model -> sanitize -> validate pipeline.
package service

import (
	"context"
	"log/slog"
	"time"

	"wanderplan/internal/ai"
	"wanderplan/internal/itinerary"
	"wanderplan/internal/logging"
	"wanderplan/internal/metrics"
	"wanderplan/internal/modules/usage"
)

const (
	geocodeTimeout = 3 * time.Second
	recordTimeout  = 2 * time.Second
)

// Geocoder resolves a destination to a location hint for the prompt.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*itinerary.Location, error)
}

// UsageRecorder persists one generation attempt.
type UsageRecorder interface {
	Record(ctx context.Context, rec usage.Record) error
}

// TripPlanner runs the generation pipeline: prompt, model, sanitize, validate.
type TripPlanner struct {
	model    ai.Model
	geocoder Geocoder
	usage    UsageRecorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*TripPlanner)

func WithGeocoder(g Geocoder) Option { return func(p *TripPlanner) { p.geocoder = g } }

func WithUsage(u UsageRecorder) Option { return func(p *TripPlanner) { p.usage = u } }

func WithMetrics(m *metrics.Metrics) Option { return func(p *TripPlanner) { p.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(p *TripPlanner) { p.logger = l } }

// NewTripPlanner creates a TripPlanner around an injected model client.
func NewTripPlanner(model ai.Model, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		model:  model,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan turns raw preferences into a validated itinerary. Every error it returns is classified by
// itinerary.KindOf.
func (p *TripPlanner) Plan(ctx context.Context, raw itinerary.TripPreferences) (*itinerary.Itinerary, error) {
	prefs, err := raw.Normalize()
	if err != nil {
		return nil, err
	}

	start := p.now()
	var loc *itinerary.Location
	if p.geocoder != nil {
		loc = p.resolve(ctx, prefs.Destination)
	}

	prompt := itinerary.BuildPromptWithLocation(prefs, loc)
	p.logger.Debug("sending prompt", "provider", p.model.Provider(), "bytes", len(prompt))

	reply, err := p.model.Generate(ctx, prompt)
	if err != nil {
		if itinerary.KindOf(err) == "" {
			err = itinerary.NewProviderError(err)
		}
		p.finish(ctx, start, nil, err)
		return nil, err
	}
	p.logger.Debug("model reply received", "bytes", len(reply.Text), "total_tokens", reply.Usage.TotalTokens)

	it, err := itinerary.Validate(itinerary.Sanitize(reply.Text))
	p.finish(ctx, start, reply, err)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// resolve geocodes the destination. Failures only cost the hint.
func (p *TripPlanner) resolve(ctx context.Context, destination string) *itinerary.Location {
	gctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	loc, err := p.geocoder.Geocode(gctx, destination)
	if err != nil {
		p.logger.Warn("geocode failed; continuing without location hint", "error", err)
		return nil
	}
	return loc
}

// finish logs the outcome and feeds metrics and the usage ledger.
func (p *TripPlanner) finish(ctx context.Context, start time.Time, reply *ai.Reply, genErr error) {
	took := p.now().Sub(start)
	outcome := usage.OutcomeSuccess
	if genErr != nil {
		outcome = itinerary.KindOf(genErr)
		p.logger.Warn("itinerary generation failed", "kind", outcome, "took", took, "error", genErr)
	} else {
		p.logger.Info("itinerary generated", "provider", p.model.Provider(), "took", took)
	}

	var tokens ai.Usage
	if reply != nil {
		tokens = reply.Usage
	}
	p.metrics.ObserveGeneration(p.model.Provider(), outcome, took, tokens.PromptTokens, tokens.ResponseTokens)

	if p.usage == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	err := p.usage.Record(rctx, usage.Record{
		Provider:       p.model.Provider(),
		Model:          p.model.ModelName(),
		Outcome:        outcome,
		PromptTokens:   tokens.PromptTokens,
		ResponseTokens: tokens.ResponseTokens,
		Duration:       took,
	})
	if err != nil {
		p.logger.Error("record usage", "error", err)
	}
}
