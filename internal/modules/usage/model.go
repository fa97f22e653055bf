// README: Usage record and daily counter definitions.
package usage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDisabled is returned by read paths when neither the counters nor the ledger is configured.
var ErrDisabled = errors.New("usage counters disabled")

// ErrInvalidDay is returned when a day filter is not YYYY-MM-DD.
var ErrInvalidDay = errors.New("invalid day")

// OutcomeSuccess is the outcome label of a request that produced a valid itinerary. Failures use
// the error kind slug.
const OutcomeSuccess = "success"

const dayLayout = "2006-01-02"

// counterTTL keeps daily counters a little over a month.
const counterTTL = 35 * 24 * time.Hour

// Record is one generation attempt. It never carries trip preferences or itinerary content.
type Record struct {
	ID             uuid.UUID
	Provider       string
	Model          string
	Outcome        string
	PromptTokens   int
	ResponseTokens int
	Duration       time.Duration
	CreatedAt      time.Time
}

// DailyCounts is the per-day rollup served by GET /api/usage.
type DailyCounts struct {
	Day            string           `json:"day"`
	Outcomes       map[string]int64 `json:"outcomes"`
	Requests       int64            `json:"requests"`
	PromptTokens   int64            `json:"promptTokens"`
	ResponseTokens int64            `json:"responseTokens"`
}
