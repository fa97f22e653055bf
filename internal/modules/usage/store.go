// README: Usage ledger backed by PostgreSQL (append-only, no itinerary content).
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert appends one record to the ledger.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_usage
			(id, provider, model, outcome, prompt_tokens, response_tokens, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.Provider, rec.Model, rec.Outcome, rec.PromptTokens, rec.ResponseTokens,
		rec.Duration.Milliseconds(), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert generation usage: %w", err)
	}
	return nil
}

// Daily rolls the ledger up for the UTC calendar day containing day.
func (s *Store) Daily(ctx context.Context, day time.Time) (*DailyCounts, error) {
	y, m, d := day.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	rows, err := s.db.Query(ctx, `
		SELECT outcome, COUNT(*), COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(response_tokens), 0)
		FROM generation_usage
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY outcome
	`, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("roll up generation usage: %w", err)
	}
	defer rows.Close()

	out := &DailyCounts{Day: start.Format(dayLayout), Outcomes: make(map[string]int64)}
	for rows.Next() {
		var outcome string
		var n, promptTokens, responseTokens int64
		if err := rows.Scan(&outcome, &n, &promptTokens, &responseTokens); err != nil {
			return nil, err
		}
		out.Outcomes[outcome] = n
		out.Requests += n
		out.PromptTokens += promptTokens
		out.ResponseTokens += responseTokens
	}
	return out, rows.Err()
}
