// Package fetch acquires pairs of battle-ready cards: it queries the primary
// card API with retry and exponential backoff, and falls back to a static
// secondary dataset once the primary is exhausted.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcanaland/battlemancer/internal/card"
	"github.com/arcanaland/battlemancer/internal/config"
)

// ErrUnavailable is returned when both the primary API and the fallback
// dataset failed to produce a card pair. There is no further recovery layer.
var ErrUnavailable = errors.New("card data unavailable")

const (
	// maxAttempts is how many times the primary API is tried per battle.
	maxAttempts = 3

	// baseBackoff is the wait after the first failed attempt; it doubles
	// after each subsequent failure. The final failed attempt does not
	// wait — it escalates straight to the fallback.
	baseBackoff = 600 * time.Millisecond
)

// Fetcher produces a pair of cards in a single attempt.
type Fetcher interface {
	Pair(ctx context.Context) ([2]card.Card, error)
}

// Result is what a battle fetch hands back: exactly two cards plus the path
// that produced them.
type Result struct {
	Cards        [2]card.Card
	FromFallback bool
}

// Service is the single entry point for acquiring battle cards. It is safe
// for concurrent use; each call is independent.
type Service struct {
	primary  Fetcher
	fallback Fetcher
	logger   *slog.Logger

	attempts int
	backoff  time.Duration
	sleep    func(context.Context, time.Duration) error
}

// NewService wires a Service from the process configuration.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		primary:  NewClient(cfg.APIBaseURL, cfg.APIKey, logger),
		fallback: NewFallback(cfg.FallbackURL, logger),
		logger:   logger,
		attempts: maxAttempts,
		backoff:  baseBackoff,
		sleep:    sleepContext,
	}
}

// BattlePair fetches two cards for a battle. Primary-path failures are
// retried and then absorbed by the fallback; only a fallback failure is
// surfaced, wrapped in ErrUnavailable.
func (s *Service) BattlePair(ctx context.Context) (*Result, error) {
	cards, err := s.fetchWithRetry(ctx)
	if err == nil {
		return &Result{Cards: cards}, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.logger.Warn("primary API exhausted, switching to fallback dataset", "err", err)

	cards, err = s.fallback.Pair(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Result{Cards: cards, FromFallback: true}, nil
}

// fetchWithRetry drives the primary client through up to attempts tries,
// backing off between failures. The first success wins.
func (s *Service) fetchWithRetry(ctx context.Context) ([2]card.Card, error) {
	var lastErr error

	for attempt := 0; attempt < s.attempts; attempt++ {
		cards, err := s.primary.Pair(ctx)
		if err == nil {
			return cards, nil
		}
		lastErr = err

		if attempt == s.attempts-1 {
			break
		}

		delay := s.backoff << attempt
		s.logger.Warn("primary fetch failed, backing off",
			"attempt", attempt, "delay", delay, "err", err)

		if err := s.sleep(ctx, delay); err != nil {
			return [2]card.Card{}, err
		}
	}

	return [2]card.Card{}, lastErr
}

// sleepContext waits for the given duration unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
