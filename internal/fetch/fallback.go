package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/arcanaland/battlemancer/internal/card"
)

// Fallback serves card pairs from a static secondary dataset. It is the last
// line of defense: it performs a single GET with no retries, and its failures
// surface to the caller.
type Fallback struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger

	// shuffle permutes the candidate list in place. Swappable in tests;
	// the default is an unbiased Fisher-Yates via rand.Shuffle.
	shuffle func([]card.Card)
}

// NewFallback creates a provider backed by the static dataset at url.
func NewFallback(url string, logger *slog.Logger) *Fallback {
	return &Fallback{
		httpClient: &http.Client{Timeout: requestTimeout},
		url:        url,
		logger:     logger,
		shuffle: func(cards []card.Card) {
			rand.Shuffle(len(cards), func(i, j int) {
				cards[i], cards[j] = cards[j], cards[i]
			})
		},
	}
}

// Pair fetches the static dataset, picks two entries uniformly at random,
// and synthesizes their HP from the card name. The dataset body may be a
// bare JSON array of card records or an object wrapping a data array.
func (f *Fallback) Pair(ctx context.Context) ([2]card.Card, error) {
	var pair [2]card.Card

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return pair, fmt.Errorf("error building fallback request: %v", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return pair, fmt.Errorf("fallback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return pair, fmt.Errorf("fallback dataset returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pair, fmt.Errorf("error reading fallback body: %v", err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return pair, err
	}

	candidates := make([]card.Card, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, card.Normalize(record))
	}

	if len(candidates) < cardsPerBattle {
		return pair, fmt.Errorf("fallback dataset has %d cards, need %d",
			len(candidates), cardsPerBattle)
	}

	f.shuffle(candidates)

	for i := range pair {
		chosen := candidates[i]
		// The static dataset may carry its own hp, but battles drawn
		// offline always use the derived value so the same matchup is
		// reproducible.
		chosen.HP = card.DeriveHP(chosen.Name)
		pair[i] = chosen
	}

	f.logger.Debug("drew card pair from fallback dataset",
		"candidates", len(candidates),
		"first", pair[0].Name, "second", pair[1].Name)

	return pair, nil
}

// decodeRecords accepts either of the dataset shapes: a bare array of card
// records, or an object with a data array.
func decodeRecords(body []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("error decoding fallback dataset: %v", err)
	}

	return envelope.Data, nil
}
