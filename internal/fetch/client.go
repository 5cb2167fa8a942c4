package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcanaland/battlemancer/internal/card"
)

const (
	// requestTimeout bounds every card request; exceeding it is treated as
	// a retryable failure by the caller.
	requestTimeout = 20 * time.Second

	// cardsPerBattle is how many cards a single battle needs.
	cardsPerBattle = 2

	// maxRandomPage spreads requests across the API's paginated card set so
	// consecutive battles draw different cards.
	maxRandomPage = 250
)

// Client fetches card pairs from the primary card API. It performs exactly
// one request per call; retry policy belongs to the Service.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a client for the primary card API. The API key is
// optional; when set it is sent as the X-Api-Key header.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		// The public TCG APIs rate-limit aggressively; pace requests
		// rather than triggering 429 responses.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Pair requests two randomly selected cards. Any failure — network error,
// non-200 status, undecodable body, or fewer than two entries — is returned
// as an error the caller may retry.
func (c *Client) Pair(ctx context.Context) ([2]card.Card, error) {
	var pair [2]card.Card

	if err := c.limiter.Wait(ctx); err != nil {
		return pair, err
	}

	url := fmt.Sprintf("%s/cards?pageSize=%d&page=%d",
		c.baseURL, cardsPerBattle, rand.IntN(maxRandomPage)+1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pair, fmt.Errorf("error building card request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pair, fmt.Errorf("card request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return pair, fmt.Errorf("card API returned %s", resp.Status)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pair, fmt.Errorf("error decoding card response: %v", err)
	}

	if len(envelope.Data) < cardsPerBattle {
		return pair, fmt.Errorf("card API returned %d cards, need %d",
			len(envelope.Data), cardsPerBattle)
	}

	for i := range pair {
		pair[i] = card.Normalize(envelope.Data[i])
	}

	c.logger.Debug("fetched card pair from primary API",
		"first", pair[0].Name, "second", pair[1].Name)

	return pair, nil
}
