package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/pkg/logger"
)

// RapidClient fetches in-play tennis events from the live odds feed.
type RapidClient struct {
	baseURL string
	apiKey  string
	cfg     clientConfig
	logger  logger.Logger
}

// NewRapidClient creates an in-play feed client.
func NewRapidClient(baseURL, apiKey string, opts ...Option) *RapidClient {
	return &RapidClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		cfg:     newClientConfig(opts...),
		logger:  logger.Get().Named("fetch.live"),
	}
}

// rapidEnvelope mirrors the provider's response wrapper.
type rapidEnvelope struct {
	Matches []json.RawMessage `json:"matches"`
}

// rapidRow mirrors the fields the adapter reads from one match row.
type rapidRow struct {
	MarketID  string `json:"marketFI"`
	Team1     string `json:"team1"`
	Team2     string `json:"team2"`
	FixtureID string `json:"eventFI"`
	StartUnix int64  `json:"startTime"`
}

// FetchLive fetches the current in-play matches and adapts each row.
// Rows without a market id are dropped; everything else degrades
// field-by-field.
func (c *RapidClient) FetchLive(ctx context.Context) ([]model.LiveEvent, error) {
	if err := c.cfg.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tennis/inplay", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)

	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("live fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var envelope rapidEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	events := make([]model.LiveEvent, 0, len(envelope.Matches))
	for _, raw := range envelope.Matches {
		event, ok := c.adaptRow(ctx, raw)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (c *RapidClient) adaptRow(ctx context.Context, raw json.RawMessage) (model.LiveEvent, bool) {
	var row rapidRow
	if err := json.Unmarshal(raw, &row); err != nil {
		c.logger.Warn(ctx, "dropping unparseable live row", logger.Error(err))
		return model.LiveEvent{}, false
	}
	if row.MarketID == "" {
		c.logger.Warn(ctx, "dropping live row without market id")
		return model.LiveEvent{}, false
	}

	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	event := model.LiveEvent{
		MarketID:  row.MarketID,
		Home:      row.Team1,
		Away:      row.Team2,
		FixtureID: row.FixtureID,
		Raw:       payload,
	}
	if row.StartUnix > 0 {
		event.StartTime = time.Unix(row.StartUnix, 0).UTC()
	}
	return event, true
}
