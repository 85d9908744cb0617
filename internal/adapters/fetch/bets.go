package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/pkg/logger"
)

// BetsClient fetches upcoming tennis events from the prematch feed.
type BetsClient struct {
	baseURL string
	token   string
	cfg     clientConfig
	logger  logger.Logger
}

// NewBetsClient creates a prematch feed client.
func NewBetsClient(baseURL, token string, opts ...Option) *BetsClient {
	return &BetsClient{
		baseURL: baseURL,
		token:   token,
		cfg:     newClientConfig(opts...),
		logger:  logger.Get().Named("fetch.prematch"),
	}
}

// betsEnvelope mirrors the provider's response wrapper.
type betsEnvelope struct {
	Success int               `json:"success"`
	Results []json.RawMessage `json:"results"`
}

// betsRow mirrors the fields the adapter reads from one result row.
// The full row is also decoded into the event's opaque payload.
type betsRow struct {
	ID   string `json:"id"`
	Home struct {
		Name string `json:"name"`
	} `json:"home"`
	Away struct {
		Name string `json:"name"`
	} `json:"away"`
	League struct {
		Name string `json:"name"`
	} `json:"league"`
	Time       string `json:"time"`        // unix seconds, as a string
	TimeStatus string `json:"time_status"` // provider status code
	FixtureID  string `json:"bet365_id"`
}

// FetchPrematch fetches one page of upcoming events and adapts each
// row. Rows missing a native id are dropped (they cannot participate
// in any tier's bookkeeping); all other anomalies only blank the
// affected field so the event degrades rather than disappears.
func (c *BetsClient) FetchPrematch(ctx context.Context) ([]model.PrematchEvent, error) {
	if err := c.cfg.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/v3/events/upcoming?sport_id=13&token=%s", c.baseURL, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prematch fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var envelope betsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	events := make([]model.PrematchEvent, 0, len(envelope.Results))
	for _, raw := range envelope.Results {
		event, ok := c.adaptRow(ctx, raw)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (c *BetsClient) adaptRow(ctx context.Context, raw json.RawMessage) (model.PrematchEvent, bool) {
	var row betsRow
	if err := json.Unmarshal(raw, &row); err != nil {
		c.logger.Warn(ctx, "dropping unparseable prematch row", logger.Error(err))
		return model.PrematchEvent{}, false
	}
	if row.ID == "" {
		c.logger.Warn(ctx, "dropping prematch row without id")
		return model.PrematchEvent{}, false
	}

	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	return model.PrematchEvent{
		ID:        row.ID,
		Home:      row.Home.Name,
		Away:      row.Away.Name,
		League:    row.League.Name,
		StartTime: parseUnixString(row.Time),
		Status:    row.TimeStatus,
		FixtureID: row.FixtureID,
		Raw:       payload,
	}, true
}

// parseUnixString converts a provider unix-seconds string to a time.
// A malformed value yields the zero time; the correlation engine
// treats that as "timing unknown" rather than an error.
func parseUnixString(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
