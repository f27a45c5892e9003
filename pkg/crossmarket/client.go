// Package crossmarket provides a Go client for the crossmarket-server API.
package crossmarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response from the server, with the error message
// the server put in the body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

// Health reports server liveness and what it is serving.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Queries  int    `json:"queries"`
}

// Span is the observation range of the database.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Metric is one headline average on the overview page.
type Metric struct {
	Asset   string  `json:"asset"`
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	Display string  `json:"display"`
	Count   int     `json:"count"`
}

// Series is one rebased line of the overview chart. Values align with the
// overview's Dates axis; nil marks a missing observation.
type Series struct {
	Asset  string     `json:"asset"`
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// SnapshotRow is one row of raw prices, latest date first.
type SnapshotRow struct {
	Date    string   `json:"date"`
	Bitcoin *float64 `json:"bitcoin"`
	Oil     *float64 `json:"oil"`
	SP500   *float64 `json:"sp500"`
	Nifty   *float64 `json:"nifty"`
}

// Overview is the market overview payload.
type Overview struct {
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Metrics  []Metric      `json:"metrics"`
	Dates    []string      `json:"dates"`
	Series   []Series      `json:"series"`
	Snapshot []SnapshotRow `json:"snapshot"`
	Excluded []string      `json:"excluded"`
	Warning  string        `json:"warning"`
}

// Query is one catalog entry.
type Query struct {
	Label string `json:"label"`
	SQL   string `json:"sql"`
	Chart string `json:"chart"`
}

// Category groups catalog queries.
type Category struct {
	Name    string  `json:"name"`
	Queries []Query `json:"queries"`
}

// Catalog is the full query catalog.
type Catalog struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

// ChartSpec is the server's drawing suggestion for a result.
type ChartSpec struct {
	Type   string `json:"type"`
	X      string `json:"x"`
	Y      string `json:"y"`
	Series string `json:"series"`
}

// Result is an executed catalog query with its materialized rows.
type Result struct {
	Category string     `json:"category"`
	Label    string     `json:"label"`
	SQL      string     `json:"sql"`
	Columns  []string   `json:"columns"`
	Kinds    []string   `json:"kinds"`
	Rows     [][]any    `json:"rows"`
	RowCount int        `json:"rowCount"`
	Chart    *ChartSpec `json:"chart"`
}

// Coin is one entry of the top-coins strip.
type Coin struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	CurrentPrice  float64 `json:"currentPrice"`
	PriceDisplay  string  `json:"priceDisplay"`
	MarketCap     float64 `json:"marketCap"`
	MarketCapRank int64   `json:"marketCapRank"`
}

// TopCoins lists the featured coins, best first.
type TopCoins struct {
	Coins   []Coin `json:"coins"`
	Warning string `json:"warning"`
}

// PricePoint is one daily observation.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// CoinStats summarizes a coin's prices over the selected range.
type CoinStats struct {
	Current        float64 `json:"current"`
	CurrentDisplay string  `json:"currentDisplay"`
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
	Average        float64 `json:"average"`
	AverageDisplay string  `json:"averageDisplay"`
	Count          int     `json:"count"`
}

// CoinMeta carries the metadata-table extremes for a coin.
type CoinMeta struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	ATH           float64 `json:"ath"`
	ATL           float64 `json:"atl"`
	MarketCap     float64 `json:"marketCap"`
	MarketCapRank int64   `json:"marketCapRank"`
}

// CoinHistory is the coin-history payload.
type CoinHistory struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Start   string       `json:"start"`
	End     string       `json:"end"`
	Series  []PricePoint `json:"series"`
	Stats   CoinStats    `json:"stats"`
	Meta    *CoinMeta    `json:"meta"`
	Warning string       `json:"warning"`
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// Client talks to a crossmarket-server instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, for example
// "http://127.0.0.1:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Health checks the server and reports what it serves.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Range returns the observation span of the database.
func (c *Client) Range(ctx context.Context) (*Span, error) {
	var out Span
	if err := c.get(ctx, "/api/range", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Overview fetches the market overview. Empty bounds mean the full span.
func (c *Client) Overview(ctx context.Context, start, end string) (*Overview, error) {
	var out Overview
	if err := c.get(ctx, "/api/overview", rangeValues(start, end), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportOverview downloads the overview in the given format, "parquet"
// or "csv".
func (c *Client) ExportOverview(ctx context.Context, start, end, format string) ([]byte, error) {
	q := rangeValues(start, end)
	q.Set("format", format)
	return c.getRaw(ctx, "/api/overview/export", q)
}

// Catalog lists every built-in query by category.
func (c *Client) Catalog(ctx context.Context) (*Catalog, error) {
	var out Catalog
	if err := c.get(ctx, "/api/catalog", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Query fetches a single catalog entry without executing it.
func (c *Client) Query(ctx context.Context, category, label string) (*Query, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("label", label)
	var out Query
	if err := c.get(ctx, "/api/catalog/query", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Run executes a catalog query and returns its full result.
func (c *Client) Run(ctx context.Context, category, label string) (*Result, error) {
	body := map[string]string{"category": category, "label": label}
	var out Result
	if err := c.post(ctx, "/api/catalog/run", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportResult downloads a query result in the given format, "csv" or
// "xlsx".
func (c *Client) ExportResult(ctx context.Context, category, label, format string) ([]byte, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("label", label)
	q.Set("format", format)
	return c.getRaw(ctx, "/api/catalog/export", q)
}

// TopCoins fetches the featured coins.
func (c *Client) TopCoins(ctx context.Context) (*TopCoins, error) {
	var out TopCoins
	if err := c.get(ctx, "/api/crypto/top", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoinHistory fetches one coin's daily prices and summary stats. Empty
// bounds mean all available history.
func (c *Client) CoinHistory(ctx context.Context, id, start, end string) (*CoinHistory, error) {
	var out CoinHistory
	path := "/api/crypto/" + url.PathEscape(id) + "/history"
	if err := c.get(ctx, path, rangeValues(start, end), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func rangeValues(start, end string) url.Values {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, into any) error {
	body, err := c.getRaw(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body, into any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

// errorMessage pulls the server's error field out of a failure body,
// falling back to the raw body.
func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "request failed"
	}
	return msg
}
