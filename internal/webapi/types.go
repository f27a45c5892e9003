package webapi

import (
	"github.com/dustin/go-humanize"

	"crossmarket/internal/analysis"
	"crossmarket/internal/catalog"
	"crossmarket/internal/domain"
	"crossmarket/internal/store"
)

// ---------------------------------------------------------------------------
// Overview page
// ---------------------------------------------------------------------------

// MarketMetric is one headline number on the overview page: the average of
// an asset's raw prices inside the selected range.
type MarketMetric struct {
	Asset   string  `json:"asset"`
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	Display string  `json:"display"`
	Count   int     `json:"count"`
}

// SeriesJSON is one rebased line on the overview chart. Values align with
// the response's Dates axis; null marks a date with no observation.
type SeriesJSON struct {
	Asset  string     `json:"asset"`
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// SnapshotRow is one row of the raw-price table, latest date first.
type SnapshotRow struct {
	Date    string   `json:"date"`
	Bitcoin *float64 `json:"bitcoin"`
	Oil     *float64 `json:"oil"`
	SP500   *float64 `json:"sp500"`
	Nifty   *float64 `json:"nifty"`
}

// OverviewResponse is the full payload of the overview page.
type OverviewResponse struct {
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Metrics  []MarketMetric `json:"metrics"`
	Dates    []string       `json:"dates"`
	Series   []SeriesJSON   `json:"series"`
	Snapshot []SnapshotRow  `json:"snapshot"`
	Excluded []string       `json:"excluded,omitempty"`
	Warning  string         `json:"warning,omitempty"`
}

// RangeResponse carries the full observation span of the database.
type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ---------------------------------------------------------------------------
// Query runner page
// ---------------------------------------------------------------------------

// QueryJSON is one catalog entry as presented to the frontend.
type QueryJSON struct {
	Label string `json:"label"`
	SQL   string `json:"sql"`
	Chart string `json:"chart"`
}

// CategoryJSON is one catalog category with its queries in order.
type CategoryJSON struct {
	Name    string      `json:"name"`
	Queries []QueryJSON `json:"queries"`
}

// CatalogResponse lists the whole catalog.
type CatalogResponse struct {
	Categories []CategoryJSON `json:"categories"`
	Total      int            `json:"total"`
}

// RunRequest selects a catalog query by its stable identifier.
type RunRequest struct {
	Category string `json:"category" binding:"required"`
	Label    string `json:"label" binding:"required"`
}

// ChartSpec tells the frontend how to draw a result: which figure type,
// which columns feed the axes, and an optional series-grouping column.
type ChartSpec struct {
	Type   string `json:"type"`
	X      string `json:"x"`
	Y      string `json:"y"`
	Series string `json:"series,omitempty"`
}

// RunResponse carries the executed query together with its materialized
// result and an optional chart suggestion.
type RunResponse struct {
	Category string       `json:"category"`
	Label    string       `json:"label"`
	SQL      string       `json:"sql"`
	Columns  []string     `json:"columns"`
	Kinds    []store.Kind `json:"kinds"`
	Rows     [][]any      `json:"rows"`
	RowCount int          `json:"rowCount"`
	Chart    *ChartSpec   `json:"chart,omitempty"`
}

// ---------------------------------------------------------------------------
// Crypto page
// ---------------------------------------------------------------------------

// TopCoin is one entry of the top-coins strip.
type TopCoin struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	CurrentPrice  float64 `json:"currentPrice"`
	PriceDisplay  string  `json:"priceDisplay"`
	MarketCap     float64 `json:"marketCap"`
	MarketCapRank int64   `json:"marketCapRank"`
}

// TopCoinsResponse lists the selected coins, best first. Warning is set
// when fewer coins exist than the page asks for.
type TopCoinsResponse struct {
	Coins   []TopCoin `json:"coins"`
	Warning string    `json:"warning,omitempty"`
}

// CoinStats summarizes one coin's prices over the selected range.
type CoinStats struct {
	Current        float64 `json:"current"`
	CurrentDisplay string  `json:"currentDisplay"`
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
	Average        float64 `json:"average"`
	AverageDisplay string  `json:"averageDisplay"`
	Count          int     `json:"count"`
}

// CoinMeta carries the metadata-table extremes for a coin, when a
// metadata row exists.
type CoinMeta struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	ATH           float64 `json:"ath"`
	ATL           float64 `json:"atl"`
	MarketCap     float64 `json:"marketCap"`
	MarketCapRank int64   `json:"marketCapRank"`
}

// CoinHistoryResponse is the full payload of the coin-history view.
type CoinHistoryResponse struct {
	ID      string              `json:"id"`
	Label   string              `json:"label"`
	Start   string              `json:"start"`
	End     string              `json:"end"`
	Series  []domain.PricePoint `json:"series"`
	Stats   CoinStats           `json:"stats"`
	Meta    *CoinMeta           `json:"meta,omitempty"`
	Warning string              `json:"warning,omitempty"`
}

// ---------------------------------------------------------------------------
// Converters
// ---------------------------------------------------------------------------

func toQueryJSON(q catalog.Query) QueryJSON {
	return QueryJSON{Label: q.Label, SQL: q.SQL, Chart: q.Chart}
}

func toCoinStats(s analysis.SeriesStats) CoinStats {
	return CoinStats{
		Current:        s.Current,
		CurrentDisplay: money(s.Current),
		High:           s.High,
		Low:            s.Low,
		Average:        s.Average,
		AverageDisplay: money(s.Average),
		Count:          s.Count,
	}
}

func toCoinMeta(c *domain.Coin) *CoinMeta {
	if c == nil {
		return nil
	}
	return &CoinMeta{
		Name:          c.Name,
		Symbol:        c.Symbol,
		ATH:           c.ATH,
		ATL:           c.ATL,
		MarketCap:     c.MarketCap,
		MarketCapRank: c.MarketCapRank,
	}
}

// money renders a price for display with thousands separators and two
// decimals.
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
