// Package domain defines the shared data types and the error taxonomy for
// the cross-market dashboard.
package domain

// Stock index tickers tracked in the stock_prices table.
const (
	TickerSP500  = "^GSPC"
	TickerNifty  = "^NSEI"
	TickerNasdaq = "^IXIC"
)

// DateLayout is the canonical calendar-date format used throughout the
// dashboard. Database date columns may carry a time suffix; queries wrap
// them in date() so values always compare as YYYY-MM-DD strings.
const DateLayout = "2006-01-02"

// Coin is one row of the cryptocurrencies metadata table.
type Coin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"currentPrice"`
	MarketCap         float64 `json:"marketCap"`
	MarketCapRank     int64   `json:"marketCapRank"`
	TotalVolume       float64 `json:"totalVolume"`
	CirculatingSupply float64 `json:"circulatingSupply"`
	TotalSupply       float64 `json:"totalSupply"`
	ATH               float64 `json:"ath"`
	ATL               float64 `json:"atl"`
	LastUpdated       string  `json:"lastUpdated"`
}

// PricePoint is a single dated observation for one asset. A date that does
// not appear in a series means no observation, never a zero price.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// StockBar is one row of the stock_prices table.
type StockBar struct {
	Ticker string  `json:"ticker"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// DateRange bounds a read by inclusive calendar dates. Empty bounds are
// open-ended.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}
