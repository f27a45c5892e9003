// Package store provides read-only access to the cross-market SQLite
// database: typed readers for the market tables and a generic executor for
// catalog queries.
package store

import (
	"context"

	"crossmarket/internal/domain"
)

// MarketReader provides typed read access to the four market tables.
type MarketReader interface {
	// Coins returns every row of the cryptocurrencies metadata table,
	// ordered by descending market cap with id as tiebreak.
	Coins(ctx context.Context) ([]domain.Coin, error)

	// Coin retrieves the metadata row for a single coin id. Returns
	// NotFoundError when the id has no metadata row.
	Coin(ctx context.Context, id string) (*domain.Coin, error)

	// CryptoPrices returns the daily price series for one coin inside the
	// range, ordered by date ascending.
	CryptoPrices(ctx context.Context, coinID string, r domain.DateRange) ([]domain.PricePoint, error)

	// OilPrices returns the daily oil price series inside the range,
	// ordered by date ascending.
	OilPrices(ctx context.Context, r domain.DateRange) ([]domain.PricePoint, error)

	// StockBars returns the daily OHLCV bars for one ticker inside the
	// range, ordered by date ascending.
	StockBars(ctx context.Context, ticker string, r domain.DateRange) ([]domain.StockBar, error)

	// StockCloses returns just the closing-price series for one ticker,
	// ordered by date ascending.
	StockCloses(ctx context.Context, ticker string, r domain.DateRange) ([]domain.PricePoint, error)

	// DateSpan returns the earliest and latest observation dates across
	// the crypto, oil, and stock tables combined.
	DateSpan(ctx context.Context) (domain.DateRange, error)

	// BitcoinID resolves the coin id used for Bitcoin in the price table.
	BitcoinID(ctx context.Context) (string, error)

	// CoinDisplayNames maps coin ids to "Name (SYMBOL)" display labels.
	// Ids without a metadata row are absent from the result.
	CoinDisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

// QueryRunner executes ad-hoc read queries and materializes their results.
type QueryRunner interface {
	// RunQuery executes the query and returns every row. Failures from
	// the SQL engine come back as QueryError with the engine message
	// preserved.
	RunQuery(ctx context.Context, query string, args ...any) (*ResultSet, error)
}
