package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crossmarket/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ MarketReader = (*Store)(nil)
var _ QueryRunner = (*Store)(nil)

// Store wraps the single read-only database connection shared by every
// page controller.
type Store struct {
	db   *sql.DB
	path string
}

// Locate resolves the database file. The configured path is tried first,
// then the file name is looked for next to the binary, under a data
// subdirectory, and in the parent directory. When nothing exists the
// returned NotFoundError lists every absolute path that was checked, so
// the user can see exactly where the tool looked.
func Locate(configured string) (string, error) {
	var candidates []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" {
			return
		}
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			return
		}
		seen[abs] = true
		candidates = append(candidates, abs)
	}

	add(configured)
	if base := filepath.Base(configured); base != "." && base != string(filepath.Separator) {
		if exe, err := os.Executable(); err == nil {
			add(filepath.Join(filepath.Dir(exe), base))
		}
		add(filepath.Join("data", base))
		add(filepath.Join("..", base))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &domain.NotFoundError{Kind: "database file", Name: strings.Join(candidates, ", ")}
}

// Open opens the SQLite database at path in read-only mode. The file must
// already exist: the dashboard never creates or writes the database.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &domain.NotFoundError{Kind: "database file", Name: abs}
	}

	db, err := sql.Open("sqlite", "file:"+abs+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{db: db, path: abs}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the absolute path of the opened database file.
func (s *Store) Path() string {
	return s.path
}

// rangeClause appends inclusive date bounds for the given column expression
// and collects the matching query arguments.
func rangeClause(col string, r domain.DateRange, args *[]any) string {
	var b strings.Builder
	if r.Start != "" {
		fmt.Fprintf(&b, " AND %s >= ?", col)
		*args = append(*args, r.Start)
	}
	if r.End != "" {
		fmt.Fprintf(&b, " AND %s <= ?", col)
		*args = append(*args, r.End)
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// MarketReader implementation
// ---------------------------------------------------------------------------

// Coins returns every row of the cryptocurrencies metadata table, ordered
// by descending market cap with id as tiebreak so callers see a stable
// order.
func (s *Store) Coins(ctx context.Context) ([]domain.Coin, error) {
	const q = `
SELECT id, COALESCE(symbol, ''), COALESCE(name, ''),
       COALESCE(current_price, 0), COALESCE(market_cap, 0),
       COALESCE(market_cap_rank, 0), COALESCE(total_volume, 0),
       COALESCE(circulating_supply, 0), COALESCE(total_supply, 0),
       COALESCE(ath, 0), COALESCE(atl, 0), COALESCE(last_updated, '')
FROM cryptocurrencies
ORDER BY market_cap DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	defer rows.Close()

	var coins []domain.Coin
	for rows.Next() {
		var c domain.Coin
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Name, &c.CurrentPrice, &c.MarketCap,
			&c.MarketCapRank, &c.TotalVolume, &c.CirculatingSupply, &c.TotalSupply,
			&c.ATH, &c.ATL, &c.LastUpdated); err != nil {
			return nil, &domain.QueryError{SQL: q, Err: err}
		}
		coins = append(coins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	return coins, nil
}

// Coin retrieves the metadata row for a single coin id.
func (s *Store) Coin(ctx context.Context, id string) (*domain.Coin, error) {
	const q = `
SELECT id, COALESCE(symbol, ''), COALESCE(name, ''),
       COALESCE(current_price, 0), COALESCE(market_cap, 0),
       COALESCE(market_cap_rank, 0), COALESCE(total_volume, 0),
       COALESCE(circulating_supply, 0), COALESCE(total_supply, 0),
       COALESCE(ath, 0), COALESCE(atl, 0), COALESCE(last_updated, '')
FROM cryptocurrencies
WHERE LOWER(id) = LOWER(?)`

	var c domain.Coin
	err := s.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Symbol, &c.Name,
		&c.CurrentPrice, &c.MarketCap, &c.MarketCapRank, &c.TotalVolume,
		&c.CirculatingSupply, &c.TotalSupply, &c.ATH, &c.ATL, &c.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "coin", Name: id}
	}
	if err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	return &c, nil
}

// CryptoPrices returns the daily price series for one coin, date ascending.
// Rows with a NULL price are skipped: a missing price is a gap, never zero.
func (s *Store) CryptoPrices(ctx context.Context, coinID string, r domain.DateRange) ([]domain.PricePoint, error) {
	q := `
SELECT date(date) AS d, price_usd
FROM crypto_prices
WHERE LOWER(coin_id) = LOWER(?)`
	args := []any{coinID}
	q += rangeClause("date(date)", r, &args)
	q += " ORDER BY d ASC"

	return s.readSeries(ctx, q, args)
}

// OilPrices returns the daily oil price series, date ascending.
func (s *Store) OilPrices(ctx context.Context, r domain.DateRange) ([]domain.PricePoint, error) {
	q := `
SELECT date(date) AS d, price
FROM oil_prices
WHERE 1=1`
	var args []any
	q += rangeClause("date(date)", r, &args)
	q += " ORDER BY d ASC"

	return s.readSeries(ctx, q, args)
}

// StockBars returns the daily OHLCV bars for one ticker, date ascending.
func (s *Store) StockBars(ctx context.Context, ticker string, r domain.DateRange) ([]domain.StockBar, error) {
	q := `
SELECT ticker, date(date) AS d,
       COALESCE(open, 0), COALESCE(high, 0), COALESCE(low, 0),
       COALESCE(close, 0), COALESCE(volume, 0)
FROM stock_prices
WHERE ticker = ?`
	args := []any{ticker}
	q += rangeClause("date(date)", r, &args)
	q += " ORDER BY d ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	defer rows.Close()

	var bars []domain.StockBar
	for rows.Next() {
		var b domain.StockBar
		if err := rows.Scan(&b.Ticker, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, &domain.QueryError{SQL: q, Err: err}
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	return bars, nil
}

// StockCloses returns the closing-price series for one ticker, date
// ascending.
func (s *Store) StockCloses(ctx context.Context, ticker string, r domain.DateRange) ([]domain.PricePoint, error) {
	q := `
SELECT date(date) AS d, close
FROM stock_prices
WHERE ticker = ?`
	args := []any{ticker}
	q += rangeClause("date(date)", r, &args)
	q += " ORDER BY d ASC"

	return s.readSeries(ctx, q, args)
}

// readSeries scans (date, value) rows into PricePoints, skipping NULL
// values.
func (s *Store) readSeries(ctx context.Context, q string, args []any) ([]domain.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	defer rows.Close()

	var points []domain.PricePoint
	for rows.Next() {
		var date string
		var value sql.NullFloat64
		if err := rows.Scan(&date, &value); err != nil {
			return nil, &domain.QueryError{SQL: q, Err: err}
		}
		if !value.Valid {
			continue
		}
		points = append(points, domain.PricePoint{Date: date, Value: value.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	return points, nil
}

// DateSpan returns the earliest and latest observation dates across the
// crypto, oil, and stock tables combined.
func (s *Store) DateSpan(ctx context.Context) (domain.DateRange, error) {
	const q = `
SELECT MIN(mn), MAX(mx) FROM (
    SELECT MIN(date(date)) AS mn, MAX(date(date)) AS mx FROM crypto_prices
    UNION ALL
    SELECT MIN(date(date)), MAX(date(date)) FROM oil_prices
    UNION ALL
    SELECT MIN(date(date)), MAX(date(date)) FROM stock_prices
)`

	var mn, mx sql.NullString
	if err := s.db.QueryRowContext(ctx, q).Scan(&mn, &mx); err != nil {
		return domain.DateRange{}, &domain.QueryError{SQL: q, Err: err}
	}
	if !mn.Valid || !mx.Valid {
		return domain.DateRange{}, &domain.NotFoundError{Kind: "date range", Name: "no dated rows in any price table"}
	}
	return domain.DateRange{Start: mn.String, End: mx.String}, nil
}

// BitcoinID resolves the coin id used for Bitcoin in the price table. When
// no id matches by name it falls back to the coin with the highest
// all-time average price, which in this dataset is Bitcoin.
func (s *Store) BitcoinID(ctx context.Context) (string, error) {
	const q = `
SELECT DISTINCT coin_id FROM crypto_prices
WHERE LOWER(coin_id) LIKE '%bitcoin%' OR LOWER(coin_id) LIKE '%btc%'
LIMIT 1`

	var id string
	err := s.db.QueryRowContext(ctx, q).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", &domain.QueryError{SQL: q, Err: err}
	}

	const fallback = `
SELECT coin_id FROM crypto_prices
GROUP BY coin_id
ORDER BY AVG(price_usd) DESC
LIMIT 1`

	err = s.db.QueryRowContext(ctx, fallback).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &domain.NotFoundError{Kind: "coin", Name: "bitcoin (no crypto price rows at all)"}
	}
	if err != nil {
		return "", &domain.QueryError{SQL: fallback, Err: err}
	}
	return id, nil
}

// CoinDisplayNames maps coin ids to "Name (SYMBOL)" labels from the
// metadata table. Ids without a metadata row are left out; callers fall
// back to the raw id.
func (s *Store) CoinDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	q := fmt.Sprintf(`
SELECT LOWER(id), COALESCE(name, ''), COALESCE(symbol, '')
FROM cryptocurrencies
WHERE LOWER(id) IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = strings.ToLower(id)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, symbol string
		if err := rows.Scan(&id, &name, &symbol); err != nil {
			return nil, &domain.QueryError{SQL: q, Err: err}
		}
		switch {
		case name != "" && symbol != "":
			names[id] = fmt.Sprintf("%s (%s)", name, strings.ToUpper(symbol))
		case name != "":
			names[id] = name
		default:
			names[id] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.QueryError{SQL: q, Err: err}
	}
	return names, nil
}
