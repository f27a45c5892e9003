package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"crossmarket/internal/domain"
)

// buildStore creates a throwaway SQLite database from the given statements
// and opens it read-only.
func buildStore(t *testing.T, stmts []string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "crossmarket.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec fixture statement %q: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture db: %v", err)
	}

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func schemaStatements() []string {
	return []string{
		`CREATE TABLE cryptocurrencies (
			id TEXT PRIMARY KEY, symbol TEXT, name TEXT,
			current_price REAL, market_cap REAL, market_cap_rank INTEGER,
			total_volume REAL, circulating_supply REAL, total_supply REAL,
			ath REAL, atl REAL, last_updated TEXT)`,
		`CREATE TABLE crypto_prices (coin_id TEXT, date TIMESTAMP, price_usd REAL)`,
		`CREATE TABLE oil_prices (date TIMESTAMP, price REAL)`,
		`CREATE TABLE stock_prices (ticker TEXT, date TIMESTAMP,
			open REAL, high REAL, low REAL, close REAL, volume INTEGER)`,
	}
}

// newTestStore builds the standard fixture used across the store tests.
// Some date cells deliberately carry a midnight time suffix to prove the
// date() wrapping normalizes them.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	stmts := append(schemaStatements(),
		`INSERT INTO cryptocurrencies VALUES
			('bitcoin', 'btc', 'Bitcoin', 65000, 1280000000000, 1, 35e9, 19.7e6, 21e6, 73750, 67.81, '2025-01-03'),
			('ethereum', 'eth', 'Ethereum', 3500, 420000000000, 2, 18e9, 120e6, 0, 4878, 0.43, '2025-01-03'),
			('tether', 'usdt', 'Tether', 1.0, 110000000000, 3, 50e9, 110e9, 0, 1.32, 0.57, '2025-01-03'),
			('solana', 'sol', 'Solana', 150, 70000000000, 5, 3e9, 467e6, 0, 260, 0.5, '2025-01-03')`,
		`INSERT INTO crypto_prices VALUES
			('bitcoin', '2025-01-01 00:00:00', 100),
			('bitcoin', '2025-01-03 00:00:00', 300),
			('ethereum', '2025-01-01', 10),
			('ethereum', '2025-01-02', 12),
			('ethereum', '2025-01-03', 11)`,
		`INSERT INTO oil_prices VALUES
			('2025-01-01', 50),
			('2025-01-02 00:00:00', 60),
			('2025-01-03', 70)`,
		`INSERT INTO stock_prices VALUES
			('^GSPC', '2025-01-01', 5000, 5050, 4990, 5020, 2500000),
			('^GSPC', '2025-01-02 00:00:00', 5020, 5080, 5010, 5060, 2600000),
			('^GSPC', '2025-01-03', 5060, 5100, 5040, 5090, 2400000),
			('^NSEI', '2025-01-02', 23800, 23950, 23700, 23900, 310000),
			('^NSEI', '2025-01-05', 23900, 24100, 23850, 24050, 295000)`,
	)
	return buildStore(t, stmts)
}

func TestLocateMissingListsCheckedPaths(t *testing.T) {
	configured := filepath.Join(t.TempDir(), "absent.db")

	_, err := Locate(configured)
	if err == nil {
		t.Fatal("Locate should fail when no candidate exists")
	}

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Locate error = %T, want *domain.NotFoundError", err)
	}
	if !strings.Contains(err.Error(), configured) {
		t.Errorf("error %q should list the checked absolute path %q", err, configured)
	}
}

func TestLocateFindsConfiguredPath(t *testing.T) {
	st := newTestStore(t)

	got, err := Locate(st.Path())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != st.Path() {
		t.Errorf("Locate = %q, want %q", got, st.Path())
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open should fail for a missing file")
	}

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Open error = %T, want *domain.NotFoundError", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should contain the resolved path %q", err, path)
	}
}

func TestCoinsOrderedByMarketCap(t *testing.T) {
	st := newTestStore(t)

	coins, err := st.Coins(context.Background())
	if err != nil {
		t.Fatalf("Coins: %v", err)
	}
	if len(coins) != 4 {
		t.Fatalf("Coins returned %d rows, want 4", len(coins))
	}

	wantOrder := []string{"bitcoin", "ethereum", "tether", "solana"}
	for i, want := range wantOrder {
		if coins[i].ID != want {
			t.Errorf("coins[%d].ID = %q, want %q", i, coins[i].ID, want)
		}
	}
	if coins[0].Symbol != "btc" || coins[0].Name != "Bitcoin" {
		t.Errorf("bitcoin row = %+v, want symbol btc name Bitcoin", coins[0])
	}
	if coins[0].CurrentPrice != 65000 {
		t.Errorf("bitcoin CurrentPrice = %v, want 65000", coins[0].CurrentPrice)
	}
}

func TestCoinLookup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	c, err := st.Coin(ctx, "Ethereum")
	if err != nil {
		t.Fatalf("Coin: %v", err)
	}
	if c.ID != "ethereum" || c.ATH != 4878 {
		t.Errorf("Coin = %+v, want ethereum with ATH 4878", c)
	}

	_, err = st.Coin(ctx, "dogecoin")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Coin(dogecoin) error = %v, want NotFoundError", err)
	}
}

func TestCryptoPricesRangeAndNormalizedDates(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	all, err := st.CryptoPrices(ctx, "bitcoin", domain.DateRange{})
	if err != nil {
		t.Fatalf("CryptoPrices: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("CryptoPrices returned %d points, want 2", len(all))
	}
	// Stored with a time suffix, returned as a plain calendar date.
	if all[0].Date != "2025-01-01" || all[1].Date != "2025-01-03" {
		t.Errorf("dates = %q, %q, want 2025-01-01, 2025-01-03", all[0].Date, all[1].Date)
	}
	if all[0].Value != 100 || all[1].Value != 300 {
		t.Errorf("values = %v, %v, want 100, 300", all[0].Value, all[1].Value)
	}

	bounded, err := st.CryptoPrices(ctx, "bitcoin", domain.DateRange{Start: "2025-01-01", End: "2025-01-02"})
	if err != nil {
		t.Fatalf("CryptoPrices bounded: %v", err)
	}
	if len(bounded) != 1 || bounded[0].Date != "2025-01-01" {
		t.Errorf("bounded = %+v, want just 2025-01-01", bounded)
	}
}

func TestOilPricesAscending(t *testing.T) {
	st := newTestStore(t)

	points, err := st.OilPrices(context.Background(), domain.DateRange{})
	if err != nil {
		t.Fatalf("OilPrices: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("OilPrices returned %d points, want 3", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i-1].Date >= points[i].Date {
			t.Errorf("dates out of order: %q before %q", points[i-1].Date, points[i].Date)
		}
	}
	if points[1].Value != 60 {
		t.Errorf("second oil price = %v, want 60", points[1].Value)
	}
}

func TestStockBarsAndCloses(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	bars, err := st.StockBars(ctx, domain.TickerSP500, domain.DateRange{})
	if err != nil {
		t.Fatalf("StockBars: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("StockBars returned %d bars, want 3", len(bars))
	}
	if bars[1].Date != "2025-01-02" || bars[1].Close != 5060 {
		t.Errorf("bars[1] = %+v, want 2025-01-02 close 5060", bars[1])
	}
	if bars[1].Volume != 2600000 {
		t.Errorf("bars[1].Volume = %v, want 2600000", bars[1].Volume)
	}

	closes, err := st.StockCloses(ctx, domain.TickerNifty, domain.DateRange{End: "2025-01-03"})
	if err != nil {
		t.Fatalf("StockCloses: %v", err)
	}
	if len(closes) != 1 || closes[0].Value != 23900 {
		t.Errorf("closes = %+v, want single 23900", closes)
	}
}

func TestDateSpanAcrossTables(t *testing.T) {
	st := newTestStore(t)

	span, err := st.DateSpan(context.Background())
	if err != nil {
		t.Fatalf("DateSpan: %v", err)
	}
	// Min comes from crypto and oil, max from the late ^NSEI stock row.
	if span.Start != "2025-01-01" {
		t.Errorf("span.Start = %q, want 2025-01-01", span.Start)
	}
	if span.End != "2025-01-05" {
		t.Errorf("span.End = %q, want 2025-01-05", span.End)
	}
}

func TestDateSpanEmptyTables(t *testing.T) {
	st := buildStore(t, schemaStatements())

	_, err := st.DateSpan(context.Background())
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("DateSpan on empty tables = %v, want NotFoundError", err)
	}
}

func TestBitcoinIDDirectMatch(t *testing.T) {
	st := newTestStore(t)

	id, err := st.BitcoinID(context.Background())
	if err != nil {
		t.Fatalf("BitcoinID: %v", err)
	}
	if id != "bitcoin" {
		t.Errorf("BitcoinID = %q, want %q", id, "bitcoin")
	}
}

func TestBitcoinIDFallbackToHighestAverage(t *testing.T) {
	stmts := append(schemaStatements(),
		`INSERT INTO crypto_prices VALUES
			('goldcoin', '2025-01-01', 90000),
			('goldcoin', '2025-01-02', 95000),
			('smallcoin', '2025-01-01', 2),
			('smallcoin', '2025-01-02', 3)`,
	)
	st := buildStore(t, stmts)

	id, err := st.BitcoinID(context.Background())
	if err != nil {
		t.Fatalf("BitcoinID: %v", err)
	}
	if id != "goldcoin" {
		t.Errorf("BitcoinID fallback = %q, want coin with highest average price %q", id, "goldcoin")
	}
}

func TestCoinDisplayNames(t *testing.T) {
	st := newTestStore(t)

	names, err := st.CoinDisplayNames(context.Background(), []string{"bitcoin", "ethereum", "unknowncoin"})
	if err != nil {
		t.Fatalf("CoinDisplayNames: %v", err)
	}
	if got, want := names["bitcoin"], "Bitcoin (BTC)"; got != want {
		t.Errorf("names[bitcoin] = %q, want %q", got, want)
	}
	if got, want := names["ethereum"], "Ethereum (ETH)"; got != want {
		t.Errorf("names[ethereum] = %q, want %q", got, want)
	}
	if _, ok := names["unknowncoin"]; ok {
		t.Error("unknowncoin should be absent from the name map")
	}
}
