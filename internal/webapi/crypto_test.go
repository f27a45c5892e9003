package webapi

import (
	"net/http"
	"strings"
	"testing"
)

func TestTopCoins(t *testing.T) {
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/top")
	if w.Code != http.StatusOK {
		t.Fatalf("top coins status = %d, body %s", w.Code, w.Body.String())
	}

	var resp TopCoinsResponse
	decode(t, w, &resp)
	if resp.Warning != "" {
		t.Errorf("warning = %q, want none with four coins available", resp.Warning)
	}
	if len(resp.Coins) != 3 {
		t.Fatalf("coins = %d, want 3", len(resp.Coins))
	}

	// Ranked by current price, not market cap, so solana beats tether.
	wantIDs := []string{"bitcoin", "ethereum", "solana"}
	for i, want := range wantIDs {
		if resp.Coins[i].ID != want {
			t.Errorf("coins[%d].ID = %q, want %q", i, resp.Coins[i].ID, want)
		}
	}
	top := resp.Coins[0]
	if top.Label != "Bitcoin (BTC)" {
		t.Errorf("label = %q, want Bitcoin (BTC)", top.Label)
	}
	if top.CurrentPrice != 65000 || top.PriceDisplay != "65,000" {
		t.Errorf("price = %v / %q, want 65000 / 65,000", top.CurrentPrice, top.PriceDisplay)
	}
	if top.MarketCapRank != 1 {
		t.Errorf("rank = %d, want 1", top.MarketCapRank)
	}
}

func TestTopCoinsFewerThanThree(t *testing.T) {
	stmts := append(schemaStatements(),
		`INSERT INTO cryptocurrencies VALUES
			('bitcoin', 'btc', 'Bitcoin', 65000, 1280000000000, 1, 35e9, 19.7e6, 21e6, 73750, 67.81, '2025-01-03'),
			('ethereum', 'eth', 'Ethereum', 3500, 420000000000, 2, 18e9, 120e6, 0, 4878, 0.43, '2025-01-03')`,
	)
	s := newTestServer(t, stmts)

	w := get(t, s.Router(), "/api/crypto/top")
	if w.Code != http.StatusOK {
		t.Fatalf("top coins status = %d, want 200 with what exists", w.Code)
	}

	var resp TopCoinsResponse
	decode(t, w, &resp)
	if len(resp.Coins) != 2 {
		t.Errorf("coins = %d, want the 2 available", len(resp.Coins))
	}
	if !strings.Contains(resp.Warning, "want 3 rows, have 2") {
		t.Errorf("warning = %q, want the shortfall spelled out", resp.Warning)
	}
}

func TestTopCoinsEmptyTable(t *testing.T) {
	s := newTestServer(t, schemaStatements())

	w := get(t, s.Router(), "/api/crypto/top")
	if w.Code != http.StatusOK {
		t.Fatalf("top coins status = %d, want 200", w.Code)
	}

	var resp TopCoinsResponse
	decode(t, w, &resp)
	if len(resp.Coins) != 0 {
		t.Errorf("coins = %v, want none", resp.Coins)
	}
	if resp.Warning == "" {
		t.Error("empty metadata table should set a warning")
	}
}

func TestCoinHistory(t *testing.T) {
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/bitcoin/history")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d, body %s", w.Code, w.Body.String())
	}

	var resp CoinHistoryResponse
	decode(t, w, &resp)
	if resp.Label != "Bitcoin (BTC)" {
		t.Errorf("label = %q, want Bitcoin (BTC)", resp.Label)
	}
	if len(resp.Series) != 2 {
		t.Fatalf("series points = %d, want 2", len(resp.Series))
	}
	if resp.Series[0].Date != "2025-01-01" || resp.Series[0].Value != 100 {
		t.Errorf("series[0] = %+v, want 2025-01-01 at 100", resp.Series[0])
	}

	st := resp.Stats
	if st.Current != 300 || st.High != 300 || st.Low != 100 || st.Average != 200 || st.Count != 2 {
		t.Errorf("stats = %+v, want current 300 high 300 low 100 average 200 count 2", st)
	}
	if st.CurrentDisplay != "300" {
		t.Errorf("current display = %q, want 300", st.CurrentDisplay)
	}

	if resp.Meta == nil {
		t.Fatal("bitcoin has a metadata row, want meta populated")
	}
	if resp.Meta.ATH != 73750 || resp.Meta.ATL != 67.81 {
		t.Errorf("meta extremes = %v / %v, want 73750 / 67.81", resp.Meta.ATH, resp.Meta.ATL)
	}
}

func TestCoinHistoryBoundedRange(t *testing.T) {
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/ethereum/history?start=2025-01-02&end=2025-01-03")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d, body %s", w.Code, w.Body.String())
	}

	var resp CoinHistoryResponse
	decode(t, w, &resp)
	if len(resp.Series) != 2 {
		t.Fatalf("series points = %d, want the 2 in-range days", len(resp.Series))
	}
	if resp.Start != "2025-01-02" || resp.End != "2025-01-03" {
		t.Errorf("range = %s..%s, want the request echoed", resp.Start, resp.End)
	}
}

func TestCoinHistoryInvalidRange(t *testing.T) {
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/bitcoin/history?start=2025-03-01&end=2025-01-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inverted range status = %d, want 400", w.Code)
	}
}

func TestCoinHistoryUnknownCoin(t *testing.T) {
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/dogecoin/history")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown coin status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "dogecoin") {
		t.Errorf("body %q should name the missing coin", w.Body.String())
	}
}

func TestCoinHistoryWithoutMetadataRow(t *testing.T) {
	stmts := append(fixtureStatements(),
		`INSERT INTO crypto_prices VALUES
			('goldcoin', '2025-01-01', 10),
			('goldcoin', '2025-01-02', 20)`,
	)
	s := newTestServer(t, stmts)

	w := get(t, s.Router(), "/api/crypto/goldcoin/history")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200 from price rows alone", w.Code)
	}

	var resp CoinHistoryResponse
	decode(t, w, &resp)
	if resp.Meta != nil {
		t.Errorf("meta = %+v, want absent without a metadata row", resp.Meta)
	}
	if resp.Label != "goldcoin" {
		t.Errorf("label = %q, want the raw id as fallback", resp.Label)
	}
	if len(resp.Series) != 2 {
		t.Errorf("series points = %d, want 2", len(resp.Series))
	}
}

func TestCoinHistoryMetadataOnlyCoin(t *testing.T) {
	// Tether has a metadata row but no rows in the price table.
	s := newTestServer(t, fixtureStatements())

	w := get(t, s.Router(), "/api/crypto/tether/history")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200 with warning", w.Code)
	}

	var resp CoinHistoryResponse
	decode(t, w, &resp)
	if len(resp.Series) != 0 {
		t.Errorf("series = %v, want empty", resp.Series)
	}
	if resp.Warning == "" {
		t.Error("empty series should set a warning")
	}
	if resp.Meta == nil {
		t.Error("metadata row should still be returned")
	}
}
