package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"crossmarket/internal/store"
)

func sampleRecords() []OverviewRecord {
	return []OverviewRecord{
		{Date: "2025-01-01", Asset: "bitcoin", Label: "Bitcoin", Price: 100, Rebased: 100},
		{Date: "2025-01-03", Asset: "bitcoin", Label: "Bitcoin", Price: 300, Rebased: 300},
		{Date: "2025-01-01", Asset: "oil", Label: "Crude Oil", Price: 50, Rebased: 100},
		{Date: "2025-01-02", Asset: "oil", Label: "Crude Oil", Price: 60, Rebased: 120},
	}
}

func TestWriteOverviewParquetRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	records := sampleRecords()

	if err := WriteOverviewParquet(&buf, records); err != nil {
		t.Fatalf("WriteOverviewParquet: %v", err)
	}

	got, err := parquet.Read[OverviewRecord](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading written parquet: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("read %d records, want %d", len(got), len(records))
	}
	if got[1].Asset != "bitcoin" || got[1].Rebased != 300 {
		t.Errorf("got[1] = %+v, want bitcoin rebased 300", got[1])
	}
	if got[3].Date != "2025-01-02" || got[3].Price != 60 {
		t.Errorf("got[3] = %+v, want oil 2025-01-02 price 60", got[3])
	}
}

func TestWriteOverviewCSV(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteOverviewCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteOverviewCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse written csv: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("csv has %d rows, want header + 4 records", len(rows))
	}
	if rows[0][0] != "date" || rows[0][4] != "rebased" {
		t.Errorf("header = %v, want date..rebased", rows[0])
	}
	if rows[4][1] != "oil" || rows[4][4] != "120" {
		t.Errorf("last row = %v, want oil rebased 120", rows[4])
	}
}

func resultFixture() *store.ResultSet {
	return &store.ResultSet{
		Columns: []string{"date", "oil_price", "bitcoin_price"},
		Kinds:   []store.Kind{store.KindDate, store.KindNumber, store.KindNumber},
		Rows: [][]any{
			{"2025-01-01", 50.0, int64(100)},
			{"2025-01-02", nil, int64(110)},
		},
	}
}

func TestWriteResultCSVNullCells(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteResultCSV(&buf, resultFixture()); err != nil {
		t.Fatalf("WriteResultCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse written csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("csv has %d rows, want 3", len(rows))
	}
	if rows[2][1] != "" {
		t.Errorf("NULL cell = %q, want empty field", rows[2][1])
	}
	if rows[1][1] != "50" {
		t.Errorf("numeric cell = %q, want 50", rows[1][1])
	}
}

func TestWriteResultXLSX(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteResultXLSX(&buf, resultFixture(), "Oil vs Bitcoin"); err != nil {
		t.Fatalf("WriteResultXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Oil vs Bitcoin" {
		t.Fatalf("sheets = %v, want [Oil vs Bitcoin]", sheets)
	}

	rows, err := f.GetRows("Oil vs Bitcoin")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("workbook has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "date" || rows[0][2] != "bitcoin_price" {
		t.Errorf("header = %v, want date..bitcoin_price", rows[0])
	}
	if rows[1][1] != "50" {
		t.Errorf("cell B2 = %q, want 50", rows[1][1])
	}
	// The NULL cell sits between populated columns, so it survives as empty.
	if rows[2][1] != "" {
		t.Errorf("cell B3 = %q, want empty for NULL", rows[2][1])
	}
}

func TestWriteResultXLSXSanitizesSheetName(t *testing.T) {
	var buf bytes.Buffer
	long := "Top 3 Crypto Coins Joined with Stock Indices (2025)"

	if err := WriteResultXLSX(&buf, resultFixture(), long); err != nil {
		t.Fatalf("WriteResultXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	name := f.GetSheetList()[0]
	if len(name) > 31 {
		t.Errorf("sheet name %q exceeds Excel's 31-char limit", name)
	}
}
