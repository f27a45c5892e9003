// Package export serializes dashboard data into downloadable file formats:
// Parquet and CSV for the overview series, CSV and XLSX for catalog query
// results.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"crossmarket/internal/store"
)

// ---------------------------------------------------------------------------
// Overview records (on-disk schema)
// ---------------------------------------------------------------------------

// OverviewRecord is the flat export schema for the overview page: one row
// per asset per observed date. Gaps produce no record at all, so every
// field is always populated.
type OverviewRecord struct {
	Date    string  `parquet:"date" json:"date"`
	Asset   string  `parquet:"asset" json:"asset"`
	Label   string  `parquet:"label" json:"label"`
	Price   float64 `parquet:"price" json:"price"`
	Rebased float64 `parquet:"rebased" json:"rebased"`
}

// WriteOverviewParquet writes the records to w as a Parquet file.
func WriteOverviewParquet(w io.Writer, records []OverviewRecord) error {
	if err := parquet.Write[OverviewRecord](w, records); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

// WriteOverviewCSV writes the records to w as CSV with a header row.
func WriteOverviewCSV(w io.Writer, records []OverviewRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "asset", "label", "price", "rebased"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Date, r.Asset, r.Label, formatFloat(r.Price), formatFloat(r.Rebased)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ---------------------------------------------------------------------------
// Catalog result sets
// ---------------------------------------------------------------------------

// WriteResultCSV writes a catalog result set to w as CSV. NULL cells
// become empty fields.
func WriteResultCSV(w io.Writer, rs *store.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultXLSX writes a catalog result set to w as a single-sheet
// workbook. The sheet name is adjusted to Excel's naming rules.
func WriteResultXLSX(w io.Writer, rs *store.ResultSet, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet = sanitizeSheetName(sheet)
	const defaultSheet = "Sheet1"
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	}

	header := make([]any, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rs.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := make([]any, len(row))
		copy(cells, row)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// sanitizeSheetName trims the name to Excel's 31-character limit and
// replaces the characters Excel forbids in sheet names.
func sanitizeSheetName(name string) string {
	repl := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name = strings.TrimSpace(repl.Replace(name))
	if len(name) > 31 {
		name = strings.TrimSpace(name[:31])
	}
	if name == "" {
		return "Results"
	}
	return name
}

func formatCell(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case int64:
		return strconv.FormatInt(vv, 10)
	case float64:
		return formatFloat(vv)
	default:
		return fmt.Sprint(vv)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
