package webapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"crossmarket/internal/analysis"
	"crossmarket/internal/domain"
	"crossmarket/internal/export"
	"crossmarket/internal/util"
)

// overviewData is the assembled overview before JSON shaping: the raw
// per-asset series and the rebased frame over the resolved range.
type overviewData struct {
	start   string
	end     string
	raw     map[string][]domain.PricePoint
	frame   analysis.Frame
	warning []string
}

func (s *Server) handleRange(c *gin.Context) {
	span, err := s.reader.DateSpan(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, RangeResponse{Start: span.Start, End: span.End})
}

func (s *Server) handleOverview(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if err := util.ValidateRange(start, end); err != nil {
		s.badRequest(c, err)
		return
	}
	data, err := s.buildOverview(c.Request.Context(), start, end)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOverviewResponse(data))
}

func (s *Server) handleOverviewExport(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if err := util.ValidateRange(start, end); err != nil {
		s.badRequest(c, err)
		return
	}
	data, err := s.buildOverview(c.Request.Context(), start, end)
	if err != nil {
		s.renderError(c, err)
		return
	}
	records := overviewRecords(data)

	name := "overview"
	if data.start != "" && data.end != "" {
		name = fmt.Sprintf("overview_%s_%s", data.start, data.end)
	}

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "parquet"); format {
	case "parquet":
		if err := export.WriteOverviewParquet(&buf, records); err != nil {
			s.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".parquet"))
		c.Data(http.StatusOK, "application/octet-stream", buf.Bytes())
	case "csv":
		if err := export.WriteOverviewCSV(&buf, records); err != nil {
			s.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	default:
		s.badRequest(c, fmt.Errorf("unknown export format %q: want parquet or csv", format))
	}
}

// buildOverview resolves the range, loads the four benchmark series
// concurrently, and rebases them to 100 at the range start. Missing
// pieces degrade to warnings instead of failing the whole page.
func (s *Server) buildOverview(ctx context.Context, start, end string) (*overviewData, error) {
	data := &overviewData{start: start, end: end, raw: map[string][]domain.PricePoint{}}

	span, err := s.reader.DateSpan(ctx)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		data.warning = append(data.warning, "no dated rows in the database")
		return data, nil
	}
	if data.start == "" {
		data.start = span.Start
	}
	if data.end == "" {
		data.end = span.End
	}

	btcID, err := s.reader.BitcoinID(ctx)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		data.warning = append(data.warning, "no bitcoin series in the crypto price table")
	}

	r := domain.DateRange{Start: data.start, End: data.end}
	var btc, oil, sp, nifty []domain.PricePoint
	g, gctx := errgroup.WithContext(ctx)
	if btcID != "" {
		g.Go(func() error {
			var err error
			btc, err = s.reader.CryptoPrices(gctx, btcID, r)
			return err
		})
	}
	g.Go(func() error {
		var err error
		oil, err = s.reader.OilPrices(gctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		sp, err = s.reader.StockCloses(gctx, domain.TickerSP500, r)
		return err
	})
	g.Go(func() error {
		var err error
		nifty, err = s.reader.StockCloses(gctx, domain.TickerNifty, r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if btcID != "" {
		data.raw[assetBitcoin] = btc
	}
	data.raw[assetOil] = oil
	data.raw[assetSP500] = sp
	data.raw[assetNifty] = nifty

	frame, err := analysis.Normalize(data.raw, data.start, data.end)
	if err != nil {
		return nil, err
	}
	data.frame = frame
	if len(frame.Dates) == 0 {
		data.warning = append(data.warning,
			fmt.Sprintf("no observations between %s and %s", data.start, data.end))
	}
	return data, nil
}

func toOverviewResponse(d *overviewData) OverviewResponse {
	resp := OverviewResponse{
		Start:    d.start,
		End:      d.end,
		Metrics:  []MarketMetric{},
		Dates:    d.frame.Dates,
		Series:   []SeriesJSON{},
		Snapshot: []SnapshotRow{},
		Excluded: d.frame.Excluded,
	}
	if resp.Dates == nil {
		resp.Dates = []string{}
	}
	if len(d.warning) > 0 {
		resp.Warning = joinWarnings(d.warning)
	}

	for _, asset := range overviewAssets {
		stats := analysis.Summarize(d.raw[asset])
		if stats.Count == 0 {
			continue
		}
		resp.Metrics = append(resp.Metrics, MarketMetric{
			Asset:   asset,
			Label:   assetLabels[asset],
			Average: stats.Average,
			Display: money(stats.Average),
			Count:   stats.Count,
		})
	}

	for _, asset := range overviewAssets {
		vals, ok := d.frame.Series[asset]
		if !ok {
			continue
		}
		resp.Series = append(resp.Series, SeriesJSON{
			Asset:  asset,
			Label:  assetLabels[asset],
			Values: vals,
		})
	}

	prices := rawIndex(d.raw)
	for i := len(d.frame.Dates) - 1; i >= 0; i-- {
		date := d.frame.Dates[i]
		resp.Snapshot = append(resp.Snapshot, SnapshotRow{
			Date:    date,
			Bitcoin: lookup(prices[assetBitcoin], date),
			Oil:     lookup(prices[assetOil], date),
			SP500:   lookup(prices[assetSP500], date),
			Nifty:   lookup(prices[assetNifty], date),
		})
	}
	return resp
}

// overviewRecords flattens the overview into long-form rows, one per
// observation, pairing each raw price with its rebased value.
func overviewRecords(d *overviewData) []export.OverviewRecord {
	idx := make(map[string]int, len(d.frame.Dates))
	for i, date := range d.frame.Dates {
		idx[date] = i
	}
	records := []export.OverviewRecord{}
	for _, asset := range overviewAssets {
		vals, ok := d.frame.Series[asset]
		if !ok {
			continue
		}
		for _, p := range d.raw[asset] {
			i, ok := idx[p.Date]
			if !ok || vals[i] == nil {
				continue
			}
			records = append(records, export.OverviewRecord{
				Date:    p.Date,
				Asset:   asset,
				Label:   assetLabels[asset],
				Price:   p.Value,
				Rebased: *vals[i],
			})
		}
	}
	return records
}

func rawIndex(raw map[string][]domain.PricePoint) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(raw))
	for asset, points := range raw {
		m := make(map[string]float64, len(points))
		for _, p := range points {
			m[p.Date] = p.Value
		}
		out[asset] = m
	}
	return out
}

func lookup(m map[string]float64, date string) *float64 {
	if v, ok := m[date]; ok {
		return &v
	}
	return nil
}

func joinWarnings(ws []string) string {
	out := ws[0]
	for _, w := range ws[1:] {
		out += "; " + w
	}
	return out
}
