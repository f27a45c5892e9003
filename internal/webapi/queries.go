package webapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"crossmarket/internal/catalog"
	"crossmarket/internal/export"
	"crossmarket/internal/store"
	"crossmarket/internal/util"
)

func (s *Server) handleCatalog(c *gin.Context) {
	resp := CatalogResponse{Categories: []CategoryJSON{}, Total: s.catalog.Len()}
	for _, name := range s.catalog.Categories() {
		queries, err := s.catalog.Queries(name)
		if err != nil {
			s.renderError(c, err)
			return
		}
		cat := CategoryJSON{Name: name, Queries: make([]QueryJSON, 0, len(queries))}
		for _, q := range queries {
			cat.Queries = append(cat.Queries, toQueryJSON(q))
		}
		resp.Categories = append(resp.Categories, cat)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCatalogQuery(c *gin.Context) {
	q, err := s.catalog.Get(c.Query("category"), c.Query("label"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQueryJSON(q))
}

func (s *Server) handleCatalogRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	q, err := s.catalog.Get(req.Category, req.Label)
	if err != nil {
		s.renderError(c, err)
		return
	}
	rs, err := s.runner.RunQuery(c.Request.Context(), q.SQL)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, RunResponse{
		Category: q.Category,
		Label:    q.Label,
		SQL:      q.SQL,
		Columns:  rs.Columns,
		Kinds:    rs.Kinds,
		Rows:     rs.Rows,
		RowCount: len(rs.Rows),
		Chart:    chartSpec(q, rs),
	})
}

func (s *Server) handleCatalogExport(c *gin.Context) {
	q, err := s.catalog.Get(c.Query("category"), c.Query("label"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	rs, err := s.runner.RunQuery(c.Request.Context(), q.SQL)
	if err != nil {
		s.renderError(c, err)
		return
	}

	name := util.Slug(q.Label)
	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		if err := export.WriteResultCSV(&buf, rs); err != nil {
			s.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := export.WriteResultXLSX(&buf, rs, q.Label); err != nil {
			s.renderError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		s.badRequest(c, fmt.Errorf("unknown export format %q: want csv or xlsx", format))
	}
}

// chartSpec decides whether a result can be drawn and with which columns.
// A figure needs at least two rows and a numeric column. The first column
// is the x axis, the first numeric column after it the y axis, and a
// coin_id or ticker column becomes the series grouping.
func chartSpec(q catalog.Query, rs *store.ResultSet) *ChartSpec {
	if len(rs.Rows) < 2 {
		return nil
	}
	y := ""
	for i, k := range rs.Kinds {
		if i > 0 && k == store.KindNumber {
			y = rs.Columns[i]
			break
		}
	}
	if y == "" {
		return nil
	}
	x := rs.Columns[0]
	series := ""
	for _, col := range rs.Columns {
		if col == "coin_id" || col == "ticker" {
			series = col
			break
		}
	}
	typ := q.Chart
	if typ == "" {
		typ = catalog.ChartBar
		if rs.Kinds[0] == store.KindDate {
			typ = catalog.ChartLine
		}
	}
	return &ChartSpec{Type: typ, X: x, Y: y, Series: series}
}
