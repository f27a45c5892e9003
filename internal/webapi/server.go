// Package webapi exposes the dashboard over HTTP: the market overview,
// the catalog query runner, and the crypto browser, plus file exports of
// each. All endpoints are read-only.
package webapi

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"crossmarket/internal/catalog"
	"crossmarket/internal/domain"
	"crossmarket/internal/store"
)

// Asset identifiers used across the overview payloads.
const (
	assetBitcoin = "bitcoin"
	assetOil     = "oil"
	assetSP500   = "sp500"
	assetNifty   = "nifty"
)

// overviewAssets fixes the presentation order of the overview series.
var overviewAssets = []string{assetBitcoin, assetOil, assetSP500, assetNifty}

var assetLabels = map[string]string{
	assetBitcoin: "Bitcoin",
	assetOil:     "Crude Oil",
	assetSP500:   "S&P 500",
	assetNifty:   "NIFTY 50",
}

// Server wires the store and the query catalog into HTTP handlers.
type Server struct {
	reader  store.MarketReader
	runner  store.QueryRunner
	catalog *catalog.Catalog
	log     *slog.Logger
	dbPath  string
	webDir  string
}

// NewServer builds a Server. dbPath is only reported by the health
// endpoint; webDir may be empty to serve the API without frontend assets.
func NewServer(reader store.MarketReader, runner store.QueryRunner, cat *catalog.Catalog, log *slog.Logger, dbPath, webDir string) *Server {
	return &Server{
		reader:  reader,
		runner:  runner,
		catalog: cat,
		log:     log,
		dbPath:  dbPath,
		webDir:  webDir,
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(s.log), CORS())

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/range", s.handleRange)
		api.GET("/overview", s.handleOverview)
		api.GET("/overview/export", s.handleOverviewExport)
		api.GET("/catalog", s.handleCatalog)
		api.GET("/catalog/query", s.handleCatalogQuery)
		api.POST("/catalog/run", s.handleCatalogRun)
		api.GET("/catalog/export", s.handleCatalogExport)
		api.GET("/crypto/top", s.handleTopCoins)
		api.GET("/crypto/:id/history", s.handleCoinHistory)
	}

	s.mountStatic(r)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": s.dbPath,
		"queries":  s.catalog.Len(),
	})
}

// renderError maps the error taxonomy onto HTTP statuses. Query errors
// keep the engine's message so the runner page can show it verbatim.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var notFound *domain.NotFoundError
	var query *domain.QueryError
	var invalid *domain.InvalidDataError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &query):
		status = http.StatusBadRequest
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
	}
	s.log.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"error", err,
	)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// mountStatic serves the built frontend when one is present. Unknown
// non-API paths fall back to index.html so client-side routing works;
// API and asset paths keep their 404s.
func (s *Server) mountStatic(r *gin.Engine) {
	if s.webDir == "" {
		return
	}
	index := filepath.Join(s.webDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		s.log.Info("no web assets found, serving API only", "dir", s.webDir)
		return
	}
	r.Static("/static", filepath.Join(s.webDir, "static"))
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/static/") {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	})
}
