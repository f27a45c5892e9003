package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crossmarket/internal/catalog"
	"crossmarket/internal/config"
	"crossmarket/internal/store"
	"crossmarket/internal/util"
	"crossmarket/internal/webapi"
)

func main() {
	// .env is read before the config so CROSSMARKET_* overrides work from
	// either place. A missing file is fine.
	_ = godotenv.Load()

	cfgPath := "config/crossmarket.yaml"
	if p := os.Getenv("CROSSMARKET_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPath, err := store.Locate(cfg.Database.Path)
	if err != nil {
		logger.Error("database not found", "error", err)
		os.Exit(1)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("database opened read-only", "path", dbPath)

	cat := catalog.New()
	srv := webapi.NewServer(st, st, cat, logger, dbPath, cfg.Web.Dir)

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Router(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("crossmarket server listening", "addr", httpServer.Addr, "queries", cat.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
