// One-shot tool: run every catalog query against the local database and
// write each result to its own file, without going through the server.
//
// Usage:
//
//	go run cmd/crossmarket-export/main.go -out exports -format csv
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"crossmarket/internal/catalog"
	"crossmarket/internal/config"
	"crossmarket/internal/export"
	"crossmarket/internal/store"
	"crossmarket/internal/util"
)

func main() {
	out := flag.String("out", "exports", "directory for the result files")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" {
		log.Fatalf("unknown format %q: want csv or xlsx", *format)
	}

	cfgPath := "config/crossmarket.yaml"
	if p := os.Getenv("CROSSMARKET_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, "text")
	util.SetDefault(logger)

	dbPath, err := store.Locate(cfg.Database.Path)
	if err != nil {
		log.Fatalf("database not found: %v", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer st.Close()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}

	cat := catalog.New()
	ctx := context.Background()
	wrote := 0
	for _, name := range cat.Categories() {
		queries, err := cat.Queries(name)
		if err != nil {
			log.Fatalf("listing %s: %v", name, err)
		}
		for _, q := range queries {
			rs, err := st.RunQuery(ctx, q.SQL)
			if err != nil {
				logger.Error("query failed, skipping", "category", name, "label", q.Label, "error", err)
				continue
			}
			path := filepath.Join(*out, util.Slug(q.Label)+"."+*format)
			if err := writeResult(path, *format, q.Label, rs); err != nil {
				log.Fatalf("writing %s: %v", path, err)
			}
			logger.Info("wrote result", "file", path, "rows", len(rs.Rows))
			wrote++
		}
	}
	logger.Info("export complete", "files", wrote, "dir", *out)
}

func writeResult(path, format, label string, rs *store.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if format == "xlsx" {
		return export.WriteResultXLSX(f, rs, label)
	}
	return export.WriteResultCSV(f, rs)
}
