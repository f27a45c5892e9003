package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"crossmarket/internal/util"
	"crossmarket/pkg/crossmarket"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crossmarket-cli <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  version    Print the CLI version\n")
		fmt.Fprintf(os.Stderr, "  health     Show crossmarket-server status\n")
		fmt.Fprintf(os.Stderr, "  range      Show the database observation span\n")
		fmt.Fprintf(os.Stderr, "  overview   Show market averages and rebased series\n")
		fmt.Fprintf(os.Stderr, "  catalog    List the built-in queries\n")
		fmt.Fprintf(os.Stderr, "  run        Execute a catalog query\n")
		fmt.Fprintf(os.Stderr, "  top        Show the featured crypto coins\n")
		fmt.Fprintf(os.Stderr, "  history    Show one coin's price history\n")
		fmt.Fprintf(os.Stderr, "  export     Download a query result to a file\n")
		fmt.Fprintf(os.Stderr, "\nThe server address comes from CROSSMARKET_SERVER or -server.\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("crossmarket-cli %s\n", version)
	case "health":
		err = runHealth(ctx, os.Args[2:])
	case "range":
		err = runRange(ctx, os.Args[2:])
	case "overview":
		err = runOverview(ctx, os.Args[2:])
	case "catalog":
		err = runCatalog(ctx, os.Args[2:])
	case "run":
		err = runQuery(ctx, os.Args[2:])
	case "top":
		err = runTop(ctx, os.Args[2:])
	case "history":
		err = runHistory(ctx, os.Args[2:])
	case "export":
		err = runExport(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serverFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("CROSSMARKET_SERVER")
	if def == "" {
		def = "http://127.0.0.1:8080"
	}
	return fs.String("server", def, "crossmarket-server base URL")
}

func runHealth(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	server := serverFlag(fs)
	fs.Parse(args)

	h, err := crossmarket.NewClient(*server).Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status:   %s\n", h.Status)
	fmt.Printf("database: %s\n", h.Database)
	fmt.Printf("queries:  %d\n", h.Queries)
	return nil
}

func runRange(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	server := serverFlag(fs)
	fs.Parse(args)

	span, err := crossmarket.NewClient(*server).Range(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s .. %s\n", span.Start, span.End)
	return nil
}

func runOverview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("overview", flag.ExitOnError)
	server := serverFlag(fs)
	start := fs.String("start", "", "range start (YYYY-MM-DD, empty = earliest)")
	end := fs.String("end", "", "range end (YYYY-MM-DD, empty = latest)")
	fs.Parse(args)

	o, err := crossmarket.NewClient(*server).Overview(ctx, *start, *end)
	if err != nil {
		return err
	}
	fmt.Printf("range: %s .. %s\n", o.Start, o.End)
	if o.Warning != "" {
		fmt.Printf("warning: %s\n", o.Warning)
	}
	for _, m := range o.Metrics {
		fmt.Printf("  %-10s avg %s over %d days\n", m.Label, m.Display, m.Count)
	}
	for _, s := range o.Series {
		fmt.Printf("  %-10s %s (start = 100)\n", s.Label, lastValue(s.Values))
	}
	return nil
}

// lastValue renders the most recent non-gap rebased value of a series.
func lastValue(values []*float64) string {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != nil {
			return fmt.Sprintf("now %.1f", *values[i])
		}
	}
	return "no data"
}

func runCatalog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	server := serverFlag(fs)
	fs.Parse(args)

	cat, err := crossmarket.NewClient(*server).Catalog(ctx)
	if err != nil {
		return err
	}
	for _, c := range cat.Categories {
		fmt.Printf("%s\n", c.Name)
		for _, q := range c.Queries {
			fmt.Printf("  - %s\n", q.Label)
		}
	}
	fmt.Printf("%d queries total\n", cat.Total)
	return nil
}

func runQuery(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	server := serverFlag(fs)
	category := fs.String("category", "", "catalog category")
	label := fs.String("label", "", "query label inside the category")
	limit := fs.Int("limit", 20, "rows to print, 0 = all")
	fs.Parse(args)

	if *category == "" || *label == "" {
		return fmt.Errorf("run needs both -category and -label; see the catalog command")
	}

	res, err := crossmarket.NewClient(*server).Run(ctx, *category, *label)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(res.Columns, " | "))
	n := len(res.Rows)
	if *limit > 0 && n > *limit {
		n = *limit
	}
	for _, row := range res.Rows[:n] {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Println(strings.Join(cells, " | "))
	}
	if n < res.RowCount {
		fmt.Printf("(%d of %d rows)\n", n, res.RowCount)
	}
	return nil
}

func runTop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("top", flag.ExitOnError)
	server := serverFlag(fs)
	fs.Parse(args)

	tc, err := crossmarket.NewClient(*server).TopCoins(ctx)
	if err != nil {
		return err
	}
	if tc.Warning != "" {
		fmt.Printf("warning: %s\n", tc.Warning)
	}
	for i, c := range tc.Coins {
		fmt.Printf("%d. %-24s $%s (market cap rank %d)\n", i+1, c.Label, c.PriceDisplay, c.MarketCapRank)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	server := serverFlag(fs)
	start := fs.String("start", "", "range start (YYYY-MM-DD)")
	end := fs.String("end", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)

	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("history needs a coin id, for example: history bitcoin")
	}

	h, err := crossmarket.NewClient(*server).CoinHistory(ctx, id, *start, *end)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d observations\n", h.Label, h.Stats.Count)
	if h.Warning != "" {
		fmt.Printf("warning: %s\n", h.Warning)
	}
	if h.Stats.Count > 0 {
		fmt.Printf("current %s  high %.2f  low %.2f  avg %s\n",
			h.Stats.CurrentDisplay, h.Stats.High, h.Stats.Low, h.Stats.AverageDisplay)
	}
	if h.Meta != nil {
		fmt.Printf("all-time high %.2f  all-time low %.2f\n", h.Meta.ATH, h.Meta.ATL)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	server := serverFlag(fs)
	overview := fs.Bool("overview", false, "export the overview instead of a catalog result")
	category := fs.String("category", "", "catalog category")
	label := fs.String("label", "", "query label inside the category")
	start := fs.String("start", "", "overview range start")
	end := fs.String("end", "", "overview range end")
	format := fs.String("format", "", "overview: parquet or csv; results: csv or xlsx")
	out := fs.String("o", "", "output file (default derived from the selection)")
	fs.Parse(args)

	client := crossmarket.NewClient(*server)
	var raw []byte
	var err error
	var path string

	if *overview {
		f := *format
		if f == "" {
			f = "parquet"
		}
		raw, err = client.ExportOverview(ctx, *start, *end, f)
		path = "overview." + f
	} else {
		if *category == "" || *label == "" {
			return fmt.Errorf("export needs -overview or both -category and -label")
		}
		f := *format
		if f == "" {
			f = "csv"
		}
		raw, err = client.ExportResult(ctx, *category, *label, f)
		path = util.Slug(*label) + "." + f
	}
	if err != nil {
		return err
	}
	if *out != "" {
		path = *out
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(raw))
	return nil
}
