package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Simplici0/wdquote/internal/catalog"
	"github.com/Simplici0/wdquote/internal/catalogdb"
	"github.com/Simplici0/wdquote/internal/config"
	"github.com/Simplici0/wdquote/internal/logging"
	"github.com/Simplici0/wdquote/internal/pricing"
	"github.com/Simplici0/wdquote/internal/takeoff"
)

var cli struct {
	CatalogDB   string `name:"catalog-db" env:"CATALOG_DB" help:"SQLite catalog database. Uses the built-in catalog when empty." type:"path"`
	QuotePrefix string `name:"quote-prefix" env:"QUOTE_PREFIX" help:"Prefix for generated quote numbers."`

	Catalog CatalogCmd `cmd:"" help:"List products and their sizes."`
	Quote   QuoteCmd   `cmd:"" help:"Price a quote request file (JSON, or - for stdin)."`
	Takeoff TakeoffCmd `cmd:"" help:"Run the simulated schedule takeoff for a file."`
	Seed    SeedCmd    `cmd:"" help:"Create or top up a SQLite catalog database with the built-in catalog."`
}

type runContext struct {
	ctx    context.Context
	log    *zap.Logger
	out    io.Writer
	prefix string
	dbPath string
}

func (c *runContext) catalog() (*catalog.Catalog, error) {
	return catalogdb.Load(c.ctx, c.dbPath, false, c.log)
}

func (c *runContext) engine() (*pricing.Engine, error) {
	cat, err := c.catalog()
	if err != nil {
		return nil, err
	}
	numbers := pricing.QuoteNumberer{Prefix: c.prefix}
	return pricing.NewEngine(cat, pricing.WithQuoteNumbers(numbers.Next)), nil
}

func main() {
	cfg := config.Load()
	// stdout carries command output, so only warnings reach the console.
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}

	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	logger, err := logging.NewWithConsole(cfg, zapcore.Lock(os.Stderr))
	ctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	err = ctx.Run(&runContext{
		ctx:    context.Background(),
		log:    logger,
		out:    os.Stdout,
		prefix: cli.QuotePrefix,
		dbPath: cli.CatalogDB,
	})
	ctx.FatalIfErrorf(err)
}

type CatalogCmd struct {
	JSON bool `help:"Print the full catalog as JSON."`
}

func (c *CatalogCmd) Run(ctx *runContext) error {
	cat, err := ctx.catalog()
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(ctx.out, map[string]any{
			"windows":        cat.Windows(),
			"doors":          cat.Doors(),
			"glass_options":  cat.GlassOptions(),
			"finish_options": cat.FinishOptions(),
			"addon_options":  cat.AddonOptions(),
		})
	}

	tw := tabwriter.NewWriter(ctx.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tCATEGORY\tSIZE#\tSIZE\tBASE PRICE")
	for _, p := range cat.Products() {
		for i, s := range p.Sizes {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, p.Category, i, s.Label, humanize.FormatFloat("#,###.##", s.BasePrice))
		}
	}
	return tw.Flush()
}

type QuoteCmd struct {
	Request string `arg:"" help:"Quote request JSON file with client_name, project_address and items." default:"-"`
}

type quoteRequest struct {
	ClientName     string             `json:"client_name"`
	ProjectAddress string             `json:"project_address"`
	Items          []pricing.ItemSpec `json:"items"`
}

func (c *QuoteCmd) Run(ctx *runContext) error {
	var in io.Reader = os.Stdin
	if c.Request != "-" {
		f, err := os.Open(c.Request)
		if err != nil {
			return fmt.Errorf("open quote request: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req quoteRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode quote request: %w", err)
	}

	engine, err := ctx.engine()
	if err != nil {
		return err
	}
	quote, err := engine.GenerateQuote(req.ClientName, req.ProjectAddress, req.Items)
	if err != nil {
		return err
	}
	return writeJSON(ctx.out, quote)
}

type TakeoffCmd struct {
	Filename string `arg:"" help:"Uploaded schedule file name."`
	Price    bool   `help:"Price the extracted items as a quote."`
	Client   string `help:"Client name used with --price." default:"Takeoff"`
	Address  string `help:"Project address used with --price."`
}

func (c *TakeoffCmd) Run(ctx *runContext) error {
	result := takeoff.Simulate(c.Filename)
	if !c.Price {
		return writeJSON(ctx.out, result)
	}

	engine, err := ctx.engine()
	if err != nil {
		return err
	}
	quote, err := engine.GenerateQuote(c.Client, c.Address, result.Specs())
	if err != nil {
		return err
	}
	return writeJSON(ctx.out, quote)
}

type SeedCmd struct {
	DB string `name:"db" required:"" help:"SQLite file to create or top up." type:"path"`
}

func (c *SeedCmd) Run(ctx *runContext) error {
	stats, err := catalogdb.Seed(ctx.ctx, c.DB)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.out, "seeded %s: %d inserted, %d already present\n", c.DB, stats.Inserts, stats.Skipped)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
