package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"snapscout/config"
	"snapscout/internal/ebay"
	"snapscout/internal/rates"
	"snapscout/internal/scout"
	"snapscout/internal/vision"
)

var usage = dedent.Dedent(`
	snapscout scan: compare landed prices for a product across eBay storefronts.

	Provide either -q with a keyword or -image with a product photo. With
	-image the keyword is derived with Gemini; setting OPENAI_API_KEY enables
	the OpenAI fallback backend.
`)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, strings.TrimLeft(usage, "\n"))
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	query := flag.String("q", "", "Search keyword (skips image extraction)")
	imagePath := flag.String("image", "", "Path to a product photo (jpeg/png)")
	mode := flag.String("mode", "active", "Search mode: active or sold")
	days := flag.Int("days", 90, "Sold-history lookback window in days")
	limit := flag.Int("limit", 10, "Results per country")
	home := flag.String("home", "", "Home currency code (default JPY)")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	if missing := config.Missing(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "missing required config: %s\n", strings.Join(missing, ", "))
		os.Exit(1)
	}
	cfg := config.Load()
	if *home != "" {
		cfg.HomeCurrency = *home
	}

	var searchMode ebay.Mode
	switch *mode {
	case "active":
		searchMode = ebay.ModeActive
	case "sold":
		searchMode = ebay.ModeSold
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	keyword := *query
	if keyword == "" {
		if *imagePath == "" {
			flag.Usage()
			os.Exit(2)
		}
		var err error
		keyword, err = extractKeyword(ctx, cfg, *imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keyword extraction failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "Re-run with -q to supply a keyword manually.")
			os.Exit(1)
		}
		fmt.Printf("keyword: %s\n\n", keyword)
	}

	client := ebay.NewClient(ebay.ClientOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
	})
	svc := scout.NewService(client, rates.NewSource(rates.NewHTTPProvider()), cfg.HomeCurrency)

	result := svc.Scan(ctx, scout.Params{
		Keyword:      keyword,
		Mode:         searchMode,
		LookbackDays: *days,
		Limit:        *limit,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "searched %d/%d countries\n", done, total)
		},
	})

	if result.NoData() {
		fmt.Println("No data found.")
		return
	}
	printResult(result, searchMode)
}

func extractKeyword(ctx context.Context, cfg config.Config, imagePath string) (string, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	gemini, err := vision.NewGeminiExtractor(ctx)
	if err != nil {
		return "", err
	}
	backends := []vision.Extractor{gemini}
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, vision.NewOpenAIExtractor())
	}

	mimeType := "image/jpeg"
	if strings.HasSuffix(strings.ToLower(imagePath), ".png") {
		mimeType = "image/png"
	}
	return vision.NewChain(backends...).ExtractKeyword(ctx, image, mimeType)
}

func printResult(result *scout.Result, mode ebay.Mode) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if mode == ebay.ModeSold {
		fmt.Fprintln(w, "COUNTRY\tTOTAL\tDATE\tTITLE\tBREAKDOWN")
		for _, row := range result.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Country, row.Total, row.Date, truncate(row.Title, 45), row.Breakdown)
		}
	} else {
		fmt.Fprintln(w, "COUNTRY\tTOTAL\tTITLE\tBREAKDOWN")
		for _, row := range result.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Country, row.Total, truncate(row.Title, 45), row.Breakdown)
		}
	}
	w.Flush()

	if len(result.Minima) > 0 {
		fmt.Println("\nCheapest per country:")
		for _, country := range scout.DefaultCountries {
			summary, ok := result.Minima[country.Label]
			if !ok {
				continue
			}
			if summary.Found {
				fmt.Printf("  %-16s %s (%s)\n", country.Label, summary.Total, truncate(summary.Title, 45))
			} else {
				fmt.Printf("  %-16s none\n", country.Label)
			}
		}
	}
	if mode == ebay.ModeSold {
		fmt.Printf("\nCountries with sales: %d\n", result.SoldHits)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
