package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/localsight/localsight/internal/model"
	"github.com/localsight/localsight/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [urls...]",
	Short: "Extract contact details from business websites",
	Long: `Scrapes each URL for email addresses and phone numbers. Follows at
most one "contact" link discovered on the seed page. Per-URL failures are
reported in the results; they never abort the batch.

Examples:
  # Scrape two sites, UK phone formats
  scrape --country uk https://acme.example https://widgets.example

  # Read URLs from a file, write CSV
  scrape --file urls.txt --format csv --output contacts.csv`,
	RunE: runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.String("country", "", "phone-format hint (e.g. us, uk)")
	f.String("file", "", "file with one URL per line")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	country, _ := cmd.Flags().GetString("country")
	file, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "csv" && format != "json" {
		return eris.Errorf("scrape: --format must be table, csv, or json (got %q)", format)
	}

	urls := args
	if file != "" {
		fromFile, err := readURLFile(file)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return eris.New("scrape: no URLs given (pass as arguments or via --file)")
	}

	log := zap.L().With(zap.String("command", "scrape"))
	log.Info("starting scrape", zap.Int("urls", len(urls)), zap.String("country", country))

	orch := newOrchestrator()
	results, summary, err := orch.Run(ctx, urls, country)
	if err != nil {
		return eris.Wrap(err, "scrape")
	}

	log.Info("scrape complete",
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
		zap.Int("emails", summary.TotalEmails),
		zap.Int("phones", summary.TotalPhoneNumbers),
	)

	return outputScrapeResults(results, summary, format, outputPath)
}

// newOrchestrator builds the scrape pipeline from global config.
func newOrchestrator() *scrape.Orchestrator {
	fetcher := scrape.NewFetcher(scrape.FetcherOptions{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		RateLimit: rate.Limit(cfg.Scrape.RateLimitPerSec),
		Burst:     cfg.Scrape.RateLimitBurst,
	})
	return scrape.NewOrchestrator(fetcher, cfg.Scrape.MaxConcurrent)
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: open %s", path)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, eris.Wrapf(sc.Err(), "scrape: read %s", path)
}

func outputScrapeResults(results []model.ScrapeResult, summary model.BatchSummary, format, outputPath string) error {
	w := os.Stdout
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "scrape: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(map[string]any{
			"results": results,
			"summary": summary,
		}), "scrape: encode JSON")

	case "csv":
		cw := csv.NewWriter(w)
		defer cw.Flush()
		if err := cw.Write([]string{"url", "success", "emails", "phone_numbers", "error"}); err != nil {
			return eris.Wrap(err, "scrape: write CSV header")
		}
		for _, r := range results {
			row := []string{
				r.URL,
				fmt.Sprintf("%v", r.Success),
				strings.Join(r.Emails, "; "),
				strings.Join(r.PhoneNumbers, "; "),
				r.Error,
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrapf(err, "scrape: write CSV row for %s", r.URL)
			}
		}
		return nil

	default:
		for _, r := range results {
			status := "ok"
			if !r.Success {
				status = "FAILED: " + r.Error
			}
			fmt.Fprintf(w, "%s  [%s]\n", r.URL, status)
			for _, e := range r.Emails {
				fmt.Fprintf(w, "  email: %s\n", e)
			}
			for _, p := range r.PhoneNumbers {
				fmt.Fprintf(w, "  phone: %s\n", p)
			}
		}
		fmt.Fprintf(w, "\n%d/%d succeeded, %d emails, %d phone numbers\n",
			summary.Successful, summary.Total, summary.TotalEmails, summary.TotalPhoneNumbers)
		return nil
	}
}
