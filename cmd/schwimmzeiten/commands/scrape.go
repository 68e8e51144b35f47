package commands

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klabast/schwimmzeiten/internal/fetcher"
	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/internal/output"
	"github.com/klabast/schwimmzeiten/internal/storage"
	"github.com/klabast/schwimmzeiten/pkg/pipeline"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [urls...]",
	Short: "Scrape pool pages into a weekly-hours collection",
	Long: `Fetch each pool page, extract and normalize its weekly opening
hours, and write the full collection as one JSON array.

A page that fails to fetch still produces a record: its error field is
set and every weekday carries an empty list. A single bad page never
aborts the batch.

Examples:
  schwimmzeiten scrape "https://example.org/baeder/fischerinsel/"
  schwimmzeiten scrape --file urls.txt -o data/pools.json
  schwimmzeiten scrape --file urls.txt --stdout --format yaml`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	flags.String("file", "", "file with one URL per line")
	flags.StringP("output", "o", "pools.json", "collection file to write")
	flags.Bool("stdout", false, "write the collection to stdout instead of a file")
	flags.String("format", "json", "stdout format: json, jsonl, yaml")
	flags.Duration("timeout", 10*time.Second, "request timeout per page")
	flags.String("user-agent", "", "override the request user agent")
	flags.Int("max-entries", 4, "maximum entries kept per weekday")
	flags.Int("min-length", 8, "minimum length of a valid entry")

	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls := append([]string{}, args...)
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		fromFile, err := readURLFile(file)
		if err != nil {
			logError("reading URL file: %v", err)
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return cmd.Help()
	}

	maxEntries, _ := cmd.Flags().GetInt("max-entries")
	minLength, _ := cmd.Flags().GetInt("min-length")
	pipe, err := pipeline.New(pipeline.Config{
		MaxEntriesPerDay: maxEntries,
		MinEntryLength:   minLength,
	})
	if err != nil {
		logError("%v", err)
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	fetch := fetcher.NewStatic(fetcher.Config{
		UserAgent: viper.GetString("user_agent"),
		Timeout:   timeout,
	})

	runID := uuid.NewString()
	log := logger.With("run_id", runID)
	log.Info("starting scrape", "pages", len(urls))

	// Collect-and-continue: every page yields a record, failed fetches
	// become error shells.
	records := make([]schedule.Record, 0, len(urls))
	for _, url := range urls {
		log.Info("fetching", "url", url)

		res, err := fetch.Fetch(ctx, url)
		if err != nil {
			log.Warn("fetch failed", "url", url, "error", err)
			ws := pipeline.FailedSchedule("", url, res.FetchedAt, err)
			records = append(records, ws.Record())
			continue
		}

		ws := pipe.Process(pipeline.Page{
			URL:       url,
			HTML:      res.HTML,
			FetchedAt: res.FetchedAt,
		})
		records = append(records, ws.Record())
	}

	if useStdout, _ := cmd.Flags().GetBool("stdout"); useStdout {
		format, _ := cmd.Flags().GetString("format")
		w, err := output.NewWriter(os.Stdout, output.Format(format))
		if err != nil {
			logError("%v", err)
			return err
		}
		if err := w.WriteAll(records); err != nil {
			return err
		}
		return w.Flush()
	}

	outPath, _ := cmd.Flags().GetString("output")
	store := storage.New(outPath)
	if err := store.Save(records); err != nil {
		logError("writing collection: %v", err)
		return err
	}

	logInfo("Wrote %d pool(s) to %s (%s)", len(records), outPath,
		humanize.Bytes(uint64(store.Size())))
	return nil
}

// readURLFile reads one URL per line, skipping blanks and # comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
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
	return urls, sc.Err()
}
