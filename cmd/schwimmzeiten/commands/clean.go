package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/internal/storage"
	"github.com/klabast/schwimmzeiten/pkg/pipeline"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Re-run normalization over an existing collection",
	Long: `Re-apply normalization, validation, dedup and conflict resolution
to every record of an existing collection and write it back.

On an already-clean collection this is a no-op, so it is safe to run
repeatedly.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("input", "i", "pools.json", "collection file to clean in place")
	flags.Int("max-entries", 4, "maximum entries kept per weekday")
	flags.Int("min-length", 8, "minimum length of a valid entry")
}

func runClean(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

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

	path, _ := cmd.Flags().GetString("input")
	store := storage.New(path)

	records, err := store.Load()
	if err != nil {
		logError("loading collection: %v", err)
		return err
	}

	cleaned := make([]schedule.Record, 0, len(records))
	for _, rec := range records {
		cleaned = append(cleaned, pipe.Reclean(rec))
	}

	if err := store.Save(cleaned); err != nil {
		logError("writing collection: %v", err)
		return err
	}

	logInfo("Cleaned %d pool(s) in %s", len(cleaned), path)
	return nil
}
