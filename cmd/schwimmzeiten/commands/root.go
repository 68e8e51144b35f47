// Package commands implements the CLI commands for schwimmzeiten.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klabast/schwimmzeiten/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "schwimmzeiten",
	Short: "Canonical weekly opening hours for municipal swimming pools",
	Long: `Schwimmzeiten turns inconsistently formatted pool pages into a
canonical weekly opening-hours collection and serves the cached result.

Examples:
  # Scrape pool pages into pools.json
  schwimmzeiten scrape "https://example.org/baeder/fischerinsel/" -o pools.json

  # Scrape a list of URLs from a file
  schwimmzeiten scrape --file urls.txt -o pools.json

  # Re-run normalization over an existing collection
  schwimmzeiten clean -i pools.json

  # Serve the cached collection
  schwimmzeiten serve -i pools.json --addr :8080`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.schwimmzeiten.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".schwimmzeiten")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCHWIMMZEITEN")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
