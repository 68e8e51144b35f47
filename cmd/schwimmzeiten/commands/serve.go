package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/internal/server"
	"github.com/klabast/schwimmzeiten/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cached collection over a read-only HTTP API",
	Long: `Serve the scraped collection. The API is read-only: it reports
"temporarily unavailable" while no collection exists yet and
"data corrupted" if the file fails the array shape check.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringP("input", "i", "pools.json", "collection file to serve")
	flags.String("addr", ":8080", "listen address")

	_ = viper.BindPFlag("addr", flags.Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path, _ := cmd.Flags().GetString("input")
	srv := server.New(storage.New(path))

	httpSrv := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving collection", "addr", httpSrv.Addr, "file", path)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logError("server: %v", err)
			return err
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logError("shutdown: %v", err)
			return err
		}
	}
	return nil
}
