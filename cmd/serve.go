package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/timeline-api/api"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/pkg/config"
	"github.com/killallgit/timeline-api/pkg/transcript"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Timeline API server with the configured settings.

Timelines are opened on first use and saved in the background after
each edit. Open timelines are flushed before the server exits.

Example:
  timeline-api serve
  timeline-api serve --port 9090
  timeline-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}

	host, port := cfg.Server.Host, cfg.Server.Port
	if serverHost != "" {
		host = serverHost
	}
	if serverPort != 0 {
		port = serverPort
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	repo, db, err := openRepository(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("[WARN] Failed to close database: %v", err)
			}
		}()
	}

	deps := &types.Dependencies{
		DB:                db,
		Sessions:          sessions.NewManager(repo, managerOptions(cfg)...),
		TranscriptFetcher: transcript.NewFetcher(fetchOptions(cfg.Transcripts)),
	}

	address := fmt.Sprintf("%s:%d", host, port)
	server := api.NewServer(address, cfg)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Timeline API listening on %s", address)

	var runErr error
	select {
	case <-stop:
		log.Println("[INFO] Shutting down server...")
	case runErr = <-serverErr:
		log.Printf("[ERROR] %v", runErr)
	case <-commandContext(cmd).Done():
		log.Println("[INFO] Context cancelled, shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return errors.Join(runErr, err)
	}

	log.Println("[INFO] Server gracefully stopped")
	return runErr
}

func fetchOptions(cfg config.TranscriptConfig) transcript.FetchOptions {
	opts := transcript.DefaultFetchOptions()
	if cfg.FetchTimeout > 0 {
		opts.Timeout = cfg.FetchTimeout
	}
	if cfg.MaxSize > 0 {
		opts.MaxSize = cfg.MaxSize
	}
	return opts
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
