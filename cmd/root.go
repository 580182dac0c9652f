package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/killallgit/timeline-api/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timeline-api",
	Short: "Timeline API server",
	Long: `Timeline API - A non-linear timeline editing engine for media

Timelines hold video, audio and caption tracks seeded from a media item
and its transcript. Every edit is undoable and saved automatically.

Features:
  • Split, trim, move, merge and extract clips
  • Undo and redo with bounded history
  • Copy and paste across tracks of the same kind
  • Gap, overlap and statistics diagnostics
  • EDL export and a terminal editor`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
	if viper.GetString("logging.level") == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
}

// appConfig returns the loaded configuration
func appConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
