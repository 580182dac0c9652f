package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/killallgit/timeline-api/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema of the Timeline API.

The schema is derived from the stored timeline models. Migrations only
ever add tables and columns, so there is no rollback.

Available subcommands:
  up      - Create or update all timeline tables
  status  - Show which timeline tables exist`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update all timeline tables",
	Long: `Bring the database schema up to date with the timeline models.

With --dry-run the current table status is printed instead.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Display each timeline model with its table and whether the table exists.`,
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func openDatabase() (*database.DB, error) {
	cfg, err := appConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		statuses, err := db.MigrationStatus()
		if err != nil {
			return err
		}
		printMigrationStatus(out, statuses)
		return nil
	}

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintf(out, "Migrated %d model(s)\n", len(database.Models()))
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := db.MigrationStatus()
	if err != nil {
		return err
	}
	printMigrationStatus(cmd.OutOrStdout(), statuses)
	return nil
}

func printMigrationStatus(out io.Writer, statuses []database.TableStatus) {
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	pending := 0
	for _, s := range statuses {
		state := "applied"
		if !s.Present {
			state = "pending"
			pending++
		}
		fmt.Fprintf(out, "  %-20s %-24s %s\n", s.Model, s.Table, state)
	}

	fmt.Fprintln(out, strings.Repeat("-", 50))
	if pending == 0 {
		fmt.Fprintln(out, "Schema is up to date")
		return
	}
	fmt.Fprintf(out, "%d table(s) pending, run 'timeline-api migrate up'\n", pending)
}
