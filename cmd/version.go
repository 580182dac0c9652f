package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strconv"

	apiversion "github.com/killallgit/timeline-api/api/version"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/spf13/cobra"
)

// Build variables - these will be set during build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// buildInfo is what the version command reports
type buildInfo struct {
	Version        string `json:"version"`
	APIVersion     string `json:"api_version"`
	SnapshotFormat int    `json:"snapshot_format"`
	GitCommit      string `json:"git_commit"`
	BuildTime      string `json:"build_time"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:        Version,
		APIVersion:     apiversion.Version,
		SnapshotFormat: persistence.DocumentVersion,
		GitCommit:      GitCommit,
		BuildTime:      BuildTime,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the build of the timeline API together with the REST API version
and the snapshot format version it reads and writes. Snapshots with a
newer format than the one reported here are rejected on load.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print the build information as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := currentBuild()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", info.Version)
		return nil
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	printBuild(out, info)
	return nil
}

func printBuild(out io.Writer, info buildInfo) {
	fmt.Fprintln(out, headerStyle.Render("Timeline API"))
	rows := [][2]string{
		{"Version", "v" + info.Version},
		{"API", "v" + info.APIVersion},
		{"Snapshot format", strconv.Itoa(info.SnapshotFormat)},
		{"Git commit", info.GitCommit},
		{"Built", info.BuildTime},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %-16s %s\n", r[0], r[1])
	}
}
