package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
	"github.com/spf13/cobra"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print the version number only")
	versionCmd.Flags().Bool("json", false, "Print build information as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()

		if short, _ := cmd.Flags().GetBool("short"); short {
			_, err := fmt.Fprintln(out, info.Version)
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		_, err := fmt.Fprintf(out, "%s %s (%s, %s) built %s with %s\n",
			branding.CLIName(), info.Version, info.Commit, info.Platform, info.Date, info.GoVersion)
		return err
	},
}
