package cli

import (
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
	"github.com/spf13/cobra"
)

var importOpts shell.ImportOptions

func init() {
	importCmd.Flags().StringVar(&importOpts.SourcePath, "sourcePath", "", "Path of the resource to import")
	importCmd.Flags().StringVar(&importOpts.TargetName, "targetName", "", "Name of the imported resource")
	importCmd.Flags().StringVar(&importOpts.CurrentQuestion, "currentQuestion", "", "Question the resource belongs to")
	_ = importCmd.MarkFlagRequired("sourcePath")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a resource into an ADX project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := projectPath(args)
		if err != nil {
			return err
		}
		return runShell(cmd, "import", shell.ImportArgs(path, importOpts))
	},
}
