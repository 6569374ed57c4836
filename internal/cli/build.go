package cli

import (
	"github.com/AskiaADX/ADXStudio-sub004/internal/builder"
	"github.com/spf13/cobra"
)

var (
	buildNoTest    bool
	buildOutputDir string
)

func init() {
	buildCmd.Flags().BoolVar(&buildNoTest, "no-test", false, "Skip the unit tests")
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "", "Directory to write the archive to (default: <path>/bin)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Validate and package an ADX project",
	Long: `Build validates the project at path (default: current directory) and writes
bin/<name>.adc or bin/<name>.adp. The schema and auto-test checks always run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := projectPath(args)
		if err != nil {
			return err
		}
		_, _, err = newBuilder(path, buildNoTest, buildOutputDir).Build(cmd.Context())
		return err
	},
}

func newBuilder(path string, noTest bool, outputDir string) *builder.Builder {
	opts := validatorOptions(path)
	opts.SkipTests = noTest
	return builder.New(builder.Options{Options: opts, OutputDir: outputDir})
}
