package cli

import (
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validateNoTest     bool
	validateNoXML      bool
	validateNoAutoTest bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateNoTest, "no-test", false, "Skip the auto-generated and unit tests")
	validateCmd.Flags().BoolVar(&validateNoXML, "no-xml", false, "Skip the config.xml schema and manifest checks")
	validateCmd.Flags().BoolVar(&validateNoAutoTest, "no-autoTest", false, "Skip the auto-generated tests")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate an ADX project",
	Long: `Validate runs the checks on the ADX project at path (default: current directory):
directory structure, file extensions, config.xml schema, info, constraints,
outputs, properties, master page, then the auto-generated and unit tests.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := projectPath(args)
		if err != nil {
			return err
		}

		opts := validatorOptions(path)
		opts.SkipTests = validateNoTest
		opts.SkipXML = validateNoXML
		opts.SkipAutoTest = validateNoAutoTest

		_, err = validator.New(opts).Validate(cmd.Context())
		return err
	},
}
