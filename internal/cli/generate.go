package cli

import (
	"fmt"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/generator"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	generateOutputDir string
	generateTemplate  string
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func init() {
	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", ".", "Parent directory of the new project")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", generator.DefaultTemplate, "Template set to use")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate <adc|adp> <name>",
	Short: "Create a new ADX project from a template",
	Long: `Generate scaffolds a new ADC (control) or ADP (page) project named <name>
in the output directory. Author details come from the author.* settings.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(adx.TypeADC), string(adx.TypeADP)},
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := adx.ProjectType(strings.ToLower(args[0]))
		result, err := generator.Generate(generator.Options{
			Type:      typ,
			Template:  generateTemplate,
			OutputDir: generateOutputDir,
			Data:      generator.NewData(args[1], settings.Author),
		})
		if err != nil {
			return err
		}

		log := logger.Default()
		for _, w := range result.Warnings {
			log.Warning("%s", w)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Created %s project %s", strings.ToUpper(string(typ)), result.ProjectDir)))
		if err := result.Tree.Render(out); err != nil {
			return err
		}
		log.Success("%d file(s) generated", len(result.Files))
		return nil
	},
}
