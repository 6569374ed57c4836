package cli

import (
	"fmt"

	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/publisher"
	"github.com/spf13/cobra"
)

var publishNoTest bool

func init() {
	publishCmd.Flags().BoolVar(&publishNoTest, "no-test", false, "Skip the unit tests")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [path]",
	Short: "Build an ADX project and upload the archive",
	Long: `Publish builds the project at path (default: current directory) and uploads
the archive to the endpoint set with:

  adxutil config set ` + config.KeyPublishURL + ` <url>
  adxutil config set ` + config.KeyPublishToken + ` <token>`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Publish.URL == "" {
			return publisher.ErrNoEndpoint
		}
		path, err := projectPath(args)
		if err != nil {
			return err
		}

		archive, _, err := newBuilder(path, publishNoTest, "").Build(cmd.Context())
		if err != nil {
			return err
		}

		p := publisher.New(settings.Publish.URL, settings.Publish.Token, publisher.WithVersion(buildVersion))
		receipt, err := p.Publish(cmd.Context(), archive)
		if err != nil {
			return fmt.Errorf("publishing %s: %w", archive, err)
		}

		log := logger.Default()
		if receipt.URL != "" {
			log.Message("Published at %s", receipt.URL)
		}
		log.Success("published %s (id %s, sha256 %s)", archive, receipt.ID, receipt.Checksum)
		return nil
	},
}
