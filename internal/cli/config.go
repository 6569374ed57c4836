package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write adxutil settings stored at ~/.adxutil/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, displayValue(key, value))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnownKey(args[0]) {
			return fmt.Errorf("unknown config key %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every configuration value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, key := range config.Keys {
			fmt.Fprintf(out, "%s = %s\n", key, displayValue(key, config.Get(key)))
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file against its schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FilePath()
		log := logger.Default()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Message("No config file at %s, defaults apply", path)
			return nil
		}

		result, err := config.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				log.Error("%s: %s", issue.Path, issue.Message)
			}
			return fmt.Errorf("%s has %d issue(s)", path, len(result.Issues))
		}
		log.Success("%s is valid", path)
		return nil
	},
}

// displayValue masks secrets.
func displayValue(key, value string) string {
	if key == config.KeyPublishToken && value != "" {
		return strings.Repeat("*", 8)
	}
	return value
}
