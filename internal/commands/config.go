package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/config"
)

var configInitFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after the config file, .env and environment
overrides have been applied, and where the file lives. --init writes the
defaults to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		if configInitFlag {
			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote defaults to %s\n", path)
			return nil
		}

		cfg := loadConfig()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprintf(out, "# %s\n%s\n", path, data)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Write the default configuration file")
}
