// Package commands provides CLI commands for chatpanel.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/config"
	"github.com/diogo/chatpanel/internal/logging"
)

var (
	// Global flags
	logLevelFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatpanel",
	Short: "Chat panel for host applications",
	Long: `chatpanel is a chat side panel that a host application drives over a
small bridge: the panel reports what the user types, the host answers by
appending messages, toggling the typing indicator and loading history.

Examples:
  chatpanel host                         Start the demo echo host
  chatpanel run                          Open the terminal panel
  chatpanel headless -o chat.html        Run over stdio, write an HTML transcript
  chatpanel format "use ` + "`go test`" + `"        Print the HTML for a message
  chatpanel export history.json -o chat.html`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "chatpanel %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig returns the effective configuration. A broken config file is
// reported and the defaults are used.
func loadConfig() config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	return cfg
}

// stderrLogger is the logger for commands that do not own the terminal.
func stderrLogger(cfg config.Config) zerolog.Logger {
	return logging.New(cfg.LogLevel, os.Stderr)
}

// commandContext returns the command context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
