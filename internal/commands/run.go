package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/bridge"
	"github.com/diogo/chatpanel/internal/logging"
	"github.com/diogo/chatpanel/internal/render"
	"github.com/diogo/chatpanel/internal/tui"
)

var (
	hostURLFlag string
	titleFlag   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the terminal chat panel",
	Long: `Open the chat panel in the terminal and connect it to a host over a
websocket. Enter sends, Alt+Enter inserts a newline, Ctrl+L asks the host
to clear the conversation and Ctrl+Y copies the last message.

Logs go to the configured log file while the panel owns the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		url := cfg.HostURL
		if hostURLFlag != "" {
			url = hostURLFlag
		}

		logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		spin := newSpinner("Connecting to host")
		spin.start()
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, err := bridge.Dial(dialCtx, url, bridge.WithLogger(logger))
		cancel()
		if err != nil {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Cannot reach host"))
			fmt.Fprintln(os.Stderr, "  Hint: Start a host with 'chatpanel host' or pass --host")
			return err
		}
		spin.stopWithSuccess("Connected to " + url)

		palette, ok := render.PaletteByName(cfg.TUITheme)
		if !ok {
			logger.Warn().Str("theme", cfg.TUITheme).Msg("unknown theme, using default")
		}

		return tui.Run(ctx, conn, tui.Config{
			Title:           titleFlag,
			Render:          render.OptionsFromConfig(cfg),
			Palette:         palette,
			Logger:          logger,
			CopyToClipboard: cfg.CopyToClipboard,
		})
	},
}

func init() {
	runCmd.Flags().StringVar(&hostURLFlag, "host", "", "Host websocket URL (default from config)")
	runCmd.Flags().StringVar(&titleFlag, "title", "AI Chat", "Panel title")
}
