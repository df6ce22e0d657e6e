package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/host"
)

var (
	addrFlag  string
	delayFlag time.Duration
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the demo echo host",
	Long: `Run a host that panels can connect to at ws://<addr>/bridge. It keeps
the conversation in memory, replays it to panels that (re)connect and
answers every message with an echo after showing the typing indicator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := stderrLogger(cfg)

		addr := cfg.ListenAddr
		if addrFlag != "" {
			addr = addrFlag
		}
		delay := cfg.ReplyDelay()
		if cmd.Flags().Changed("delay") {
			delay = delayFlag
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := host.New(host.WithLogger(logger), host.WithDelay(delay))
		return h.ListenAndServe(ctx, addr)
	},
}

func init() {
	hostCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config)")
	hostCmd.Flags().DurationVar(&delayFlag, "delay", 600*time.Millisecond, "Typing indicator time before each reply")
}
