package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/bridge"
	"github.com/diogo/chatpanel/internal/chatview"
	"github.com/diogo/chatpanel/internal/models"
	"github.com/diogo/chatpanel/internal/panel"
)

var (
	headlessOutputFlag   string
	headlessMessageFlags []string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the panel over stdio without a terminal UI",
	Long: `Run the panel for a host that owns this process's stdin and stdout.
Bridge frames are exchanged as JSON lines. Messages passed with -m are typed
in order, each one after the host has answered the previous one. When the
host closes the stream the conversation is written as an HTML document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := stderrLogger(cfg)

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		doc, err := runHeadless(ctx, os.Stdin, os.Stdout, headlessOptions{
			title:    titleFlag,
			messages: headlessMessageFlags,
			logger:   logger,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("bridge failed")
		}

		if writeErr := writeDocument(doc, headlessOutputFlag); writeErr != nil {
			return writeErr
		}
		logger.Info().Str("output", headlessOutputFlag).Int("messages", len(doc.Entries())).Msg("transcript written")
		return nil
	},
}

func init() {
	headlessCmd.Flags().StringVarP(&headlessOutputFlag, "output", "o", "chatpanel.html", "Write the transcript to this file")
	headlessCmd.Flags().StringArrayVarP(&headlessMessageFlags, "message", "m", nil, "Message to send (repeatable)")
	headlessCmd.Flags().StringVar(&titleFlag, "title", "AI Chat", "Document title")
}

type headlessOptions struct {
	title    string
	messages []string
	logger   zerolog.Logger
}

// runHeadless drives a document panel over a JSON-lines bridge until the
// host closes the stream or ctx is cancelled.
func runHeadless(ctx context.Context, in io.Reader, out io.Writer, opts headlessOptions) (*panel.Document, error) {
	conn := bridge.NewConn(bridge.NewStream(in, out), bridge.WithLogger(opts.logger))
	doc := panel.NewDocument(opts.title)
	ctrl := chatview.New(doc, conn, chatview.WithLogger(opts.logger))

	loopCtx, cancel := context.WithCancel(context.Background())
	loop := chatview.NewLoop(64)
	go loop.Run(loopCtx)
	defer func() {
		cancel()
		<-loop.Done()
	}()

	pending := append([]string(nil), opts.messages...)
	// next types the following scripted message; it runs on the loop.
	next := func() {
		if len(pending) == 0 {
			return
		}
		doc.SetInput(pending[0])
		pending = pending[1:]
		ctrl.Submit()
	}

	loop.Call(ctrl.Ready)

	err := conn.Serve(ctx, bridge.HandlerFunc(func(f bridge.Frame) {
		loop.Do(func() {
			if err := chatview.HandleCall(ctrl, f); err != nil {
				opts.logger.Warn().Err(err).Str("method", f.Name).Msg("host call rejected")
				return
			}
			if answered(f) {
				next()
			}
		})
	}))

	// Let queued calls finish before the document is read.
	loop.Call(func() {})
	return doc, err
}

// answered reports whether f completes a turn: the history load that
// follows startup, or an assistant reply.
func answered(f bridge.Frame) bool {
	switch f.Name {
	case bridge.MethodLoadHistory, "LoadChatHistory":
		return true
	case bridge.MethodAppendMessage, "AddMessage":
		return f.Arg(0).String() == string(models.KindAssistant)
	default:
		return false
	}
}

func writeDocument(doc *panel.Document, path string) error {
	if path == "-" {
		_, err := doc.WriteTo(os.Stderr)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
