package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/chatview"
	"github.com/diogo/chatpanel/internal/panel"
)

var exportOutputFlag string

var exportCmd = &cobra.Command{
	Use:   "export <history.json>",
	Short: "Render a saved history payload as an HTML page",
	Long: `Load a history payload (a JSON array of {messageType, messageText,
messageDateTime}) through the panel and write the result as a standalone
HTML page. Incomplete records are skipped, as they are in the panel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := stderrLogger(cfg)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		doc := panel.NewDocument(titleFlag)
		ctrl := chatview.New(doc, nil, chatview.WithLogger(logger))
		n, err := ctrl.LoadHistory(string(data))
		if err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Cannot export "+args[0]))
			return err
		}

		if exportOutputFlag == "" {
			_, err = doc.WriteTo(cmd.OutOrStdout())
			return err
		}
		if err := writeDocument(doc, exportOutputFlag); err != nil {
			return err
		}
		logger.Info().Int("messages", n).Str("output", exportOutputFlag).Msg("history exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&titleFlag, "title", "AI Chat", "Document title")
}
