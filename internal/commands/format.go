package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/chatpanel/internal/content"
	"github.com/diogo/chatpanel/internal/render"
)

var (
	formatFileFlag   string
	formatPrettyFlag bool
)

var formatCmd = &cobra.Command{
	Use:   "format [text]",
	Short: "Print the HTML the panel renders for a message",
	Long: `Format message text the way the panel does: fenced code blocks,
inline code and pipe tables become markup, everything else is escaped.

Text is read from the argument, from --file, or from stdin. With --pretty
the message is drawn for the terminal instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readMessage(args)
		if err != nil {
			return err
		}
		if text == "" {
			return cmd.Help()
		}

		out := cmd.OutOrStdout()
		if !formatPrettyFlag {
			fmt.Fprintln(out, content.Format(text))
			return nil
		}

		cfg := loadConfig()
		palette, _ := render.PaletteByName(cfg.TUITheme)
		opts := render.OptionsFromConfig(cfg).WithWidth(getTerminalWidth())
		if !isStdoutTTY() {
			opts = opts.WithStyle(render.StyleNoTTY)
		}
		rendered, err := render.Blocks(content.Parse(text), opts, palette)
		if err != nil {
			return fmt.Errorf("failed to render message: %w", err)
		}
		fmt.Fprintln(out, rendered)
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatFileFlag, "file", "f", "", "Read the message from a file")
	formatCmd.Flags().BoolVarP(&formatPrettyFlag, "pretty", "p", false, "Render for the terminal instead of HTML")
}

// readMessage takes the message from --file, the argument, or piped stdin.
func readMessage(args []string) (string, error) {
	if formatFileFlag != "" {
		data, err := os.ReadFile(formatFileFlag)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if hasStdin() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}
