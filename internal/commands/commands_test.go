package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/chatpanel/internal/config"
	apperrors "github.com/diogo/chatpanel/internal/errors"
)

// withHome points HOME at a temporary directory for the rest of the test.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvHostURL, config.EnvListenAddr, config.EnvLogLevel, config.EnvTheme, config.EnvReplyDelay} {
		t.Setenv(key, "")
	}
	return home
}

// executeCommand runs the root command with args, resetting flag state first.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	formatFileFlag = ""
	formatPrettyFlag = false
	exportOutputFlag = ""
	configInitFlag = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "chatpanel" {
		t.Errorf("expected use 'chatpanel', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	want := map[string]bool{"run": false, "headless": false, "host": false, "format": false, "export": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	withHome(t)
	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "chatpanel "+Version) {
		t.Errorf("expected version output, got %q", out)
	}
}

func TestFormatCommand(t *testing.T) {
	withHome(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fenced code", "```js\nalert('hi')\n```", `<div class="code-block">alert('hi')</div>`},
		{"inline code", "run `go test`", "run <code>go test</code>"},
		{"escaping", "<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"table", "a | b\n1 | 2\n3 | 4", `<div class="table-container"><table><tr><th>a</th><th>b</th></tr>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "format", tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, out)
			}
		})
	}
}

func TestFormatCommand_File(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "msg.txt")
	if err := os.WriteFile(path, []byte("use `make`"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "format", "-f", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<code>make</code>") {
		t.Errorf("expected inline code from file, got %q", out)
	}

	if _, err := executeCommand(t, "format", "-f", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestFormatCommand_Pretty(t *testing.T) {
	withHome(t)
	out, err := executeCommand(t, "format", "--pretty", "```go\nx := 1\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "code-block") || !strings.Contains(out, "x") {
		t.Errorf("expected terminal rendering, got %q", out)
	}
}

func TestExportCommand(t *testing.T) {
	withHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	payload := `[{"messageType":"User","messageText":"hi","messageDateTime":"2024-01-01T10:05:00"},{"messageType":"Bad"}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "export", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<span class="message-sender">You</span><span>10:05</span>`) {
		t.Errorf("expected the user message, got %q", out)
	}
	if strings.Count(out, `class="message-bubble"`) != 1 {
		t.Error("expected exactly one message")
	}

	outFile := filepath.Join(dir, "chat.html")
	if _, err := executeCommand(t, "export", path, "-o", outFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("expected an HTML page")
	}
}

func TestExportCommand_InvalidPayload(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand(t, "export", path)
	if !apperrors.IsPayloadError(err) {
		t.Errorf("expected payload error, got %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	withHome(t)
	out, err := executeCommand(t, "config")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "config.json") || !strings.Contains(out, `"host_url"`) {
		t.Errorf("expected path and config, got %q", out)
	}
}

func TestConfigCommand_Init(t *testing.T) {
	withHome(t)
	out, err := executeCommand(t, "config", "--init")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Wrote defaults") {
		t.Errorf("unexpected output %q", out)
	}
	path, _ := config.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file at %s: %v", path, err)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}

	out := formatErrorMessage(apperrors.NewUnavailableError("notify", "MessageSent"), "Send")
	if !strings.Contains(out, "chatpanel host") {
		t.Errorf("expected host hint, got %s", out)
	}

	out = formatErrorMessage(apperrors.NewPayloadError("bad"), "Export")
	if !strings.Contains(out, "JSON array") {
		t.Errorf("expected payload hint, got %s", out)
	}
}
