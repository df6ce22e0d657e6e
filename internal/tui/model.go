package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/chatpanel/internal/bridge"
	"github.com/diogo/chatpanel/internal/chatview"
	"github.com/diogo/chatpanel/internal/render"
)

// Message types for the TUI
type (
	// hostCallMsg carries an inbound bridge frame onto the update loop.
	hostCallMsg struct {
		frame bridge.Frame
	}
	bridgeClosedMsg struct {
		err error
	}
	readyMsg  struct{}
	copiedMsg struct {
		err error
	}
)

// Config configures the terminal panel.
type Config struct {
	Title           string
	Render          render.Options
	Palette         render.Palette
	Logger          zerolog.Logger
	CopyToClipboard bool
}

// Model is the terminal chat panel. It is the chatview.View of its
// controller, so it must be used through a pointer.
type Model struct {
	ctrl   *chatview.Controller
	cfg    Config
	logger zerolog.Logger

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// View state driven by the controller
	entries      []chatview.Entry
	typing       bool
	inputEnabled bool

	// Rendered bubbles by entry id, valid for renderedWidth
	rendered      map[string]string
	renderedWidth int

	ready        bool
	disconnected bool
	notice       string
	err          error

	width  int
	height int
}

var _ chatview.View = (*Model)(nil)

// NewModel creates a panel that reports user actions to notifier.
func NewModel(notifier chatview.Notifier, cfg Config) *Model {
	if cfg.Title == "" {
		cfg.Title = "Chat"
	}
	if cfg.Render.Width == 0 {
		cfg.Render = render.DefaultOptions()
	}
	if cfg.Palette.Name == "" {
		cfg.Palette = render.TokyoNight
	}
	ApplyPalette(cfg.Palette)

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = chatview.MaxInputHeight
	ta.SetHeight(chatview.AutoHeight(1))
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(palette.Text)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(palette.TextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	m := &Model{
		cfg:          cfg,
		logger:       cfg.Logger.With().Str("component", "tui").Logger(),
		textarea:     ta,
		spinner:      s,
		inputEnabled: true,
		rendered:     make(map[string]string),
	}
	m.ctrl = chatview.New(m, notifier, chatview.WithLogger(cfg.Logger))
	return m
}

// Controller returns the controller driving this panel.
func (m *Model) Controller() *chatview.Controller {
	return m.ctrl
}

// Init announces the panel to the host once the program is running.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		func() tea.Msg { return readyMsg{} },
	)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()

	case readyMsg:
		m.ctrl.Ready()

	case hostCallMsg:
		wasTyping := m.typing
		if err := chatview.HandleCall(m.ctrl, msg.frame); err != nil {
			m.logger.Warn().Err(err).Str("method", msg.frame.Name).Msg("host call rejected")
			m.err = err
		} else {
			m.err = nil
		}
		if m.typing && !wasTyping {
			cmds = append(cmds, m.spinner.Tick)
		}

	case bridgeClosedMsg:
		m.disconnected = true
		if msg.err != nil {
			m.err = msg.err
		}

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.notice = "Copied last message"
		}

	case spinner.TickMsg:
		if m.typing {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refresh()
		}

	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.ctrl.Submit()
			return m, nil

		case "alt+enter", "shift+enter":
			if m.inputEnabled {
				m.textarea.InsertString("\n")
				m.autoSize()
			}
			return m, nil

		case "ctrl+l":
			m.ctrl.RequestClear()
			return m, nil

		case "ctrl+y":
			if m.cfg.CopyToClipboard {
				if text, ok := m.lastMessageText(); ok {
					return m, copyToClipboard(text)
				}
			}
			return m, nil
		}

		if m.inputEnabled {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
			m.autoSize()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m *Model) lastMessageText() (string, bool) {
	if len(m.entries) == 0 {
		return "", false
	}
	return m.entries[len(m.entries)-1].Text, true
}

// autoSize grows the input with its content.
func (m *Model) autoSize() {
	h := chatview.AutoHeight(m.textarea.LineCount())
	if m.height > 0 {
		h = min(h, max(1, m.height/3))
	}
	if h != m.textarea.Height() {
		m.textarea.SetHeight(h)
		m.layout()
	}
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	headerHeight := 3
	inputHeight := m.textarea.Height() + 3
	statusHeight := 1
	errHeight := 0
	if m.err != nil {
		errHeight = 1
	}

	vpHeight := max(3, m.height-headerHeight-inputHeight-statusHeight-errHeight-2)
	contentWidth := max(20, m.width-4)

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
}

// RenderMessage implements chatview.View.
func (m *Model) RenderMessage(e chatview.Entry) {
	m.entries = append(m.entries, e)
	m.refresh()
}

// Clear implements chatview.View.
func (m *Model) Clear() {
	m.entries = nil
	m.typing = false
	m.rendered = make(map[string]string)
	m.refresh()
}

// ScrollToEnd implements chatview.View.
func (m *Model) ScrollToEnd() {
	m.refresh()
	m.viewport.GotoBottom()
}

// SetInputEnabled implements chatview.View.
func (m *Model) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	if enabled {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

// ShowTypingIndicator implements chatview.View.
func (m *Model) ShowTypingIndicator() {
	m.typing = true
	m.refresh()
}

// HideTypingIndicator implements chatview.View.
func (m *Model) HideTypingIndicator() {
	m.typing = false
	m.refresh()
}

// InputValue implements chatview.View.
func (m *Model) InputValue() string {
	return m.textarea.Value()
}

// ResetInput implements chatview.View.
func (m *Model) ResetInput() {
	m.textarea.Reset()
	m.autoSize()
}

// refresh rebuilds the viewport content from the entries.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	bubbleWidth := max(10, m.viewport.Width-6)
	if bubbleWidth != m.renderedWidth {
		m.rendered = make(map[string]string)
		m.renderedWidth = bubbleWidth
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderEntry(e, bubbleWidth))
		b.WriteString("\n")
	}
	if m.typing {
		if len(m.entries) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.spinner.View() + typingStyle.Render(" AI is thinking"))
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderEntry(e chatview.Entry, width int) string {
	if out, ok := m.rendered[e.ID]; ok {
		return out
	}

	body, err := render.Blocks(e.Blocks, m.cfg.Render.WithWidth(width-4), m.cfg.Palette)
	if err != nil {
		m.logger.Debug().Err(err).Str("id", e.ID).Msg("falling back to raw text")
		body = e.Text
	}

	label := labelFor(e.Kind).Render(e.Sender) + metaStyle.Render("  "+e.Time)
	out := label + "\n" + bubbleFor(e.Kind).Width(width).Render(body)
	m.rendered[e.ID] = out
	return out
}

// View renders the TUI
func (m *Model) View() string {
	if !m.ready {
		return waitingStyle.Render("  Initializing...")
	}

	contentWidth := m.viewport.Width
	var sections []string

	// Header
	status := subtitleStyle.Render("connected")
	if m.disconnected {
		status = errorStyle.Render("disconnected")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ "+m.cfg.Title),
		hintStyle.Render("  •  "),
		status,
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	// Messages
	messages := m.viewport.View()
	if len(m.entries) == 0 && !m.typing {
		messages = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	// Input
	label := inputLabelStyle.Render("You")
	if !m.inputEnabled {
		label = waitingStyle.Render("Waiting for reply...")
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View()),
	))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ %v", m.err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderWelcome() string {
	width := m.viewport.Width - 4
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render(m.cfg.Title),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
	)
	top := max(0, (m.viewport.Height-lipgloss.Height(content))/2)
	return strings.Repeat("\n", top) + content
}

func (m *Model) renderStatusBar(width int) string {
	if m.notice != "" {
		return noticeStyle.Width(width).Align(lipgloss.Center).Render(m.notice)
	}
	type shortcut struct{ key, desc string }
	shortcuts := []shortcut{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+L", "Clear"},
	}
	if m.cfg.CopyToClipboard {
		shortcuts = append(shortcuts, shortcut{"Ctrl+Y", "Copy"})
	}
	shortcuts = append(shortcuts, shortcut{"Esc", "Quit"})

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// Run starts the panel on conn and blocks until the user quits or ctx is
// cancelled. Host calls are delivered onto the program's update loop in
// arrival order.
func Run(ctx context.Context, conn *bridge.Conn, cfg Config) error {
	m := NewModel(conn, cfg)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	go func() {
		err := conn.Serve(ctx, bridge.HandlerFunc(func(f bridge.Frame) {
			p.Send(hostCallMsg{frame: f})
		}))
		p.Send(bridgeClosedMsg{err: err})
	}()

	_, err := p.Run()
	_ = conn.Close()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
