package chatview

import (
	"fmt"
	"strings"

	apperrors "github.com/diogo/chatpanel/internal/errors"
)

type fakeView struct {
	entries      []Entry
	typing       bool
	inputEnabled bool
	input        string
	ops          []string
}

func newFakeView() *fakeView {
	return &fakeView{inputEnabled: true}
}

func (v *fakeView) RenderMessage(e Entry) {
	if v.typing {
		panic("message rendered below typing indicator")
	}
	v.entries = append(v.entries, e)
	v.ops = append(v.ops, "render")
}

func (v *fakeView) Clear() {
	v.entries = nil
	v.typing = false
	v.ops = append(v.ops, "clear")
}

func (v *fakeView) ScrollToEnd() { v.ops = append(v.ops, "scroll") }

func (v *fakeView) SetInputEnabled(enabled bool) { v.inputEnabled = enabled }

func (v *fakeView) ShowTypingIndicator() {
	v.typing = true
	v.ops = append(v.ops, "typing:on")
}

func (v *fakeView) HideTypingIndicator() {
	v.typing = false
	v.ops = append(v.ops, "typing:off")
}

func (v *fakeView) InputValue() string { return v.input }

func (v *fakeView) ResetInput() {
	v.input = ""
	v.ops = append(v.ops, "reset")
}

type sent struct {
	event string
	args  any
}

type fakeNotifier struct {
	sent []sent
	err  error
}

func (n *fakeNotifier) Notify(event string, args any) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sent{event: event, args: args})
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("msg-%d", n)
	}
}

func senders(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Sender)
	}
	return strings.Join(parts, ",")
}

var errHostFailed = apperrors.NewBridgeError("notify", "MessageSent", fmt.Errorf("host threw"))
