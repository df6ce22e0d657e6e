// Package bridge carries calls and notifications between the chat panel and
// its host application.
//
// The channel is deliberately narrow: the panel notifies the host of user
// actions (events) and the host drives the panel through a handful of
// methods (calls). Every frame on the wire is a single JSON object:
//
//	{"type":"event","name":"MessageSent","args":["hello"]}
//	{"type":"call","name":"appendMessage","args":["Assistant","hi","10:05"]}
//
// Frames travel over a websocket (Dial / Accept) or as JSON lines over any
// reader and writer pair (NewStream), so a host may also embed the panel as
// a child process speaking on stdio.
package bridge

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// Events sent by the panel to the host.
const (
	EventMessageSent = "MessageSent"
	EventChatCleared = "ChatCleared"
	EventAddInReady  = "AddInReady"
)

// Methods the host may call on the panel.
const (
	MethodAppendMessage      = "appendMessage"
	MethodClearMessages      = "clearMessages"
	MethodLoadHistory        = "loadHistory"
	MethodSetTypingIndicator = "setTypingIndicator"
)

// Frame types.
const (
	FrameCall  = "call"
	FrameEvent = "event"
)

// Frame is one message on the bridge.
type Frame struct {
	Type string          `json:"type"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// NewFrame encodes args (any JSON-marshalable value, nil for none) into a frame.
func NewFrame(typ, name string, args any) (Frame, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: typ, Name: name, Args: raw}, nil
}

// Arg returns the i-th positional argument.
func (f Frame) Arg(i int) gjson.Result {
	return gjson.GetBytes(f.Args, strconv.Itoa(i))
}

// NumArgs returns the number of positional arguments; a missing or
// non-array args field counts as zero.
func (f Frame) NumArgs() int {
	r := gjson.ParseBytes(f.Args)
	if !r.IsArray() {
		return 0
	}
	return len(r.Array())
}
