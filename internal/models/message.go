package models

import (
	"strings"
	"time"
)

// Kind identifies who sent a message. Hosts send it as a raw string, so
// values outside the known set are carried through unchanged.
type Kind string

const (
	KindUser      Kind = "User"
	KindAssistant Kind = "Assistant"
	KindSystem    Kind = "System"
)

// Known reports whether k is one of the three sender kinds.
func (k Kind) Known() bool {
	switch k {
	case KindUser, KindAssistant, KindSystem:
		return true
	default:
		return false
	}
}

// Class returns the CSS modifier used for a message entry ("user", "assistant", ...).
func (k Kind) Class() string {
	return strings.ToLower(string(k))
}

// SenderLabel returns the display name shown above a message.
func SenderLabel(k Kind) string {
	switch k {
	case KindUser:
		return "You"
	case KindAssistant:
		return "AI Assistant"
	case KindSystem:
		return "System"
	default:
		return "Unknown"
	}
}

// Message represents a chat message for display
type Message struct {
	Kind      Kind
	Text      string
	Timestamp time.Time
}

// HistoryRecord is one element of a history payload exchanged with the host.
type HistoryRecord struct {
	MessageType     string `json:"messageType"`
	MessageText     string `json:"messageText"`
	MessageDateTime string `json:"messageDateTime"`
}

// NewHistoryRecord converts a message into its wire form.
func NewHistoryRecord(m Message) HistoryRecord {
	return HistoryRecord{
		MessageType:     string(m.Kind),
		MessageText:     m.Text,
		MessageDateTime: m.Timestamp.Format("2006-01-02T15:04:05"),
	}
}
