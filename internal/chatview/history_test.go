package chatview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/diogo/chatpanel/internal/errors"
	"github.com/diogo/chatpanel/internal/models"
)

func TestLoadHistory_SkipsIncompleteRecords(t *testing.T) {
	c, v := newTestController(nil)

	n, err := c.LoadHistory(`[{"messageType":"User","messageText":"hi","messageDateTime":"2024-01-01T10:05:00"}, {"messageType":"Bad"}]`)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, v.entries, 1)
	assert.Equal(t, "You", v.entries[0].Sender)
	assert.Equal(t, "10:05", v.entries[0].Time)
	assert.Equal(t, "hi", v.entries[0].Body)
}

func TestLoadHistory_ReplacesExisting(t *testing.T) {
	c, v := newTestController(nil)
	c.AppendMessage(models.KindSystem, "old", "09:00")
	c.SetTypingIndicator(true)

	n, err := c.LoadHistory(`[
		{"messageType":"User","messageText":"q","messageDateTime":"2024-01-01T10:05:00","extra":1},
		{"messageType":"Assistant","messageText":"","messageDateTime":"2024-01-01T10:06:00"},
		{"messageType":"Assistant","messageText":42,"messageDateTime":"2024-01-01T10:06:00"},
		"not a record",
		{"messageType":"Assistant","messageText":"a","messageDateTime":"garbage"}
	]`)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "You,AI Assistant", senders(v.entries))
	assert.Equal(t, TimePlaceholder, v.entries[1].Time)
	assert.False(t, c.TypingVisible())
}

func TestLoadHistory_InvalidPayloadLeavesView(t *testing.T) {
	for _, payload := range []string{`not json`, `[{"messageType":`, `{"messageType":"User"}`, `"text"`, ``} {
		c, v := newTestController(&fakeNotifier{})
		c.AppendMessage(models.KindUser, "existing", "10:00")
		v.input = "pending"
		c.Submit()

		n, err := c.LoadHistory(payload)

		require.Error(t, err, payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidHistory)
		assert.Zero(t, n)
		assert.Len(t, v.entries, 1, payload)
		assert.True(t, c.Processing(), "state must be untouched on %q", payload)
	}
}

func TestLoadHistory_EmptyArrayClears(t *testing.T) {
	c, v := newTestController(nil)
	c.AppendMessage(models.KindUser, "existing", "10:00")

	n, err := c.LoadHistory(`[]`)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, v.entries)
}

func TestFormatTime(t *testing.T) {
	utc := time.UTC
	plus2 := time.FixedZone("plus2", 2*60*60)

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want string
	}{
		{"local seconds", "2024-01-01T10:05:00", utc, "10:05"},
		{"local fraction", "2024-01-01T07:03:09.123", utc, "07:03"},
		{"space separated", "2024-01-01 23:59:59", utc, "23:59"},
		{"minutes only", "2024-01-01T08:00", utc, "08:00"},
		{"date only", "2024-01-01", utc, "00:00"},
		{"zone-less ignores location", "2024-01-01T10:05:00", plus2, "10:05"},
		{"zoned converted", "2024-01-01T10:05:00Z", plus2, "12:05"},
		{"zoned offset", "2024-01-01T10:05:00.5+01:00", utc, "09:05"},
		{"not a date", "not-a-date", utc, TimePlaceholder},
		{"empty", "", utc, TimePlaceholder},
		{"bad month", "2024-13-01T10:05:00", utc, TimePlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(newFakeView(), nil, WithLocation(tt.loc))
			assert.Equal(t, tt.want, c.FormatTime(tt.in))
		})
	}

	assert.Equal(t, TimePlaceholder, FormatTime("not-a-date"))
}
