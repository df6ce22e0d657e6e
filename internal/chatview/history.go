package chatview

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apperrors "github.com/diogo/chatpanel/internal/errors"
	"github.com/diogo/chatpanel/internal/models"
)

// TimePlaceholder is shown for timestamps that cannot be parsed.
const TimePlaceholder = "--:--"

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// LoadHistory replaces the conversation with the records in payload, a JSON
// array of {messageType, messageText, messageDateTime}. A payload that is not
// a JSON array is rejected before anything is cleared. Records missing a
// field are skipped. It returns the number of messages rendered.
func (c *Controller) LoadHistory(payload string) (int, error) {
	if !gjson.Valid(payload) {
		err := apperrors.NewPayloadError("not valid JSON")
		c.logger.Error().Err(err).Msg("history load aborted")
		return 0, err
	}
	root := gjson.Parse(payload)
	if !root.IsArray() {
		err := apperrors.NewPayloadError("expected a JSON array")
		c.logger.Error().Err(err).Msg("history load aborted")
		return 0, err
	}

	c.ClearMessages()

	rendered, skipped := 0, 0
	root.ForEach(func(_, rec gjson.Result) bool {
		kind, ok1 := stringField(rec, "messageType")
		text, ok2 := stringField(rec, "messageText")
		when, ok3 := stringField(rec, "messageDateTime")
		if !ok1 || !ok2 || !ok3 {
			skipped++
			return true
		}
		c.AppendMessage(models.Kind(kind), text, c.FormatTime(when))
		rendered++
		return true
	})

	c.logger.Debug().Int("rendered", rendered).Int("skipped", skipped).Msg("history loaded")
	return rendered, nil
}

func stringField(rec gjson.Result, name string) (string, bool) {
	v := rec.Get(name)
	if v.Type != gjson.String || v.Str == "" {
		return "", false
	}
	return v.Str, true
}

// FormatTime renders s as HH:MM in the controller's location.
func (c *Controller) FormatTime(s string) string {
	return formatTimeIn(s, c.loc)
}

// FormatTime renders a datetime string as zero-padded 24-hour HH:MM in the
// local zone, or TimePlaceholder when it cannot be parsed.
func FormatTime(s string) string {
	return formatTimeIn(s, time.Local)
}

func formatTimeIn(s string, loc *time.Location) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimePlaceholder
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc).Format("15:04")
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Format("15:04")
		}
	}
	return TimePlaceholder
}
