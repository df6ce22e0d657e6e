package chatview

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/diogo/chatpanel/internal/bridge"
	apperrors "github.com/diogo/chatpanel/internal/errors"
	"github.com/diogo/chatpanel/internal/models"
)

// Method names used by earlier hosts.
const (
	aliasAddMessage          = "AddMessage"
	aliasClearMessages       = "ClearMessages"
	aliasLoadChatHistory     = "LoadChatHistory"
	aliasShowTypingIndicator = "ShowTypingIndicator"
)

// HandleCall runs an inbound host call against c. Unknown methods and bad
// arguments are reported without touching the controller.
func HandleCall(c *Controller, f bridge.Frame) error {
	if f.Type != bridge.FrameCall {
		return apperrors.NewArgumentError(f.Name, "not a call frame")
	}

	switch f.Name {
	case bridge.MethodAppendMessage, aliasAddMessage:
		kind, text := f.Arg(0), f.Arg(1)
		if kind.Type != gjson.String || text.Type != gjson.String {
			return apperrors.NewArgumentError(f.Name, "expected kind and text strings")
		}
		ts := f.Arg(2)
		stamp := ts.String()
		if !ts.Exists() || ts.Type == gjson.Null {
			stamp = time.Now().In(c.loc).Format("15:04")
		}
		c.AppendMessage(models.Kind(kind.Str), text.Str, stamp)
		return nil

	case bridge.MethodClearMessages, aliasClearMessages:
		c.ClearMessages()
		return nil

	case bridge.MethodLoadHistory, aliasLoadChatHistory:
		arg := f.Arg(0)
		var payload string
		switch {
		case arg.Type == gjson.String:
			payload = arg.Str
		case arg.IsArray():
			payload = arg.Raw
		default:
			return apperrors.NewArgumentError(f.Name, "expected a history payload")
		}
		_, err := c.LoadHistory(payload)
		return err

	case bridge.MethodSetTypingIndicator, aliasShowTypingIndicator:
		arg := f.Arg(0)
		if arg.Type != gjson.True && arg.Type != gjson.False {
			return apperrors.NewArgumentError(f.Name, "expected a boolean")
		}
		c.SetTypingIndicator(arg.Bool())
		return nil

	default:
		return apperrors.NewUnknownMethodError(f.Name)
	}
}
