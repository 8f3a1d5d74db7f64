package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/rs/xid"

	"mercado/pkg/contextx"
	"mercado/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logging tags every incoming command with a trace id and the caller.
func Logging() th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if update.Message == nil || update.Message.From == nil {
			return ctx.Next(update)
		}

		logger(ctx).Debug("command received",
			slog.String(logx.FieldTraceID, xid.New().String()),
			slog.Int64(logx.FieldUserID, update.Message.From.ID),
			slog.String("text", update.Message.Text),
		)

		return ctx.Next(update)
	}
}
