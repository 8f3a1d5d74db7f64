package middlewarex

import (
	"log/slog"
	"net/http"

	"mercado/pkg/contextx"
	"mercado/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		log := logger(ctx).With(
			logx.Stringer(logx.FieldTraceID, traceID),
			logx.Stringer(logx.FieldURL, r.URL),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldIP, r.RemoteAddr),
		)

		if userID, userErr := contextx.UserIDFromContext(ctx); userErr == nil {
			log = log.With(logx.Stringer(logx.FieldUserID, userID))
		}

		ctx = contextx.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
