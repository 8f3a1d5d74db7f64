package middlewarex

import (
	"net/http"

	"mercado/pkg/contextx"
)

const userIDHeader = "X-User-Id"

// UserID lifts the caller id supplied by an upstream gateway into the
// context, so request logs can be attributed.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(userIDHeader); userID != "" {
			r = r.WithContext(contextx.WithUserID(r.Context(), contextx.UserID(userID)))
		}

		next.ServeHTTP(w, r)
	})
}
