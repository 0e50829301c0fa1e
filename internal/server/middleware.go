package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authmaint/internal/auth"
	"github.com/dmitrijs2005/authmaint/internal/common"
)

// requireToken verifies the Authorization bearer token before passing the
// request on.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if _, err := auth.GetAccountIDFromToken(token, h.secret); err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
