package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/ticket"
)

type CtxKey int

const (
	CtxTicketClaims CtxKey = iota
)

// TicketVerifier checks a session ticket.
type TicketVerifier interface {
	Verify(token string) (*ticket.Claims, error)
}

// BearerToken returns the ticket carried by r, either as a bearer token or
// in the "ticket" query parameter. The header wins when both are present.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("ticket")
}

// ClaimsFrom returns the ticket claims stored by [Auth].
func ClaimsFrom(ctx context.Context) (*ticket.Claims, bool) {
	claims, ok := ctx.Value(CtxTicketClaims).(*ticket.Claims)
	return claims, ok
}

// Auth rejects requests without a valid ticket with 401 and passes the
// claims of valid ones on through the request context.
func Auth(log logrus.FieldLogger, verifier TicketVerifier) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				log.WithError(err).Debug("ticket rejected")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxTicketClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
