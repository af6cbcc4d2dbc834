// Package auth holds the bundled admin session validator. Real deployments
// plug in their own interfaces.SessionValidator.
package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

// SessionCookie is the cookie checked when no bearer token is sent.
const SessionCookie = "admin_session"

// TokenValidator accepts requests carrying a shared admin token, either as
// a bearer token or in the admin_session cookie.
type TokenValidator struct {
	token   []byte
	subject string
}

// NewTokenValidator returns a validator for token. An empty token rejects
// every request.
func NewTokenValidator(token string) *TokenValidator {
	return &TokenValidator{token: []byte(strings.TrimSpace(token)), subject: "admin"}
}

func (v *TokenValidator) ValidateSession(_ context.Context, r *http.Request) (*interfaces.Session, error) {
	if v == nil || len(v.token) == 0 || r == nil {
		return nil, interfaces.ErrNoSession
	}
	presented := bearerToken(r)
	if presented == "" {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			presented = strings.TrimSpace(cookie.Value)
		}
	}
	if presented == "" || subtle.ConstantTimeCompare([]byte(presented), v.token) != 1 {
		return nil, interfaces.ErrNoSession
	}
	return &interfaces.Session{Subject: v.subject, Roles: []string{"admin"}}, nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

var _ interfaces.SessionValidator = (*TokenValidator)(nil)
