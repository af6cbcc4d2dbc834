package interfaces

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoSession is returned by SessionValidator implementations when the
// request carries no usable admin session.
var ErrNoSession = errors.New("session: missing or invalid admin session")

// Session describes the authenticated admin behind a request.
type Session struct {
	Subject string
	Roles   []string
}

// SessionValidator checks admin sessions. Authentication itself lives in an
// external provider; the backend only asks whether a request is allowed.
type SessionValidator interface {
	ValidateSession(ctx context.Context, r *http.Request) (*Session, error)
}
