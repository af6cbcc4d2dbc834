package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudmlm/go-sitecms/pkg/interfaces"
)

func TestTokenValidator(t *testing.T) {
	t.Parallel()

	validator := NewTokenValidator("s3cret")
	cases := []struct {
		name    string
		prepare func(r *http.Request)
		ok      bool
	}{
		{name: "no credentials", prepare: func(*http.Request) {}},
		{name: "bearer", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer s3cret") }, ok: true},
		{name: "lowercase scheme", prepare: func(r *http.Request) { r.Header.Set("Authorization", "bearer s3cret") }, ok: true},
		{name: "wrong bearer", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }},
		{name: "basic scheme", prepare: func(r *http.Request) { r.Header.Set("Authorization", "Basic s3cret") }},
		{name: "cookie", prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s3cret"}) }, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/api/content", nil)
			tc.prepare(req)
			session, err := validator.ValidateSession(context.Background(), req)
			if tc.ok {
				if err != nil || session == nil || session.Subject != "admin" {
					t.Fatalf("expected session, got %v %v", session, err)
				}
				return
			}
			if !errors.Is(err, interfaces.ErrNoSession) {
				t.Fatalf("expected ErrNoSession, got %v", err)
			}
		})
	}
}

func TestEmptyTokenRejectsEverything(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	if _, err := NewTokenValidator("").ValidateSession(context.Background(), req); !errors.Is(err, interfaces.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
