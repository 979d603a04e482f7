// Package auth authenticates callers and issues bearer tokens. Stored
// accounts are checked first; the built-in demo accounts are accepted when
// the login is unknown or the account store is unavailable.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidroatlas/gidroatlas/internal/users"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
)

// Session is the result of a successful login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      users.User `json:"user"`
	Demo      bool       `json:"demo"`
}

// System defines the public contract for authentication.
type System interface {
	Handler() *Handler
	Login(ctx context.Context, login, password string) (*Session, error)
	// Identify returns the middleware that resolves bearer tokens.
	Identify() middleware.Func
}

type authenticator struct {
	users  users.System
	tokens *Tokens
	demo   bool
	logger *slog.Logger
}

// New creates the authentication System.
func New(cfg *Config, accounts users.System, logger *slog.Logger) System {
	return &authenticator{
		users:  accounts,
		tokens: NewTokens(cfg),
		demo:   cfg.DemoUsersEnabled(),
		logger: logger.With("system", "auth"),
	}
}

func (a *authenticator) Handler() *Handler {
	return NewHandler(a, a.logger)
}

func (a *authenticator) Identify() middleware.Func {
	return Identify(a.tokens, a.logger)
}

func (a *authenticator) Login(ctx context.Context, login, password string) (*Session, error) {
	u, err := a.users.Verify(ctx, login, password)
	switch {
	case err == nil:
		return a.session(*u, false)
	case errors.Is(err, users.ErrInvalidPassword):
		a.logger.Info("login rejected", "login", login)
		return nil, ErrInvalidCredentials
	}

	storeFailed := !errors.Is(err, users.ErrNotFound)
	if storeFailed {
		a.logger.Warn("account store unavailable during login", "login", login, "error", err)
	}

	if a.demo {
		if du, ok := demoUser(login, password, a.tokens.now()); ok {
			a.logger.Info("demo login", "login", login, "store_failed", storeFailed)
			return a.session(*du, true)
		}
	}

	if storeFailed {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	return nil, ErrInvalidCredentials
}

func (a *authenticator) session(u users.User, demo bool) (*Session, error) {
	token, expires, err := a.tokens.Issue(u, demo)
	if err != nil {
		return nil, err
	}
	a.logger.Info("login succeeded", "login", u.Login, "role", u.Role, "demo", demo)
	return &Session{Token: token, ExpiresAt: expires, User: u, Demo: demo}, nil
}
