package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/internal/users"
)

func newTokens(t *testing.T) *auth.Tokens {
	t.Helper()
	cfg := &auth.Config{Secret: secret}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return auth.NewTokens(cfg)
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := newTokens(t)
	u := users.User{ID: uuid.New(), Login: "lead", Role: users.RoleExpert}

	raw, expires, err := tokens.Issue(u, true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if d := time.Until(expires); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("expiry: %s from now", d)
	}

	p, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.ID != u.ID || p.Login != "lead" || p.Role != users.RoleExpert || !p.Demo {
		t.Errorf("principal: got %+v", p)
	}
}

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestTokensParseRejects(t *testing.T) {
	tokens := newTokens(t)
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub":   uuid.NewString(),
			"iss":   "gidroatlas",
			"exp":   time.Now().Add(time.Hour).Unix(),
			"login": "guest",
			"role":  "guest",
		}
	}

	tests := []struct {
		name string
		raw  func() string
	}{
		{"garbage", func() string { return "not.a.token" }},
		{"wrong secret", func() string { return sign(t, secret+"x", valid()) }},
		{"expired", func() string {
			c := valid()
			c["exp"] = time.Now().Add(-time.Hour).Unix()
			return sign(t, secret, c)
		}},
		{"missing expiry", func() string {
			c := valid()
			delete(c, "exp")
			return sign(t, secret, c)
		}},
		{"wrong issuer", func() string {
			c := valid()
			c["iss"] = "elsewhere"
			return sign(t, secret, c)
		}},
		{"unknown role", func() string {
			c := valid()
			c["role"] = "admin"
			return sign(t, secret, c)
		}},
		{"bad subject", func() string {
			c := valid()
			c["sub"] = "42"
			return sign(t, secret, c)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tokens.Parse(tt.raw()); !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("got %v, want ErrInvalidToken", err)
			}
		})
	}
}
