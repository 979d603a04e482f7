package auth

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/users"
)

type demoAccount struct {
	password string
	role     users.Role
}

var demoAccounts = map[string]demoAccount{
	"guest":  {password: "guest123", role: users.RoleGuest},
	"expert": {password: "expert123", role: users.RoleExpert},
}

// demoUser returns the built-in account for login when the password matches.
// Demo IDs are stable name-based UUIDs.
func demoUser(login, password string, now time.Time) (*users.User, bool) {
	acct, ok := demoAccounts[login]
	if !ok || subtle.ConstantTimeCompare([]byte(acct.password), []byte(password)) != 1 {
		return nil, false
	}
	return &users.User{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("gidroatlas-demo-"+login)),
		Login:     login,
		Role:      acct.role,
		CreatedAt: now,
	}, true
}
