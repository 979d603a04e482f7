package users

import (
	"github.com/gidroatlas/gidroatlas/pkg/query"
	"github.com/gidroatlas/gidroatlas/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("login", "Login").
	Project("role", "Role").
	Project("created_at", "CreatedAt")

var returning = projection.Returning()

var defaultSort = query.SortField{Field: "Login"}

// Filters narrows user listings.
type Filters struct {
	Role *Role `json:"role,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Role", f.Role)
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Login, &u.Role, &u.CreatedAt)
	return u, err
}

type credentials struct {
	User
	hash string
}

func scanCredentials(s repository.Scanner) (credentials, error) {
	var c credentials
	err := s.Scan(&c.ID, &c.Login, &c.Role, &c.CreatedAt, &c.hash)
	return c, err
}
