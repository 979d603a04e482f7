package users_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gidroatlas/gidroatlas/internal/users"
)

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		role     users.Role
		required users.Role
		want     bool
	}{
		{users.RoleGuest, users.RoleGuest, true},
		{users.RoleExpert, users.RoleGuest, true},
		{users.RoleExpert, users.RoleExpert, true},
		{users.RoleGuest, users.RoleExpert, false},
		{"admin", users.RoleGuest, false},
		{users.RoleExpert, "admin", false},
	}

	for _, tt := range tests {
		if got := tt.role.Allows(tt.required); got != tt.want {
			t.Errorf("%s allows %s: got %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name     string
		cmd      users.CreateCommand
		wantErr  bool
		wantRole users.Role
	}{
		{"defaults to guest", users.CreateCommand{Login: " inspector ", Password: "secret1"}, false, users.RoleGuest},
		{"expert", users.CreateCommand{Login: "lead", Password: "secret1", Role: users.RoleExpert}, false, users.RoleExpert},
		{"missing login", users.CreateCommand{Password: "secret1"}, true, ""},
		{"short password", users.CreateCommand{Login: "a", Password: "123"}, true, ""},
		{"unknown role", users.CreateCommand{Login: "a", Password: "secret1", Role: "admin"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
			err := cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, users.ErrInvalidInput) {
					t.Errorf("error %v does not wrap ErrInvalidInput", err)
				}
				return
			}
			if cmd.Role != tt.wantRole {
				t.Errorf("role: got %s, want %s", cmd.Role, tt.wantRole)
			}
			if cmd.Login != "inspector" && tt.name == "defaults to guest" {
				t.Errorf("login not trimmed: %q", cmd.Login)
			}
		})
	}
}

func TestUpdateCommandValidate(t *testing.T) {
	keep := users.UpdateCommand{Login: "lead"}
	if err := keep.Validate(); err != nil {
		t.Errorf("empty password: %v", err)
	}

	short := users.UpdateCommand{Login: "lead", Password: "123"}
	if err := short.Validate(); !errors.Is(err, users.ErrInvalidInput) {
		t.Errorf("short password: got %v", err)
	}

	blank := users.UpdateCommand{Login: "  "}
	if err := blank.Validate(); !errors.Is(err, users.ErrInvalidInput) {
		t.Errorf("blank login: got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("expert123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "expert123" {
		t.Fatal("password stored in clear")
	}
	if !users.CheckPassword(hash, "expert123") {
		t.Error("correct password rejected")
	}
	if users.CheckPassword(hash, "expert124") {
		t.Error("wrong password accepted")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{users.ErrNotFound, http.StatusNotFound},
		{users.ErrDuplicate, http.StatusConflict},
		{users.ErrInvalidInput, http.StatusBadRequest},
		{users.ErrInvalidPassword, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := users.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.err, got, tt.want)
		}
	}
}
