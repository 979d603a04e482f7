// Package envconf applies environment variable overrides to config fields.
// Every helper is a no-op when the variable name is empty or the variable is unset,
// so config sections can pass a partially populated Env struct.
package envconf

import (
	"os"
	"strconv"
	"strings"
)

// String overwrites dst with the value of name when set.
func String(name string, dst *string) {
	if v := lookup(name); v != "" {
		*dst = v
	}
}

// Int overwrites dst with the integer value of name when set and parseable.
func Int(name string, dst *int) {
	if v := lookup(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Bool overwrites dst with the boolean value of name when set and parseable.
func Bool(name string, dst *bool) {
	if v := lookup(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// List overwrites dst with the comma-separated values of name, trimming blanks.
func List(name string, dst *[]string) {
	v := lookup(name)
	if v == "" {
		return
	}

	parts := strings.Split(v, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	*dst = items
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
