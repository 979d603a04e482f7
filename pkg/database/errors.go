package database

import "errors"

// ErrNotReady indicates the database did not answer a ping within the connection timeout.
var ErrNotReady = errors.New("database not ready")
