package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Overview and trailer views fan out to several catalog calls.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
