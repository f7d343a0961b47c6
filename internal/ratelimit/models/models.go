package models

import (
	"net/http"
	"time"
)

// Class groups routes that share a request budget.
type Class string

const (
	ClassRead  Class = "read"
	ClassWrite Class = "write"
)

// ClassFor treats every state-changing method as a write.
func ClassFor(method string) Class {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ClassRead
	default:
		return ClassWrite
	}
}

// Limit is a request budget over a sliding window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result describes one admission decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, only set when not allowed
}

// Key scopes a caller's bucket to one class.
func Key(class Class, caller string) string {
	return "rl:" + string(class) + ":" + caller
}
