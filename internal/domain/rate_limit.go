package domain

import (
	"time"
)

// RateLimitRule is a fixed-window quota applied per key.
type RateLimitRule struct {
	Scope    string        `json:"scope"`
	Requests int           `json:"requests"`
	Window   time.Duration `json:"window"`
}

// RateLimitDecision is the outcome of counting one request against a rule.
type RateLimitDecision struct {
	Allowed   bool          `json:"allowed"`
	Limit     int64         `json:"limit"`
	Remaining int64         `json:"remaining"`
	ResetIn   time.Duration `json:"reset_in"`
}

const (
	RateLimitScopeIP   = "ip"
	RateLimitScopeUser = "user"
)
