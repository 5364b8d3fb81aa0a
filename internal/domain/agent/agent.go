package agent

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Type represents agent type.
type Type string

const (
	TypeScheduler Type = "scheduler"
	TypeWorker    Type = "worker"
)

// Status represents agent status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOffline  Status = "offline"
)

// Source indicates where an agent is served from. Local agents run
// in-process; external agents are proxied to a remote HTTP endpoint.
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// Common errors.
var (
	ErrNotFound    = errors.New("agent not found")
	ErrDuplicateID = errors.New("duplicate agent id")
	ErrInactive    = errors.New("agent is not active")
)

// Agent represents a registered agent descriptor.
type Agent struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Type          Type       `json:"agent_type"`
	Capabilities  []string   `json:"capabilities"`
	Status        Status     `json:"status"`
	Source        Source     `json:"source"`
	CreatedAt     time.Time  `json:"created_at"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
}

// Update carries a partial update; nil fields are left untouched.
type Update struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Capabilities *[]string `json:"capabilities,omitempty"`
	Status       *Status   `json:"status,omitempty"`
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Type   Type
	Status Status
}

// Matches reports whether the agent satisfies the filter. Both
// predicates must hold when both are set.
func (f Filter) Matches(a *Agent) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// Identity derives the deterministic id for a name. Repeated
// registrations of the same name converge on one id instead of
// accumulating duplicates.
func Identity(name string) string {
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:])
}

// ParseType converts a wire value to a Type.
func ParseType(v string) (Type, error) {
	switch Type(v) {
	case TypeScheduler, TypeWorker:
		return Type(v), nil
	}
	return "", fmt.Errorf("unknown agent type: %q", v)
}

// ParseStatus converts a wire value to a Status.
func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusActive, StatusInactive, StatusOffline:
		return Status(v), nil
	}
	return "", fmt.Errorf("unknown agent status: %q", v)
}

// Validate checks fields required at registration time.
func (a *Agent) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.Type == "" {
		return errors.New("agent_type is required")
	}
	if _, err := ParseType(string(a.Type)); err != nil {
		return err
	}
	return nil
}
