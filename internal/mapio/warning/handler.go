// Package warning routes recoverable map-format conditions through a
// caller-selected severity policy and defines the condition taxonomy.
package warning

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Policy decides what happens to a recoverable format condition.
type Policy int

const (
	// Silent applies the default and continues without recording anything.
	Silent Policy = iota
	// Collect applies the default, continues, and records the condition.
	Collect
	// Strict turns the condition into a fatal error.
	Strict
)

// String returns the configuration name of p.
func (p Policy) String() string {
	switch p {
	case Silent:
		return "silent"
	case Collect:
		return "collect"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration name to a Policy.
//
// Postcondition: Returns a valid Policy or a non-nil error.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "silent":
		return Silent, nil
	case "collect":
		return Collect, nil
	case "strict":
		return Strict, nil
	}
	return Silent, fmt.Errorf("unknown warning policy %q (want silent, collect or strict)", s)
}

// Handler applies one Policy for the lifetime of a single read or write.
// A Handler is not safe for concurrent use; each parse owns its own.
type Handler struct {
	policy     Policy
	logger     *zap.Logger
	session    string
	conditions []error
}

// NewHandler creates a Handler for one parse session.
//
// Precondition: logger may be nil, in which case nothing is logged.
// Postcondition: Returns a Handler with no recorded conditions.
func NewHandler(policy Policy, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		policy:  policy,
		logger:  logger,
		session: uuid.New().String(),
	}
}

// Policy returns the handler's policy.
func (h *Handler) Policy() Policy { return h.policy }

// SessionID identifies this handler in logs and reports.
func (h *Handler) SessionID() string { return h.session }

// Handle routes one condition through the policy.
//
// Precondition: cond is non-nil and has not been handled before.
// Postcondition: Returns nil if the caller should apply its default and
// continue, or cond itself if the caller must abort.
func (h *Handler) Handle(cond error) error {
	switch h.policy {
	case Silent:
		return nil
	case Collect:
		h.conditions = append(h.conditions, cond)
		fields := []zap.Field{zap.String("session", h.session), zap.Error(cond)}
		var c Condition
		if errors.As(cond, &c) {
			fields = append(fields, zap.String("kind", string(c.Kind())), zap.Int("line", c.Line()))
		}
		h.logger.Warn("map format condition", fields...)
		return nil
	default:
		return cond
	}
}

// Conditions returns every condition recorded so far, in the order raised.
func (h *Handler) Conditions() []error {
	out := make([]error, len(h.conditions))
	copy(out, h.conditions)
	return out
}

// Count returns how many recorded conditions have the given kind.
func (h *Handler) Count(kind Kind) int {
	n := 0
	for _, err := range h.conditions {
		var c Condition
		if errors.As(err, &c) && c.Kind() == kind {
			n++
		}
	}
	return n
}
