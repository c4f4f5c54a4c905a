// Package workflow provides the shared lifecycle transition primitive used by
// the RFQ and order services. A service declares its legal moves as a rule
// table; Resolve is the single choke point that decides whether an action is
// legal from the entity's current status.
package workflow

import (
	dErrors "tailspend/pkg/domain-errors"
)

// Rule declares one legal lifecycle move.
type Rule struct {
	From   string
	Action string
	To     string
}

// Table is an ordered set of rules for one entity type.
type Table []Rule

// Resolve returns the target status for applying action from the current
// status. Unknown actions and wrong-status applications both come back as
// invalid transitions; the caller's authorization check runs before this.
func (t Table) Resolve(current, action string) (string, error) {
	known := false
	for _, r := range t {
		if r.Action != action {
			continue
		}
		known = true
		if r.From == current {
			return r.To, nil
		}
	}
	if !known {
		return "", dErrors.Newf(dErrors.CodeInvalidTransition, "unknown action %q", action)
	}
	return "", dErrors.Newf(dErrors.CodeInvalidTransition, "action %q is not legal from status %q", action, current)
}

// Actions lists the distinct actions the table knows, in declaration order.
func (t Table) Actions() []string {
	seen := make(map[string]bool, len(t))
	out := make([]string, 0, len(t))
	for _, r := range t {
		if !seen[r.Action] {
			seen[r.Action] = true
			out = append(out, r.Action)
		}
	}
	return out
}
