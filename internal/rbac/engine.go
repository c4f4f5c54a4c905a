// Package rbac answers "may this role do that" for every other service. The
// engine is a pure lookup over an injected rule table and fails closed:
// unknown roles, unknown actions and unknown entity kinds all deny.
package rbac

import (
	"tailspend/internal/workflow"
	"tailspend/pkg/domain"
)

// Engine evaluates access questions against a fixed rule table.
type Engine struct {
	rules   map[domain.Role]RoleRules
	metrics *workflow.Metrics
}

// NewEngine builds an engine over the given rule table. Metrics may be nil.
func NewEngine(rules map[domain.Role]RoleRules, metrics *workflow.Metrics) *Engine {
	return &Engine{rules: rules, metrics: metrics}
}

// CanAccessDashboard reports whether the role may open the named dashboard.
func (e *Engine) CanAccessDashboard(role domain.Role, name string) bool {
	rr, ok := e.rules[role]
	if !ok {
		return false
	}
	for _, d := range rr.Dashboards {
		if d == name {
			return true
		}
	}
	e.deny(role, "dashboard:"+name)
	return false
}

// CanAccessScreen reports whether the role may open the named screen.
func (e *Engine) CanAccessScreen(role domain.Role, name string) bool {
	rr, ok := e.rules[role]
	if !ok {
		return false
	}
	for _, s := range rr.Screens {
		if s == name {
			return true
		}
	}
	e.deny(role, "screen:"+name)
	return false
}

// CanAccessAction reports whether the role may perform the named action.
func (e *Engine) CanAccessAction(role domain.Role, action string) bool {
	rr, ok := e.rules[role]
	if !ok {
		return false
	}
	if rr.Actions[action] {
		return true
	}
	e.deny(role, "action:"+action)
	return false
}

// DataScope returns the record visibility for the role on an entity kind.
// Unknown kinds come back as the zero Scope, which denies both own and
// others.
func (e *Engine) DataScope(role domain.Role, kind string) Scope {
	rr, ok := e.rules[role]
	if !ok {
		return Scope{}
	}
	return rr.Data[kind]
}

// CanSeeRecord applies the data scope to one record given whether the
// caller owns it.
func (e *Engine) CanSeeRecord(role domain.Role, kind string, owns bool) bool {
	scope := e.DataScope(role, kind)
	if owns {
		return scope.Own
	}
	return scope.Others
}

func (e *Engine) deny(role domain.Role, resource string) {
	e.metrics.RecordDenial(string(role), resource)
}
