// Package resolver expands a requested name into a flat execution plan.
//
// Resolution is depth-first and left-to-right: a command resolves to
// itself, a workflow resolves to the concatenation of its resolved
// steps in declared order. Expansion happens entirely up front, so
// structural errors (unknown references, cycles) are detected before
// any command runs.
//
// Cycle detection tracks the expansion ancestry per branch rather than
// a global visited set: the same sub-workflow may appear in several
// sibling branches of one resolution, as long as it never transitively
// contains itself.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"proj/internal/config"
)

// Sentinel errors for structural resolution failures. The concrete
// errors returned by [Resolve] wrap these, so callers can classify
// with errors.Is while still getting the full reference chain from
// the error message.
var (
	// ErrNotFound indicates a referenced name that is not declared.
	ErrNotFound = errors.New("unknown command or workflow")

	// ErrCycle indicates a workflow that transitively references itself.
	ErrCycle = errors.New("cyclic workflow reference")
)

// NotFoundError reports a reference to an undeclared name, with the
// chain of workflow names that led to it.
type NotFoundError struct {
	// Name is the missing reference.
	Name string

	// Chain is the workflow expansion path to the reference. Empty when
	// the missing name was requested directly.
	Chain []string
}

func (e *NotFoundError) Error() string {
	if len(e.Chain) == 0 {
		return fmt.Sprintf("unknown command or workflow %q", e.Name)
	}
	return fmt.Sprintf("unknown command or workflow %q (referenced via %s)",
		e.Name, strings.Join(e.Chain, " -> "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CycleError reports a workflow that transitively includes itself.
// Path holds the cycle, e.g. ["x", "y", "x"].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic workflow reference: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Plan is a flat, ordered sequence of commands ready for execution.
// It lives for a single run invocation.
type Plan []*config.Command

// Names returns the command names in plan order.
func (p Plan) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Name
	}
	return names
}

// Resolve expands name against the registry into a [Plan].
//
// It returns a [*NotFoundError] when name or any transitive step is
// not declared, and a [*CycleError] when a workflow transitively
// references itself. A successful resolution never returns an empty
// plan: every declared workflow has at least one step, and every leaf
// is a command.
func Resolve(reg *config.Registry, name string) (Plan, error) {
	r := resolution{
		reg:      reg,
		visiting: make(map[string]bool),
	}
	return r.expand(name)
}

// resolution carries the per-branch ancestry through the expansion.
type resolution struct {
	reg *config.Registry

	// visiting marks workflows on the current expansion branch.
	visiting map[string]bool

	// trail is the ordered ancestry, for error reporting.
	trail []string
}

func (r *resolution) expand(name string) (Plan, error) {
	entry, ok := r.reg.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Name: name, Chain: append([]string(nil), r.trail...)}
	}

	switch e := entry.(type) {
	case *config.Command:
		return Plan{e}, nil

	case *config.Workflow:
		if r.visiting[name] {
			path := append(append([]string(nil), r.trail...), name)
			return nil, &CycleError{Path: path}
		}

		r.visiting[name] = true
		r.trail = append(r.trail, name)

		var plan Plan
		for _, step := range e.Steps {
			sub, err := r.expand(step)
			if err != nil {
				return nil, err
			}
			plan = append(plan, sub...)
		}

		r.trail = r.trail[:len(r.trail)-1]
		delete(r.visiting, name)
		return plan, nil

	default:
		return nil, fmt.Errorf("unsupported entry kind %T for %q", entry, name)
	}
}
