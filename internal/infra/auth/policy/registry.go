// Package policy holds the per-operation access rules. Rules are declared
// once at startup in an explicit table keyed by operation id and are
// read-only at request time.
package policy

import (
	"fmt"

	"biblio/internal/domain"
)

// Policy is the declarative access rule attached to one operation. The
// zero value means "any authenticated principal": operations default to
// requiring authentication but no particular role, and callers opt into
// stricter checks explicitly.
type Policy struct {
	// Public operations skip authentication entirely.
	Public bool
	// Elevated restricts the operation to ADMIN.
	Elevated bool
	// Roles lists the named roles that may proceed. nil means unset;
	// ADMIN always passes a named-role check whether listed or not.
	Roles []domain.Role
}

func Public() Policy {
	return Policy{Public: true}
}

func AdminOnly() Policy {
	return Policy{Elevated: true}
}

// ForRoles panics on an empty set: a nil Roles slice means "any
// authenticated principal", and an accidental zero-argument call must
// not silently declare that.
func ForRoles(roles ...domain.Role) Policy {
	if len(roles) == 0 {
		panic("policy: ForRoles requires at least one role")
	}
	return Policy{Roles: roles}
}

type Registry struct {
	policies map[string]Policy
}

func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]Policy)}
}

// Declare attaches a policy to an operation id. Declaring the same
// operation twice is a wiring bug and panics, like duplicate routes on a
// mux would.
func (r *Registry) Declare(operation string, p Policy) {
	if operation == "" {
		panic("policy: empty operation id")
	}
	if _, ok := r.policies[operation]; ok {
		panic(fmt.Sprintf("policy: duplicate declaration for %q", operation))
	}
	r.policies[operation] = p
}

// Lookup returns the declared policy, or the zero value (authenticated
// access, no role restriction) for undeclared operations.
func (r *Registry) Lookup(operation string) Policy {
	return r.policies[operation]
}
