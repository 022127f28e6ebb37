package policy

import (
	"testing"

	"biblio/internal/domain"
)

func TestLookup_UndeclaredDefaultsToAuthenticated(t *testing.T) {
	r := NewRegistry()
	p := r.Lookup("loans.create")
	if p.Public || p.Elevated || p.Roles != nil {
		t.Fatalf("expected zero-value policy, got %+v", p)
	}
}

func TestLookup_Declared(t *testing.T) {
	r := NewRegistry()
	r.Declare("books.list", Public())
	r.Declare("books.create", AdminOnly())
	r.Declare("loans.create", ForRoles(domain.RoleBasic))

	if !r.Lookup("books.list").Public {
		t.Fatal("expected public policy")
	}
	if !r.Lookup("books.create").Elevated {
		t.Fatal("expected elevated policy")
	}
	roles := r.Lookup("loans.create").Roles
	if len(roles) != 1 || roles[0] != domain.RoleBasic {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestForRoles_EmptySetPanics(t *testing.T) {
	// An empty set would collapse to the nil "any authenticated" default
	// and silently widen the operation.
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty role set")
		}
	}()
	ForRoles()
}

func TestDeclare_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Declare("books.list", Public())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate declaration")
		}
	}()
	r.Declare("books.list", AdminOnly())
}
