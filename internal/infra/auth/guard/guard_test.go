package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"biblio/internal/domain"
	"biblio/internal/infra/auth/policy"
)

type stubVerifier struct {
	claims map[string]domain.ClaimSet
}

func (v *stubVerifier) Verify(token string) (domain.ClaimSet, error) {
	claims, ok := v.claims[token]
	if !ok {
		return domain.ClaimSet{}, errors.New("invalid token")
	}
	return claims, nil
}

type stubPrincipals struct {
	users map[int64]domain.User
	err   error
}

func (s *stubPrincipals) FindPrincipalByID(ctx context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

var testNow = time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

func newTestGuard(registry *policy.Registry, principals *stubPrincipals) *Guard {
	verifier := &stubVerifier{claims: map[string]domain.ClaimSet{
		"basic-token": {
			Subject:   "1",
			Role:      domain.RoleBasic,
			IssuedAt:  testNow.Add(-time.Minute),
			ExpiresAt: testNow.Add(time.Hour),
		},
		"admin-token": {
			Subject:   "2",
			Role:      domain.RoleAdmin,
			IssuedAt:  testNow.Add(-time.Minute),
			ExpiresAt: testNow.Add(time.Hour),
		},
		"expired-token": {
			Subject:   "1",
			Role:      domain.RoleBasic,
			IssuedAt:  testNow.Add(-2 * time.Hour),
			ExpiresAt: testNow.Add(-time.Hour),
		},
		"stale-token": {
			Subject:   "99",
			Role:      domain.RoleBasic,
			IssuedAt:  testNow.Add(-time.Minute),
			ExpiresAt: testNow.Add(time.Hour),
		},
	}}
	return New(registry, verifier, principals, WithClock(func() time.Time { return testNow }))
}

func defaultPrincipals() *stubPrincipals {
	return &stubPrincipals{users: map[int64]domain.User{
		1: {ID: 1, Username: "reader", Role: domain.RoleBasic},
		2: {ID: 2, Username: "librarian", Role: domain.RoleAdmin},
	}}
}

func TestCheck_PublicShortCircuit(t *testing.T) {
	registry := policy.NewRegistry()
	registry.Declare("books.list", policy.Public())
	g := newTestGuard(registry, defaultPrincipals())

	// Public operations succeed with no identity regardless of what the
	// credential slot holds.
	cases := []struct {
		name        string
		credentials []string
	}{
		{"no header", nil},
		{"malformed header", []string{"garbage"}},
		{"expired token", []string{"expired-token"}},
		{"repeated header", []string{"basic-token", "basic-token"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := g.Check(context.Background(), "books.list", tc.credentials)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if !decision.Allowed {
				t.Fatalf("expected allowed, got %+v", decision)
			}
			if decision.Identity != nil {
				t.Fatal("public path must not attach an identity")
			}
		})
	}
}

func TestCheck_Denials(t *testing.T) {
	registry := policy.NewRegistry()
	registry.Declare("loans.create", policy.ForRoles(domain.RoleBasic))
	registry.Declare("books.create", policy.AdminOnly())
	g := newTestGuard(registry, defaultPrincipals())

	cases := []struct {
		name        string
		operation   string
		credentials []string
		reason      Reason
	}{
		{"header absent", "loans.create", nil, ReasonMissingCredential},
		{"header repeated", "loans.create", []string{"basic-token", "admin-token"}, ReasonMissingCredential},
		{"forged token", "loans.create", []string{"garbage"}, ReasonInvalidCredential},
		{"expired token", "loans.create", []string{"expired-token"}, ReasonExpiredCredential},
		{"deleted account", "loans.create", []string{"stale-token"}, ReasonPrincipalNotFound},
		{"basic on admin-only", "books.create", []string{"basic-token"}, ReasonInsufficientRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := g.Check(context.Background(), tc.operation, tc.credentials)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if decision.Allowed {
				t.Fatal("expected denial")
			}
			if decision.Reason != tc.reason {
				t.Fatalf("expected %s, got %s", tc.reason, decision.Reason)
			}
		})
	}
}

func TestCheck_ElevatedOverridesNamedRoles(t *testing.T) {
	// ADMIN is not in the named set but passes anyway.
	registry := policy.NewRegistry()
	registry.Declare("loans.create", policy.ForRoles(domain.RoleBasic))
	g := newTestGuard(registry, defaultPrincipals())

	decision, err := g.Check(context.Background(), "loans.create", []string{"admin-token"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allowed, got %+v", decision)
	}
	if decision.Identity == nil || decision.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", decision.Identity)
	}
}

func TestCheck_DefaultAuthenticated(t *testing.T) {
	registry := policy.NewRegistry()
	g := newTestGuard(registry, defaultPrincipals())

	decision, err := g.Check(context.Background(), "profiles.create", []string{"basic-token"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allowed, got %+v", decision)
	}
	if decision.Identity == nil || decision.Identity.UserID != 1 {
		t.Fatalf("unexpected identity: %+v", decision.Identity)
	}

	decision, err = g.Check(context.Background(), "profiles.create", nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if decision.Allowed || decision.Reason != ReasonMissingCredential {
		t.Fatalf("expected MissingCredential, got %+v", decision)
	}
}

func TestCheck_IdentityComesFromLiveRecord(t *testing.T) {
	// The token says BASIC but the live record was promoted to ADMIN:
	// the attached identity must carry the live role.
	registry := policy.NewRegistry()
	registry.Declare("books.create", policy.AdminOnly())
	principals := &stubPrincipals{users: map[int64]domain.User{
		1: {ID: 1, Username: "reader", Role: domain.RoleAdmin},
	}}
	g := newTestGuard(registry, principals)

	decision, err := g.Check(context.Background(), "books.create", []string{"basic-token"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allowed, got %+v", decision)
	}
	if decision.Identity.Role != domain.RoleAdmin {
		t.Fatalf("expected live role ADMIN, got %s", decision.Identity.Role)
	}
}

func TestCheck_LookupFailureIsNotADenial(t *testing.T) {
	registry := policy.NewRegistry()
	principals := defaultPrincipals()
	principals.err = errors.New("connection refused")
	g := newTestGuard(registry, principals)

	_, err := g.Check(context.Background(), "profiles.create", []string{"basic-token"})
	if err == nil {
		t.Fatal("expected dependency failure to propagate")
	}
}

func TestCheck_CancelledContextPropagates(t *testing.T) {
	registry := policy.NewRegistry()
	g := newTestGuard(registry, defaultPrincipals())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Check(ctx, "profiles.create", []string{"basic-token"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReason_Stage(t *testing.T) {
	if ReasonInsufficientRole.Stage() != "authorization" {
		t.Fatal("InsufficientRole belongs to the authorization stage")
	}
	for _, r := range []Reason{ReasonMissingCredential, ReasonInvalidCredential, ReasonExpiredCredential, ReasonPrincipalNotFound} {
		if r.Stage() != "authentication" {
			t.Fatalf("%s should be an authentication-stage reason", r)
		}
	}
}
