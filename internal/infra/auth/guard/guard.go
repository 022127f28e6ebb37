// Package guard runs the two-stage access pipeline for one request:
// authentication (credential to live identity) then authorization
// (identity against the operation's policy). Each stage produces a typed
// decision instead of signalling denial through errors; the only error
// path out of the pipeline is an infrastructure failure of the principal
// lookup.
package guard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"biblio/internal/domain"
	"biblio/internal/infra/auth/policy"
)

// Reason classifies a denial for server-side diagnostics. Every reason
// collapses to the same generic 401 at the transport boundary.
type Reason string

const (
	ReasonMissingCredential Reason = "MISSING_CREDENTIAL"
	ReasonInvalidCredential Reason = "INVALID_CREDENTIAL"
	ReasonExpiredCredential Reason = "EXPIRED_CREDENTIAL"
	ReasonPrincipalNotFound Reason = "PRINCIPAL_NOT_FOUND"
	ReasonInsufficientRole  Reason = "INSUFFICIENT_ROLE"
)

func (r Reason) Stage() string {
	if r == ReasonInsufficientRole {
		return "authorization"
	}
	return "authentication"
}

// Decision is the outcome of the pipeline. Allowed decisions carry the
// identity resolved from the live principal record, except on public
// operations where no identity is attached at all.
type Decision struct {
	Allowed  bool
	Identity *domain.Identity
	Reason   Reason
	Detail   string
}

func allowed(identity *domain.Identity) Decision {
	return Decision{Allowed: true, Identity: identity}
}

func denied(reason Reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

type Guard struct {
	policies   *policy.Registry
	verifier   domain.TokenVerifier
	principals domain.PrincipalStore
	now        func() time.Time
}

type Option func(*Guard)

func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

func New(policies *policy.Registry, verifier domain.TokenVerifier, principals domain.PrincipalStore, opts ...Option) *Guard {
	g := &Guard{
		policies:   policies,
		verifier:   verifier,
		principals: principals,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check decides whether the operation may proceed. credentials must be
// every value present in the designated header slot: exactly one value is
// acceptable, and absent or repeated headers both read as a missing
// credential. A non-nil error means the principal lookup itself failed
// and is a dependency failure, not a denial.
func (g *Guard) Check(ctx context.Context, operation string, credentials []string) (Decision, error) {
	p := g.policies.Lookup(operation)

	// Public operations succeed before the credential is even looked at,
	// so a missing, malformed, or expired token cannot fail them.
	if p.Public {
		return allowed(nil), nil
	}

	if len(credentials) != 1 || credentials[0] == "" {
		return denied(ReasonMissingCredential, "credential header absent or repeated"), nil
	}

	claims, err := g.verifier.Verify(credentials[0])
	if err != nil {
		return denied(ReasonInvalidCredential, err.Error()), nil
	}

	if !g.now().Before(claims.ExpiresAt) {
		return denied(ReasonExpiredCredential, "credential expired"), nil
	}

	// Only the subject id is trusted from the claim set; the role is
	// re-read from the live principal record.
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return denied(ReasonPrincipalNotFound, "unresolvable subject"), nil
	}
	principal, err := g.principals.FindPrincipalByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return denied(ReasonPrincipalNotFound, "no principal for subject"), nil
		}
		return Decision{}, fmt.Errorf("principal lookup: %w", err)
	}

	identity := &domain.Identity{UserID: principal.ID, Role: principal.Role}
	return g.authorize(p, identity), nil
}

// authorize applies the precedence rules: no tags admits any
// authenticated principal, Elevated admits ADMIN only, and a named-role
// set admits ADMIN unconditionally or any listed role.
func (g *Guard) authorize(p policy.Policy, identity *domain.Identity) Decision {
	if p.Roles == nil {
		if !p.Elevated {
			return allowed(identity)
		}
		if identity.Role == domain.RoleAdmin {
			return allowed(identity)
		}
		return denied(ReasonInsufficientRole, "operation requires the elevated role")
	}

	if identity.Role == domain.RoleAdmin {
		return allowed(identity)
	}
	for _, role := range p.Roles {
		if identity.Role == role {
			return allowed(identity)
		}
	}
	return denied(ReasonInsufficientRole, "role not permitted for operation")
}
