package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleBasic Role = "BASIC"
	RoleAdmin Role = "ADMIN"
)

// ClaimSet is the decoded payload of a credential token. It is immutable
// once issued; the role inside it is a snapshot taken at issuance time
// and is never trusted for authorization decisions.
type ClaimSet struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the authenticated identity attached to a request after a
// live principal lookup. The public path carries no identity at all.
type Identity struct {
	UserID int64
	Role   Role
}

type TokenSigner interface {
	Sign(subject string, role Role) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (ClaimSet, error)
}

// PrincipalStore resolves a claim-set subject to the live user record.
// Implementations must return ErrNotFound when the subject does not
// resolve; any other error is an infrastructure failure.
type PrincipalStore interface {
	FindPrincipalByID(ctx context.Context, id int64) (*User, error)
}
