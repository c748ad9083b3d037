package account

import "context"

// Identity is an external identity-provider record
type Identity struct {
	ID       string
	Username string
	Email    string
}

// NewIdentity carries the fields required to create an external identity
type NewIdentity struct {
	Username   string
	Email      string
	Password   string
	GivenName  string
	FamilyName string
}

// IdentityProvider wraps the remote identity-provider admin API. Every
// call obtains its own admin token; nothing is cached between calls.
// Implementations do not retry; callers wrap invocations in a resilience
// policy.
type IdentityProvider interface {
	// CreateIdentity creates an external identity and returns its id.
	CreateIdentity(ctx context.Context, identity NewIdentity) (string, error)
	// DeleteIdentity removes an external identity.
	DeleteIdentity(ctx context.Context, externalID string) error
	// FindIdentityByUsername searches identities by username.
	FindIdentityByUsername(ctx context.Context, username string, exact bool) ([]Identity, error)
}
