// Package acl shields the Recipe context from the Account context.
package acl

import "context"

// AccountRef is the minimal creator information a recipe needs.
type AccountRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AccountReader resolves account references for recipe attribution.
// Implementations may call a remote service; lookups are advisory and
// callers fall back to an anonymous attribution when the read fails.
type AccountReader interface {
	GetAccountRef(ctx context.Context, accountID string) (AccountRef, error)
}

// FollowerReader answers whether one account follows another. The
// recipe context uses it to resolve followers-only visibility; a
// missing social record reads as not following.
type FollowerReader interface {
	Follows(ctx context.Context, followerID, targetID string) (bool, error)
}
