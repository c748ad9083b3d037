// Package acl isolates the Social context from the Account context.
// Social records are keyed by account identifiers owned elsewhere; the
// directory interface is the only way the social domain reaches the
// account side, whether in-process or over the wire.
package acl

import (
	"context"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// AccountSummary is the Social context's local view of an account.
// It carries only the fields social operations need to validate a
// counterpart and render follow lists.
type AccountSummary struct {
	ID                   string `json:"id"`
	Username             string `json:"username"`
	HasSocialInteraction bool   `json:"hasSocialInteraction"`
	PrivateAccount       bool   `json:"privateAccount"`
}

// Validate checks the summary carries a usable identity.
func (s AccountSummary) Validate() error {
	if s.ID == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_REF", "Account reference has no identifier")
	}
	return nil
}

// AccountDirectory is the outbound contract toward the Account context.
// Implementations live in the infrastructure layer; calls may cross a
// process boundary and should be wrapped by the caller's resilience
// policy, never retried here.
type AccountDirectory interface {
	// GetAccountByID resolves an account summary or a not-found error.
	GetAccountByID(ctx context.Context, accountID string) (AccountSummary, error)

	// AddSocialFlag marks the account as having a social record.
	AddSocialFlag(ctx context.Context, accountID string) error

	// RemoveSocialFlag clears the social marker after teardown.
	RemoveSocialFlag(ctx context.Context, accountID string) error
}
