// Package peer provides the Account-context lookups the other bounded
// contexts consume through their anti-corruption interfaces. The local
// variant calls the account application service in process; the HTTP
// variant crosses to a separately deployed account service.
package peer

import (
	"context"

	appaccount "github.com/tkforgeworks/cookconnect/backend/internal/application/account"
	recipeacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe/acl"
	socialacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/social/acl"
)

// LocalDirectory serves account summaries from the in-process account
// service. Used when all contexts run in one deployment.
type LocalDirectory struct {
	accounts *appaccount.AccountService
}

// NewLocalDirectory creates an in-process account directory.
func NewLocalDirectory(accounts *appaccount.AccountService) *LocalDirectory {
	return &LocalDirectory{accounts: accounts}
}

// GetAccountByID resolves a social-context account summary.
func (d *LocalDirectory) GetAccountByID(ctx context.Context, accountID string) (socialacl.AccountSummary, error) {
	summary, err := d.accounts.GetSummary(ctx, accountID)
	if err != nil {
		return socialacl.AccountSummary{}, err
	}
	return socialacl.AccountSummary{
		ID:                   summary.ID,
		Username:             summary.Username,
		HasSocialInteraction: summary.HasSocialInteraction,
		PrivateAccount:       summary.PrivateAccount,
	}, nil
}

// AddSocialFlag marks the account as holding a social record.
func (d *LocalDirectory) AddSocialFlag(ctx context.Context, accountID string) error {
	return d.accounts.UpdateSocialFlag(ctx, accountID, true)
}

// RemoveSocialFlag clears the marker after the record is torn down.
func (d *LocalDirectory) RemoveSocialFlag(ctx context.Context, accountID string) error {
	return d.accounts.UpdateSocialFlag(ctx, accountID, false)
}

// GetAccountRef resolves creator attribution for the recipe context.
func (d *LocalDirectory) GetAccountRef(ctx context.Context, accountID string) (recipeacl.AccountRef, error) {
	summary, err := d.accounts.GetSummary(ctx, accountID)
	if err != nil {
		return recipeacl.AccountRef{}, err
	}
	return recipeacl.AccountRef{ID: summary.ID, Username: summary.Username}, nil
}

var (
	_ socialacl.AccountDirectory = (*LocalDirectory)(nil)
	_ recipeacl.AccountReader    = (*LocalDirectory)(nil)
)
