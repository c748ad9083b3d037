package account

import (
	"context"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// AccountRepository persists Account aggregates. Implementations return
// shared.ErrNotFound for missing rows.
type AccountRepository interface {
	Create(ctx context.Context, acct *Account) error
	Update(ctx context.Context, acct *Account) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Account, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
