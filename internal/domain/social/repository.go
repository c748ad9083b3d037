package social

import (
	"context"

	"github.com/google/uuid"
)

// SocialRecordRepository persists SocialRecord aggregates. A record is
// always written whole (read-modify-write); the store's row lock is the
// only concurrency-control primitive relied upon.
type SocialRecordRepository interface {
	Create(ctx context.Context, record *SocialRecord) error
	Save(ctx context.Context, record *SocialRecord) error
	// SavePair persists both endpoints of a follow edge within one local
	// transactional boundary where the store supports it. A crash between
	// the two writes leaves a transient asymmetric edge until the next
	// retry converges it.
	SavePair(ctx context.Context, a, b *SocialRecord) error
	Delete(ctx context.Context, accountID string) error
	FindByID(ctx context.Context, accountID string) (*SocialRecord, error)
	Exists(ctx context.Context, accountID string) (bool, error)
}

// CookbookRepository persists cookbooks owned by social records
type CookbookRepository interface {
	Create(ctx context.Context, ownerID string, cb *Cookbook) error
	Save(ctx context.Context, cb *Cookbook) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Cookbook, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Cookbook, error)
}
