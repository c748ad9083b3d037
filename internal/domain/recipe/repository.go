package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// RecipeRepository persists recipe aggregates together with their
// owned lists and items in one transactional boundary.
type RecipeRepository interface {
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Recipe, int64, error)
	FindByCreator(ctx context.Context, creatorID string, filter shared.Filter) ([]*Recipe, int64, error)
}

// IngredientRepository manages shared ingredient leaves. FindOrCreate
// relies on a unique index over the normalized name and an insert that
// does nothing on conflict, then re-reads, so concurrent callers
// converge on one row.
type IngredientRepository interface {
	FindByName(ctx context.Context, name string) (*Ingredient, error)
	FindOrCreate(ctx context.Context, ing *Ingredient) (*Ingredient, error)
}

// InstructionRepository manages shared instruction leaves keyed by
// their text.
type InstructionRepository interface {
	FindByText(ctx context.Context, text string) (*Instruction, error)
	FindOrCreate(ctx context.Context, ins *Instruction) (*Instruction, error)
}

// TagRepository manages shared tag leaves.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*Tag, error)
	FindOrCreate(ctx context.Context, t *Tag) (*Tag, error)
}
