package recipe

import (
	"github.com/google/uuid"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Event types emitted by the recipe aggregate.
const (
	EventTypeRecipeCreated = "recipe.created"
	EventTypeRecipeDeleted = "recipe.deleted"
)

// RecipeCreatedEvent fires when a recipe is first composed.
type RecipeCreatedEvent struct {
	shared.BaseDomainEvent
	Title     string `json:"title"`
	CreatedBy string `json:"createdBy"`
}

func NewRecipeCreatedEvent(recipeID uuid.UUID, title, createdBy string) *RecipeCreatedEvent {
	return &RecipeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, "Recipe", recipeID.String()),
		Title:           title,
		CreatedBy:       createdBy,
	}
}

// RecipeDeletedEvent fires when a recipe is removed.
type RecipeDeletedEvent struct {
	shared.BaseDomainEvent
}

func NewRecipeDeletedEvent(recipeID uuid.UUID) *RecipeDeletedEvent {
	return &RecipeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeDeleted, "Recipe", recipeID.String()),
	}
}
