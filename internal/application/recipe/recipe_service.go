package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

// RecipeService creates and serves recipes. Detailed creation runs the
// list composer; creator attribution goes through the account reader
// under the "main" policy and degrades to anonymous when the account
// cannot be found.
type RecipeService struct {
	recipes   recipe.RecipeRepository
	composer  listComposer
	accounts  acl.AccountReader
	followers acl.FollowerReader
	exec      *resilience.Executor
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipes recipe.RecipeRepository,
	ingredients recipe.IngredientRepository,
	instructions recipe.InstructionRepository,
	tags recipe.TagRepository,
	accounts acl.AccountReader,
	followers acl.FollowerReader,
	exec *resilience.Executor,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		composer: listComposer{
			ingredients:  ingredients,
			instructions: instructions,
			tags:         tags,
		},
		accounts:  accounts,
		followers: followers,
		exec:      exec,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateSimple creates a recipe with three empty owned lists.
func (s *RecipeService) CreateSimple(ctx context.Context, req CreateRecipeSimpleRequest) (*RecipeResponse, error) {
	creator, err := s.resolveCreator(ctx, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	r, err := recipe.NewRecipe(req.Title, req.Description, creator.ID, creator.Username,
		recipe.Visibility(req.Visibility), recipe.SkillLevel(req.SkillLevel))
	if err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, r)
	s.logger.Info("Recipe created", zap.String("recipe_id", r.ID.String()), zap.String("title", r.Title))
	return toRecipeResponse(r), nil
}

// CreateDetailed creates a recipe and composes its lists from the
// request. Absent lists become empty aggregates.
func (s *RecipeService) CreateDetailed(ctx context.Context, req CreateRecipeDetailedRequest) (*RecipeResponse, error) {
	creator, err := s.resolveCreator(ctx, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	r, err := recipe.NewRecipe(req.Title, req.Description, creator.ID, creator.Username,
		recipe.Visibility(req.Visibility), recipe.SkillLevel(req.SkillLevel))
	if err != nil {
		return nil, err
	}

	ingredients, err := s.composer.composeIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := s.composer.composeInstructions(ctx, req.Instructions)
	if err != nil {
		return nil, err
	}
	tags, err := s.composer.composeTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	r.AttachLists(ingredients, instructions, tags)

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, r)
	s.logger.Info("Detailed recipe created",
		zap.String("recipe_id", r.ID.String()),
		zap.Int("ingredients", len(ingredients.Items)),
		zap.Int("instructions", len(instructions.Items)),
		zap.Int("tags", len(tags.Items)))
	return toRecipeResponse(r), nil
}

// GetByID returns one full recipe if the viewer may read it. Hidden
// recipes answer not-found so their existence does not leak.
func (s *RecipeService) GetByID(ctx context.Context, id uuid.UUID, viewerID string) (*RecipeResponse, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visibleTo(ctx, r, viewerID) {
		return nil, recipe.ErrRecipeNotFound
	}
	return toRecipeResponse(r), nil
}

// visibleTo extends the recipe's own visibility rule with the follower
// lookup the domain cannot do itself. A failed lookup reads as not
// following.
func (s *RecipeService) visibleTo(ctx context.Context, r *recipe.Recipe, viewerID string) bool {
	if r.VisibleTo(viewerID) {
		return true
	}
	if r.Visibility != recipe.VisibilityFollowersOnly || s.followers == nil || viewerID == "" {
		return false
	}
	follows, err := s.followers.Follows(ctx, viewerID, r.CreatedBy)
	if err != nil {
		s.logger.Warn("Follower lookup failed, hiding recipe",
			zap.String("recipe_id", r.ID.String()),
			zap.String("viewer_id", viewerID),
			zap.Error(err))
		return false
	}
	return follows
}

// List returns a page of recipe summaries.
func (s *RecipeService) List(ctx context.Context, filter shared.Filter) (*ListRecipesResponse, error) {
	recipes, total, err := s.recipes.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toListing(recipes, total, filter), nil
}

// ListByCreator returns a page of recipes by one creator. The creator
// is confirmed against the account reader first, under the collection
// read policy, so listings for unknown accounts fail instead of
// returning an empty page.
func (s *RecipeService) ListByCreator(ctx context.Context, creatorID string, filter shared.Filter) (*ListRecipesResponse, error) {
	if s.accounts != nil {
		_, err := resilience.Execute(ctx, s.exec, "getAll", "accounts.get_ref", func(ctx context.Context) (acl.AccountRef, error) {
			return s.accounts.GetAccountRef(ctx, creatorID)
		})
		if err != nil {
			return nil, err
		}
	}

	recipes, total, err := s.recipes.FindByCreator(ctx, creatorID, filter)
	if err != nil {
		return nil, err
	}
	return s.toListing(recipes, total, filter), nil
}

// AddNote attaches a note to a recipe.
func (s *RecipeService) AddNote(ctx context.Context, id uuid.UUID, req AddNoteRequest) (*RecipeResponse, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.AddNote(req.Text); err != nil {
		return nil, err
	}
	if err := s.recipes.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRecipeResponse(r), nil
}

// RemoveNote deletes one note from a recipe.
func (s *RecipeService) RemoveNote(ctx context.Context, id uuid.UUID, noteID uuid.UUID) error {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.RemoveNote(noteID); err != nil {
		return err
	}
	return s.recipes.Update(ctx, r)
}

// Delete removes a recipe.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, r.ID); err != nil {
		return err
	}
	r.AddDomainEvent(recipe.NewRecipeDeletedEvent(r.ID))
	s.publishEvents(ctx, r)
	return nil
}

// resolveCreator looks the creator up through the account reader. An
// empty id or an unknown account yields the anonymous attribution; an
// exhausted dependency is a hard failure and surfaces to the caller.
func (s *RecipeService) resolveCreator(ctx context.Context, accountID string) (acl.AccountRef, error) {
	anonymous := acl.AccountRef{ID: recipe.AnonymousCreator, Username: recipe.AnonymousCreator}
	if accountID == "" || s.accounts == nil {
		return anonymous, nil
	}

	ref, err := resilience.Execute(ctx, s.exec, "main", "accounts.get_ref", func(ctx context.Context) (acl.AccountRef, error) {
		return s.accounts.GetAccountRef(ctx, accountID)
	})
	if err != nil {
		var derr *shared.DomainError
		if errors.As(err, &derr) && derr.Code != resilience.ErrRemoteCallExhausted.Code {
			s.logger.Debug("Creator account not found, attributing recipe to anonymous",
				zap.String("account_id", accountID))
			return anonymous, nil
		}
		s.logger.Error("Account lookup exhausted", zap.String("account_id", accountID), zap.Error(err))
		return acl.AccountRef{}, err
	}
	return ref, nil
}

func (s *RecipeService) toListing(recipes []*recipe.Recipe, total int64, filter shared.Filter) *ListRecipesResponse {
	resp := &ListRecipesResponse{
		Recipes:  make([]RecipeSummaryResponse, 0, len(recipes)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, r := range recipes {
		resp.Recipes = append(resp.Recipes, toRecipeSummary(r))
	}
	return resp
}

func (s *RecipeService) publishEvents(ctx context.Context, r *recipe.Recipe) {
	if s.publisher == nil {
		return
	}
	events := r.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish recipe events", zap.Error(err))
	}
	r.ClearDomainEvents()
}
