package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence/models"
)

var recipeOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// GormRecipeRepository implements RecipeRepository using GORM. A recipe
// is written together with its owned lists, items and notes in one
// transaction; the shared leaves are created beforehand through the
// leaf repositories.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// Create persists a new recipe aggregate
func (r *GormRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := models.RecipeModelFromDomain(rec)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Ingredients.Items.Ingredient", "Instructions.Items.Instruction", "Tags.Items.Tag").
			Create(model).Error
	})
}

// Update persists the recipe whole, replacing lists, items and notes
func (r *GormRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := models.RecipeModelFromDomain(rec)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeChildren(tx, rec.ID); err != nil {
			return err
		}
		return tx.Omit("Ingredients.Items.Ingredient", "Instructions.Items.Instruction", "Tags.Items.Tag").
			Session(&gorm.Session{FullSaveAssociations: true}).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(model).Error
	})
}

func deleteRecipeChildren(tx *gorm.DB, recipeID uuid.UUID) error {
	type listTable struct {
		list any
		item any
	}
	for _, t := range []listTable{
		{&models.IngredientListModel{}, &models.IngredientItemModel{}},
		{&models.InstructionListModel{}, &models.InstructionItemModel{}},
		{&models.TagListModel{}, &models.TagItemModel{}},
	} {
		var listIDs []uuid.UUID
		if err := tx.Model(t.list).Where("recipe_id = ?", recipeID).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(t.item).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(t.list).Error; err != nil {
			return err
		}
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeNoteModel{}).Error
}

// Delete removes the recipe; owned rows cascade
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeChildren(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID loads a recipe with its lists, items, leaves and notes
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model models.RecipeModel
	if err := r.preloaded(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds recipes matching the filter with a total count
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*recipe.Recipe, int64, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx).Model(&models.RecipeModel{}), filter)
}

// FindByCreator finds the recipes of one creator
func (r *GormRecipeRepository) FindByCreator(ctx context.Context, creatorID string, filter shared.Filter) ([]*recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RecipeModel{}).Where("created_by = ?", creatorID)
	return r.findWhere(ctx, query, filter)
}

func (r *GormRecipeRepository) findWhere(ctx context.Context, query *gorm.DB, filter shared.Filter) ([]*recipe.Recipe, int64, error) {
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipeModels []models.RecipeModel
	if err := r.preloaded(applyFilter(query, filter, recipeOrderColumns)).Find(&recipeModels).Error; err != nil {
		return nil, 0, err
	}

	recipes := make([]*recipe.Recipe, len(recipeModels))
	for i := range recipeModels {
		recipes[i] = recipeModels[i].ToDomain()
	}
	return recipes, total, nil
}

func (r *GormRecipeRepository) preloaded(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Ingredients.Items.Ingredient").
		Preload("Ingredients.Items").
		Preload("Ingredients").
		Preload("Instructions.Items.Instruction").
		Preload("Instructions.Items").
		Preload("Instructions").
		Preload("Tags.Items.Tag").
		Preload("Tags.Items").
		Preload("Tags").
		Preload("Notes")
}

// GormIngredientRepository manages the shared ingredient leaves
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByName finds an ingredient by its normalized name
func (r *GormIngredientRepository) FindByName(ctx context.Context, name string) (*recipe.Ingredient, error) {
	var model models.IngredientModel
	if err := r.db.WithContext(ctx).
		First(&model, "name = ?", recipe.NormalizeLeafName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomainLeaf(), nil
}

// FindOrCreate inserts the leaf, doing nothing on a name conflict, then
// re-reads the surviving row so concurrent callers converge on it.
func (r *GormIngredientRepository) FindOrCreate(ctx context.Context, ing *recipe.Ingredient) (*recipe.Ingredient, error) {
	model := models.IngredientModelFromDomain(ing)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByName(ctx, ing.Name)
}

// GormInstructionRepository manages the shared instruction leaves
type GormInstructionRepository struct {
	db *gorm.DB
}

// NewGormInstructionRepository creates a new GormInstructionRepository
func NewGormInstructionRepository(db *gorm.DB) *GormInstructionRepository {
	return &GormInstructionRepository{db: db}
}

// FindByText finds an instruction by its text
func (r *GormInstructionRepository) FindByText(ctx context.Context, text string) (*recipe.Instruction, error) {
	var model models.InstructionModel
	if err := r.db.WithContext(ctx).First(&model, "text = ?", text).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomainLeaf(), nil
}

// FindOrCreate inserts the leaf, doing nothing on a text conflict, then
// re-reads the surviving row.
func (r *GormInstructionRepository) FindOrCreate(ctx context.Context, ins *recipe.Instruction) (*recipe.Instruction, error) {
	model := models.InstructionModelFromDomain(ins)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "text"}}, DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByText(ctx, ins.Text)
}

// GormTagRepository manages the shared tag leaves
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByName finds a tag by its normalized name
func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*recipe.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).
		First(&model, "name = ?", recipe.NormalizeLeafName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomainLeaf(), nil
}

// FindOrCreate inserts the leaf, doing nothing on a name conflict, then
// re-reads the surviving row.
func (r *GormTagRepository) FindOrCreate(ctx context.Context, t *recipe.Tag) (*recipe.Tag, error) {
	model := models.TagModelFromDomain(t)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByName(ctx, t.Name)
}

var (
	_ recipe.RecipeRepository      = (*GormRecipeRepository)(nil)
	_ recipe.IngredientRepository  = (*GormIngredientRepository)(nil)
	_ recipe.InstructionRepository = (*GormInstructionRepository)(nil)
	_ recipe.TagRepository         = (*GormTagRepository)(nil)
)
