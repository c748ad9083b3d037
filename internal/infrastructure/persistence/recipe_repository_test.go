package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence/models"
)

func setupRecipeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.RecipeModel{},
		&models.RecipeNoteModel{},
		&models.IngredientModel{},
		&models.InstructionModel{},
		&models.TagModel{},
		&models.IngredientListModel{},
		&models.IngredientItemModel{},
		&models.InstructionListModel{},
		&models.InstructionItemModel{},
		&models.TagListModel{},
		&models.TagItemModel{},
	)
	require.NoError(t, err)

	return db
}

func newStoredRecipe(t *testing.T, db *gorm.DB, title, createdBy string) *recipe.Recipe {
	t.Helper()
	ctx := context.Background()

	rec, err := recipe.NewRecipe(title, "", createdBy, "tester", recipe.VisibilityPublic, recipe.SkillBeginner)
	require.NoError(t, err)

	ingredients := NewGormIngredientRepository(db)
	salt, err := recipe.NewIngredient("Salt")
	require.NoError(t, err)
	salt, err = ingredients.FindOrCreate(ctx, salt)
	require.NoError(t, err)

	list := recipe.NewIngredientList()
	require.NoError(t, list.Add(*salt, decimal.NewFromInt(1), recipe.MeasurementPinch))
	rec.AttachLists(list, nil, nil)

	require.NoError(t, NewGormRecipeRepository(db).Create(ctx, rec))
	return rec
}

func TestGormRecipeRepository_CreateAndFind(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	rec := newStoredRecipe(t, db, "Boiled Eggs", "ext-1")

	found, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boiled Eggs", found.Title)
	require.NotNil(t, found.Ingredients)
	require.Len(t, found.Ingredients.Items, 1)
	assert.Equal(t, "salt", found.Ingredients.Items[0].Ingredient.Name)
	assert.Equal(t, recipe.MeasurementPinch, found.Ingredients.Items[0].Measurement)
	require.NotNil(t, found.Instructions)
	assert.Empty(t, found.Instructions.Items)
	require.NotNil(t, found.Tags)
}

func TestGormRecipeRepository_UpdateReplacesLists(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	rec := newStoredRecipe(t, db, "Boiled Eggs", "ext-1")

	require.NoError(t, rec.AddNote("Use older eggs, they peel easier"))
	rec.AttachLists(recipe.NewIngredientList(), nil, nil)
	require.NoError(t, repo.Update(ctx, rec))

	found, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Ingredients.Items)
	require.Len(t, found.Notes, 1)
}

func TestGormRecipeRepository_Delete(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	rec := newStoredRecipe(t, db, "Boiled Eggs", "ext-1")
	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.FindByID(ctx, rec.ID)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)

	// leaves survive recipe deletion
	_, err = NewGormIngredientRepository(db).FindByName(ctx, "salt")
	assert.NoError(t, err)
}

func TestGormRecipeRepository_FindByCreator(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormRecipeRepository(db)
	ctx := context.Background()

	newStoredRecipe(t, db, "Boiled Eggs", "ext-1")
	newStoredRecipe(t, db, "Toast", "ext-2")

	recipes, total, err := repo.FindByCreator(ctx, "ext-1", shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Boiled Eggs", recipes[0].Title)
}

func TestLeafRepositories_FindOrCreateDedups(t *testing.T) {
	db := setupRecipeTestDB(t)
	ctx := context.Background()

	ingredients := NewGormIngredientRepository(db)
	first, err := recipe.NewIngredient("Sea Salt")
	require.NoError(t, err)
	first, err = ingredients.FindOrCreate(ctx, first)
	require.NoError(t, err)

	second, err := recipe.NewIngredient("  sea   SALT ")
	require.NoError(t, err)
	second, err = ingredients.FindOrCreate(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.IngredientModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLeafRepositories_InstructionsAndTags(t *testing.T) {
	db := setupRecipeTestDB(t)
	ctx := context.Background()

	instructions := NewGormInstructionRepository(db)
	ins, err := recipe.NewInstruction("Whisk until stiff peaks form", "")
	require.NoError(t, err)
	ins, err = instructions.FindOrCreate(ctx, ins)
	require.NoError(t, err)

	again, err := recipe.NewInstruction("Whisk until stiff peaks form", "")
	require.NoError(t, err)
	again, err = instructions.FindOrCreate(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, ins.ID, again.ID)

	tags := NewGormTagRepository(db)
	tag, err := recipe.NewTag("Dessert")
	require.NoError(t, err)
	tag, err = tags.FindOrCreate(ctx, tag)
	require.NoError(t, err)
	assert.Equal(t, "dessert", tag.Name)

	_, err = tags.FindByName(ctx, "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
