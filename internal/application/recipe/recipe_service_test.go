package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) FindByCreator(ctx context.Context, creatorID string, filter shared.Filter) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, creatorID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Get(1).(int64), args.Error(2)
}

// fakeLeafStore is an in-memory find-or-create backing for the three
// leaf repositories, dedup by natural key like the real store does.
type fakeLeafStore struct {
	ingredients  map[string]*recipe.Ingredient
	instructions map[string]*recipe.Instruction
	tags         map[string]*recipe.Tag
	creates      int
}

func newFakeLeafStore() *fakeLeafStore {
	return &fakeLeafStore{
		ingredients:  make(map[string]*recipe.Ingredient),
		instructions: make(map[string]*recipe.Instruction),
		tags:         make(map[string]*recipe.Tag),
	}
}

type fakeIngredientRepo struct{ store *fakeLeafStore }

func (f fakeIngredientRepo) FindByName(ctx context.Context, name string) (*recipe.Ingredient, error) {
	if leaf, ok := f.store.ingredients[recipe.NormalizeLeafName(name)]; ok {
		return leaf, nil
	}
	return nil, shared.ErrNotFound
}

func (f fakeIngredientRepo) FindOrCreate(ctx context.Context, ing *recipe.Ingredient) (*recipe.Ingredient, error) {
	if leaf, ok := f.store.ingredients[ing.Name]; ok {
		return leaf, nil
	}
	f.store.ingredients[ing.Name] = ing
	f.store.creates++
	return ing, nil
}

type fakeInstructionRepo struct{ store *fakeLeafStore }

func (f fakeInstructionRepo) FindByText(ctx context.Context, text string) (*recipe.Instruction, error) {
	if leaf, ok := f.store.instructions[text]; ok {
		return leaf, nil
	}
	return nil, shared.ErrNotFound
}

func (f fakeInstructionRepo) FindOrCreate(ctx context.Context, ins *recipe.Instruction) (*recipe.Instruction, error) {
	if leaf, ok := f.store.instructions[ins.Text]; ok {
		return leaf, nil
	}
	f.store.instructions[ins.Text] = ins
	f.store.creates++
	return ins, nil
}

type fakeTagRepo struct{ store *fakeLeafStore }

func (f fakeTagRepo) FindByName(ctx context.Context, name string) (*recipe.Tag, error) {
	if leaf, ok := f.store.tags[recipe.NormalizeLeafName(name)]; ok {
		return leaf, nil
	}
	return nil, shared.ErrNotFound
}

func (f fakeTagRepo) FindOrCreate(ctx context.Context, tag *recipe.Tag) (*recipe.Tag, error) {
	if leaf, ok := f.store.tags[tag.Name]; ok {
		return leaf, nil
	}
	f.store.tags[tag.Name] = tag
	f.store.creates++
	return tag, nil
}

type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) GetAccountRef(ctx context.Context, accountID string) (acl.AccountRef, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(acl.AccountRef), args.Error(1)
}

func fastExecutor() *resilience.Executor {
	return resilience.NewExecutor(map[string]resilience.PolicyConfig{
		"main": {
			MaxAttempts:     2,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			CallTimeout:     time.Second,
			BreakerFailures: 100,
			BreakerCooldown: time.Second,
		},
	}, zap.NewNop())
}

type MockFollowerReader struct {
	mock.Mock
}

func (m *MockFollowerReader) Follows(ctx context.Context, followerID, targetID string) (bool, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *MockRecipeRepository, store *fakeLeafStore, accounts *MockAccountReader) *RecipeService {
	return newTestServiceWithFollowers(repo, store, accounts, nil)
}

func newTestServiceWithFollowers(repo *MockRecipeRepository, store *fakeLeafStore, accounts *MockAccountReader, followers *MockFollowerReader) *RecipeService {
	var reader acl.FollowerReader
	if followers != nil {
		reader = followers
	}
	return NewRecipeService(
		repo,
		fakeIngredientRepo{store},
		fakeInstructionRepo{store},
		fakeTagRepo{store},
		accounts,
		reader,
		fastExecutor(),
		nil,
		zap.NewNop(),
	)
}

func TestCreateSimpleAlwaysOwnsEmptyLists(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *recipe.Recipe) bool {
		return r.Ingredients != nil && r.Instructions != nil && r.Tags != nil &&
			len(r.Ingredients.Items) == 0 && len(r.Instructions.Items) == 0 && len(r.Tags.Items) == 0
	})).Return(nil)

	resp, err := svc.CreateSimple(context.Background(), CreateRecipeSimpleRequest{
		Title:     "Toast",
		CreatedBy: "acct-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.CreatedByUsername)
	assert.NotNil(t, resp.Ingredients)
	assert.Empty(t, resp.Ingredients)
}

func TestCreateDetailedComposesAllLists(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	store := newFakeLeafStore()
	svc := newTestService(repo, store, accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateDetailed(context.Background(), CreateRecipeDetailedRequest{
		Title:     "Pancakes",
		CreatedBy: "acct-1",
		Ingredients: &IngredientListRequest{Items: []IngredientItemRequest{
			{Name: "Flour", Quantity: decimal.NewFromInt(200), Measurement: "gram"},
			{Name: "Salt", Quantity: decimal.NewFromInt(1), Measurement: "pinch"},
		}},
		Instructions: &InstructionListRequest{Items: []InstructionItemRequest{
			{Text: "Mix the dry ingredients."},
			{Text: "Fry until golden."},
		}},
		Tags: &TagListRequest{Items: []TagItemRequest{{Name: "Breakfast"}}},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Ingredients, 2)
	assert.Len(t, resp.Instructions, 2)
	assert.Equal(t, 1, resp.Instructions[0].StepNumber)
	assert.Equal(t, 2, resp.Instructions[1].StepNumber)
	assert.Equal(t, []string{"breakfast"}, resp.Tags)
}

func TestCreateDetailedNilListYieldsEmptyAggregate(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	var created *recipe.Recipe
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*recipe.Recipe)
	}).Return(nil)

	_, err := svc.CreateDetailed(context.Background(), CreateRecipeDetailedRequest{
		Title:     "Plain rice",
		CreatedBy: "acct-1",
		Instructions: &InstructionListRequest{Items: []InstructionItemRequest{
			{Text: "Boil the rice."},
		}},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.Ingredients, "nil ingredient list must become an empty aggregate")
	assert.Empty(t, created.Ingredients.Items)
	require.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags.Items)
}

func TestLeafDedupAcrossCompositions(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	store := newFakeLeafStore()
	svc := newTestService(repo, store, accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	mkReq := func(title string) CreateRecipeDetailedRequest {
		return CreateRecipeDetailedRequest{
			Title:     title,
			CreatedBy: "acct-1",
			Ingredients: &IngredientListRequest{Items: []IngredientItemRequest{
				{Name: "Salt", Quantity: decimal.NewFromInt(1), Measurement: "pinch"},
			}},
		}
	}

	first, err := svc.CreateDetailed(context.Background(), mkReq("Soup"))
	require.NoError(t, err)
	second, err := svc.CreateDetailed(context.Background(), mkReq("Stew"))
	require.NoError(t, err)

	require.Len(t, store.ingredients, 1, "one leaf row for the shared name")
	assert.Equal(t, first.Ingredients[0].Name, second.Ingredients[0].Name)
}

func TestLeafNameNormalization(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	store := newFakeLeafStore()
	svc := newTestService(repo, store, accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateDetailed(context.Background(), CreateRecipeDetailedRequest{
		Title:     "Fries",
		CreatedBy: "acct-1",
		Ingredients: &IngredientListRequest{Items: []IngredientItemRequest{
			{Name: "Salt", Quantity: decimal.NewFromInt(1), Measurement: "pinch"},
			{Name: "  salt ", Quantity: decimal.NewFromInt(2), Measurement: "pinch"},
		}},
	})

	require.NoError(t, err)
	assert.Len(t, store.ingredients, 1)
}

func TestCreateRejectsUnknownMeasurement(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)

	_, err := svc.CreateDetailed(context.Background(), CreateRecipeDetailedRequest{
		Title:     "Mystery",
		CreatedBy: "acct-1",
		Ingredients: &IngredientListRequest{Items: []IngredientItemRequest{
			{Name: "Salt", Quantity: decimal.NewFromInt(1), Measurement: "handful"},
		}},
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUnknownCreatorFallsBackToAnonymous(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "ghost").Return(acl.AccountRef{}, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateSimple(context.Background(), CreateRecipeSimpleRequest{
		Title:     "Toast",
		CreatedBy: "ghost",
	})

	require.NoError(t, err)
	assert.Equal(t, "anonymous", resp.CreatedBy)
	assert.Equal(t, "anonymous", resp.CreatedByUsername)
}

func TestCreatorLookupExhaustionFailsCreation(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{}, errors.New("connection refused"))

	_, err := svc.CreateSimple(context.Background(), CreateRecipeSimpleRequest{
		Title:     "Toast",
		CreatedBy: "acct-1",
	})

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "REMOTE_CALL_EXHAUSTED", derr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddNote(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeLeafStore(), new(MockAccountReader))

	r, err := recipe.NewRecipe("Toast", "", "acct-1", "alice", recipe.VisibilityPublic, recipe.SkillBeginner)
	require.NoError(t, err)
	r.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	repo.On("Update", mock.Anything, r).Return(nil)

	resp, err := svc.AddNote(context.Background(), r.ID, AddNoteRequest{Text: "less butter next time"})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "less butter next time", resp.Notes[0].Text)
}

func TestListByCreatorConfirmsAccount(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	r, err := recipe.NewRecipe("Toast", "", "acct-1", "alice", recipe.VisibilityPublic, recipe.SkillBeginner)
	require.NoError(t, err)

	accounts.On("GetAccountRef", mock.Anything, "acct-1").Return(acl.AccountRef{ID: "acct-1", Username: "alice"}, nil)
	repo.On("FindByCreator", mock.Anything, "acct-1", mock.Anything).Return([]*recipe.Recipe{r}, int64(1), nil)

	resp, err := svc.ListByCreator(context.Background(), "acct-1", shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListByCreatorUnknownAccount(t *testing.T) {
	repo := new(MockRecipeRepository)
	accounts := new(MockAccountReader)
	svc := newTestService(repo, newFakeLeafStore(), accounts)

	accounts.On("GetAccountRef", mock.Anything, "ghost").
		Return(acl.AccountRef{}, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found"))

	_, err := svc.ListByCreator(context.Background(), "ghost", shared.DefaultFilter())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", derr.Code)
	repo.AssertNotCalled(t, "FindByCreator", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByIDHidesPrivateRecipe(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeLeafStore(), new(MockAccountReader))

	r, err := recipe.NewRecipe("Secret Sauce", "", "acct-1", "alice", recipe.VisibilityPrivate, recipe.SkillBeginner)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	resp, err := svc.GetByID(context.Background(), r.ID, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Secret Sauce", resp.Title)

	_, err = svc.GetByID(context.Background(), r.ID, "acct-2")
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "RECIPE_NOT_FOUND", derr.Code)

	_, err = svc.GetByID(context.Background(), r.ID, "")
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "RECIPE_NOT_FOUND", derr.Code)
}

func TestGetByIDFollowersOnly(t *testing.T) {
	repo := new(MockRecipeRepository)
	followers := new(MockFollowerReader)
	svc := newTestServiceWithFollowers(repo, newFakeLeafStore(), new(MockAccountReader), followers)

	r, err := recipe.NewRecipe("Family Stew", "", "acct-1", "alice", recipe.VisibilityFollowersOnly, recipe.SkillBeginner)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	followers.On("Follows", mock.Anything, "acct-2", "acct-1").Return(true, nil)
	resp, err := svc.GetByID(context.Background(), r.ID, "acct-2")
	require.NoError(t, err)
	assert.Equal(t, "Family Stew", resp.Title)

	followers.On("Follows", mock.Anything, "acct-3", "acct-1").Return(false, nil)
	_, err = svc.GetByID(context.Background(), r.ID, "acct-3")
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "RECIPE_NOT_FOUND", derr.Code)

	resp, err = svc.GetByID(context.Background(), r.ID, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Family Stew", resp.Title)
	followers.AssertNotCalled(t, "Follows", mock.Anything, "acct-1", "acct-1")
}

func TestRemoveNote(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeLeafStore(), new(MockAccountReader))

	r, err := recipe.NewRecipe("Toast", "", "acct-1", "alice", recipe.VisibilityPublic, recipe.SkillBeginner)
	require.NoError(t, err)
	require.NoError(t, r.AddNote("too dry"))
	noteID := r.Notes[0].ID

	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	repo.On("Update", mock.Anything, r).Return(nil)

	require.NoError(t, svc.RemoveNote(context.Background(), r.ID, noteID))
	assert.Empty(t, r.Notes)
	repo.AssertCalled(t, "Update", mock.Anything, r)
}

func TestRemoveNoteUnknown(t *testing.T) {
	repo := new(MockRecipeRepository)
	svc := newTestService(repo, newFakeLeafStore(), new(MockAccountReader))

	r, err := recipe.NewRecipe("Toast", "", "acct-1", "alice", recipe.VisibilityPublic, recipe.SkillBeginner)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	err = svc.RemoveNote(context.Background(), r.ID, uuid.New())
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOTE_NOT_FOUND", derr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
