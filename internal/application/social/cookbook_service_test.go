package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
)

type MockCookbookRepository struct {
	mock.Mock
}

func (m *MockCookbookRepository) Create(ctx context.Context, ownerID string, cb *social.Cookbook) error {
	args := m.Called(ctx, ownerID, cb)
	return args.Error(0)
}

func (m *MockCookbookRepository) Save(ctx context.Context, cb *social.Cookbook) error {
	args := m.Called(ctx, cb)
	return args.Error(0)
}

func (m *MockCookbookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCookbookRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Cookbook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Cookbook), args.Error(1)
}

func (m *MockCookbookRepository) FindByOwner(ctx context.Context, ownerID string) ([]social.Cookbook, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]social.Cookbook), args.Error(1)
}

func TestCreateCookbookForAttachesToRecord(t *testing.T) {
	records := new(MockSocialRecordRepository)
	cookbooks := new(MockCookbookRepository)
	svc := NewCookbookService(records, cookbooks, zap.NewNop())

	record := mustRecord(t, "acct-1")
	recipeID := uuid.New()
	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)
	cookbooks.On("Create", mock.Anything, "acct-1", mock.MatchedBy(func(cb *social.Cookbook) bool {
		return cb.Name == "Weeknight dinners" && len(cb.Entries) == 1
	})).Return(nil)
	records.On("Save", mock.Anything, record).Return(nil)

	resp, err := svc.CreateCookbookFor(context.Background(), "acct-1", CreateCookbookRequest{
		Name:        "Weeknight dinners",
		Description: "fast ones",
		Note:        &NoteRequest{Title: "intro", Text: "under 30 minutes"},
		Entries: []CookbookEntryRequest{
			{RecipeID: recipeID.String(), Note: &NoteRequest{Text: "family favorite"}},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Cookbooks, 1)
	assert.Equal(t, "Weeknight dinners", resp.Cookbooks[0].Name)
	require.Len(t, resp.Cookbooks[0].Entries, 1)
	assert.Equal(t, recipeID.String(), resp.Cookbooks[0].Entries[0].RecipeID)
}

func TestCreateCookbookForRejectsBadRecipeID(t *testing.T) {
	records := new(MockSocialRecordRepository)
	cookbooks := new(MockCookbookRepository)
	svc := NewCookbookService(records, cookbooks, zap.NewNop())

	record := mustRecord(t, "acct-1")
	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)

	_, err := svc.CreateCookbookFor(context.Background(), "acct-1", CreateCookbookRequest{
		Name:    "Broken",
		Entries: []CookbookEntryRequest{{RecipeID: "not-a-uuid"}},
	})

	require.Error(t, err)
	cookbooks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddAndRemoveEntry(t *testing.T) {
	records := new(MockSocialRecordRepository)
	cookbooks := new(MockCookbookRepository)
	svc := NewCookbookService(records, cookbooks, zap.NewNop())

	cb, err := social.NewCookbook("Desserts", "")
	require.NoError(t, err)
	cookbooks.On("FindByID", mock.Anything, cb.ID).Return(cb, nil)
	cookbooks.On("Save", mock.Anything, cb).Return(nil)

	recipeID := uuid.New()
	resp, err := svc.AddEntry(context.Background(), cb.ID, CookbookEntryRequest{RecipeID: recipeID.String()})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	entryID, err := uuid.Parse(resp.Entries[0].ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveEntry(context.Background(), cb.ID, entryID))
	assert.Empty(t, cb.Entries)
}

func TestDeleteCookbookDetachesFromOwner(t *testing.T) {
	records := new(MockSocialRecordRepository)
	cookbooks := new(MockCookbookRepository)
	svc := NewCookbookService(records, cookbooks, zap.NewNop())

	record := mustRecord(t, "acct-1")
	cb, err := social.NewCookbook("Desserts", "")
	require.NoError(t, err)
	record.AddCookbook(*cb)

	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)
	cookbooks.On("Delete", mock.Anything, cb.ID).Return(nil)
	records.On("Save", mock.Anything, record).Return(nil)

	require.NoError(t, svc.DeleteCookbook(context.Background(), "acct-1", cb.ID))
	assert.Empty(t, record.Cookbooks)
}
