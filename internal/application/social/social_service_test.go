package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

type MockSocialRecordRepository struct {
	mock.Mock
}

func (m *MockSocialRecordRepository) Create(ctx context.Context, record *social.SocialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSocialRecordRepository) Save(ctx context.Context, record *social.SocialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSocialRecordRepository) SavePair(ctx context.Context, a, b *social.SocialRecord) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *MockSocialRecordRepository) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockSocialRecordRepository) FindByID(ctx context.Context, accountID string) (*social.SocialRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.SocialRecord), args.Error(1)
}

func (m *MockSocialRecordRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

type MockAccountDirectory struct {
	mock.Mock
}

func (m *MockAccountDirectory) GetAccountByID(ctx context.Context, accountID string) (acl.AccountSummary, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(acl.AccountSummary), args.Error(1)
}

func (m *MockAccountDirectory) AddSocialFlag(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountDirectory) RemoveSocialFlag(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
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

func newService(records *MockSocialRecordRepository, directory *MockAccountDirectory) *SocialService {
	return NewSocialService(records, directory, fastExecutor(), nil, zap.NewNop())
}

func mustRecord(t *testing.T, accountID string) *social.SocialRecord {
	t.Helper()
	r, err := social.NewSocialRecord(accountID)
	require.NoError(t, err)
	return r
}

func TestCreateSocialRecordFlagsAccount(t *testing.T) {
	records := new(MockSocialRecordRepository)
	directory := new(MockAccountDirectory)
	svc := newService(records, directory)

	records.On("Exists", mock.Anything, "acct-1").Return(false, nil)
	directory.On("GetAccountByID", mock.Anything, "acct-1").Return(acl.AccountSummary{ID: "acct-1", Username: "alice"}, nil)
	directory.On("AddSocialFlag", mock.Anything, "acct-1").Return(nil)
	records.On("Create", mock.Anything, mock.MatchedBy(func(r *social.SocialRecord) bool {
		return r.AccountID == "acct-1" && len(r.Following) == 0
	})).Return(nil)

	resp, err := svc.CreateSocialRecord(context.Background(), "acct-1")

	require.NoError(t, err)
	assert.Equal(t, "acct-1", resp.AccountID)
	assert.Empty(t, resp.Following)
	directory.AssertExpectations(t)
}

func TestCreateSocialRecordRejectsDuplicate(t *testing.T) {
	records := new(MockSocialRecordRepository)
	directory := new(MockAccountDirectory)
	svc := newService(records, directory)

	records.On("Exists", mock.Anything, "acct-1").Return(true, nil)

	_, err := svc.CreateSocialRecord(context.Background(), "acct-1")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	directory.AssertNotCalled(t, "GetAccountByID", mock.Anything, mock.Anything)
}

func TestCreateSocialRecordDirectoryExhaustion(t *testing.T) {
	records := new(MockSocialRecordRepository)
	directory := new(MockAccountDirectory)
	svc := newService(records, directory)

	records.On("Exists", mock.Anything, "acct-1").Return(false, nil)
	directory.On("GetAccountByID", mock.Anything, "acct-1").Return(acl.AccountSummary{}, errors.New("connection refused"))

	_, err := svc.CreateSocialRecord(context.Background(), "acct-1")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "REMOTE_CALL_EXHAUSTED", derr.Code)
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowWritesBothSidesTogether(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(target, nil)
	records.On("SavePair", mock.Anything, source, target).Return(nil)

	resp, err := svc.Follow(context.Background(), "acct-1", "acct-2")

	require.NoError(t, err)
	assert.Contains(t, resp.Following, "acct-2")
	assert.Contains(t, source.Following, "acct-2")
	assert.Contains(t, target.Followers, "acct-1")
	records.AssertCalled(t, "SavePair", mock.Anything, source, target)
}

func TestFollowRejectsRepeat(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	require.NoError(t, social.Follow(source, target))
	source.ClearDomainEvents()

	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(target, nil)

	_, err := svc.Follow(context.Background(), "acct-1", "acct-2")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_FOLLOWING", derr.Code)
	records.AssertNotCalled(t, "SavePair", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowRejectsSelf(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)

	_, err := svc.Follow(context.Background(), "acct-1", "acct-1")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "SELF_FOLLOW", derr.Code)
}

func TestFollowMissingTarget(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(nil, social.ErrSocialRecordNotFound)

	_, err := svc.Follow(context.Background(), "acct-1", "acct-2")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "SOCIAL_RECORD_NOT_FOUND", derr.Code)
}

func TestUnfollowRemovesBothSides(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	require.NoError(t, social.Follow(source, target))
	source.ClearDomainEvents()

	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(target, nil)
	records.On("SavePair", mock.Anything, source, target).Return(nil)

	err := svc.Unfollow(context.Background(), "acct-1", "acct-2")

	require.NoError(t, err)
	assert.NotContains(t, source.Following, "acct-2")
	assert.NotContains(t, target.Followers, "acct-1")
}

func TestUnfollowConvergesFromAsymmetricEdge(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	// A crashed follow left only the reverse side written.
	source := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	target.Followers = append(target.Followers, "acct-1")

	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(target, nil)
	records.On("SavePair", mock.Anything, source, target).Return(nil)

	err := svc.Unfollow(context.Background(), "acct-1", "acct-2")

	require.NoError(t, err, "removal must succeed while either side still holds the edge")
	assert.NotContains(t, target.Followers, "acct-1")
}

func TestUnfollowRejectsWhenNoEdgeAnywhere(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	source := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	records.On("FindByID", mock.Anything, "acct-1").Return(source, nil)
	records.On("FindByID", mock.Anything, "acct-2").Return(target, nil)

	err := svc.Unfollow(context.Background(), "acct-1", "acct-2")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOLLOWING", derr.Code)
}

func TestBookmarkRejectsRepeat(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	record := mustRecord(t, "acct-1")
	recipeID := uuid.New()
	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)
	records.On("Save", mock.Anything, record).Return(nil)

	_, err := svc.Bookmark(context.Background(), "acct-1", recipeID)
	require.NoError(t, err)

	_, err = svc.Bookmark(context.Background(), "acct-1", recipeID)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_BOOKMARKED", derr.Code)
}

func TestUnbookmarkAbsentRejects(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	record := mustRecord(t, "acct-1")
	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)

	err := svc.Unbookmark(context.Background(), "acct-1", uuid.New())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_BOOKMARKED", derr.Code)
}

func TestDeleteSocialRecordClearsFlagFirst(t *testing.T) {
	records := new(MockSocialRecordRepository)
	directory := new(MockAccountDirectory)
	svc := newService(records, directory)

	record := mustRecord(t, "acct-1")
	var flagRemoved bool
	records.On("FindByID", mock.Anything, "acct-1").Return(record, nil)
	directory.On("RemoveSocialFlag", mock.Anything, "acct-1").Run(func(args mock.Arguments) {
		flagRemoved = true
	}).Return(nil)
	records.On("Delete", mock.Anything, "acct-1").Run(func(args mock.Arguments) {
		assert.True(t, flagRemoved, "flag removal must precede local delete")
	}).Return(nil)

	err := svc.DeleteSocialRecord(context.Background(), "acct-1")

	require.NoError(t, err)
	records.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestFollowsReadsFollowEdge(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	follower := mustRecord(t, "acct-1")
	target := mustRecord(t, "acct-2")
	require.NoError(t, social.Follow(follower, target))
	records.On("FindByID", mock.Anything, "acct-1").Return(follower, nil)

	follows, err := svc.Follows(context.Background(), "acct-1", "acct-2")
	require.NoError(t, err)
	assert.True(t, follows)

	follows, err = svc.Follows(context.Background(), "acct-1", "acct-9")
	require.NoError(t, err)
	assert.False(t, follows)
}

func TestFollowsWithoutRecordIsFalse(t *testing.T) {
	records := new(MockSocialRecordRepository)
	svc := newService(records, new(MockAccountDirectory))

	records.On("FindByID", mock.Anything, "ghost").Return(nil, social.ErrSocialRecordNotFound)

	follows, err := svc.Follows(context.Background(), "ghost", "acct-1")
	require.NoError(t, err)
	assert.False(t, follows)
}
