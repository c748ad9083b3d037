package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*account.Account, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*account.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, id account.NewIdentity) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteIdentity(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func (m *MockIdentityProvider) FindIdentityByUsername(ctx context.Context, username string, exact bool) ([]account.Identity, error) {
	args := m.Called(ctx, username, exact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Identity), args.Error(1)
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

func validRegistration() RegisterAccountRequest {
	return RegisterAccountRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret-pass",
		FirstName: "Alice",
		LastName:  "Walker",
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	idp.On("CreateIdentity", mock.Anything, mock.Anything).Return("ext-123", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *account.Account) bool {
		return a.ID == "ext-123" && a.Username == "alice" && a.Profile != nil
	})).Return(nil)

	resp, err := svc.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, "ext-123", resp.ID)
	assert.Equal(t, "alice", resp.Username)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Alice", resp.Profile.FirstName)
	repo.AssertExpectations(t)
	idp.AssertExpectations(t)
}

func TestRegisterDuplicateUsernameFailsBeforeRemoteCall(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	_, err := svc.Register(context.Background(), validRegistration())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "DUPLICATE_IDENTITY", derr.Code)
	idp.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
}

func TestRegisterIdentityFailureLeavesNoLocalState(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	idp.On("CreateIdentity", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	_, err := svc.Register(context.Background(), validRegistration())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "PROVISIONING_FAILED", derr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	idp.AssertNotCalled(t, "DeleteIdentity", mock.Anything, mock.Anything)
	// Two attempts per the retry policy.
	idp.AssertNumberOfCalls(t, "CreateIdentity", 2)
}

func TestRegisterPersistFailureCompensatesIdentity(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	idp.On("CreateIdentity", mock.Anything, mock.Anything).Return("ext-123", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	idp.On("DeleteIdentity", mock.Anything, "ext-123").Return(nil)

	_, err := svc.Register(context.Background(), validRegistration())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "PROVISIONING_FAILED", derr.Code)
	idp.AssertCalled(t, "DeleteIdentity", mock.Anything, "ext-123")
}

func TestRegisterCompensationFailureStillReportsOriginalError(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	idp.On("CreateIdentity", mock.Anything, mock.Anything).Return("ext-123", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	idp.On("DeleteIdentity", mock.Anything, "ext-123").Return(errors.New("identity provider down"))

	_, err := svc.Register(context.Background(), validRegistration())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "PROVISIONING_FAILED", derr.Code, "compensation failure must not mask the persist failure")
}

func TestDeprovisionDeletesExternalBeforeLocal(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	acct, err := account.NewAccount("ext-123", "alice", "alice@example.com")
	require.NoError(t, err)
	acct.ClearDomainEvents()

	var externalDeleted bool
	repo.On("FindByID", mock.Anything, "ext-123").Return(acct, nil)
	idp.On("DeleteIdentity", mock.Anything, "ext-123").Run(func(args mock.Arguments) {
		externalDeleted = true
	}).Return(nil)
	repo.On("Delete", mock.Anything, "ext-123").Run(func(args mock.Arguments) {
		assert.True(t, externalDeleted, "external delete must happen before local delete")
	}).Return(nil)

	err = svc.Deprovision(context.Background(), "ext-123")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	idp.AssertExpectations(t)
}

func TestDeprovisionContinuesWhenExternalDeleteFails(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	acct, err := account.NewAccount("ext-123", "alice", "alice@example.com")
	require.NoError(t, err)
	acct.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, "ext-123").Return(acct, nil)
	idp.On("DeleteIdentity", mock.Anything, "ext-123").Return(errors.New("identity provider down"))
	repo.On("Delete", mock.Anything, "ext-123").Return(nil)

	err = svc.Deprovision(context.Background(), "ext-123")

	require.NoError(t, err)
	repo.AssertCalled(t, "Delete", mock.Anything, "ext-123")
}

func TestDeprovisionUnknownAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	idp := new(MockIdentityProvider)
	svc := NewProvisioningService(repo, idp, fastExecutor(), nil, zap.NewNop())

	repo.On("FindByID", mock.Anything, "nope").Return(nil, account.ErrAccountNotFound)

	err := svc.Deprovision(context.Background(), "nope")

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", derr.Code)
	idp.AssertNotCalled(t, "DeleteIdentity", mock.Anything, mock.Anything)
}
