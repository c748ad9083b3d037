package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence/models"
)

func setupAccountTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.AccountModel{}, &models.ProfileModel{}, &models.AddressModel{})
	require.NoError(t, err)

	return db
}

func newTestAccount(t *testing.T, ext, username string) *account.Account {
	t.Helper()
	acct, err := account.NewAccount(ext, username, username+"@example.com")
	require.NoError(t, err)
	return acct
}

func TestGormAccountRepository_CreateAndFind(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	acct := newTestAccount(t, "ext-1", "alice")
	profile := account.NewProfile("Alice", "Walker")
	birth := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, profile.SetBirthDate(birth))
	acct.AttachProfile(profile)

	require.NoError(t, repo.Create(ctx, acct))

	found, err := repo.FindByID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, account.SkillLevelBeginner, found.SkillLevel)
	require.NotNil(t, found.Profile)
	assert.Equal(t, "Alice", found.Profile.FirstName)
	require.NotNil(t, found.Profile.BirthDate)
}

func TestGormAccountRepository_FindByUsername(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount(t, "ext-1", "alice")))

	found, err := repo.FindByUsername(ctx, "  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", found.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestGormAccountRepository_UpdateReplacesProfile(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	acct := newTestAccount(t, "ext-1", "alice")
	profile := account.NewProfile("Alice", "Walker")
	profile.AddAddress(account.Address{Street: "1 Main St", City: "Springfield"})
	acct.AttachProfile(profile)
	require.NoError(t, repo.Create(ctx, acct))

	require.NoError(t, acct.SetSkillLevel(account.SkillLevelAdvanced))
	acct.Profile.SetNames("Alicia", "Walker")
	require.NoError(t, acct.Profile.RemoveAddress(acct.Profile.Addresses[0].ID.String()))
	require.NoError(t, repo.Update(ctx, acct))

	found, err := repo.FindByID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, account.SkillLevelAdvanced, found.SkillLevel)
	assert.Equal(t, "Alicia", found.Profile.FirstName)
	assert.Empty(t, found.Profile.Addresses)
}

func TestGormAccountRepository_Delete(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount(t, "ext-1", "alice")))
	require.NoError(t, repo.Delete(ctx, "ext-1"))

	_, err := repo.FindByID(ctx, "ext-1")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "ext-1"), account.ErrAccountNotFound)
}

func TestGormAccountRepository_Exists(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount(t, "ext-1", "alice")))

	exists, err := repo.ExistsByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormAccountRepository_FindAll(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, repo.Create(ctx, newTestAccount(t, "ext-"+name, name)))
	}

	accounts, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "username", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice", accounts[0].Username)

	accounts, total, err = repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Search: "bo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, accounts, 1)
	assert.Equal(t, "bob", accounts[0].Username)
}
