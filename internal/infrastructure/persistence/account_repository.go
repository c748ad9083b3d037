package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence/models"
)

var accountOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"username":   true,
}

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create persists a new account with its owned profile
func (r *GormAccountRepository) Create(ctx context.Context, acct *account.Account) error {
	model := models.AccountModelFromDomain(acct)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the account whole, replacing the owned profile and
// its addresses.
func (r *GormAccountRepository) Update(ctx context.Context, acct *account.Account) error {
	model := models.AccountModelFromDomain(acct)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", acct.ID).Delete(&models.AddressModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", acct.ID).Delete(&models.ProfileModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(model).Error
	})
}

// Delete removes the account; owned rows cascade
func (r *GormAccountRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// FindByID finds an account with its profile and addresses
func (r *GormAccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Preload("Profile.Addresses").
		Preload("Profile").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds an account by its unique username
func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Preload("Profile.Addresses").
		Preload("Profile").
		First(&model, "username = ?", strings.ToLower(strings.TrimSpace(username))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds accounts matching the filter with a total count
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*account.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.AccountModel
	if err := applyFilter(query, filter, accountOrderColumns).
		Preload("Profile.Addresses").
		Preload("Profile").
		Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]*account.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	return accounts, total, nil
}

// ExistsByUsername reports whether an account with the username exists
func (r *GormAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether an account with the email exists
func (r *GormAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

var _ account.AccountRepository = (*GormAccountRepository)(nil)
