package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence/models"
)

// GormSocialRecordRepository implements SocialRecordRepository using
// GORM. Records are written whole: the child collections are replaced
// on every save inside one transaction, which is the boundary that
// keeps the two sides of a follow edge together.
type GormSocialRecordRepository struct {
	db *gorm.DB
}

// NewGormSocialRecordRepository creates a new GormSocialRecordRepository
func NewGormSocialRecordRepository(db *gorm.DB) *GormSocialRecordRepository {
	return &GormSocialRecordRepository{db: db}
}

// Create persists a new, empty social record
func (r *GormSocialRecordRepository) Create(ctx context.Context, record *social.SocialRecord) error {
	model := models.SocialRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save persists the record whole
func (r *GormSocialRecordRepository) Save(ctx context.Context, record *social.SocialRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveRecord(tx, record)
	})
}

// SavePair persists both endpoints of a follow edge in one transaction
func (r *GormSocialRecordRepository) SavePair(ctx context.Context, a, b *social.SocialRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveRecord(tx, a); err != nil {
			return err
		}
		return saveRecord(tx, b)
	})
}

func saveRecord(tx *gorm.DB, record *social.SocialRecord) error {
	model := models.SocialRecordModelFromDomain(record)

	for _, child := range []any{
		&models.FollowEdgeModel{},
		&models.FollowerEdgeModel{},
		&models.BookmarkModel{},
	} {
		if err := tx.Where("account_id = ?", record.AccountID).Delete(child).Error; err != nil {
			return err
		}
	}
	// Cookbooks keep their ids across saves; entries are replaced with them.
	var cookbookIDs []uuid.UUID
	if err := tx.Model(&models.CookbookModel{}).
		Where("owner_id = ?", record.AccountID).
		Pluck("id", &cookbookIDs).Error; err != nil {
		return err
	}
	if len(cookbookIDs) > 0 {
		if err := tx.Where("cookbook_id IN ?", cookbookIDs).Delete(&models.CookbookEntryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", record.AccountID).Delete(&models.CookbookModel{}).Error; err != nil {
			return err
		}
	}

	return tx.Session(&gorm.Session{FullSaveAssociations: true}).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

// Delete removes the record; child collections cascade
func (r *GormSocialRecordRepository) Delete(ctx context.Context, accountID string) error {
	result := r.db.WithContext(ctx).Delete(&models.SocialRecordModel{}, "account_id = ?", accountID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.ErrSocialRecordNotFound
	}
	return nil
}

// FindByID loads the record with all its collections
func (r *GormSocialRecordRepository) FindByID(ctx context.Context, accountID string) (*social.SocialRecord, error) {
	var model models.SocialRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Following").
		Preload("Followers").
		Preload("Bookmarks").
		Preload("Cookbooks.Entries").
		Preload("Cookbooks").
		First(&model, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, social.ErrSocialRecordNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists reports whether a record exists for the account
func (r *GormSocialRecordRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SocialRecordModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}

// GormCookbookRepository implements CookbookRepository using GORM
type GormCookbookRepository struct {
	db *gorm.DB
}

// NewGormCookbookRepository creates a new GormCookbookRepository
func NewGormCookbookRepository(db *gorm.DB) *GormCookbookRepository {
	return &GormCookbookRepository{db: db}
}

// Create persists a new cookbook under its owning record
func (r *GormCookbookRepository) Create(ctx context.Context, ownerID string, cb *social.Cookbook) error {
	model := models.CookbookModelFromDomain(ownerID, cb)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save persists the cookbook whole, replacing its entries
func (r *GormCookbookRepository) Save(ctx context.Context, cb *social.Cookbook) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners []string
		if err := tx.Model(&models.CookbookModel{}).
			Where("id = ?", cb.ID).
			Pluck("owner_id", &owners).Error; err != nil {
			return err
		}
		if len(owners) == 0 {
			return shared.ErrNotFound
		}
		ownerID := owners[0]
		if err := tx.Where("cookbook_id = ?", cb.ID).Delete(&models.CookbookEntryModel{}).Error; err != nil {
			return err
		}
		model := models.CookbookModelFromDomain(ownerID, cb)
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(model).Error
	})
}

// Delete removes a cookbook; entries cascade
func (r *GormCookbookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CookbookModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads a cookbook with its entries
func (r *GormCookbookRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Cookbook, error) {
	var model models.CookbookModel
	if err := r.db.WithContext(ctx).
		Preload("Entries").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner lists the cookbooks of one social record
func (r *GormCookbookRepository) FindByOwner(ctx context.Context, ownerID string) ([]social.Cookbook, error) {
	var cookbookModels []models.CookbookModel
	if err := r.db.WithContext(ctx).
		Preload("Entries").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&cookbookModels).Error; err != nil {
		return nil, err
	}

	cookbooks := make([]social.Cookbook, len(cookbookModels))
	for i := range cookbookModels {
		cookbooks[i] = *cookbookModels[i].ToDomain()
	}
	return cookbooks, nil
}

var (
	_ social.SocialRecordRepository = (*GormSocialRecordRepository)(nil)
	_ social.CookbookRepository     = (*GormCookbookRepository)(nil)
)
