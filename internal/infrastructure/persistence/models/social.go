package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
)

// SocialRecordModel is the persistence model for the SocialRecord
// aggregate. Follow edges and bookmarks live in child collection tables
// and are replaced wholesale whenever the aggregate is saved.
type SocialRecordModel struct {
	AccountID string               `gorm:"type:varchar(64);primary_key"`
	Following []FollowEdgeModel    `gorm:"foreignKey:AccountID;references:AccountID;constraint:OnDelete:CASCADE"`
	Followers []FollowerEdgeModel  `gorm:"foreignKey:AccountID;references:AccountID;constraint:OnDelete:CASCADE"`
	Bookmarks []BookmarkModel      `gorm:"foreignKey:AccountID;references:AccountID;constraint:OnDelete:CASCADE"`
	Cookbooks []CookbookModel      `gorm:"foreignKey:OwnerID;references:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"not null"`
	UpdatedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SocialRecordModel) TableName() string {
	return "social_records"
}

// FollowEdgeModel is one outgoing follow edge of a record.
type FollowEdgeModel struct {
	AccountID string `gorm:"type:varchar(64);primary_key"`
	TargetID  string `gorm:"type:varchar(64);primary_key"`
}

// TableName returns the table name for GORM
func (FollowEdgeModel) TableName() string {
	return "user_following"
}

// FollowerEdgeModel is one incoming follow edge of a record.
type FollowerEdgeModel struct {
	AccountID  string `gorm:"type:varchar(64);primary_key"`
	FollowerID string `gorm:"type:varchar(64);primary_key"`
}

// TableName returns the table name for GORM
func (FollowerEdgeModel) TableName() string {
	return "user_followed_by"
}

// BookmarkModel is one bookmarked recipe of a record.
type BookmarkModel struct {
	AccountID string    `gorm:"type:varchar(64);primary_key"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primary_key"`
}

// TableName returns the table name for GORM
func (BookmarkModel) TableName() string {
	return "bookmarked_recipes"
}

// CookbookModel is a cookbook owned 1:N by a social record.
type CookbookModel struct {
	BaseModel
	OwnerID     string               `gorm:"type:varchar(64);not null;index"`
	Name        string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text"`
	NoteTitle   string               `gorm:"type:varchar(200)"`
	NoteText    string               `gorm:"type:text"`
	Entries     []CookbookEntryModel `gorm:"foreignKey:CookbookID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CookbookModel) TableName() string {
	return "cookbooks"
}

// CookbookEntryModel references a recipe from a cookbook and owns its note.
type CookbookEntryModel struct {
	BaseModel
	CookbookID uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null"`
	NoteTitle  string    `gorm:"type:varchar(200)"`
	NoteText   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CookbookEntryModel) TableName() string {
	return "cookbook_entries"
}

// ToDomain converts the persistence model to a domain SocialRecord.
func (m *SocialRecordModel) ToDomain() *social.SocialRecord {
	record := &social.SocialRecord{
		AccountID:         m.AccountID,
		Following:         make([]string, len(m.Following)),
		Followers:         make([]string, len(m.Followers)),
		BookmarkedRecipes: make([]uuid.UUID, len(m.Bookmarks)),
		Cookbooks:         make([]social.Cookbook, len(m.Cookbooks)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for i, e := range m.Following {
		record.Following[i] = e.TargetID
	}
	for i, e := range m.Followers {
		record.Followers[i] = e.FollowerID
	}
	for i, b := range m.Bookmarks {
		record.BookmarkedRecipes[i] = b.RecipeID
	}
	for i, cb := range m.Cookbooks {
		record.Cookbooks[i] = *cb.ToDomain()
	}
	return record
}

// FromDomain populates the persistence model from a domain SocialRecord.
func (m *SocialRecordModel) FromDomain(r *social.SocialRecord) {
	m.AccountID = r.AccountID
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.Following = make([]FollowEdgeModel, len(r.Following))
	for i, target := range r.Following {
		m.Following[i] = FollowEdgeModel{AccountID: r.AccountID, TargetID: target}
	}
	m.Followers = make([]FollowerEdgeModel, len(r.Followers))
	for i, follower := range r.Followers {
		m.Followers[i] = FollowerEdgeModel{AccountID: r.AccountID, FollowerID: follower}
	}
	m.Bookmarks = make([]BookmarkModel, len(r.BookmarkedRecipes))
	for i, recipeID := range r.BookmarkedRecipes {
		m.Bookmarks[i] = BookmarkModel{AccountID: r.AccountID, RecipeID: recipeID}
	}
	m.Cookbooks = make([]CookbookModel, len(r.Cookbooks))
	for i := range r.Cookbooks {
		m.Cookbooks[i] = *CookbookModelFromDomain(r.AccountID, &r.Cookbooks[i])
	}
}

// SocialRecordModelFromDomain creates a new persistence model from a domain SocialRecord.
func SocialRecordModelFromDomain(r *social.SocialRecord) *SocialRecordModel {
	m := &SocialRecordModel{}
	m.FromDomain(r)
	return m
}

// ToDomain converts the persistence model to a domain Cookbook.
func (m *CookbookModel) ToDomain() *social.Cookbook {
	cb := &social.Cookbook{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Note:        social.CookbookNote{Title: m.NoteTitle, Text: m.NoteText},
		Entries:     make([]social.CookbookEntry, len(m.Entries)),
	}
	for i, e := range m.Entries {
		cb.Entries[i] = social.CookbookEntry{
			BaseEntity: e.BaseModel.ToDomain(),
			RecipeID:   e.RecipeID,
			Note:       social.EntryNote{Title: e.NoteTitle, Text: e.NoteText},
		}
	}
	return cb
}

// CookbookModelFromDomain creates a new persistence model from a domain Cookbook.
func CookbookModelFromDomain(ownerID string, cb *social.Cookbook) *CookbookModel {
	m := &CookbookModel{
		OwnerID:     ownerID,
		Name:        cb.Name,
		Description: cb.Description,
		NoteTitle:   cb.Note.Title,
		NoteText:    cb.Note.Text,
		Entries:     make([]CookbookEntryModel, len(cb.Entries)),
	}
	m.FromDomainBaseEntity(cb.BaseEntity)
	for i, e := range cb.Entries {
		em := CookbookEntryModel{
			CookbookID: cb.ID,
			RecipeID:   e.RecipeID,
			NoteTitle:  e.Note.Title,
			NoteText:   e.Note.Text,
		}
		em.FromDomainBaseEntity(e.BaseEntity)
		m.Entries[i] = em
	}
	return m
}
