package models

import (
	"time"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
)

// AccountModel is the persistence model for the Account aggregate. The
// primary key is the external identity id assigned at provisioning.
type AccountModel struct {
	ID              string             `gorm:"type:varchar(64);primary_key"`
	Username        string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_accounts_username"`
	Email           string             `gorm:"type:varchar(200);not null;uniqueIndex:idx_accounts_email"`
	HasSocialRecord bool               `gorm:"not null;default:false"`
	PrivateAccount  bool               `gorm:"not null;default:false"`
	ClosedAccount   bool               `gorm:"not null;default:false"`
	SkillLevel      account.SkillLevel `gorm:"type:varchar(20);not null;default:'beginner'"`
	Profile         *ProfileModel      `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `gorm:"not null"`
	UpdatedAt       time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ProfileModel is the cascade-owned 1:1 profile of an account. It
// shares the account's primary key.
type ProfileModel struct {
	AccountID string           `gorm:"type:varchar(64);primary_key"`
	FirstName string           `gorm:"type:varchar(100)"`
	LastName  string           `gorm:"type:varchar(100)"`
	BirthDate *time.Time       `gorm:"type:date"`
	Gender    account.Gender   `gorm:"type:varchar(20);not null;default:'unspecified'"`
	Pronouns  account.Pronouns `gorm:"type:varchar(20);not null;default:'unspecified'"`
	Addresses []AddressModel   `gorm:"foreignKey:ProfileID;references:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"not null"`
	UpdatedAt time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// AddressModel is an owned child of a profile.
type AddressModel struct {
	BaseModel
	ProfileID string `gorm:"type:varchar(64);not null;index"`
	Street    string `gorm:"type:varchar(200)"`
	Apartment string `gorm:"type:varchar(50)"`
	City      string `gorm:"type:varchar(100)"`
	ZipCode   string `gorm:"type:varchar(20)"`
	State     string `gorm:"type:varchar(100)"`
	Country   string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Account aggregate.
func (m *AccountModel) ToDomain() *account.Account {
	acct := &account.Account{
		ID:              m.ID,
		Username:        m.Username,
		Email:           m.Email,
		HasSocialRecord: m.HasSocialRecord,
		PrivateAccount:  m.PrivateAccount,
		ClosedAccount:   m.ClosedAccount,
		SkillLevel:      m.SkillLevel,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Profile != nil {
		acct.Profile = m.Profile.ToDomain()
	}
	return acct
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *account.Account) {
	m.ID = a.ID
	m.Username = a.Username
	m.Email = a.Email
	m.HasSocialRecord = a.HasSocialRecord
	m.PrivateAccount = a.PrivateAccount
	m.ClosedAccount = a.ClosedAccount
	m.SkillLevel = a.SkillLevel
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	if a.Profile != nil {
		p := &ProfileModel{}
		p.FromDomain(a.Profile)
		m.Profile = p
	} else {
		m.Profile = nil
	}
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *account.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// ToDomain converts the persistence model to a domain Profile.
func (m *ProfileModel) ToDomain() *account.Profile {
	p := &account.Profile{
		AccountID: m.AccountID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		BirthDate: m.BirthDate,
		Gender:    m.Gender,
		Pronouns:  m.Pronouns,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	p.Addresses = make([]account.Address, len(m.Addresses))
	for i, addr := range m.Addresses {
		p.Addresses[i] = account.Address{
			BaseEntity: addr.ToDomain(),
			Street:     addr.Street,
			Apartment:  addr.Apartment,
			City:       addr.City,
			ZipCode:    addr.ZipCode,
			State:      addr.State,
			Country:    addr.Country,
		}
	}
	return p
}

// FromDomain populates the persistence model from a domain Profile.
func (m *ProfileModel) FromDomain(p *account.Profile) {
	m.AccountID = p.AccountID
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.BirthDate = p.BirthDate
	m.Gender = p.Gender
	m.Pronouns = p.Pronouns
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	m.Addresses = make([]AddressModel, len(p.Addresses))
	for i, addr := range p.Addresses {
		am := AddressModel{
			ProfileID: p.AccountID,
			Street:    addr.Street,
			Apartment: addr.Apartment,
			City:      addr.City,
			ZipCode:   addr.ZipCode,
			State:     addr.State,
			Country:   addr.Country,
		}
		am.FromDomainBaseEntity(addr.BaseEntity)
		m.Addresses[i] = am
	}
}
