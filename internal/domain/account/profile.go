package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Gender is a free-form self-description kept as an enum in the store
type Gender string

const (
	GenderUnspecified Gender = "unspecified"
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderNonBinary   Gender = "non_binary"
	GenderOther       Gender = "other"
)

// Pronouns declared on the profile
type Pronouns string

const (
	PronounsUnspecified Pronouns = "unspecified"
	PronounsSheHer      Pronouns = "she_her"
	PronounsHeHim       Pronouns = "he_him"
	PronounsTheyThem    Pronouns = "they_them"
	PronounsOther       Pronouns = "other"
)

// Profile is the 1:1 cascade-owned profile of an account. It shares the
// account's primary key.
type Profile struct {
	AccountID string
	FirstName string
	LastName  string
	BirthDate *time.Time
	Gender    Gender
	Pronouns  Pronouns
	Addresses []Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address is an owned child of a profile
type Address struct {
	shared.BaseEntity
	Street    string
	Apartment string
	City      string
	ZipCode   string
	State     string
	Country   string
}

// NewProfile creates a profile with the given names. The owning account
// assigns the id when the profile is attached.
func NewProfile(firstName, lastName string) *Profile {
	now := time.Now()
	return &Profile{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Gender:    GenderUnspecified,
		Pronouns:  PronounsUnspecified,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetNames updates the profile names
func (p *Profile) SetNames(first, last string) {
	p.FirstName = strings.TrimSpace(first)
	p.LastName = strings.TrimSpace(last)
	p.UpdatedAt = time.Now()
}

// SetBirthDate sets the birth date; future dates are rejected
func (p *Profile) SetBirthDate(t time.Time) error {
	if t.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}
	p.BirthDate = &t
	p.UpdatedAt = time.Now()
	return nil
}

// SetGender updates the declared gender
func (p *Profile) SetGender(g Gender) error {
	switch g {
	case GenderUnspecified, GenderFemale, GenderMale, GenderNonBinary, GenderOther:
		p.Gender = g
		p.UpdatedAt = time.Now()
		return nil
	}
	return shared.NewDomainError("INVALID_GENDER", "Unknown gender value: "+string(g))
}

// SetPronouns updates the declared pronouns
func (p *Profile) SetPronouns(pr Pronouns) error {
	switch pr {
	case PronounsUnspecified, PronounsSheHer, PronounsHeHim, PronounsTheyThem, PronounsOther:
		p.Pronouns = pr
		p.UpdatedAt = time.Now()
		return nil
	}
	return shared.NewDomainError("INVALID_PRONOUNS", "Unknown pronouns value: "+string(pr))
}

// Age derives the age in whole years from the birth date, 0 when unset
func (p *Profile) Age() int {
	if p.BirthDate == nil {
		return 0
	}
	now := time.Now()
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// AddAddress appends an owned address
func (p *Profile) AddAddress(addr Address) {
	if addr.ID == uuid.Nil {
		addr.BaseEntity = shared.NewBaseEntity()
	}
	p.Addresses = append(p.Addresses, addr)
	p.UpdatedAt = time.Now()
}

// RemoveAddress removes an owned address by id
func (p *Profile) RemoveAddress(id string) error {
	for i, addr := range p.Addresses {
		if addr.ID.String() == id {
			p.Addresses = append(p.Addresses[:i], p.Addresses[i+1:]...)
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ADDRESS_NOT_FOUND", "Address not found on profile")
}
