package account

import (
	"time"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
)

// RegisterAccountRequest carries a new registration. The password only
// travels to the identity provider and is never stored locally.
type RegisterAccountRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// UpdateAccountRequest edits mutable account settings.
type UpdateAccountRequest struct {
	SkillLevel     *string `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	PrivateAccount *bool   `json:"private_account"`
	ClosedAccount  *bool   `json:"closed_account"`
}

// UpdateProfileRequest edits profile fields.
type UpdateProfileRequest struct {
	FirstName *string    `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string    `json:"last_name" binding:"omitempty,max=100"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    *string    `json:"gender"`
	Pronouns  *string    `json:"pronouns"`
}

// AddressRequest adds or replaces a profile address.
type AddressRequest struct {
	Street    string `json:"street" binding:"required,max=200"`
	Apartment string `json:"apartment" binding:"max=50"`
	City      string `json:"city" binding:"required,max=100"`
	ZipCode   string `json:"zip_code" binding:"max=20"`
	State     string `json:"state" binding:"max=100"`
	Country   string `json:"country" binding:"required,max=100"`
}

// AddressResponse is one profile address.
type AddressResponse struct {
	ID        string `json:"id"`
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country"`
}

// ProfileResponse is the profile section of an account.
type ProfileResponse struct {
	FirstName string            `json:"first_name,omitempty"`
	LastName  string            `json:"last_name,omitempty"`
	BirthDate *time.Time        `json:"birth_date,omitempty"`
	Gender    string            `json:"gender,omitempty"`
	Pronouns  string            `json:"pronouns,omitempty"`
	Addresses []AddressResponse `json:"addresses,omitempty"`
}

// AccountResponse is the outward account representation.
type AccountResponse struct {
	ID              string           `json:"id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	HasSocialRecord bool             `json:"has_social_record"`
	PrivateAccount  bool             `json:"private_account"`
	ClosedAccount   bool             `json:"closed_account"`
	SkillLevel      string           `json:"skill_level"`
	Profile         *ProfileResponse `json:"profile,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// AccountSummaryResponse is the trimmed view used by peer services and
// list endpoints.
type AccountSummaryResponse struct {
	ID                   string `json:"id"`
	Username             string `json:"username"`
	HasSocialInteraction bool   `json:"hasSocialInteraction"`
	PrivateAccount       bool   `json:"privateAccount"`
}

// ListAccountsResponse is a paginated account listing.
type ListAccountsResponse struct {
	Accounts []AccountSummaryResponse `json:"accounts"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

func toAccountResponse(a *account.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:              a.ID,
		Username:        a.Username,
		Email:           a.Email,
		HasSocialRecord: a.HasSocialRecord,
		PrivateAccount:  a.PrivateAccount,
		ClosedAccount:   a.ClosedAccount,
		SkillLevel:      string(a.SkillLevel),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Profile != nil {
		resp.Profile = toProfileResponse(a.Profile)
	}
	return resp
}

func toProfileResponse(p *account.Profile) *ProfileResponse {
	out := &ProfileResponse{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Gender:    string(p.Gender),
		Pronouns:  string(p.Pronouns),
	}
	for _, addr := range p.Addresses {
		out.Addresses = append(out.Addresses, AddressResponse{
			ID:        addr.ID.String(),
			Street:    addr.Street,
			Apartment: addr.Apartment,
			City:      addr.City,
			ZipCode:   addr.ZipCode,
			State:     addr.State,
			Country:   addr.Country,
		})
	}
	return out
}

func toAccountSummary(a *account.Account) AccountSummaryResponse {
	return AccountSummaryResponse{
		ID:                   a.ID,
		Username:             a.Username,
		HasSocialInteraction: a.HasSocialRecord,
		PrivateAccount:       a.PrivateAccount,
	}
}
