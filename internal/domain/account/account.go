package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// SkillLevel represents the cooking skill level declared on an account
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// Account errors
var (
	ErrAccountNotFound = shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")

	// ErrDuplicateIdentity is returned when the requested username or
	// email is already taken locally.
	ErrDuplicateIdentity = shared.NewDomainError("DUPLICATE_IDENTITY", "Username or email already exists")

	// ErrProvisioningFailed is returned when the external identity could
	// not be created, or the local persist failed after it was.
	ErrProvisioningFailed = shared.NewDomainError("PROVISIONING_FAILED", "Account provisioning failed")
)

// Account is the local record of a user. Its identity is the external
// identity-provider id, assigned at provisioning time. An Account exists
// locally iff a corresponding identity exists in the provider, except
// during the provisioning/deprovisioning window handled by the saga.
type Account struct {
	shared.BaseAggregateRoot
	ID              string
	Username        string
	Email           string
	HasSocialRecord bool
	PrivateAccount  bool
	ClosedAccount   bool
	SkillLevel      SkillLevel
	Profile         *Profile
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAccount creates a local account keyed by the external identity id.
// Only the provisioning saga should call this.
func NewAccount(externalID, username, email string) (*Account, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY_ID", "External identity id cannot be empty")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	acct := &Account{
		ID:         externalID,
		Username:   strings.ToLower(strings.TrimSpace(username)),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		SkillLevel: SkillLevelBeginner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	acct.AddDomainEvent(NewAccountProvisionedEvent(acct))
	return acct, nil
}

// AttachProfile sets the owned profile. The profile shares the account's
// primary key.
func (a *Account) AttachProfile(p *Profile) {
	if p != nil {
		p.AccountID = a.ID
	}
	a.Profile = p
	a.UpdatedAt = time.Now()
}

// SetSocialFlag records whether a social record exists for this account
func (a *Account) SetSocialFlag(hasSocial bool) {
	a.HasSocialRecord = hasSocial
	a.UpdatedAt = time.Now()
	a.AddDomainEvent(NewSocialFlagChangedEvent(a, hasSocial))
}

// SetPrivate toggles the privacy flag
func (a *Account) SetPrivate(private bool) {
	a.PrivateAccount = private
	a.UpdatedAt = time.Now()
}

// Close marks the account closed
func (a *Account) Close() error {
	if a.ClosedAccount {
		return shared.NewDomainError("ALREADY_CLOSED", "Account is already closed")
	}
	a.ClosedAccount = true
	a.UpdatedAt = time.Now()
	return nil
}

// Reopen clears the closed flag
func (a *Account) Reopen() error {
	if !a.ClosedAccount {
		return shared.NewDomainError("NOT_CLOSED", "Account is not closed")
	}
	a.ClosedAccount = false
	a.UpdatedAt = time.Now()
	return nil
}

// SetSkillLevel sets the declared skill level
func (a *Account) SetSkillLevel(level SkillLevel) error {
	switch level {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		a.SkillLevel = level
		a.UpdatedAt = time.Now()
		return nil
	default:
		return shared.NewDomainError("INVALID_SKILL_LEVEL", "Unknown skill level: "+string(level))
	}
}

// MarkDeprovisioned records the deprovisioning event before deletion
func (a *Account) MarkDeprovisioned() {
	a.AddDomainEvent(NewAccountDeprovisionedEvent(a))
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
