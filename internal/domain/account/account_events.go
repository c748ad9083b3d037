package account

import (
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Event types for the account aggregate
const (
	EventTypeAccountProvisioned   = "account.provisioned"
	EventTypeAccountDeprovisioned = "account.deprovisioned"
	EventTypeSocialFlagChanged    = "account.social_flag_changed"
)

// AccountProvisionedEvent is raised when the saga completes successfully
type AccountProvisionedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewAccountProvisionedEvent creates an AccountProvisionedEvent
func NewAccountProvisionedEvent(a *Account) *AccountProvisionedEvent {
	return &AccountProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountProvisioned, "Account", a.ID),
		Username:        a.Username,
		Email:           a.Email,
	}
}

// AccountDeprovisionedEvent is raised when an account is deleted
type AccountDeprovisionedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewAccountDeprovisionedEvent creates an AccountDeprovisionedEvent
func NewAccountDeprovisionedEvent(a *Account) *AccountDeprovisionedEvent {
	return &AccountDeprovisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountDeprovisioned, "Account", a.ID),
		Username:        a.Username,
	}
}

// SocialFlagChangedEvent is raised when the social-record flag flips
type SocialFlagChangedEvent struct {
	shared.BaseDomainEvent
	HasSocialRecord bool `json:"has_social_record"`
}

// NewSocialFlagChangedEvent creates a SocialFlagChangedEvent
func NewSocialFlagChangedEvent(a *Account, hasSocial bool) *SocialFlagChangedEvent {
	return &SocialFlagChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSocialFlagChanged, "Account", a.ID),
		HasSocialRecord: hasSocial,
	}
}
