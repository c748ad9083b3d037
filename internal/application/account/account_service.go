package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// AccountService handles account reads and profile maintenance.
// Provisioning and deprovisioning live in ProvisioningService.
type AccountService struct {
	accounts  account.AccountRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts account.AccountRepository, publisher shared.EventPublisher, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
	}
}

// GetByID returns a full account view.
func (s *AccountService) GetByID(ctx context.Context, accountID string) (*AccountResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(acct), nil
}

// GetSummary returns the trimmed view peer services consume.
func (s *AccountService) GetSummary(ctx context.Context, accountID string) (*AccountSummaryResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	summary := toAccountSummary(acct)
	return &summary, nil
}

// List returns a page of account summaries.
func (s *AccountService) List(ctx context.Context, filter shared.Filter) (*ListAccountsResponse, error) {
	accounts, total, err := s.accounts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &ListAccountsResponse{
		Accounts: make([]AccountSummaryResponse, 0, len(accounts)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountSummary(a))
	}
	return resp, nil
}

// Update edits account settings.
func (s *AccountService) Update(ctx context.Context, accountID string, req UpdateAccountRequest) (*AccountResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.SkillLevel != nil {
		if err := acct.SetSkillLevel(account.SkillLevel(*req.SkillLevel)); err != nil {
			return nil, err
		}
	}
	if req.PrivateAccount != nil {
		acct.SetPrivate(*req.PrivateAccount)
	}
	if req.ClosedAccount != nil {
		if *req.ClosedAccount {
			err = acct.Close()
		} else {
			err = acct.Reopen()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	return toAccountResponse(acct), nil
}

// UpdateProfile edits the profile attached to an account.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, req UpdateProfileRequest) (*AccountResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct.Profile == nil {
		acct.AttachProfile(account.NewProfile("", ""))
	}
	p := acct.Profile

	first, last := p.FirstName, p.LastName
	if req.FirstName != nil {
		first = *req.FirstName
	}
	if req.LastName != nil {
		last = *req.LastName
	}
	p.SetNames(first, last)

	if req.BirthDate != nil {
		if err := p.SetBirthDate(*req.BirthDate); err != nil {
			return nil, err
		}
	}
	if req.Gender != nil {
		if err := p.SetGender(account.Gender(*req.Gender)); err != nil {
			return nil, err
		}
	}
	if req.Pronouns != nil {
		if err := p.SetPronouns(account.Pronouns(*req.Pronouns)); err != nil {
			return nil, err
		}
	}

	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	return toAccountResponse(acct), nil
}

// AddAddress attaches a new address to the profile.
func (s *AccountService) AddAddress(ctx context.Context, accountID string, req AddressRequest) (*AccountResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct.Profile == nil {
		acct.AttachProfile(account.NewProfile("", ""))
	}
	acct.Profile.AddAddress(account.Address{
		Street:    req.Street,
		Apartment: req.Apartment,
		City:      req.City,
		ZipCode:   req.ZipCode,
		State:     req.State,
		Country:   req.Country,
	})
	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	return toAccountResponse(acct), nil
}

// RemoveAddress drops an address from the profile.
func (s *AccountService) RemoveAddress(ctx context.Context, accountID, addressID string) (*AccountResponse, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct.Profile == nil {
		return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Address not found")
	}
	if err := acct.Profile.RemoveAddress(addressID); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	return toAccountResponse(acct), nil
}

// UpdateSocialFlag is called by the social service when a social
// record is created or torn down for this account.
func (s *AccountService) UpdateSocialFlag(ctx context.Context, accountID string, hasSocial bool) error {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	acct.SetSocialFlag(hasSocial)
	if err := s.accounts.Update(ctx, acct); err != nil {
		return err
	}
	s.publishEvents(ctx, acct)
	s.logger.Debug("Social flag updated",
		zap.String("account_id", accountID),
		zap.Bool("has_social", hasSocial))
	return nil
}

func (s *AccountService) publishEvents(ctx context.Context, acct *account.Account) {
	if s.publisher == nil {
		return
	}
	events := acct.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish account events", zap.Error(err))
	}
	acct.ClearDomainEvents()
}
