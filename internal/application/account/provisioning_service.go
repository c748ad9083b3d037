package account

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/account"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

// provisioningStep tracks how far a registration got, so failure
// handling knows what to unwind.
type provisioningStep int

const (
	stepValidate provisioningStep = iota
	stepCreateIdentity
	stepPersistLocal
	stepDone
)

func (s provisioningStep) String() string {
	switch s {
	case stepValidate:
		return "validate"
	case stepCreateIdentity:
		return "create_identity"
	case stepPersistLocal:
		return "persist_local"
	case stepDone:
		return "done"
	}
	return "unknown"
}

// ProvisioningService runs account registration as a saga across the
// external identity provider and the local store. The identity id is
// the account primary key, so the external create must complete before
// anything local is written; a local failure triggers a compensating
// delete of the identity.
type ProvisioningService struct {
	accounts   account.AccountRepository
	identities account.IdentityProvider
	exec       *resilience.Executor
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(
	accounts account.AccountRepository,
	identities account.IdentityProvider,
	exec *resilience.Executor,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		accounts:   accounts,
		identities: identities,
		exec:       exec,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register provisions an account. Uniqueness is checked before the
// remote call so duplicates fail fast with nothing to compensate.
func (s *ProvisioningService) Register(ctx context.Context, req RegisterAccountRequest) (*AccountResponse, error) {
	step := stepValidate
	s.logger.Info("Registering account", zap.String("username", req.Username))

	exists, err := s.accounts.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(account.ErrDuplicateIdentity.Code, "Username already exists")
	}
	exists, err = s.accounts.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(account.ErrDuplicateIdentity.Code, "Email already exists")
	}

	step = stepCreateIdentity
	externalID, err := resilience.Execute(ctx, s.exec, "main", "identity.create", func(ctx context.Context) (string, error) {
		return s.identities.CreateIdentity(ctx, account.NewIdentity{
			Username:   req.Username,
			Email:      req.Email,
			Password:   req.Password,
			GivenName:  req.FirstName,
			FamilyName: req.LastName,
		})
	})
	if err != nil {
		// Nothing local written yet, nothing to unwind.
		s.logger.Error("Identity creation failed",
			zap.String("username", req.Username),
			zap.String("step", step.String()),
			zap.Error(err))
		var derr *shared.DomainError
		if errors.As(err, &derr) && derr.Code != resilience.ErrRemoteCallExhausted.Code {
			return nil, err
		}
		return nil, account.ErrProvisioningFailed
	}

	step = stepPersistLocal
	acct, err := account.NewAccount(externalID, req.Username, req.Email)
	if err != nil {
		s.compensateIdentity(ctx, externalID, req.Username)
		return nil, err
	}
	profile := account.NewProfile(req.FirstName, req.LastName)
	acct.AttachProfile(profile)

	if err := s.accounts.Create(ctx, acct); err != nil {
		s.logger.Error("Local persistence failed, compensating identity",
			zap.String("account_id", externalID),
			zap.String("step", step.String()),
			zap.Error(err))
		s.compensateIdentity(ctx, externalID, req.Username)
		var derr *shared.DomainError
		if errors.As(err, &derr) {
			return nil, err
		}
		return nil, account.ErrProvisioningFailed
	}

	step = stepDone
	s.publishEvents(ctx, acct)
	s.logger.Info("Account provisioned",
		zap.String("account_id", acct.ID),
		zap.String("username", acct.Username))
	return toAccountResponse(acct), nil
}

// Deprovision removes an account. The external identity goes first so
// a crash mid-operation leaves a local record without an identity
// rather than an identity nobody owns.
func (s *ProvisioningService) Deprovision(ctx context.Context, accountID string) error {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	err = resilience.ExecuteVoid(ctx, s.exec, "main", "identity.delete", func(ctx context.Context) error {
		return s.identities.DeleteIdentity(ctx, acct.ID)
	})
	if err != nil {
		s.logger.Error("External identity delete failed, continuing with local delete",
			zap.String("account_id", acct.ID),
			zap.Error(err))
	}

	if err := s.accounts.Delete(ctx, acct.ID); err != nil {
		return err
	}

	acct.MarkDeprovisioned()
	s.publishEvents(ctx, acct)
	s.logger.Info("Account deprovisioned", zap.String("account_id", acct.ID))
	return nil
}

// compensateIdentity deletes an external identity after a failed local
// persist. Best effort: failure is logged and the original error still
// reaches the caller, leaving a possible orphaned identity.
func (s *ProvisioningService) compensateIdentity(ctx context.Context, externalID, username string) {
	err := resilience.ExecuteVoid(ctx, s.exec, "main", "identity.compensate", func(ctx context.Context) error {
		return s.identities.DeleteIdentity(ctx, externalID)
	})
	if err != nil {
		s.logger.Error("Compensating identity delete failed, external identity may be orphaned",
			zap.String("external_id", externalID),
			zap.String("username", username),
			zap.Error(err))
	}
}

func (s *ProvisioningService) publishEvents(ctx context.Context, acct *account.Account) {
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
