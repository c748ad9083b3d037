package social

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
)

// SocialService maintains the social graph: record lifecycle, follow
// edges, and recipe bookmarks. Calls toward the account context go
// through the resilience executor.
type SocialService struct {
	records   social.SocialRecordRepository
	directory acl.AccountDirectory
	exec      *resilience.Executor
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewSocialService creates a new SocialService.
func NewSocialService(
	records social.SocialRecordRepository,
	directory acl.AccountDirectory,
	exec *resilience.Executor,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SocialService {
	return &SocialService{
		records:   records,
		directory: directory,
		exec:      exec,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateSocialRecord provisions an empty record for an account. The
// account is verified against the directory first and flagged once the
// record exists.
func (s *SocialService) CreateSocialRecord(ctx context.Context, accountID string) (*SocialRecordResponse, error) {
	exists, err := s.records.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, social.ErrSocialRecordExists
	}

	summary, err := resilience.Execute(ctx, s.exec, "main", "directory.get_account", func(ctx context.Context) (acl.AccountSummary, error) {
		return s.directory.GetAccountByID(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}
	if err := summary.Validate(); err != nil {
		return nil, err
	}

	err = resilience.ExecuteVoid(ctx, s.exec, "main", "directory.add_social_flag", func(ctx context.Context) error {
		return s.directory.AddSocialFlag(ctx, summary.ID)
	})
	if err != nil {
		return nil, err
	}

	record, err := social.NewSocialRecord(summary.ID)
	if err != nil {
		return nil, err
	}
	record.AddDomainEvent(social.NewSocialRecordCreatedEvent(record.AccountID))
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	s.logger.Info("Social record created", zap.String("account_id", record.AccountID))
	return toSocialRecordResponse(record), nil
}

// DeleteSocialRecord tears a record down and clears the account flag.
// The flag is removed before the local delete so the account side never
// advertises a record that is already gone.
func (s *SocialService) DeleteSocialRecord(ctx context.Context, accountID string) error {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	err = resilience.ExecuteVoid(ctx, s.exec, "main", "directory.remove_social_flag", func(ctx context.Context) error {
		return s.directory.RemoveSocialFlag(ctx, record.AccountID)
	})
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, record.AccountID); err != nil {
		return err
	}

	record.AddDomainEvent(social.NewSocialRecordDeletedEvent(record.AccountID))
	s.publishEvents(ctx, record)
	s.logger.Info("Social record deleted", zap.String("account_id", accountID))
	return nil
}

// GetSocialRecord returns the full record.
func (s *SocialService) GetSocialRecord(ctx context.Context, accountID string) (*SocialRecordResponse, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toSocialRecordResponse(record), nil
}

// GetFollowers returns the follower ids of a record.
func (s *SocialService) GetFollowers(ctx context.Context, accountID string) ([]string, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return append([]string{}, record.Followers...), nil
}

// GetFollowing returns the ids a record follows.
func (s *SocialService) GetFollowing(ctx context.Context, accountID string) ([]string, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return append([]string{}, record.Following...), nil
}

// Follows reports whether followerID follows targetID. Accounts
// without a social record follow nobody.
func (s *SocialService) Follows(ctx context.Context, followerID, targetID string) (bool, error) {
	record, err := s.records.FindByID(ctx, followerID)
	if err != nil {
		if errors.Is(err, social.ErrSocialRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsFollowing(targetID), nil
}

// GetBookmarks returns the bookmarked recipe ids of a record.
func (s *SocialService) GetBookmarks(ctx context.Context, accountID string) ([]string, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(record.BookmarkedRecipes))
	for _, id := range record.BookmarkedRecipes {
		out = append(out, id.String())
	}
	return out, nil
}

// Follow adds the edge source→target on both endpoints and persists
// both records together. Repeat follows are rejected, not absorbed.
func (s *SocialService) Follow(ctx context.Context, sourceID, targetID string) (*SocialRecordResponse, error) {
	source, err := s.records.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := s.records.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := social.Follow(source, target); err != nil {
		return nil, err
	}
	if err := s.records.SavePair(ctx, source, target); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, source)
	s.logger.Info("Follow edge added",
		zap.String("source", sourceID),
		zap.String("target", targetID))
	return toSocialRecordResponse(source), nil
}

// Unfollow removes the edge from both endpoints. It fails only when
// neither side held the edge, so a retry after a partial write still
// converges to the fully-removed state.
func (s *SocialService) Unfollow(ctx context.Context, sourceID, targetID string) error {
	source, err := s.records.FindByID(ctx, sourceID)
	if err != nil {
		return err
	}
	target, err := s.records.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if err := social.Unfollow(source, target); err != nil {
		return err
	}
	if err := s.records.SavePair(ctx, source, target); err != nil {
		return err
	}

	s.publishEvents(ctx, source)
	s.logger.Info("Follow edge removed",
		zap.String("source", sourceID),
		zap.String("target", targetID))
	return nil
}

// Bookmark adds a recipe to the record's bookmark set.
func (s *SocialService) Bookmark(ctx context.Context, accountID string, recipeID uuid.UUID) (*SocialRecordResponse, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := record.AddBookmark(recipeID); err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}
	return toSocialRecordResponse(record), nil
}

// Unbookmark removes a recipe from the record's bookmark set.
func (s *SocialService) Unbookmark(ctx context.Context, accountID string, recipeID uuid.UUID) error {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := record.RemoveBookmark(recipeID); err != nil {
		return err
	}
	return s.records.Save(ctx, record)
}

func (s *SocialService) publishEvents(ctx context.Context, record *social.SocialRecord) {
	if s.publisher == nil {
		return
	}
	events := record.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish social events", zap.Error(err))
	}
	record.ClearDomainEvents()
}
