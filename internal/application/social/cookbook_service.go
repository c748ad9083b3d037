package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
)

// CookbookService composes cookbooks and keeps them attached to their
// owning social record.
type CookbookService struct {
	records   social.SocialRecordRepository
	cookbooks social.CookbookRepository
	logger    *zap.Logger
}

// NewCookbookService creates a new CookbookService.
func NewCookbookService(records social.SocialRecordRepository, cookbooks social.CookbookRepository, logger *zap.Logger) *CookbookService {
	return &CookbookService{
		records:   records,
		cookbooks: cookbooks,
		logger:    logger,
	}
}

// CreateCookbookFor builds a cookbook from the request, persists it
// under the owning record, and returns the updated record.
func (s *CookbookService) CreateCookbookFor(ctx context.Context, accountID string, req CreateCookbookRequest) (*SocialRecordResponse, error) {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	cb, err := composeCookbook(req)
	if err != nil {
		return nil, err
	}

	if err := s.cookbooks.Create(ctx, record.AccountID, cb); err != nil {
		return nil, err
	}
	record.AddCookbook(*cb)
	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Cookbook created",
		zap.String("account_id", accountID),
		zap.String("cookbook_id", cb.ID.String()))
	return toSocialRecordResponse(record), nil
}

// GetCookbook returns one cookbook by id.
func (s *CookbookService) GetCookbook(ctx context.Context, cookbookID uuid.UUID) (*CookbookResponse, error) {
	cb, err := s.cookbooks.FindByID(ctx, cookbookID)
	if err != nil {
		return nil, err
	}
	resp := toCookbookResponse(cb)
	return &resp, nil
}

// ListCookbooks returns all cookbooks owned by a record.
func (s *CookbookService) ListCookbooks(ctx context.Context, accountID string) ([]CookbookResponse, error) {
	cbs, err := s.cookbooks.FindByOwner(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]CookbookResponse, 0, len(cbs))
	for i := range cbs {
		out = append(out, toCookbookResponse(&cbs[i]))
	}
	return out, nil
}

// AddEntry appends a recipe entry to an existing cookbook.
func (s *CookbookService) AddEntry(ctx context.Context, cookbookID uuid.UUID, req CookbookEntryRequest) (*CookbookResponse, error) {
	cb, err := s.cookbooks.FindByID(ctx, cookbookID)
	if err != nil {
		return nil, err
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_RECIPE_ID", "Recipe id is not a valid UUID")
	}
	note := social.EntryNote{}
	if req.Note != nil {
		note = social.EntryNote{Title: req.Note.Title, Text: req.Note.Text}
	}
	if _, err := cb.AddEntry(recipeID, note); err != nil {
		return nil, err
	}
	if err := s.cookbooks.Save(ctx, cb); err != nil {
		return nil, err
	}
	resp := toCookbookResponse(cb)
	return &resp, nil
}

// RemoveEntry drops an entry from a cookbook.
func (s *CookbookService) RemoveEntry(ctx context.Context, cookbookID, entryID uuid.UUID) error {
	cb, err := s.cookbooks.FindByID(ctx, cookbookID)
	if err != nil {
		return err
	}
	if err := cb.RemoveEntry(entryID); err != nil {
		return err
	}
	return s.cookbooks.Save(ctx, cb)
}

// DeleteCookbook removes a cookbook and detaches it from its owner.
func (s *CookbookService) DeleteCookbook(ctx context.Context, accountID string, cookbookID uuid.UUID) error {
	record, err := s.records.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := record.RemoveCookbook(cookbookID); err != nil {
		return err
	}
	if err := s.cookbooks.Delete(ctx, cookbookID); err != nil {
		return err
	}
	return s.records.Save(ctx, record)
}

// composeCookbook builds the cookbook aggregate from the request in
// one pass so it is persisted whole, entries attached.
func composeCookbook(req CreateCookbookRequest) (*social.Cookbook, error) {
	cb, err := social.NewCookbook(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if req.Note != nil {
		cb.SetNote(social.CookbookNote{Title: req.Note.Title, Text: req.Note.Text})
	}
	for _, entry := range req.Entries {
		recipeID, err := uuid.Parse(entry.RecipeID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_RECIPE_ID", "Recipe id is not a valid UUID")
		}
		note := social.EntryNote{}
		if entry.Note != nil {
			note = social.EntryNote{Title: entry.Note.Title, Text: entry.Note.Text}
		}
		if _, err := cb.AddEntry(recipeID, note); err != nil {
			return nil, err
		}
	}
	return cb, nil
}
