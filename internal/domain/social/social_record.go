package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Social graph errors
var (
	ErrSocialRecordNotFound = shared.NewDomainError("SOCIAL_RECORD_NOT_FOUND", "Social record not found")
	ErrSocialRecordExists   = shared.NewDomainError("ALREADY_EXISTS", "Social record already exists for account")
	ErrAlreadyFollowing     = shared.NewDomainError("ALREADY_FOLLOWING", "Already following target account")
	ErrNotFollowing         = shared.NewDomainError("NOT_FOLLOWING", "Not currently following target account")
	ErrAlreadyBookmarked    = shared.NewDomainError("ALREADY_BOOKMARKED", "Recipe is already bookmarked")
	ErrNotBookmarked        = shared.NewDomainError("NOT_BOOKMARKED", "Recipe is not bookmarked")
	ErrSelfFollow           = shared.NewDomainError("SELF_FOLLOW", "An account cannot follow itself")
)

// SocialRecord is the per-account social-graph aggregate. It shares its
// primary key with the Account (a weak reference, not an ownership edge).
// Follow edges are stored denormalized on both endpoints: for records A
// and B, B in A.Following must imply A in B.Followers. Both sides are
// written together; the engine repairs asymmetry left by a crash between
// the two writes on the next retry.
type SocialRecord struct {
	shared.BaseAggregateRoot
	AccountID         string
	Following         []string
	Followers         []string
	BookmarkedRecipes []uuid.UUID
	Cookbooks         []Cookbook
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewSocialRecord creates an empty social record for an account
func NewSocialRecord(accountID string) (*SocialRecord, error) {
	if accountID == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_ID", "Account id cannot be empty")
	}
	now := time.Now()
	return &SocialRecord{
		AccountID:         accountID,
		Following:         make([]string, 0),
		Followers:         make([]string, 0),
		BookmarkedRecipes: make([]uuid.UUID, 0),
		Cookbooks:         make([]Cookbook, 0),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// IsFollowing reports whether the record follows the given account
func (r *SocialRecord) IsFollowing(accountID string) bool {
	return containsString(r.Following, accountID)
}

// HasFollower reports whether the given account is listed as a follower
func (r *SocialRecord) HasFollower(accountID string) bool {
	return containsString(r.Followers, accountID)
}

// HasBookmarked reports whether the recipe is bookmarked
func (r *SocialRecord) HasBookmarked(recipeID uuid.UUID) bool {
	for _, id := range r.BookmarkedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// Follow adds the symmetric edge source -> target to both records.
// Repeat follows are rejected, not silently accepted: callers must treat
// a second follow of the same target as a client error.
func Follow(source, target *SocialRecord) error {
	if source.AccountID == target.AccountID {
		return ErrSelfFollow
	}
	if source.IsFollowing(target.AccountID) {
		return ErrAlreadyFollowing
	}

	source.Following = append(source.Following, target.AccountID)
	if !target.HasFollower(source.AccountID) {
		target.Followers = append(target.Followers, source.AccountID)
	}
	now := time.Now()
	source.UpdatedAt = now
	target.UpdatedAt = now

	source.AddDomainEvent(NewFollowEdgeAddedEvent(source.AccountID, target.AccountID))
	return nil
}

// Unfollow removes the symmetric edge from both records. It fails with
// ErrNotFollowing only when neither side holds the edge; removal of a
// half-written edge succeeds so a retry can converge.
func Unfollow(source, target *SocialRecord) error {
	removedForward := removeString(&source.Following, target.AccountID)
	removedReverse := removeString(&target.Followers, source.AccountID)
	if !removedForward && !removedReverse {
		return ErrNotFollowing
	}

	now := time.Now()
	source.UpdatedAt = now
	target.UpdatedAt = now

	source.AddDomainEvent(NewFollowEdgeRemovedEvent(source.AccountID, target.AccountID))
	return nil
}

// AddBookmark records a bookmarked recipe
func (r *SocialRecord) AddBookmark(recipeID uuid.UUID) error {
	if r.HasBookmarked(recipeID) {
		return ErrAlreadyBookmarked
	}
	r.BookmarkedRecipes = append(r.BookmarkedRecipes, recipeID)
	r.UpdatedAt = time.Now()
	return nil
}

// RemoveBookmark removes a bookmarked recipe
func (r *SocialRecord) RemoveBookmark(recipeID uuid.UUID) error {
	for i, id := range r.BookmarkedRecipes {
		if id == recipeID {
			r.BookmarkedRecipes = append(r.BookmarkedRecipes[:i], r.BookmarkedRecipes[i+1:]...)
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotBookmarked
}

// AddCookbook attaches an owned cookbook to the record
func (r *SocialRecord) AddCookbook(cb Cookbook) {
	r.Cookbooks = append(r.Cookbooks, cb)
	r.UpdatedAt = time.Now()
}

// RemoveCookbook detaches an owned cookbook by id
func (r *SocialRecord) RemoveCookbook(id uuid.UUID) error {
	for i, cb := range r.Cookbooks {
		if cb.ID == id {
			r.Cookbooks = append(r.Cookbooks[:i], r.Cookbooks[i+1:]...)
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("COOKBOOK_NOT_FOUND", "Cookbook not found on social record")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list *[]string, s string) bool {
	for i, v := range *list {
		if v == s {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
