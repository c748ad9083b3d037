package social

import (
	"time"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/social"
)

// CreateCookbookRequest builds a cookbook with optional entries.
type CreateCookbookRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=200"`
	Description string                 `json:"description" binding:"max=1000"`
	Note        *NoteRequest           `json:"note"`
	Entries     []CookbookEntryRequest `json:"entries" binding:"dive"`
}

// NoteRequest carries a titled note for a cookbook or entry.
type NoteRequest struct {
	Title string `json:"title" binding:"max=200"`
	Text  string `json:"text" binding:"max=2000"`
}

// CookbookEntryRequest adds one recipe entry to a cookbook.
type CookbookEntryRequest struct {
	RecipeID string       `json:"recipe_id" binding:"required,uuid"`
	Note     *NoteRequest `json:"note"`
}

// NoteResponse mirrors NoteRequest on the way out.
type NoteResponse struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// CookbookEntryResponse is one recipe entry of a cookbook.
type CookbookEntryResponse struct {
	ID       string        `json:"id"`
	RecipeID string        `json:"recipe_id"`
	Note     *NoteResponse `json:"note,omitempty"`
}

// CookbookResponse is the outward cookbook representation.
type CookbookResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Note        *NoteResponse           `json:"note,omitempty"`
	Entries     []CookbookEntryResponse `json:"entries"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// SocialRecordResponse is the outward social record representation.
type SocialRecordResponse struct {
	AccountID         string             `json:"account_id"`
	Following         []string           `json:"following"`
	Followers         []string           `json:"followers"`
	BookmarkedRecipes []string           `json:"bookmarked_recipes"`
	Cookbooks         []CookbookResponse `json:"cookbooks"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func toNoteResponse(title, text string) *NoteResponse {
	if title == "" && text == "" {
		return nil
	}
	return &NoteResponse{Title: title, Text: text}
}

func toCookbookResponse(cb *social.Cookbook) CookbookResponse {
	resp := CookbookResponse{
		ID:          cb.ID.String(),
		Name:        cb.Name,
		Description: cb.Description,
		Note:        toNoteResponse(cb.Note.Title, cb.Note.Text),
		Entries:     make([]CookbookEntryResponse, 0, len(cb.Entries)),
		CreatedAt:   cb.CreatedAt,
		UpdatedAt:   cb.UpdatedAt,
	}
	for _, e := range cb.Entries {
		resp.Entries = append(resp.Entries, CookbookEntryResponse{
			ID:       e.ID.String(),
			RecipeID: e.RecipeID.String(),
			Note:     toNoteResponse(e.Note.Title, e.Note.Text),
		})
	}
	return resp
}

func toSocialRecordResponse(r *social.SocialRecord) *SocialRecordResponse {
	resp := &SocialRecordResponse{
		AccountID:         r.AccountID,
		Following:         append([]string{}, r.Following...),
		Followers:         append([]string{}, r.Followers...),
		BookmarkedRecipes: make([]string, 0, len(r.BookmarkedRecipes)),
		Cookbooks:         make([]CookbookResponse, 0, len(r.Cookbooks)),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	for _, id := range r.BookmarkedRecipes {
		resp.BookmarkedRecipes = append(resp.BookmarkedRecipes, id.String())
	}
	for i := range r.Cookbooks {
		resp.Cookbooks = append(resp.Cookbooks, toCookbookResponse(&r.Cookbooks[i]))
	}
	return resp
}
