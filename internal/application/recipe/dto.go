package recipe

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
)

// CreateRecipeSimpleRequest creates a recipe with blank lists.
type CreateRecipeSimpleRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	CreatedBy   string `json:"created_by"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=public followers_only private"`
	SkillLevel  string `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
}

// CreateRecipeDetailedRequest creates a recipe with composed lists.
// A nil list yields an empty owned aggregate, never an absent one.
type CreateRecipeDetailedRequest struct {
	Title        string                  `json:"title" binding:"required,min=1,max=200"`
	Description  string                  `json:"description" binding:"max=2000"`
	CreatedBy    string                  `json:"created_by"`
	Visibility   string                  `json:"visibility" binding:"omitempty,oneof=public followers_only private"`
	SkillLevel   string                  `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	Ingredients  *IngredientListRequest  `json:"ingredient_list"`
	Instructions *InstructionListRequest `json:"instruction_list"`
	Tags         *TagListRequest         `json:"tag_list"`
}

// IngredientListRequest carries the ingredient items.
type IngredientListRequest struct {
	Items []IngredientItemRequest `json:"items" binding:"dive"`
}

// IngredientItemRequest is one ingredient item: the leaf natural key
// plus the structural data proper to this item.
type IngredientItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity"`
	Measurement string          `json:"measurement" binding:"required"`
}

// InstructionListRequest carries the instruction items.
type InstructionListRequest struct {
	Items []InstructionItemRequest `json:"items" binding:"dive"`
}

// InstructionItemRequest is one instruction item. Step numbers are
// assigned from list order when zero.
type InstructionItemRequest struct {
	Text       string `json:"text" binding:"required,min=1,max=2000"`
	Note       string `json:"note" binding:"max=2000"`
	StepNumber int    `json:"step_number" binding:"omitempty,min=1"`
}

// TagListRequest carries the tag items.
type TagListRequest struct {
	Items []TagItemRequest `json:"items" binding:"dive"`
}

// TagItemRequest is one tag item.
type TagItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddNoteRequest attaches a note to a recipe.
type AddNoteRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// IngredientItemResponse is one composed ingredient item.
type IngredientItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Measurement string          `json:"measurement"`
}

// InstructionItemResponse is one composed instruction item.
type InstructionItemResponse struct {
	ID         string `json:"id"`
	StepNumber int    `json:"step_number"`
	Text       string `json:"text"`
	Note       string `json:"note,omitempty"`
}

// NoteResponse is one recipe note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeResponse is the full outward recipe representation.
type RecipeResponse struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description,omitempty"`
	CreatedBy         string                    `json:"created_by"`
	CreatedByUsername string                    `json:"created_by_username"`
	Visibility        string                    `json:"visibility"`
	SkillLevel        string                    `json:"skill_level"`
	Ingredients       []IngredientItemResponse  `json:"ingredients"`
	Instructions      []InstructionItemResponse `json:"instructions"`
	Tags              []string                  `json:"tags"`
	Notes             []NoteResponse            `json:"notes,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// RecipeSummaryResponse is the trimmed listing view.
type RecipeSummaryResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	CreatedByUsername string    `json:"created_by_username"`
	Visibility        string    `json:"visibility"`
	SkillLevel        string    `json:"skill_level"`
	CreatedAt         time.Time `json:"created_at"`
}

// ListRecipesResponse is a paginated recipe listing.
type ListRecipesResponse struct {
	Recipes  []RecipeSummaryResponse `json:"recipes"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

func toRecipeResponse(r *recipe.Recipe) *RecipeResponse {
	resp := &RecipeResponse{
		ID:                r.ID.String(),
		Title:             r.Title,
		Description:       r.Description,
		CreatedBy:         r.CreatedBy,
		CreatedByUsername: r.CreatedByUsername,
		Visibility:        string(r.Visibility),
		SkillLevel:        string(r.SkillLevel),
		Ingredients:       make([]IngredientItemResponse, 0, len(r.Ingredients.Items)),
		Instructions:      make([]InstructionItemResponse, 0, len(r.Instructions.Items)),
		Tags:              make([]string, 0, len(r.Tags.Items)),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	for _, item := range r.Ingredients.Items {
		resp.Ingredients = append(resp.Ingredients, IngredientItemResponse{
			ID:          item.ID.String(),
			Name:        item.Ingredient.Name,
			Quantity:    item.Quantity,
			Measurement: string(item.Measurement),
		})
	}
	for _, item := range r.Instructions.Items {
		resp.Instructions = append(resp.Instructions, InstructionItemResponse{
			ID:         item.ID.String(),
			StepNumber: item.StepNumber,
			Text:       item.Instruction.Text,
			Note:       item.Instruction.Note,
		})
	}
	for _, item := range r.Tags.Items {
		resp.Tags = append(resp.Tags, item.Tag.Name)
	}
	for _, n := range r.Notes {
		resp.Notes = append(resp.Notes, NoteResponse{
			ID:        n.ID.String(),
			Text:      n.Text,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}

func toRecipeSummary(r *recipe.Recipe) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:                r.ID.String(),
		Title:             r.Title,
		Description:       r.Description,
		CreatedByUsername: r.CreatedByUsername,
		Visibility:        string(r.Visibility),
		SkillLevel:        string(r.SkillLevel),
		CreatedAt:         r.CreatedAt,
	}
}
