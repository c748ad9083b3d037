package social

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// CookbookNote is the owned note of a cookbook
type CookbookNote struct {
	Title string
	Text  string
}

// EntryNote is the owned note of a cookbook entry
type EntryNote struct {
	Title string
	Text  string
}

// CookbookEntry references a recipe by value and owns its note
type CookbookEntry struct {
	shared.BaseEntity
	RecipeID uuid.UUID
	Note     EntryNote
}

// Cookbook is owned 1:N by exactly one SocialRecord
type Cookbook struct {
	shared.BaseEntity
	Name        string
	Description string
	Note        CookbookNote
	Entries     []CookbookEntry
}

// NewCookbook creates a cookbook with the given name and description
func NewCookbook(name, description string) (*Cookbook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COOKBOOK_NAME", "Cookbook name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_COOKBOOK_NAME", "Cookbook name cannot exceed 200 characters")
	}
	return &Cookbook{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Entries:     make([]CookbookEntry, 0),
	}, nil
}

// SetNote replaces the cookbook note
func (c *Cookbook) SetNote(note CookbookNote) {
	c.Note = note
	c.Touch()
}

// AddEntry appends an entry referencing a recipe
func (c *Cookbook) AddEntry(recipeID uuid.UUID, note EntryNote) (*CookbookEntry, error) {
	if recipeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPE_ID", "Recipe id cannot be empty")
	}
	entry := CookbookEntry{
		BaseEntity: shared.NewBaseEntity(),
		RecipeID:   recipeID,
		Note:       note,
	}
	c.Entries = append(c.Entries, entry)
	c.Touch()
	return &c.Entries[len(c.Entries)-1], nil
}

// RemoveEntry removes an entry by id
func (c *Cookbook) RemoveEntry(entryID uuid.UUID) error {
	for i, e := range c.Entries {
		if e.ID == entryID {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ENTRY_NOT_FOUND", "Cookbook entry not found")
}
