package recipe

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// Visibility controls who may view a recipe.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityFollowersOnly Visibility = "followers_only"
	VisibilityPrivate       Visibility = "private"
)

// IsValid checks whether the visibility is a known value.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityFollowersOnly, VisibilityPrivate:
		return true
	}
	return false
}

// SkillLevel rates how demanding a recipe is to cook.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// IsValid checks whether the skill level is a known value.
func (s SkillLevel) IsValid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// Measurement is the unit attached to an ingredient quantity.
type Measurement string

const (
	MeasurementGram       Measurement = "gram"
	MeasurementKilogram   Measurement = "kilogram"
	MeasurementMilliliter Measurement = "milliliter"
	MeasurementLiter      Measurement = "liter"
	MeasurementTeaspoon   Measurement = "teaspoon"
	MeasurementTablespoon Measurement = "tablespoon"
	MeasurementCup        Measurement = "cup"
	MeasurementOunce      Measurement = "ounce"
	MeasurementPound      Measurement = "pound"
	MeasurementPiece      Measurement = "piece"
	MeasurementPinch      Measurement = "pinch"
	MeasurementToTaste    Measurement = "to_taste"
)

// IsValid checks whether the measurement is a known unit.
func (m Measurement) IsValid() bool {
	switch m {
	case MeasurementGram, MeasurementKilogram, MeasurementMilliliter,
		MeasurementLiter, MeasurementTeaspoon, MeasurementTablespoon,
		MeasurementCup, MeasurementOunce, MeasurementPound,
		MeasurementPiece, MeasurementPinch, MeasurementToTaste:
		return true
	}
	return false
}

// Recipe domain errors.
var (
	ErrRecipeNotFound = shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	ErrInvalidRecipe  = shared.NewDomainError("INVALID_RECIPE", "Recipe data is invalid")
)

// AnonymousCreator is recorded when the creator account cannot be resolved.
const AnonymousCreator = "anonymous"

// Ingredient is a shared leaf entity keyed by its name. Many list items
// across many recipes may reference the same row.
type Ingredient struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewIngredient creates an ingredient leaf with a normalized name.
func NewIngredient(name string) (*Ingredient, error) {
	name = NormalizeLeafName(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient name cannot be empty")
	}
	return &Ingredient{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Instruction is a shared leaf entity keyed by its text.
type Instruction struct {
	shared.BaseEntity
	Text string `json:"text"`
	Note string `json:"note,omitempty"`
}

// NewInstruction creates an instruction leaf.
func NewInstruction(text, note string) (*Instruction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.NewDomainError("INVALID_INSTRUCTION", "Instruction text cannot be empty")
	}
	return &Instruction{BaseEntity: shared.NewBaseEntity(), Text: text, Note: strings.TrimSpace(note)}, nil
}

// Tag is a shared leaf entity keyed by its name.
type Tag struct {
	shared.BaseEntity
	Name string `json:"name"`
}

// NewTag creates a tag leaf with a normalized name.
func NewTag(name string) (*Tag, error) {
	name = NormalizeLeafName(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TAG", "Tag name cannot be empty")
	}
	return &Tag{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// NormalizeLeafName canonicalizes a leaf natural key so "Salt" and
// " salt " dedup to the same row.
func NormalizeLeafName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// IngredientItem ties an ingredient leaf to one list with its
// structural data.
type IngredientItem struct {
	shared.BaseEntity
	Quantity    decimal.Decimal `json:"quantity"`
	Measurement Measurement     `json:"measurement"`
	Ingredient  Ingredient      `json:"ingredient"`
}

// InstructionItem ties an instruction leaf to one list at a step.
type InstructionItem struct {
	shared.BaseEntity
	StepNumber  int         `json:"stepNumber"`
	Instruction Instruction `json:"instruction"`
}

// TagItem ties a tag leaf to one list.
type TagItem struct {
	shared.BaseEntity
	Tag Tag `json:"tag"`
}

// IngredientList is the owned ingredient aggregate of a recipe. It
// always exists, possibly with no items.
type IngredientList struct {
	shared.BaseEntity
	Items []IngredientItem `json:"items"`
}

// NewIngredientList creates an empty ingredient list.
func NewIngredientList() *IngredientList {
	return &IngredientList{BaseEntity: shared.NewBaseEntity(), Items: []IngredientItem{}}
}

// Add attaches an item referencing the given ingredient leaf.
func (l *IngredientList) Add(ing Ingredient, qty decimal.Decimal, m Measurement) error {
	if !m.IsValid() {
		return shared.NewDomainError("INVALID_MEASUREMENT", "Unknown measurement unit: "+string(m))
	}
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Ingredient quantity cannot be negative")
	}
	l.Items = append(l.Items, IngredientItem{
		BaseEntity:  shared.NewBaseEntity(),
		Quantity:    qty,
		Measurement: m,
		Ingredient:  ing,
	})
	l.Touch()
	return nil
}

// InstructionList is the owned instruction aggregate of a recipe.
type InstructionList struct {
	shared.BaseEntity
	Items []InstructionItem `json:"items"`
}

// NewInstructionList creates an empty instruction list.
func NewInstructionList() *InstructionList {
	return &InstructionList{BaseEntity: shared.NewBaseEntity(), Items: []InstructionItem{}}
}

// Add attaches an item referencing the given instruction leaf.
func (l *InstructionList) Add(ins Instruction, step int) error {
	if step < 1 {
		return shared.NewDomainError("INVALID_STEP", "Step number must be positive")
	}
	l.Items = append(l.Items, InstructionItem{
		BaseEntity:  shared.NewBaseEntity(),
		StepNumber:  step,
		Instruction: ins,
	})
	l.Touch()
	return nil
}

// TagList is the owned tag aggregate of a recipe.
type TagList struct {
	shared.BaseEntity
	Items []TagItem `json:"items"`
}

// NewTagList creates an empty tag list.
func NewTagList() *TagList {
	return &TagList{BaseEntity: shared.NewBaseEntity(), Items: []TagItem{}}
}

// Add attaches an item referencing the given tag leaf.
func (l *TagList) Add(t Tag) {
	l.Items = append(l.Items, TagItem{BaseEntity: shared.NewBaseEntity(), Tag: t})
	l.Touch()
}

// RecipeNote is a freeform note owned by a recipe.
type RecipeNote struct {
	shared.BaseEntity
	Text string `json:"text"`
}

// Recipe is the aggregate root of the recipe context. It always owns
// exactly one ingredient, one instruction and one tag list, even when
// all three are empty.
type Recipe struct {
	shared.BaseAggregateRoot
	shared.BaseEntity

	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	CreatedBy         string     `json:"createdBy"`
	CreatedByUsername string     `json:"createdByUsername"`
	Visibility        Visibility `json:"visibility"`
	SkillLevel        SkillLevel `json:"skillLevel"`

	Ingredients  *IngredientList  `json:"ingredientList"`
	Instructions *InstructionList `json:"instructionList"`
	Tags         *TagList         `json:"tagList"`
	Notes        []RecipeNote     `json:"notes,omitempty"`
}

// NewRecipe creates a recipe with empty owned lists. Callers replace
// the lists before persisting when the request carried items.
func NewRecipe(title, description, createdBy, createdByUsername string, visibility Visibility, skill SkillLevel) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Recipe title cannot be empty")
	}
	if visibility == "" {
		visibility = VisibilityPublic
	}
	if !visibility.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Unknown visibility setting: "+string(visibility))
	}
	if skill == "" {
		skill = SkillBeginner
	}
	if !skill.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Unknown skill level: "+string(skill))
	}
	if createdBy == "" {
		createdBy = AnonymousCreator
		createdByUsername = AnonymousCreator
	}

	r := &Recipe{
		BaseEntity:        shared.NewBaseEntity(),
		Title:             title,
		Description:       strings.TrimSpace(description),
		CreatedBy:         createdBy,
		CreatedByUsername: createdByUsername,
		Visibility:        visibility,
		SkillLevel:        skill,
		Ingredients:       NewIngredientList(),
		Instructions:      NewInstructionList(),
		Tags:              NewTagList(),
		Notes:             []RecipeNote{},
	}
	r.AddDomainEvent(NewRecipeCreatedEvent(r.ID, r.Title, r.CreatedBy))
	return r, nil
}

// AttachLists replaces the owned lists, substituting empty aggregates
// for nil so a recipe never loses one of its three lists.
func (r *Recipe) AttachLists(ingredients *IngredientList, instructions *InstructionList, tags *TagList) {
	if ingredients == nil {
		ingredients = NewIngredientList()
	}
	if instructions == nil {
		instructions = NewInstructionList()
	}
	if tags == nil {
		tags = NewTagList()
	}
	r.Ingredients = ingredients
	r.Instructions = instructions
	r.Tags = tags
	r.Touch()
}

// AddNote appends a freeform note.
func (r *Recipe) AddNote(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_NOTE", "Note text cannot be empty")
	}
	r.Notes = append(r.Notes, RecipeNote{BaseEntity: shared.NewBaseEntity(), Text: text})
	r.Touch()
	return nil
}

// RemoveNote removes a note by id.
func (r *Recipe) RemoveNote(noteID uuid.UUID) error {
	for i, n := range r.Notes {
		if n.ID == noteID {
			r.Notes = append(r.Notes[:i], r.Notes[i+1:]...)
			r.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOTE_NOT_FOUND", "Recipe note not found")
}

// Update edits mutable recipe fields.
func (r *Recipe) Update(title, description string, visibility Visibility, skill SkillLevel) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_RECIPE", "Recipe title cannot be empty")
	}
	if !visibility.IsValid() {
		return shared.NewDomainError("INVALID_RECIPE", "Unknown visibility setting: "+string(visibility))
	}
	if !skill.IsValid() {
		return shared.NewDomainError("INVALID_RECIPE", "Unknown skill level: "+string(skill))
	}
	r.Title = title
	r.Description = strings.TrimSpace(description)
	r.Visibility = visibility
	r.SkillLevel = skill
	r.Touch()
	return nil
}

// VisibleTo reports whether an account may read this recipe. Follower
// checks happen at the application layer; here only the owner and the
// public cases are decidable.
func (r *Recipe) VisibleTo(accountID string) bool {
	if r.Visibility == VisibilityPublic {
		return true
	}
	return accountID != "" && accountID == r.CreatedBy
}
