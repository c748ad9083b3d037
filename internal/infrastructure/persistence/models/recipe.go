package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
)

// RecipeModel is the persistence model for the Recipe aggregate. The
// owned lists, their items and notes are children; ingredient,
// instruction and tag leaves are shared rows referenced by the items.
type RecipeModel struct {
	BaseModel
	Title             string                `gorm:"type:varchar(200);not null"`
	Description       string                `gorm:"type:text"`
	CreatedBy         string                `gorm:"type:varchar(64);not null;index"`
	CreatedByUsername string                `gorm:"type:varchar(100);not null"`
	Visibility        recipe.Visibility     `gorm:"type:varchar(20);not null;default:'public'"`
	SkillLevel        recipe.SkillLevel     `gorm:"type:varchar(20);not null;default:'beginner'"`
	Ingredients       *IngredientListModel  `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Instructions      *InstructionListModel `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Tags              *TagListModel         `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Notes             []RecipeNoteModel     `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (RecipeModel) TableName() string {
	return "recipes"
}

// IngredientModel is a shared ingredient leaf with a unique normalized name.
type IngredientModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex:idx_ingredients_name"`
}

// TableName returns the table name for GORM
func (IngredientModel) TableName() string {
	return "ingredients"
}

// InstructionModel is a shared instruction leaf keyed by its text.
type InstructionModel struct {
	BaseModel
	Text string `gorm:"type:text;not null;uniqueIndex:idx_instructions_text"`
	Note string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InstructionModel) TableName() string {
	return "instructions"
}

// TagModel is a shared tag leaf with a unique normalized name.
type TagModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_tags_name"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// IngredientListModel is the owned ingredient list of one recipe.
type IngredientListModel struct {
	BaseModel
	RecipeID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_lists_recipe"`
	Items    []IngredientItemModel `gorm:"foreignKey:ListID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (IngredientListModel) TableName() string {
	return "ingredient_lists"
}

// IngredientItemModel ties an ingredient leaf to one list.
type IngredientItemModel struct {
	BaseModel
	ListID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal    `gorm:"type:decimal(12,4);not null;default:0"`
	Measurement  recipe.Measurement `gorm:"type:varchar(20);not null"`
	Ingredient   IngredientModel    `gorm:"foreignKey:IngredientID;references:ID"`
}

// TableName returns the table name for GORM
func (IngredientItemModel) TableName() string {
	return "ingredient_items"
}

// InstructionListModel is the owned instruction list of one recipe.
type InstructionListModel struct {
	BaseModel
	RecipeID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_instruction_lists_recipe"`
	Items    []InstructionItemModel `gorm:"foreignKey:ListID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InstructionListModel) TableName() string {
	return "instruction_lists"
}

// InstructionItemModel ties an instruction leaf to one list at a step.
type InstructionItemModel struct {
	BaseModel
	ListID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	InstructionID uuid.UUID        `gorm:"type:uuid;not null;index"`
	StepNumber    int              `gorm:"not null"`
	Instruction   InstructionModel `gorm:"foreignKey:InstructionID;references:ID"`
}

// TableName returns the table name for GORM
func (InstructionItemModel) TableName() string {
	return "instruction_items"
}

// TagListModel is the owned tag list of one recipe.
type TagListModel struct {
	BaseModel
	RecipeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_tag_lists_recipe"`
	Items    []TagItemModel `gorm:"foreignKey:ListID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TagListModel) TableName() string {
	return "tag_lists"
}

// TagItemModel ties a tag leaf to one list.
type TagItemModel struct {
	BaseModel
	ListID uuid.UUID `gorm:"type:uuid;not null;index"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Tag    TagModel  `gorm:"foreignKey:TagID;references:ID"`
}

// TableName returns the table name for GORM
func (TagItemModel) TableName() string {
	return "tag_items"
}

// RecipeNoteModel is a freeform note owned by a recipe.
type RecipeNoteModel struct {
	BaseModel
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (RecipeNoteModel) TableName() string {
	return "recipe_notes"
}

// ToDomain converts the persistence model to a domain Recipe aggregate.
func (m *RecipeModel) ToDomain() *recipe.Recipe {
	r := &recipe.Recipe{
		BaseEntity:        m.BaseModel.ToDomain(),
		Title:             m.Title,
		Description:       m.Description,
		CreatedBy:         m.CreatedBy,
		CreatedByUsername: m.CreatedByUsername,
		Visibility:        m.Visibility,
		SkillLevel:        m.SkillLevel,
	}
	if m.Ingredients != nil {
		r.Ingredients = m.Ingredients.ToDomain()
	}
	if m.Instructions != nil {
		r.Instructions = m.Instructions.ToDomain()
	}
	if m.Tags != nil {
		r.Tags = m.Tags.ToDomain()
	}
	r.Notes = make([]recipe.RecipeNote, len(m.Notes))
	for i, n := range m.Notes {
		r.Notes[i] = recipe.RecipeNote{BaseEntity: n.BaseModel.ToDomain(), Text: n.Text}
	}
	return r
}

// FromDomain populates the persistence model from a domain Recipe.
func (m *RecipeModel) FromDomain(r *recipe.Recipe) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Title = r.Title
	m.Description = r.Description
	m.CreatedBy = r.CreatedBy
	m.CreatedByUsername = r.CreatedByUsername
	m.Visibility = r.Visibility
	m.SkillLevel = r.SkillLevel
	if r.Ingredients != nil {
		m.Ingredients = IngredientListModelFromDomain(r.ID, r.Ingredients)
	}
	if r.Instructions != nil {
		m.Instructions = InstructionListModelFromDomain(r.ID, r.Instructions)
	}
	if r.Tags != nil {
		m.Tags = TagListModelFromDomain(r.ID, r.Tags)
	}
	m.Notes = make([]RecipeNoteModel, len(r.Notes))
	for i, n := range r.Notes {
		nm := RecipeNoteModel{RecipeID: r.ID, Text: n.Text}
		nm.FromDomainBaseEntity(n.BaseEntity)
		m.Notes[i] = nm
	}
}

// RecipeModelFromDomain creates a new persistence model from a domain Recipe.
func RecipeModelFromDomain(r *recipe.Recipe) *RecipeModel {
	m := &RecipeModel{}
	m.FromDomain(r)
	return m
}

// ToDomain converts the persistence model to a domain IngredientList.
func (m *IngredientListModel) ToDomain() *recipe.IngredientList {
	list := &recipe.IngredientList{
		BaseEntity: m.BaseModel.ToDomain(),
		Items:      make([]recipe.IngredientItem, len(m.Items)),
	}
	for i, item := range m.Items {
		list.Items[i] = recipe.IngredientItem{
			BaseEntity:  item.BaseModel.ToDomain(),
			Quantity:    item.Quantity,
			Measurement: item.Measurement,
			Ingredient:  *item.Ingredient.ToDomainLeaf(),
		}
	}
	return list
}

// IngredientListModelFromDomain creates a persistence model from a domain list.
func IngredientListModelFromDomain(recipeID uuid.UUID, list *recipe.IngredientList) *IngredientListModel {
	m := &IngredientListModel{RecipeID: recipeID, Items: make([]IngredientItemModel, len(list.Items))}
	m.FromDomainBaseEntity(list.BaseEntity)
	for i, item := range list.Items {
		im := IngredientItemModel{
			ListID:       list.ID,
			IngredientID: item.Ingredient.ID,
			Quantity:     item.Quantity,
			Measurement:  item.Measurement,
		}
		im.FromDomainBaseEntity(item.BaseEntity)
		m.Items[i] = im
	}
	return m
}

// ToDomain converts the persistence model to a domain InstructionList.
func (m *InstructionListModel) ToDomain() *recipe.InstructionList {
	list := &recipe.InstructionList{
		BaseEntity: m.BaseModel.ToDomain(),
		Items:      make([]recipe.InstructionItem, len(m.Items)),
	}
	for i, item := range m.Items {
		list.Items[i] = recipe.InstructionItem{
			BaseEntity:  item.BaseModel.ToDomain(),
			StepNumber:  item.StepNumber,
			Instruction: *item.Instruction.ToDomainLeaf(),
		}
	}
	return list
}

// InstructionListModelFromDomain creates a persistence model from a domain list.
func InstructionListModelFromDomain(recipeID uuid.UUID, list *recipe.InstructionList) *InstructionListModel {
	m := &InstructionListModel{RecipeID: recipeID, Items: make([]InstructionItemModel, len(list.Items))}
	m.FromDomainBaseEntity(list.BaseEntity)
	for i, item := range list.Items {
		im := InstructionItemModel{
			ListID:        list.ID,
			InstructionID: item.Instruction.ID,
			StepNumber:    item.StepNumber,
		}
		im.FromDomainBaseEntity(item.BaseEntity)
		m.Items[i] = im
	}
	return m
}

// ToDomain converts the persistence model to a domain TagList.
func (m *TagListModel) ToDomain() *recipe.TagList {
	list := &recipe.TagList{
		BaseEntity: m.BaseModel.ToDomain(),
		Items:      make([]recipe.TagItem, len(m.Items)),
	}
	for i, item := range m.Items {
		list.Items[i] = recipe.TagItem{
			BaseEntity: item.BaseModel.ToDomain(),
			Tag:        *item.Tag.ToDomainLeaf(),
		}
	}
	return list
}

// TagListModelFromDomain creates a persistence model from a domain list.
func TagListModelFromDomain(recipeID uuid.UUID, list *recipe.TagList) *TagListModel {
	m := &TagListModel{RecipeID: recipeID, Items: make([]TagItemModel, len(list.Items))}
	m.FromDomainBaseEntity(list.BaseEntity)
	for i, item := range list.Items {
		im := TagItemModel{ListID: list.ID, TagID: item.Tag.ID}
		im.FromDomainBaseEntity(item.BaseEntity)
		m.Items[i] = im
	}
	return m
}

// ToDomainLeaf converts the persistence model to a domain Ingredient.
func (m *IngredientModel) ToDomainLeaf() *recipe.Ingredient {
	return &recipe.Ingredient{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

// IngredientModelFromDomain creates a persistence model from a domain Ingredient.
func IngredientModelFromDomain(ing *recipe.Ingredient) *IngredientModel {
	m := &IngredientModel{Name: ing.Name}
	m.FromDomainBaseEntity(ing.BaseEntity)
	return m
}

// ToDomainLeaf converts the persistence model to a domain Instruction.
func (m *InstructionModel) ToDomainLeaf() *recipe.Instruction {
	return &recipe.Instruction{BaseEntity: m.BaseModel.ToDomain(), Text: m.Text, Note: m.Note}
}

// InstructionModelFromDomain creates a persistence model from a domain Instruction.
func InstructionModelFromDomain(ins *recipe.Instruction) *InstructionModel {
	m := &InstructionModel{Text: ins.Text, Note: ins.Note}
	m.FromDomainBaseEntity(ins.BaseEntity)
	return m
}

// ToDomainLeaf converts the persistence model to a domain Tag.
func (m *TagModel) ToDomainLeaf() *recipe.Tag {
	return &recipe.Tag{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

// TagModelFromDomain creates a persistence model from a domain Tag.
func TagModelFromDomain(t *recipe.Tag) *TagModel {
	m := &TagModel{Name: t.Name}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
