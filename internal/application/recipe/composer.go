package recipe

import (
	"context"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe"
)

// composeList is the shared find-or-create composition step. For each
// item it resolves a leaf through the repository (which dedups by
// natural key) and attaches a list entry carrying the item's structural
// data. One bad item aborts the whole composition.
func composeList[S any, L any](ctx context.Context, items []S, resolve func(context.Context, S) (L, error), attach func(L, S) error) error {
	for _, item := range items {
		leaf, err := resolve(ctx, item)
		if err != nil {
			return err
		}
		if err := attach(leaf, item); err != nil {
			return err
		}
	}
	return nil
}

// listComposer turns request items into the three owned list aggregates
// of a recipe.
type listComposer struct {
	ingredients  recipe.IngredientRepository
	instructions recipe.InstructionRepository
	tags         recipe.TagRepository
}

func (c *listComposer) composeIngredients(ctx context.Context, req *IngredientListRequest) (*recipe.IngredientList, error) {
	list := recipe.NewIngredientList()
	if req == nil {
		return list, nil
	}
	err := composeList(ctx, req.Items,
		func(ctx context.Context, item IngredientItemRequest) (*recipe.Ingredient, error) {
			leaf, err := recipe.NewIngredient(item.Name)
			if err != nil {
				return nil, err
			}
			return c.ingredients.FindOrCreate(ctx, leaf)
		},
		func(leaf *recipe.Ingredient, item IngredientItemRequest) error {
			return list.Add(*leaf, item.Quantity, recipe.Measurement(item.Measurement))
		})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *listComposer) composeInstructions(ctx context.Context, req *InstructionListRequest) (*recipe.InstructionList, error) {
	list := recipe.NewInstructionList()
	if req == nil {
		return list, nil
	}
	step := 0
	err := composeList(ctx, req.Items,
		func(ctx context.Context, item InstructionItemRequest) (*recipe.Instruction, error) {
			leaf, err := recipe.NewInstruction(item.Text, item.Note)
			if err != nil {
				return nil, err
			}
			return c.instructions.FindOrCreate(ctx, leaf)
		},
		func(leaf *recipe.Instruction, item InstructionItemRequest) error {
			step++
			n := item.StepNumber
			if n == 0 {
				n = step
			}
			return list.Add(*leaf, n)
		})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *listComposer) composeTags(ctx context.Context, req *TagListRequest) (*recipe.TagList, error) {
	list := recipe.NewTagList()
	if req == nil {
		return list, nil
	}
	err := composeList(ctx, req.Items,
		func(ctx context.Context, item TagItemRequest) (*recipe.Tag, error) {
			leaf, err := recipe.NewTag(item.Name)
			if err != nil {
				return nil, err
			}
			return c.tags.FindOrCreate(ctx, leaf)
		},
		func(leaf *recipe.Tag, item TagItemRequest) error {
			list.Add(*leaf)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return list, nil
}
