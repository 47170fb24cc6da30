// Package catalog holds the read-only recipe collection the engine runs over.
// A Catalog is built once from a source and never mutated afterwards, so it
// can be shared freely between request goroutines.
package catalog

import (
	"errors"
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/model"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrDuplicateRecipe = errors.New("duplicate recipe id")
	ErrInvalidRecipe   = errors.New("invalid recipe")
)

// Catalog is an immutable, validated set of recipes in load order.
type Catalog struct {
	recipes []model.Recipe
	byID    map[string]int
}

// New validates recipes and takes a deep copy of them.
func New(recipes []model.Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]model.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for i, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidRecipe, i, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecipe, r.ID)
		}
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r.Clone())
	}
	return c, nil
}

// Len is the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// All returns a copy of every recipe in load order.
func (c *Catalog) All() []model.Recipe {
	out := make([]model.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get returns a copy of the recipe with the given id.
func (c *Catalog) Get(id string) (model.Recipe, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	return c.recipes[i].Clone(), nil
}

// ByIDs returns the recipes for ids in request order. Any unknown id fails
// the whole lookup.
func (c *Catalog) ByIDs(ids []string) ([]model.Recipe, error) {
	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ByCategory returns the recipes of one meal category in load order.
func (c *Catalog) ByCategory(category model.MealCategory) []model.Recipe {
	var out []model.Recipe
	for _, r := range c.recipes {
		if r.MealCategory == category {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Categories lists the distinct meal categories in first-seen order.
func (c *Catalog) Categories() []model.MealCategory {
	seen := make(map[model.MealCategory]struct{})
	var out []model.MealCategory
	for _, r := range c.recipes {
		if _, ok := seen[r.MealCategory]; ok {
			continue
		}
		seen[r.MealCategory] = struct{}{}
		out = append(out, r.MealCategory)
	}
	return out
}
