package testhelpers

import (
	"testing"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/model"
)

func fixture(id string, category model.MealCategory, vegetarian bool, prep, cook int, n model.Nutrition, lines ...model.IngredientLine) model.Recipe {
	tags := model.JSONBStringArray{}
	if vegetarian {
		tags = append(tags, "vegetarian")
	}
	ingredients := model.IngredientLines{{Name: "Water", Quantity: 1, Unit: "cup"}}
	if len(lines) > 0 {
		ingredients = append(model.IngredientLines{}, lines...)
	}
	return model.Recipe{
		ID:           id,
		Name:         "Recipe " + id,
		MealCategory: category,
		PrepMinutes:  prep,
		CookMinutes:  cook,
		DietaryTags:  tags,
		Nutrition:    n,
		Ingredients:  ingredients,
	}
}

// SampleRecipes is a ten-recipe catalog. With SamplePreferences the engine
// keeps b1, b5, b4, l2, l3 and d1, in that order.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		fixture("b1", model.Breakfast, true, 5, 5, model.Nutrition{Calories: 300, Fiber: 6},
			model.IngredientLine{Name: "Rolled oats", Quantity: 1, Unit: "cup", Category: "grains"}),
		fixture("b2", model.Breakfast, true, 5, 5, model.Nutrition{Calories: 280, Fiber: 7},
			model.IngredientLine{Name: "Almond butter", Quantity: 2, Unit: "tbsp"}),
		fixture("b3", model.Breakfast, false, 5, 10, model.Nutrition{Calories: 350},
			model.IngredientLine{Name: "Bacon", Quantity: 3, Unit: "slice"}),
		fixture("b4", model.Breakfast, true, 30, 30, model.Nutrition{Calories: 450, Fiber: 2}),
		fixture("b5", model.Breakfast, true, 15, 25, model.Nutrition{Calories: 350, Fiber: 3}),
		fixture("l1", model.Lunch, true, 30, 30, model.Nutrition{Calories: 390, Fiber: 9},
			model.IngredientLine{Name: "Walnuts", Quantity: 0.5, Unit: "cup"}),
		fixture("l2", model.Lunch, true, 10, 15, model.Nutrition{Calories: 380, Fiber: 8},
			model.IngredientLine{Name: "Rolled Oats", Quantity: 0.5, Unit: "cup", Category: "grains"},
			model.IngredientLine{Name: "Spinach", Quantity: 2, Unit: "cup", Category: "produce"}),
		fixture("l3", model.Lunch, true, 20, 30, model.Nutrition{Calories: 600, Fiber: 1}),
		fixture("d1", model.Dinner, true, 15, 30, model.Nutrition{Calories: 500, Fiber: 7}),
		fixture("d2", model.Dinner, false, 10, 10, model.Nutrition{Calories: 250, Fiber: 9},
			model.IngredientLine{Name: "Chicken breast", Quantity: 1, Unit: "lb"}),
	}
}

// SamplePreferences is a vegetarian, nut-free, weight-loss profile.
func SamplePreferences() model.UserPreferences {
	return model.UserPreferences{
		DietaryRestrictions: []string{"vegetarian"},
		Allergies:           []string{"nuts"},
		HealthGoals:         []string{"weight-loss"},
	}
}

// SampleCatalog builds a catalog from SampleRecipes.
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(SampleRecipes())
	if err != nil {
		t.Fatalf("failed to build sample catalog: %v", err)
	}
	return c
}

