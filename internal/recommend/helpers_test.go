package recommend_test

import (
	"github.com/pageza/mealplanner/backend/internal/model"
)

type recipeOpt func(*model.Recipe)

func newRecipe(id string, category model.MealCategory, opts ...recipeOpt) model.Recipe {
	r := model.Recipe{
		ID:           id,
		Name:         "Recipe " + id,
		MealCategory: category,
		PrepMinutes:  30,
		CookMinutes:  30,
		DietaryTags:  model.JSONBStringArray{},
		Ingredients: model.IngredientLines{
			{Name: "Water", Quantity: 1, Unit: "cup"},
		},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withTags(tags ...string) recipeOpt {
	return func(r *model.Recipe) { r.DietaryTags = append(model.JSONBStringArray{}, tags...) }
}

func withTime(prep, cook int) recipeOpt {
	return func(r *model.Recipe) {
		r.PrepMinutes = prep
		r.CookMinutes = cook
	}
}

func withNutrition(n model.Nutrition) recipeOpt {
	return func(r *model.Recipe) { r.Nutrition = n }
}

func withCuisine(c string) recipeOpt {
	return func(r *model.Recipe) { r.Cuisine = c }
}

func withIngredients(lines ...model.IngredientLine) recipeOpt {
	return func(r *model.Recipe) { r.Ingredients = append(model.IngredientLines{}, lines...) }
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func scoredIDs(scored []model.ScoredRecipe) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Recipe.ID
	}
	return out
}

func scoredAt(id string, category model.MealCategory, score float64) model.ScoredRecipe {
	return model.ScoredRecipe{Recipe: newRecipe(id, category), Score: score}
}
