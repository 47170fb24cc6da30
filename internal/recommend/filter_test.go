package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/recommend"
)

func TestFilterDietaryRestrictionsAreConjunctive(t *testing.T) {
	recipes := []model.Recipe{
		newRecipe("veg", model.Lunch, withTags("vegetarian")),
		newRecipe("veg-gf", model.Lunch, withTags("vegetarian", "gluten-free")),
		newRecipe("gf", model.Lunch, withTags("Gluten-Free")),
		newRecipe("none", model.Lunch),
	}

	got := recommend.Filter(recipes, model.UserPreferences{
		DietaryRestrictions: []string{"vegetarian", "gluten-free"},
	})
	assert.Equal(t, []string{"veg-gf"}, ids(got))

	got = recommend.Filter(recipes, model.UserPreferences{DietaryRestrictions: []string{"GLUTEN-FREE "}})
	assert.Equal(t, []string{"veg-gf", "gf"}, ids(got))
}

func TestFilterRetainsOnlySupersetsOfRestrictions(t *testing.T) {
	restrictions := []string{"vegan", "nut-free"}
	recipes := []model.Recipe{
		newRecipe("a", model.Dinner, withTags("vegan")),
		newRecipe("b", model.Dinner, withTags("vegan", "nut-free", "organic")),
		newRecipe("c", model.Dinner, withTags("nut-free")),
	}
	for _, r := range recommend.Filter(recipes, model.UserPreferences{DietaryRestrictions: restrictions}) {
		for _, d := range restrictions {
			assert.True(t, r.HasTag(d), "%s retained without %s", r.ID, d)
		}
	}
}

func TestFilterAllergies(t *testing.T) {
	recipes := []model.Recipe{
		newRecipe("almond-oats", model.Breakfast, withIngredients(
			model.IngredientLine{Name: "Rolled oats", Quantity: 1, Unit: "cup"},
			model.IngredientLine{Name: "Sliced Almonds", Quantity: 2, Unit: "tbsp"},
		)),
		newRecipe("toast", model.Breakfast, withIngredients(
			model.IngredientLine{Name: "Sourdough bread", Quantity: 2, Unit: "slice"},
			model.IngredientLine{Name: "Butter", Quantity: 1, Unit: "tbsp"},
		)),
		newRecipe("fruit", model.Breakfast, withIngredients(
			model.IngredientLine{Name: "Banana", Quantity: 1, Unit: "piece"},
		)),
	}

	tests := []struct {
		name      string
		allergies []string
		want      []string
	}{
		{"none", nil, []string{"almond-oats", "toast", "fruit"}},
		{"nuts", []string{"nuts"}, []string{"toast", "fruit"}},
		{"dairy", []string{"dairy"}, []string{"almond-oats", "fruit"}},
		{"nuts and wheat", []string{"nuts", "wheat"}, []string{"fruit"}},
		{"unknown allergen is a substring match", []string{"banana"}, []string{"almond-oats", "toast"}},
		{"unrelated unknown allergen is a no-op", []string{"lupin"}, []string{"almond-oats", "toast", "fruit"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommend.Filter(recipes, model.UserPreferences{Allergies: tt.allergies})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAllergyExclusionIsMonotonic(t *testing.T) {
	recipes := []model.Recipe{
		newRecipe("1", model.Lunch, withIngredients(model.IngredientLine{Name: "Shrimp", Quantity: 200, Unit: "g"})),
		newRecipe("2", model.Lunch, withIngredients(model.IngredientLine{Name: "Cod fillet", Quantity: 1, Unit: "piece"})),
		newRecipe("3", model.Lunch, withIngredients(model.IngredientLine{Name: "Tofu", Quantity: 300, Unit: "g"})),
		newRecipe("4", model.Lunch, withIngredients(model.IngredientLine{Name: "Rice", Quantity: 1, Unit: "cup"})),
	}

	var allergies []string
	prev := len(recommend.Filter(recipes, model.UserPreferences{}))
	for _, a := range []string{"soy", "fish", "shellfish", "eggs", "rice"} {
		allergies = append(allergies, a)
		n := len(recommend.Filter(recipes, model.UserPreferences{Allergies: allergies}))
		assert.LessOrEqual(t, n, prev, "adding %s grew the result", a)
		prev = n
	}
	assert.Equal(t, 0, prev)
}

func TestFilterQuickCookingTimeIsAHardCutoff(t *testing.T) {
	recipes := []model.Recipe{
		newRecipe("35min", model.Dinner, withTime(20, 15)),
		newRecipe("30min", model.Dinner, withTime(10, 20)),
	}

	quick := recommend.Filter(recipes, model.UserPreferences{CookingTimePreference: model.CookingTimeQuick})
	assert.Equal(t, []string{"30min"}, ids(quick))

	for _, pref := range []model.CookingTime{model.CookingTimeAny, model.CookingTimeMedium, ""} {
		got := recommend.Filter(recipes, model.UserPreferences{CookingTimePreference: pref})
		assert.Equal(t, []string{"35min", "30min"}, ids(got), "preference %q", pref)
	}
}

func TestFilterDoesNotDropRecipesMissingOptionalFields(t *testing.T) {
	r := newRecipe("bare", model.Lunch)
	r.DietaryTags = nil
	r.Rating = nil
	r.Cuisine = ""

	got := recommend.Filter([]model.Recipe{r}, model.UserPreferences{
		HealthGoals: []string{"weight-loss"},
		DietType:    "mediterranean",
		Allergies:   []string{"nuts"},
	})
	assert.Len(t, got, 1)
}

func TestFilterOrderOfConstraintsDoesNotMatter(t *testing.T) {
	recipes := []model.Recipe{
		newRecipe("a", model.Lunch, withTags("vegetarian"), withIngredients(model.IngredientLine{Name: "Walnuts", Quantity: 1, Unit: "cup"})),
		newRecipe("b", model.Lunch, withTags("vegetarian")),
		newRecipe("c", model.Lunch, withIngredients(model.IngredientLine{Name: "Lentils", Quantity: 1, Unit: "cup"})),
	}
	both := recommend.Filter(recipes, model.UserPreferences{DietaryRestrictions: []string{"vegetarian"}, Allergies: []string{"nuts"}})
	dietFirst := recommend.Filter(recommend.Filter(recipes, model.UserPreferences{DietaryRestrictions: []string{"vegetarian"}}),
		model.UserPreferences{Allergies: []string{"nuts"}})
	allergyFirst := recommend.Filter(recommend.Filter(recipes, model.UserPreferences{Allergies: []string{"nuts"}}),
		model.UserPreferences{DietaryRestrictions: []string{"vegetarian"}})

	assert.Equal(t, []string{"b"}, ids(both))
	assert.Equal(t, ids(both), ids(dietFirst))
	assert.Equal(t, ids(both), ids(allergyFirst))
}
