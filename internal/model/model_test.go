package model

import (
	"math"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPreferencesNormalize(t *testing.T) {
	in := UserPreferences{
		DietaryRestrictions: []string{" Vegan", "vegan", "", "Gluten-Free"},
		Allergies:           []string{"NUTS", "nuts "},
		HealthGoals:         nil,
		DietType:            " Mediterranean ",
	}
	got := in.Normalize()

	assert.Equal(t, []string{"vegan", "gluten-free"}, got.DietaryRestrictions)
	assert.Equal(t, []string{"nuts"}, got.Allergies)
	assert.Empty(t, got.HealthGoals)
	assert.Equal(t, "mediterranean", got.DietType)
	assert.Equal(t, CookingTimeAny, got.CookingTimePreference)

	// the receiver is untouched
	assert.Equal(t, " Vegan", in.DietaryRestrictions[0])

	quick := UserPreferences{CookingTimePreference: "QUICK"}.Normalize()
	assert.Equal(t, CookingTimeQuick, quick.CookingTimePreference)
}

func validRecipe() Recipe {
	rating := 4.5
	return Recipe{
		ID:           "oatmeal",
		Name:         "Oatmeal",
		MealCategory: Breakfast,
		PrepMinutes:  5,
		CookMinutes:  10,
		DietaryTags:  JSONBStringArray{"vegan"},
		Rating:       &rating,
		Ingredients:  IngredientLines{{Name: "Oats", Quantity: 1, Unit: "cup"}},
	}
}

func TestRecipeValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Recipe)
		wantErr string
	}{
		{"valid", func(r *Recipe) {}, ""},
		{"missing id", func(r *Recipe) { r.ID = " " }, "id is required"},
		{"nil ingredients", func(r *Recipe) { r.Ingredients = nil }, "ingredients are required"},
		{"empty ingredients", func(r *Recipe) { r.Ingredients = IngredientLines{} }, ""},
		{"negative prep", func(r *Recipe) { r.PrepMinutes = -1 }, "non-negative"},
		{"rating too high", func(r *Recipe) { v := 5.5; r.Rating = &v }, "outside [0,5]"},
		{"nil rating", func(r *Recipe) { r.Rating = nil }, ""},
		{"negative sodium", func(r *Recipe) { r.Nutrition.Sodium = -2 }, "nutrition"},
		{"zero quantity", func(r *Recipe) { r.Ingredients[0].Quantity = 0 }, "positive finite"},
		{"NaN quantity", func(r *Recipe) { r.Ingredients[0].Quantity = math.NaN() }, "positive finite"},
		{"infinite quantity", func(r *Recipe) { r.Ingredients[0].Quantity = math.Inf(1) }, "positive finite"},
		{"blank ingredient", func(r *Recipe) { r.Ingredients[0].Name = "" }, "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecipeHelpers(t *testing.T) {
	r := validRecipe()
	assert.Equal(t, 15, r.TotalMinutes())
	assert.True(t, r.HasTag("VEGAN "))
	assert.False(t, r.HasTag("vegetarian"))

	v := pgvector.NewVector([]float32{1, 2, 3})
	r.Embedding = &v
	c := r.Clone()
	c.DietaryTags[0] = "changed"
	c.Ingredients[0].Quantity = 9
	*c.Rating = 1
	assert.Equal(t, "vegan", r.DietaryTags[0])
	assert.Equal(t, 1.0, r.Ingredients[0].Quantity)
	assert.Equal(t, 4.5, *r.Rating)
	assert.Equal(t, []float32{1, 2, 3}, c.Embedding.Slice())

	r.DietaryTags = nil
	assert.NotNil(t, r.Clone().DietaryTags)
}

func TestJSONColumnsRoundTrip(t *testing.T) {
	lines := IngredientLines{{Name: "Oats", Quantity: 1.5, Unit: "cup", Category: "grains"}}
	raw, err := lines.Value()
	require.NoError(t, err)

	var scanned IngredientLines
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, lines, scanned)

	var tags JSONBStringArray
	require.NoError(t, tags.Scan(`["vegan","quick-dinner"]`))
	assert.Equal(t, JSONBStringArray{"vegan", "quick-dinner"}, tags)

	assert.Error(t, tags.Scan(42))
}
