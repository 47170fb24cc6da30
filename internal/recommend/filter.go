package recommend

import "github.com/pageza/mealplanner/backend/internal/model"

// Filter returns the recipes that satisfy every hard constraint in prefs, in
// their original order:
//   - every dietary restriction is present in the recipe's tags
//   - no ingredient matches any allergen
//   - total time is at most 30 minutes when the cooking time preference is quick
//
// Missing optional fields never cause a recipe to be dropped.
func Filter(recipes []model.Recipe, prefs model.UserPreferences) []model.Recipe {
	prefs = prefs.Normalize()
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if passesHardFilters(r, prefs) {
			out = append(out, r)
		}
	}
	return out
}

// passesHardFilters expects normalized prefs.
func passesHardFilters(r model.Recipe, prefs model.UserPreferences) bool {
	for _, restriction := range prefs.DietaryRestrictions {
		if !r.HasTag(restriction) {
			return false
		}
	}
	if containsAllergen(r, prefs.Allergies) {
		return false
	}
	if prefs.CookingTimePreference == model.CookingTimeQuick && r.TotalMinutes() > model.QuickMaxMinutes {
		return false
	}
	return true
}
