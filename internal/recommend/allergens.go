package recommend

import (
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// allergenKeywords maps an allergen tag to the ingredient-name substrings that
// indicate it. Matching is best-effort keyword matching and can over-match
// (e.g. "butternut squash" hits both nuts and dairy).
var allergenKeywords = map[string][]string{
	"nuts":      {"nut", "almond", "walnut", "cashew", "pecan", "hazelnut"},
	"peanuts":   {"peanut"},
	"dairy":     {"milk", "cheese", "yogurt", "butter", "cream"},
	"eggs":      {"egg"},
	"soy":       {"soy", "tofu", "edamame", "tempeh", "miso"},
	"shellfish": {"shrimp", "prawn", "crab", "lobster", "clam", "mussel", "oyster", "scallop"},
	"fish":      {"fish", "salmon", "tuna", "cod", "tilapia", "anchov", "sardine", "trout", "halibut"},
	"wheat":     {"wheat", "flour", "bread", "pasta", "couscous", "semolina", "bulgur"},
	"sesame":    {"sesame", "tahini"},
}

// KnownAllergens lists the allergen tags that have a keyword table.
func KnownAllergens() []string {
	return []string{"nuts", "peanuts", "dairy", "eggs", "soy", "shellfish", "fish", "wheat", "sesame"}
}

// MatchesAllergen reports whether an ingredient name indicates the allergen.
// Unknown allergens fall back to a substring match on the allergen itself.
func MatchesAllergen(ingredientName, allergen string) bool {
	name := strings.ToLower(ingredientName)
	allergen = strings.ToLower(strings.TrimSpace(allergen))
	if allergen == "" {
		return false
	}
	keywords, ok := allergenKeywords[allergen]
	if !ok {
		return strings.Contains(name, allergen)
	}
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// containsAllergen reports whether any ingredient of r matches any allergen.
func containsAllergen(r model.Recipe, allergens []string) bool {
	for _, a := range allergens {
		for _, line := range r.Ingredients {
			if MatchesAllergen(line.Name, a) {
				return true
			}
		}
	}
	return false
}
