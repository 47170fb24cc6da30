package recommend

import (
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// BaseScore is the score every recipe starts from.
const BaseScore = 50.0

// Match reasons appended by the scorer, one per applied bonus.
const (
	ReasonLowCalorie    = "LOW_CALORIE"
	ReasonHighFiber     = "HIGH_FIBER"
	ReasonHighProtein   = "HIGH_PROTEIN"
	ReasonCalorieDense  = "CALORIE_DENSE"
	ReasonLowSodium     = "LOW_SODIUM"
	ReasonLowCarb       = "LOW_CARB"
	ReasonBalancedCarbs = "BALANCED_CARBS"
	ReasonVeryHighFiber = "VERY_HIGH_FIBER"
	ReasonDietProtein   = "DIET_HIGH_PROTEIN"
	ReasonDietLowCarb   = "DIET_LOW_CARB"
	ReasonCuisineMatch  = "CUISINE_MATCH"
	ReasonDietTagMatch  = "DIET_TAG_MATCH"
	ReasonVegetarian    = "PLANT_BASED_VEGETARIAN"
	ReasonVegan         = "PLANT_BASED_VEGAN"
	ReasonPopularTag    = "POPULAR_TAG"
	ReasonQuickPrep     = "QUICK_PREP"
	ReasonModeratePrep  = "MODERATE_PREP"
)

// popularTags earn a flat bonus each.
var popularTags = []string{"high-protein", "high-fiber", "heart-healthy", "quick-dinner"}

type bonus struct {
	points float64
	reason string
	when   func(n model.Nutrition) bool
}

// goalBonuses holds the nutrition thresholds per health goal, in evaluation order.
var goalBonuses = map[string][]bonus{
	"weight-loss": {
		{20, ReasonLowCalorie, func(n model.Nutrition) bool { return n.Calories < 400 }},
		{10, ReasonHighFiber, func(n model.Nutrition) bool { return n.Fiber > 5 }},
	},
	"muscle-gain": {
		{20, ReasonHighProtein, func(n model.Nutrition) bool { return n.Protein > 20 }},
		{10, ReasonCalorieDense, func(n model.Nutrition) bool { return n.Calories > 300 }},
	},
	"heart-health": {
		{15, ReasonLowSodium, func(n model.Nutrition) bool { return n.Sodium < 500 }},
	},
	"diabetes-management": {
		{15, ReasonLowCarb, func(n model.Nutrition) bool { return n.Carbs < 40 }},
		{10, ReasonHighFiber, func(n model.Nutrition) bool { return n.Fiber > 5 }},
	},
	"energy-boost": {
		{15, ReasonBalancedCarbs, func(n model.Nutrition) bool { return n.Carbs > 30 && n.Carbs < 60 }},
	},
	"digestive-health": {
		{20, ReasonVeryHighFiber, func(n model.Nutrition) bool { return n.Fiber > 8 }},
	},
}

// Score assigns every recipe an affinity score from the soft preferences in
// prefs. The output keeps the input order; ranking is left to Select.
func Score(recipes []model.Recipe, prefs model.UserPreferences) []model.ScoredRecipe {
	prefs = prefs.Normalize()
	out := make([]model.ScoredRecipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, scoreOne(r, prefs))
	}
	return out
}

func scoreOne(r model.Recipe, prefs model.UserPreferences) model.ScoredRecipe {
	s := &scorer{score: BaseScore, reasons: []string{}}

	for _, goal := range prefs.HealthGoals {
		for _, b := range goalBonuses[goal] {
			s.addIf(b.when(r.Nutrition), b.points, b.reason)
		}
	}

	switch prefs.DietType {
	case "high-protein":
		s.addIf(r.Nutrition.Protein > 25, 15, ReasonDietProtein)
	case "low-carb":
		s.addIf(r.Nutrition.Carbs < 25, 15, ReasonDietLowCarb)
	case "mediterranean":
		s.addIf(strings.EqualFold(strings.TrimSpace(r.Cuisine), "mediterranean"), 20, ReasonCuisineMatch)
		s.addIf(r.HasTag("mediterranean"), 10, ReasonDietTagMatch)
	case "plant-based":
		switch {
		case r.HasTag("vegan"):
			s.add(20, ReasonVegan)
		case r.HasTag("vegetarian"):
			s.add(15, ReasonVegetarian)
		}
	}

	for _, tag := range popularTags {
		s.addIf(r.HasTag(tag), 5, ReasonPopularTag)
	}

	switch total := r.TotalMinutes(); {
	case total <= 30:
		s.add(10, ReasonQuickPrep)
	case total <= 45:
		s.add(5, ReasonModeratePrep)
	}

	return model.ScoredRecipe{Recipe: r, Score: s.score, MatchReasons: s.reasons}
}

type scorer struct {
	score   float64
	reasons []string
}

func (s *scorer) add(points float64, reason string) {
	s.score += points
	s.reasons = append(s.reasons, reason)
}

func (s *scorer) addIf(cond bool, points float64, reason string) {
	if cond {
		s.add(points, reason)
	}
}
