package recommend

import (
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// Engine runs the Filter, Score, Select pipeline with fixed selection sizes.
// The zero value is not useful; use NewEngine or DefaultEngine.
type Engine struct {
	TargetSize        int
	PerCategoryTarget int
}

// Recommendation is the outcome of one pipeline run.
type Recommendation struct {
	Recipes    []model.ScoredRecipe `json:"recipes"`
	Considered int                  `json:"considered"`
	Eligible   int                  `json:"eligible"`
}

// NewEngine validates the selection sizes.
func NewEngine(targetSize, perCategoryTarget int) (*Engine, error) {
	if targetSize < 0 || perCategoryTarget < 0 {
		return nil, fmt.Errorf("%w: target size %d and per-category target %d must be non-negative",
			ErrInvalidInput, targetSize, perCategoryTarget)
	}
	return &Engine{TargetSize: targetSize, PerCategoryTarget: perCategoryTarget}, nil
}

// DefaultEngine selects 15 recipes with at most 5 per category before top-up.
func DefaultEngine() *Engine {
	return &Engine{TargetSize: DefaultTargetSize, PerCategoryTarget: DefaultPerCategoryTarget}
}

// Recommend filters recipes against prefs, scores the survivors and returns
// the balanced selection. No matches is an empty result, not an error.
func (e *Engine) Recommend(recipes []model.Recipe, prefs model.UserPreferences) (*Recommendation, error) {
	if e.TargetSize < 0 || e.PerCategoryTarget < 0 {
		return nil, fmt.Errorf("%w: negative selection size", ErrInvalidInput)
	}
	for _, r := range recipes {
		if r.Ingredients == nil {
			return nil, fmt.Errorf("%w: recipe %s has no ingredient list", ErrInvalidInput, r.ID)
		}
	}

	prefs = prefs.Normalize()
	eligible := Filter(recipes, prefs)
	scored := Score(eligible, prefs)

	return &Recommendation{
		Recipes:    SelectScored(scored, e.TargetSize, e.PerCategoryTarget),
		Considered: len(recipes),
		Eligible:   len(eligible),
	}, nil
}
