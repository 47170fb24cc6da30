package recommend

import (
	"sort"

	"github.com/pageza/mealplanner/backend/internal/model"
)

const (
	DefaultTargetSize        = 15
	DefaultPerCategoryTarget = 5
)

// categoryOrder fixes the order in which per-category picks are concatenated.
// Categories not listed follow in first-seen order.
var categoryOrder = []model.MealCategory{model.Breakfast, model.Lunch, model.Dinner}

// Select returns the balanced recommendation set as plain recipes.
func Select(scored []model.ScoredRecipe, targetSize, perCategoryTarget int) []model.Recipe {
	picked := SelectScored(scored, targetSize, perCategoryTarget)
	out := make([]model.Recipe, len(picked))
	for i, s := range picked {
		out[i] = s.Recipe
	}
	return out
}

// SelectScored picks up to perCategoryTarget of the best recipes from each meal
// category, concatenated breakfast, lunch, dinner then the rest, and tops the
// result up with the best remaining recipes of any category until targetSize
// is reached. Ties keep input order. A recipe id is never selected twice and
// the result never exceeds targetSize. Non-positive sizes are treated as zero.
func SelectScored(scored []model.ScoredRecipe, targetSize, perCategoryTarget int) []model.ScoredRecipe {
	if targetSize <= 0 || len(scored) == 0 {
		return []model.ScoredRecipe{}
	}
	if perCategoryTarget < 0 {
		perCategoryTarget = 0
	}

	byCategory := make(map[model.MealCategory][]int)
	var order []model.MealCategory
	for _, c := range categoryOrder {
		byCategory[c] = nil
		order = append(order, c)
	}
	for i, s := range scored {
		c := s.Recipe.MealCategory
		if _, ok := byCategory[c]; !ok {
			order = append(order, c)
		}
		byCategory[c] = append(byCategory[c], i)
	}

	out := make([]model.ScoredRecipe, 0, targetSize)
	taken := make(map[string]struct{}, targetSize)
	take := func(i int) bool {
		id := scored[i].Recipe.ID
		if _, dup := taken[id]; dup {
			return false
		}
		taken[id] = struct{}{}
		out = append(out, scored[i])
		return true
	}

	for _, c := range order {
		idx := byScore(scored, byCategory[c])
		n := 0
		for _, i := range idx {
			if n >= perCategoryTarget || len(out) >= targetSize {
				break
			}
			if take(i) {
				n++
			}
		}
	}

	if len(out) < targetSize {
		all := make([]int, len(scored))
		for i := range all {
			all[i] = i
		}
		for _, i := range byScore(scored, all) {
			if len(out) >= targetSize {
				break
			}
			take(i)
		}
	}
	return out
}

// byScore returns idx sorted by descending score, stable on index order.
func byScore(scored []model.ScoredRecipe, idx []int) []int {
	sorted := append([]int(nil), idx...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return scored[sorted[a]].Score > scored[sorted[b]].Score
	})
	return sorted
}
