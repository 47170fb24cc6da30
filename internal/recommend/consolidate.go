package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

type consolidationKey struct {
	name string
	unit string
}

// Consolidate merges the ingredient lines of recipes into one shopping list.
// Lines with the same case-insensitive name and the same unit are summed;
// different units stay separate items. Items are emitted in first-seen order
// and keep the name casing, unit and category of their first line.
//
// A recipe without an ingredient list or with an invalid line yields
// ErrInvalidInput. An empty recipe slice yields an empty list.
func Consolidate(recipes []model.Recipe) ([]model.ShoppingListItem, error) {
	items := make([]model.ShoppingListItem, 0)
	index := make(map[consolidationKey]int)

	for _, r := range recipes {
		if r.Ingredients == nil {
			return nil, fmt.Errorf("%w: recipe %s has no ingredient list", ErrInvalidInput, r.ID)
		}
		for i, line := range r.Ingredients {
			if err := line.Validate(); err != nil {
				return nil, fmt.Errorf("%w: recipe %s ingredient %d: %v", ErrInvalidInput, r.ID, i, err)
			}
			key := consolidationKey{
				name: strings.ToLower(strings.TrimSpace(line.Name)),
				unit: line.Unit,
			}
			if pos, ok := index[key]; ok {
				items[pos].TotalQuantity += line.Quantity
				if math.IsInf(items[pos].TotalQuantity, 0) {
					return nil, fmt.Errorf("%w: total quantity of %s overflows", ErrInvalidInput, line.Name)
				}
				continue
			}
			index[key] = len(items)
			items = append(items, model.ShoppingListItem{
				Name:          line.Name,
				TotalQuantity: line.Quantity,
				Unit:          line.Unit,
				Category:      line.Category,
			})
		}
	}
	return items, nil
}
