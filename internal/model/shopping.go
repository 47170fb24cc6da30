package model

// ScoredRecipe pairs a recipe with its affinity score and the reasons that
// produced it, in evaluation order.
type ScoredRecipe struct {
	Recipe       Recipe   `json:"recipe"`
	Score        float64  `json:"score"`
	MatchReasons []string `json:"match_reasons"`
}

// ShoppingListItem is one consolidated line of a shopping list.
type ShoppingListItem struct {
	Name          string  `json:"name"`
	TotalQuantity float64 `json:"total_quantity"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category,omitempty"`
	Checked       bool    `json:"checked"`
}
