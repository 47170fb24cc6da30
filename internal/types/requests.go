package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// RegisterRequest creates an account together with its profile.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RecommendRequest carries the preferences for a one-off recommendation.
// UseAI routes candidate generation through the LLM when it is configured.
type RecommendRequest struct {
	Preferences model.UserPreferences `json:"preferences"`
	UseAI       bool                  `json:"use_ai"`
}

type RecommendResponse struct {
	Recipes    []model.ScoredRecipe `json:"recipes"`
	Considered int                  `json:"considered"`
	Eligible   int                  `json:"eligible"`
	Source     string               `json:"source"`
	Cached     bool                 `json:"cached"`
}

// ShoppingListPreviewRequest accepts an empty id list; it consolidates to an
// empty list.
type ShoppingListPreviewRequest struct {
	RecipeIDs []string `json:"recipe_ids" binding:"required"`
}

type CreateShoppingListRequest struct {
	Name      string   `json:"name" binding:"required,max=100"`
	RecipeIDs []string `json:"recipe_ids" binding:"required,min=1"`
}

type ShoppingListPreviewResponse struct {
	RecipeIDs []string                 `json:"recipe_ids"`
	Items     []model.ShoppingListItem `json:"items"`
}

type SetCheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
