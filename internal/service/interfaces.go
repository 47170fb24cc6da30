package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/types"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("invalid token")
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrShoppingItemNotFound = errors.New("shopping list item not found")
	ErrLLMUnavailable       = errors.New("llm service unavailable")
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IPreferenceService stores the preferences used by RecommendForUser.
type IPreferenceService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.UserPreferences, error)
	Update(ctx context.Context, userID uuid.UUID, prefs model.UserPreferences) (model.UserPreferences, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.PreferenceChange, error)
}

// IRecommendationService defines the interface for recommendation operations
type IRecommendationService interface {
	Recommend(ctx context.Context, prefs model.UserPreferences, useAI bool) (*types.RecommendResponse, error)
	RecommendForUser(ctx context.Context, userID uuid.UUID) (*types.RecommendResponse, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	Build(ctx context.Context, recipeIDs []string) ([]model.ShoppingListItem, error)
	Save(ctx context.Context, userID uuid.UUID, name string, recipeIDs []string) (*models.ShoppingList, error)
	Get(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error)
	SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*models.ShoppingListEntry, error)
}

// IRecipeService defines the interface for catalog browsing
type IRecipeService interface {
	List(ctx context.Context, category model.MealCategory) []model.Recipe
	Get(ctx context.Context, id string) (model.Recipe, error)
	Search(ctx context.Context, query string, limit int) ([]model.Recipe, error)
}

// ILLMService proposes candidate recipes for a set of preferences.
type ILLMService interface {
	SuggestRecipes(ctx context.Context, prefs model.UserPreferences) ([]model.Recipe, error)
}
