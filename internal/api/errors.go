package api

import (
	"errors"
	"net/http"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/recommend"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// StatusFor maps domain errors to HTTP statuses.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidRecipe):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrRecipeNotFound),
		errors.Is(err, service.ErrShoppingListNotFound),
		errors.Is(err, service.ErrShoppingItemNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrLLMUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
