package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
)

type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) Build(ctx context.Context, recipeIDs []string) ([]model.ShoppingListItem, error) {
	args := m.Called(ctx, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListService) Save(ctx context.Context, userID uuid.UUID, name string, recipeIDs []string) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID, name, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) Get(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*models.ShoppingListEntry, error) {
	args := m.Called(ctx, userID, listID, itemID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingListEntry), args.Error(1)
}
