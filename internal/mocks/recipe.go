package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
)

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) List(ctx context.Context, category model.MealCategory) []model.Recipe {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Recipe)
}

func (m *MockRecipeService) Get(ctx context.Context, id string) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Search(ctx context.Context, query string, limit int) ([]model.Recipe, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}
