package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, prefs model.UserPreferences, useAI bool) (*types.RecommendResponse, error) {
	args := m.Called(ctx, prefs, useAI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendResponse), args.Error(1)
}

func (m *MockRecommendationService) RecommendForUser(ctx context.Context, userID uuid.UUID) (*types.RecommendResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendResponse), args.Error(1)
}

// MockLLMService stands in for the chat completion backend.
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) SuggestRecipes(ctx context.Context, prefs model.UserPreferences) ([]model.Recipe, error) {
	args := m.Called(ctx, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

type MockRecommendationCache struct {
	mock.Mock
}

func (m *MockRecommendationCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockRecommendationCache) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
