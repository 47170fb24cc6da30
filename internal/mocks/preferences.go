package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
)

type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Get(ctx context.Context, userID uuid.UUID) (model.UserPreferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserPreferences), args.Error(1)
}

func (m *MockPreferenceService) Update(ctx context.Context, userID uuid.UUID, prefs model.UserPreferences) (model.UserPreferences, error) {
	args := m.Called(ctx, userID, prefs)
	return args.Get(0).(model.UserPreferences), args.Error(1)
}

func (m *MockPreferenceService) History(ctx context.Context, userID uuid.UUID) ([]models.PreferenceChange, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PreferenceChange), args.Error(1)
}
