package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
)

const generatedRecipes = `{"recipes": [
  {"id": "oat-bowl", "name": "Oat Bowl", "meal_category": "breakfast", "prep_minutes": 5, "cook_minutes": 5,
   "dietary_tags": ["vegetarian"], "nutrition": {"calories": 320, "fiber": 6},
   "ingredients": [{"name": "Rolled oats", "quantity": 1, "unit": "cup"}]},
  {"id": "broken", "name": "No Ingredients", "meal_category": "lunch"},
  {"name": "Lentil Stew", "meal_category": "dinner", "prep_minutes": 10, "cook_minutes": 30,
   "ingredients": [{"name": "Lentils", "quantity": 1, "unit": "cup"}]}
]}`

func chatServer(t *testing.T, status int, content string) (*httptest.Server, *service.ChatRequest) {
	t.Helper()
	var captured service.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error": "upstream failure"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func llmConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Enabled: true,
		URL:     url,
		Model:   "test-model",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}
}

func TestNewLLMServiceDisabled(t *testing.T) {
	assert.Nil(t, service.NewLLMService(config.LLMConfig{}, zap.NewNop()))
}

func TestSuggestRecipes(t *testing.T) {
	srv, captured := chatServer(t, http.StatusOK, generatedRecipes)
	svc := service.NewLLMService(llmConfig(srv.URL), zap.NewNop())

	recipes, err := svc.SuggestRecipes(context.Background(), model.UserPreferences{
		DietaryRestrictions:   []string{"Vegetarian"},
		Allergies:             []string{"nuts"},
		CookingTimePreference: model.CookingTimeQuick,
	})
	require.NoError(t, err)

	require.Len(t, recipes, 2)
	assert.Equal(t, "ai-oat-bowl", recipes[0].ID)
	assert.Equal(t, "ai-3", recipes[1].ID)
	assert.Equal(t, model.JSONBStringArray{}, recipes[1].DietaryTags)

	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[1].Content, "vegetarian")
	assert.Contains(t, captured.Messages[1].Content, "Avoid using: nuts")
	assert.Contains(t, captured.Messages[1].Content, "at most 30 minutes")
}

func TestSuggestRecipesFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"upstream error", http.StatusInternalServerError, ""},
		{"content is not json", http.StatusOK, "here are some recipes"},
		{"nothing valid", http.StatusOK, `{"recipes": [{"id": "x", "name": "Empty"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := chatServer(t, tt.status, tt.content)
			svc := service.NewLLMService(llmConfig(srv.URL), zap.NewNop())

			_, err := svc.SuggestRecipes(context.Background(), model.UserPreferences{})
			assert.ErrorIs(t, err, service.ErrLLMUnavailable)
		})
	}
}
