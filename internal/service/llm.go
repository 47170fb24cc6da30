package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/model"
)

const llmSystemPrompt = `You are a professional chef and nutritionist. Reply with a JSON object of the form
{"recipes": [{
    "id": "short-kebab-case-id",
    "name": "Recipe name",
    "description": "Brief description",
    "meal_category": "breakfast | lunch | dinner",
    "cuisine": "Cuisine name",
    "prep_minutes": 10,
    "cook_minutes": 20,
    "difficulty": "easy | medium | hard",
    "dietary_tags": ["vegan", "gluten-free"],
    "nutrition": {"calories": 350, "protein": 15, "carbs": 45, "fat": 12, "fiber": 6, "sodium": 400},
    "ingredients": [{"name": "Rolled oats", "quantity": 0.5, "unit": "cup", "category": "grains"}]
}]}
Quantities and nutrition values must be numbers. Propose between 6 and 15 recipes spread over breakfast, lunch and dinner.`

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-compatible chat completion body.
type ChatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService asks an OpenAI-compatible chat endpoint for candidate recipes.
// Its output is untrusted: every recipe is validated and still goes through
// the same filters as catalog recipes.
type LLMService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

// NewLLMService returns nil when the LLM path is disabled.
func NewLLMService(cfg config.LLMConfig, log *zap.Logger) *LLMService {
	if !cfg.Enabled {
		return nil
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &LLMService{
		client: client,
		model:  cfg.Model,
		log:    logging.OrNop(log),
	}
}

// SuggestRecipes returns the valid recipes proposed for prefs. Invalid entries
// are dropped; an answer with none left is ErrLLMUnavailable.
func (s *LLMService) SuggestRecipes(ctx context.Context, prefs model.UserPreferences) ([]model.Recipe, error) {
	prefs = prefs.Normalize()
	req := ChatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: buildPrompt(prefs)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrLLMUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status %d", ErrLLMUnavailable, resp.StatusCode())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrLLMUnavailable, err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrLLMUnavailable)
	}

	var payload struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse recipes: %v", ErrLLMUnavailable, err)
	}

	recipes := make([]model.Recipe, 0, len(payload.Recipes))
	seen := make(map[string]struct{}, len(payload.Recipes))
	for i, r := range payload.Recipes {
		r.ID = "ai-" + strings.TrimSpace(r.ID)
		if r.ID == "ai-" {
			r.ID = fmt.Sprintf("ai-%d", i+1)
		}
		if _, dup := seen[r.ID]; dup {
			r.ID = fmt.Sprintf("%s-%d", r.ID, i+1)
		}
		r.Position = i
		if r.DietaryTags == nil {
			r.DietaryTags = model.JSONBStringArray{}
		}
		if err := r.Validate(); err != nil {
			s.log.Warn("dropping invalid generated recipe", zap.Int("index", i), zap.Error(err))
			continue
		}
		seen[r.ID] = struct{}{}
		recipes = append(recipes, r)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("%w: no valid recipes in response", ErrLLMUnavailable)
	}

	s.log.Info("generated candidate recipes",
		zap.Int("proposed", len(payload.Recipes)),
		zap.Int("valid", len(recipes)))
	return recipes, nil
}

func buildPrompt(prefs model.UserPreferences) string {
	var b strings.Builder
	b.WriteString("Suggest recipes for a weekly meal plan.")
	if len(prefs.DietaryRestrictions) > 0 {
		b.WriteString(" Every recipe must be: " + strings.Join(prefs.DietaryRestrictions, ", ") + ".")
	}
	if len(prefs.Allergies) > 0 {
		b.WriteString(" Avoid using: " + strings.Join(prefs.Allergies, ", ") + ".")
	}
	if prefs.DietType != "" {
		b.WriteString(" Preferred diet: " + prefs.DietType + ".")
	}
	if len(prefs.HealthGoals) > 0 {
		b.WriteString(" Health goals: " + strings.Join(prefs.HealthGoals, ", ") + ".")
	}
	if prefs.CookingTimePreference == model.CookingTimeQuick {
		b.WriteString(fmt.Sprintf(" Total time must be at most %d minutes.", model.QuickMaxMinutes))
	}
	return b.String()
}
