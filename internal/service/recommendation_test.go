package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/recommend"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// memoryCache is a map-backed RecommendationCache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func recommendedIDs(resp *types.RecommendResponse) []string {
	out := make([]string, len(resp.Recipes))
	for i, r := range resp.Recipes {
		out[i] = r.Recipe.ID
	}
	return out
}

func TestRecommend(t *testing.T) {
	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil)

	resp, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b5", "b4", "l2", "l3", "d1"}, recommendedIDs(resp))
	assert.Equal(t, 10, resp.Considered)
	assert.Equal(t, 6, resp.Eligible)
	assert.Equal(t, service.SourceCatalog, resp.Source)
	assert.False(t, resp.Cached)
}

func TestRecommendNoMatches(t *testing.T) {
	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil)

	prefs := testhelpers.SamplePreferences()
	prefs.DietaryRestrictions = []string{"keto"}
	resp, err := svc.Recommend(context.Background(), prefs, false)
	require.NoError(t, err)
	assert.NotNil(t, resp.Recipes)
	assert.Empty(t, resp.Recipes)
}

func TestRecommendUsesCache(t *testing.T) {
	cache := newMemoryCache()
	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithCache(cache))
	ctx := context.Background()

	first, err := svc.Recommend(ctx, testhelpers.SamplePreferences(), false)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, cache.entries, 1)

	// differently spelled but equivalent preferences share the entry
	prefs := testhelpers.SamplePreferences()
	prefs.Allergies = []string{" NUTS "}
	second, err := svc.Recommend(ctx, prefs, false)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Recipes, second.Recipes)
	assert.Equal(t, first.Eligible, second.Eligible)
	assert.Len(t, cache.entries, 1)
}

func TestRecommendIgnoresCacheFailures(t *testing.T) {
	cache := new(mocks.MockRecommendationCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("connection refused"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithCache(cache))
	resp, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 6)
	cache.AssertExpectations(t)
}

func TestRecommendDiscardsStaleCacheEntry(t *testing.T) {
	cache := new(mocks.MockRecommendationCache)
	cache.On("Get", mock.Anything, mock.Anything).
		Return([]byte(`{"entries":[{"id":"gone","score":99}],"considered":1,"eligible":1}`), true, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithCache(cache))
	resp, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), false)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, "b1", resp.Recipes[0].Recipe.ID)
	cache.AssertCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendWithLLM(t *testing.T) {
	// b2 carries nuts and b3 is not vegetarian, so only b1 survives the filters
	candidates := testhelpers.SampleRecipes()[:3]
	llm := new(mocks.MockLLMService)
	llm.On("SuggestRecipes", mock.Anything, mock.Anything).Return(candidates, nil)

	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithLLM(llm))
	resp, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), true)
	require.NoError(t, err)
	assert.Equal(t, service.SourceAI, resp.Source)
	assert.Equal(t, []string{"b1"}, recommendedIDs(resp))
	assert.Equal(t, 3, resp.Considered)
	llm.AssertExpectations(t)
}

func TestRecommendLLMFallsBack(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("SuggestRecipes", mock.Anything, mock.Anything).Return(nil, service.ErrLLMUnavailable)

	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithLLM(llm))
	resp, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), true)
	require.NoError(t, err)
	assert.Equal(t, service.SourceCatalog, resp.Source)
	assert.Len(t, resp.Recipes, 6)
}

func TestRecommendLLMNotRequested(t *testing.T) {
	llm := new(mocks.MockLLMService)
	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), nil,
		service.WithLLM(llm))

	_, err := svc.Recommend(context.Background(), testhelpers.SamplePreferences(), false)
	require.NoError(t, err)
	llm.AssertNotCalled(t, "SuggestRecipes", mock.Anything, mock.Anything)
}

func TestRecommendForUser(t *testing.T) {
	userID := uuid.New()
	prefs := new(mocks.MockPreferenceService)
	prefs.On("Get", mock.Anything, userID).Return(testhelpers.SamplePreferences(), nil)
	prefs.On("Get", mock.Anything, mock.Anything).Return(model.UserPreferences{}, service.ErrUserNotFound)

	svc := service.NewRecommendationService(testhelpers.SampleCatalog(t), recommend.DefaultEngine(), prefs)

	resp, err := svc.RecommendForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b5", "b4", "l2", "l3", "d1"}, recommendedIDs(resp))

	_, err = svc.RecommendForUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestRecommendationKey(t *testing.T) {
	base := testhelpers.SamplePreferences()
	same := base
	same.DietaryRestrictions = []string{"Vegetarian", "vegetarian"}

	assert.Equal(t, service.RecommendationKey(base, 15, 5), service.RecommendationKey(same, 15, 5))
	assert.NotEqual(t, service.RecommendationKey(base, 15, 5), service.RecommendationKey(base, 10, 5))
	assert.NotEqual(t, service.RecommendationKey(base, 15, 5), service.RecommendationKey(model.UserPreferences{}, 15, 5))
}
