package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

func recipeIDs(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestRecipeListAndGet(t *testing.T) {
	svc := service.NewRecipeService(testhelpers.SampleCatalog(t), nil)
	ctx := context.Background()

	assert.Len(t, svc.List(ctx, ""), 10)
	assert.Equal(t, []string{"d1", "d2"}, recipeIDs(svc.List(ctx, model.Dinner)))

	r, err := svc.Get(ctx, "l2")
	require.NoError(t, err)
	assert.Equal(t, "Recipe l2", r.Name)

	_, err = svc.Get(ctx, "zzz")
	assert.ErrorIs(t, err, catalog.ErrRecipeNotFound)
}

func TestRecipeSearchInMemory(t *testing.T) {
	svc := service.NewRecipeService(testhelpers.SampleCatalog(t), nil)
	ctx := context.Background()

	got, err := svc.Search(ctx, "OATS", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "l2"}, recipeIDs(got))

	got, err = svc.Search(ctx, "water", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.Search(ctx, "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeSearchSQLite(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	require.NoError(t, catalog.Persist(context.Background(), db, testhelpers.SampleRecipes()))
	svc := service.NewRecipeService(testhelpers.SampleCatalog(t), db)

	got, err := svc.Search(context.Background(), "spinach", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"l2"}, recipeIDs(got))

	got, err = svc.Search(context.Background(), "recipe b", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4", "b5"}, recipeIDs(got))
}

func TestRecipeSearchSQLiteTreatsWildcardsLiterally(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	require.NoError(t, catalog.Persist(context.Background(), db, testhelpers.SampleRecipes()))
	svc := service.NewRecipeService(testhelpers.SampleCatalog(t), db)

	for _, q := range []string{"%", "recipe_b", `\`} {
		got, err := svc.Search(context.Background(), q, 10)
		require.NoError(t, err)
		assert.Empty(t, got, q)
	}
}

func TestGenerateEmbedding(t *testing.T) {
	v := service.GenerateEmbedding("Oat")
	assert.Len(t, v.Slice(), service.EmbeddingDimensions)
	assert.Equal(t, float32(3), v.Slice()[0])

	assert.Equal(t, []float32{0, 0, 0}, service.GenerateEmbedding("123 !").Slice())
	assert.Equal(t, service.GenerateEmbedding("oat"), service.GenerateEmbedding("OAT"))

	r := testhelpers.SampleRecipes()[0]
	assert.Equal(t, service.EmbedRecipe(r), service.EmbedRecipe(r))
}

func TestRedisRecommendationCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	client := testhelpers.SetupRedis(t)
	cache := service.NewRedisRecommendationCache(client, 0)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "recommend:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "recommend:k", []byte("v")))
	data, ok, err := cache.Get(ctx, "recommend:k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), data)
}
