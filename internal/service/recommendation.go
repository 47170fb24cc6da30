package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/logging"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/recommend"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const (
	SourceCatalog = "catalog"
	SourceAI      = "ai"
)

// RecommendationService runs the engine over the loaded catalog, or over
// LLM-proposed candidates when asked to and available.
type RecommendationService struct {
	catalog *catalog.Catalog
	engine  *recommend.Engine
	prefs   IPreferenceService
	cache   RecommendationCache
	llm     ILLMService
	log     *zap.Logger
}

type RecommendationOption func(*RecommendationService)

// WithCache enables result caching for catalog recommendations.
func WithCache(c RecommendationCache) RecommendationOption {
	return func(s *RecommendationService) { s.cache = c }
}

// WithLLM enables the use_ai path.
func WithLLM(l ILLMService) RecommendationOption {
	return func(s *RecommendationService) { s.llm = l }
}

func WithLogger(l *zap.Logger) RecommendationOption {
	return func(s *RecommendationService) { s.log = l }
}

func NewRecommendationService(c *catalog.Catalog, engine *recommend.Engine, prefs IPreferenceService, opts ...RecommendationOption) *RecommendationService {
	s := &RecommendationService{
		catalog: c,
		engine:  engine,
		prefs:   prefs,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrNop(s.log)
	return s
}

// Recommend returns the balanced selection for prefs. With useAI the LLM
// proposes the candidates; any LLM failure falls back to the catalog.
func (s *RecommendationService) Recommend(ctx context.Context, prefs model.UserPreferences, useAI bool) (*types.RecommendResponse, error) {
	prefs = prefs.Normalize()

	if useAI && s.llm != nil {
		resp, err := s.recommendAI(ctx, prefs)
		if err == nil {
			return resp, nil
		}
		s.log.Warn("llm recommendation failed, falling back to catalog", zap.Error(err))
	}

	key := RecommendationKey(prefs, s.engine.TargetSize, s.engine.PerCategoryTarget)
	if resp, ok := s.fromCache(ctx, key); ok {
		return resp, nil
	}

	rec, err := s.engine.Recommend(s.catalog.All(), prefs)
	if err != nil {
		return nil, err
	}
	resp := newRecommendResponse(rec, SourceCatalog)
	s.toCache(ctx, key, rec)
	return resp, nil
}

// RecommendForUser recommends with the user's stored preferences.
func (s *RecommendationService) RecommendForUser(ctx context.Context, userID uuid.UUID) (*types.RecommendResponse, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Recommend(ctx, prefs, false)
}

func (s *RecommendationService) recommendAI(ctx context.Context, prefs model.UserPreferences) (*types.RecommendResponse, error) {
	candidates, err := s.llm.SuggestRecipes(ctx, prefs)
	if err != nil {
		return nil, err
	}
	rec, err := s.engine.Recommend(candidates, prefs)
	if err != nil {
		return nil, err
	}
	return newRecommendResponse(rec, SourceAI), nil
}

func (s *RecommendationService) fromCache(ctx context.Context, key string) (*types.RecommendResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("recommendation cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var cached cachedRecommendation
	if err := json.Unmarshal(data, &cached); err != nil {
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	scored := make([]model.ScoredRecipe, 0, len(cached.Entries))
	for _, e := range cached.Entries {
		r, err := s.catalog.Get(e.ID)
		if err != nil {
			// catalog changed since the entry was written
			return nil, false
		}
		scored = append(scored, model.ScoredRecipe{Recipe: r, Score: e.Score, MatchReasons: e.Reasons})
	}

	resp := newRecommendResponse(&recommend.Recommendation{
		Recipes:    scored,
		Considered: cached.Considered,
		Eligible:   cached.Eligible,
	}, SourceCatalog)
	resp.Cached = true
	return resp, true
}

func (s *RecommendationService) toCache(ctx context.Context, key string, rec *recommend.Recommendation) {
	if s.cache == nil {
		return
	}
	cached := cachedRecommendation{
		Entries:    make([]cachedEntry, len(rec.Recipes)),
		Considered: rec.Considered,
		Eligible:   rec.Eligible,
	}
	for i, sr := range rec.Recipes {
		cached.Entries[i] = cachedEntry{ID: sr.Recipe.ID, Score: sr.Score, Reasons: sr.MatchReasons}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		s.log.Warn("failed to encode recommendation for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.log.Warn("recommendation cache write failed", zap.Error(err))
	}
}

func newRecommendResponse(rec *recommend.Recommendation, source string) *types.RecommendResponse {
	recipes := rec.Recipes
	if recipes == nil {
		recipes = []model.ScoredRecipe{}
	}
	return &types.RecommendResponse{
		Recipes:    recipes,
		Considered: rec.Considered,
		Eligible:   rec.Eligible,
		Source:     source,
	}
}
