package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type RecommendationHandler struct {
	recommendations service.IRecommendationService
	auth            gin.HandlerFunc
	limit           []gin.HandlerFunc
}

// NewRecommendationHandler wires the routes; a nil limiter disables rate
// limiting.
func NewRecommendationHandler(recommendations service.IRecommendationService, auth middleware.TokenValidator, limiter *middleware.RateLimiter) *RecommendationHandler {
	h := &RecommendationHandler{
		recommendations: recommendations,
		auth:            middleware.AuthMiddleware(auth),
	}
	if limiter != nil {
		h.limit = []gin.HandlerFunc{limiter.RateLimitMiddleware()}
	}
	return h
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	recs := router.Group("/recommendations")
	{
		recs.POST("", append(h.limit, h.Recommend)...)
		recs.GET("/me", append([]gin.HandlerFunc{h.auth}, append(h.limit, h.RecommendForMe)...)...)
	}
}

// Recommend runs the engine for the preferences in the body. An empty body
// means no constraints.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req types.RecommendRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if !checkCookingTime(c, req.Preferences) {
		return
	}

	resp, err := h.recommendations.Recommend(c.Request.Context(), req.Preferences, req.UseAI)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecommendForMe uses the caller's stored preferences.
func (h *RecommendationHandler) RecommendForMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "user not authenticated"})
		return
	}

	resp, err := h.recommendations.RecommendForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
