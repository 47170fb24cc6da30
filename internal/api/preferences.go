package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type PreferenceHandler struct {
	preferences service.IPreferenceService
	auth        middleware.TokenValidator
}

func NewPreferenceHandler(preferences service.IPreferenceService, auth middleware.TokenValidator) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, auth: auth}
}

func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	prefs.Use(middleware.AuthMiddleware(h.auth))
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
		prefs.GET("/history", h.GetHistory)
	}
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	prefs, err := h.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req model.UserPreferences
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !checkCookingTime(c, req) {
		return
	}

	userID, _ := middleware.UserID(c)
	prefs, err := h.preferences.Update(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) GetHistory(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	history, err := h.preferences.History(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// checkCookingTime answers 400 for a cooking time other than quick, medium,
// any or empty.
func checkCookingTime(c *gin.Context, prefs model.UserPreferences) bool {
	switch prefs.Normalize().CookingTimePreference {
	case model.CookingTimeQuick, model.CookingTimeMedium, model.CookingTimeAny:
		return true
	}
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "cooking_time_preference must be quick, medium or any"})
	return false
}
