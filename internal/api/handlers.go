package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
)

const healthTimeout = 2 * time.Second

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Deps carries the services behind the HTTP surface. Limiter and Checks
// may be nil.
type Deps struct {
	Auth            service.IAuthService
	Recipes         service.IRecipeService
	Recommendations service.IRecommendationService
	Preferences     service.IPreferenceService
	ShoppingLists   service.IShoppingListService
	Limiter         *middleware.RateLimiter
	Checks          map[string]CheckFunc
	Log             *zap.Logger
}

// HealthCheck returns the health status of the API and its dependencies.
func HealthCheck(checks map[string]CheckFunc) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				components[name] = "unhealthy: " + err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "healthy"
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status":     overall,
			"components": components,
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	health := HealthCheck(d.Checks)
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.ErrorHandler(StatusFor, log))
	v1.GET("/health", health)

	NewAuthHandler(d.Auth).RegisterRoutes(v1)
	NewRecipeHandler(d.Recipes).RegisterRoutes(v1)
	NewRecommendationHandler(d.Recommendations, d.Auth, d.Limiter).RegisterRoutes(v1)
	NewPreferenceHandler(d.Preferences, d.Auth).RegisterRoutes(v1)
	NewShoppingListHandler(d.ShoppingLists, d.Auth).RegisterRoutes(v1)
}
