package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type ShoppingListHandler struct {
	lists service.IShoppingListService
	auth  middleware.TokenValidator
}

func NewShoppingListHandler(lists service.IShoppingListService, auth middleware.TokenValidator) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists, auth: auth}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/shopping-list/preview", h.Preview)

	lists := router.Group("/shopping-lists")
	lists.Use(middleware.AuthMiddleware(h.auth))
	{
		lists.POST("", h.Create)
		lists.GET("", h.List)
		lists.GET("/:id", h.Get)
		lists.PATCH("/:id/items/:itemId", h.SetChecked)
	}
}

// Preview consolidates recipes without saving anything.
func (h *ShoppingListHandler) Preview(c *gin.Context) {
	var req types.ShoppingListPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.lists.Build(c.Request.Context(), req.RecipeIDs)
	if err != nil {
		c.Error(err)
		return
	}
	if items == nil {
		items = []model.ShoppingListItem{}
	}
	c.JSON(http.StatusOK, types.ShoppingListPreviewResponse{RecipeIDs: req.RecipeIDs, Items: items})
}

func (h *ShoppingListHandler) Create(c *gin.Context) {
	var req types.CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	list, err := h.lists.Save(c.Request.Context(), userID, req.Name, req.RecipeIDs)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	lists, err := h.lists.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	if lists == nil {
		lists = []models.ShoppingList{}
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) Get(c *gin.Context) {
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.UserID(c)
	list, err := h.lists.Get(c.Request.Context(), userID, listID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) SetChecked(c *gin.Context) {
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	var req types.SetCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	entry, err := h.lists.SetChecked(c.Request.Context(), userID, listID, itemID, *req.Checked)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
