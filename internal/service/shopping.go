package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/recommend"
)

// ShoppingListService consolidates catalog recipes into shopping lists and
// stores them per user.
type ShoppingListService struct {
	catalog *catalog.Catalog
	db      *gorm.DB
}

func NewShoppingListService(c *catalog.Catalog, db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{catalog: c, db: db}
}

// Build consolidates the recipes in request order without persisting.
func (s *ShoppingListService) Build(_ context.Context, recipeIDs []string) ([]model.ShoppingListItem, error) {
	recipes, err := s.catalog.ByIDs(recipeIDs)
	if err != nil {
		return nil, err
	}
	return recommend.Consolidate(recipes)
}

// Save consolidates and stores a named list owned by userID.
func (s *ShoppingListService) Save(ctx context.Context, userID uuid.UUID, name string, recipeIDs []string) (*models.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", recommend.ErrInvalidInput)
	}

	items, err := s.Build(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	list := &models.ShoppingList{
		UserID:    userID,
		Name:      name,
		RecipeIDs: append(model.JSONBStringArray{}, recipeIDs...),
		Items:     models.EntriesFromItems(items),
	}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	return list, nil
}

// Get loads one list with its items in consolidation order.
func (s *ShoppingListService) Get(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// List returns the user's lists, newest first.
func (s *ShoppingListService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// SetChecked marks one item of a user's list as bought or not.
func (s *ShoppingListService) SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*models.ShoppingListEntry, error) {
	if _, err := s.Get(ctx, userID, listID); err != nil {
		return nil, err
	}

	var entry models.ShoppingListEntry
	db := s.db.WithContext(ctx)
	if err := db.Where("id = ? AND list_id = ?", itemID, listID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingItemNotFound
		}
		return nil, err
	}
	if err := db.Model(&entry).Update("checked", checked).Error; err != nil {
		return nil, err
	}
	entry.Checked = checked
	return &entry, nil
}
