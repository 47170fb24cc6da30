package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// ShoppingList is a saved consolidation of a set of catalog recipes.
type ShoppingList struct {
	ID        uuid.UUID              `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uuid.UUID              `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string                 `gorm:"size:100;not null" json:"name"`
	RecipeIDs model.JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_ids"`
	Items     []ShoppingListEntry    `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func (l *ShoppingList) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ShoppingListEntry is one consolidated line of a saved list.
type ShoppingListEntry struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	ListID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"list_id"`
	Position      int       `gorm:"not null" json:"-"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	TotalQuantity float64   `gorm:"type:float;not null" json:"total_quantity"`
	Unit          string    `gorm:"type:text" json:"unit"`
	Category      string    `gorm:"type:text" json:"category,omitempty"`
	Checked       bool      `gorm:"not null;default:false" json:"checked"`
}

func (e *ShoppingListEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EntriesFromItems maps consolidated items to rows, keeping their order.
func EntriesFromItems(items []model.ShoppingListItem) []ShoppingListEntry {
	out := make([]ShoppingListEntry, len(items))
	for i, it := range items {
		out[i] = ShoppingListEntry{
			Position:      i,
			Name:          it.Name,
			TotalQuantity: it.TotalQuantity,
			Unit:          it.Unit,
			Category:      it.Category,
			Checked:       it.Checked,
		}
	}
	return out
}

// All returns every persisted model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&DietaryPreference{},
		&Allergen{},
		&HealthGoal{},
		&PreferenceChange{},
		&ShoppingList{},
		&ShoppingListEntry{},
	}
}
