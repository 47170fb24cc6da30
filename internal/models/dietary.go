package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietaryPreference is one required dietary tag for a user.
type DietaryPreference struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PreferenceType string    `gorm:"size:50;not null" json:"preference_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DietaryPreference) TableName() string {
	return "dietary_preferences"
}

func (d *DietaryPreference) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Allergen represents an allergen entry for a user.
type Allergen struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName  string    `gorm:"size:50;not null" json:"allergen_name"`
	SeverityLevel int       `gorm:"not null;default:1" json:"severity_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Allergen) TableName() string {
	return "allergens"
}

func (a *Allergen) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// HealthGoal is one nutrition goal used for soft scoring.
type HealthGoal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Goal      string    `gorm:"size:50;not null" json:"goal"`
	CreatedAt time.Time `json:"created_at"`
}

func (HealthGoal) TableName() string {
	return "health_goals"
}

func (g *HealthGoal) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
