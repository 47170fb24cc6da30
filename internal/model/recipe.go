package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// MealCategory classifies a recipe for balancing. Values outside the three
// known categories are allowed and sort after them.
type MealCategory string

const (
	Breakfast MealCategory = "breakfast"
	Lunch     MealCategory = "lunch"
	Dinner    MealCategory = "dinner"
)

// Difficulty is an ordinal skill tag.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// IngredientLine is one ingredient requirement within a recipe.
type IngredientLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category,omitempty"`
}

// IngredientLines stores the ordered ingredient list in a JSON column.
type IngredientLines []IngredientLine

// Value implements the driver.Valuer interface
func (l IngredientLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]IngredientLine(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientLines) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientLines{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}

// Nutrition holds per-serving nutrition facts. All values are non-negative.
type Nutrition struct {
	Calories float64 `gorm:"type:float" json:"calories"`
	Protein  float64 `gorm:"type:float" json:"protein"`
	Carbs    float64 `gorm:"type:float" json:"carbs"`
	Fat      float64 `gorm:"type:float" json:"fat"`
	Fiber    float64 `gorm:"type:float" json:"fiber"`
	Sodium   float64 `gorm:"type:float" json:"sodium"`
}

// Recipe is an immutable catalog entry. The gorm tags let the same record be
// stored as a catalog row; the engine only reads the exported fields.
type Recipe struct {
	ID           string           `gorm:"size:64;primaryKey" json:"id"`
	Position     int              `gorm:"index" json:"-"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	MealCategory MealCategory     `gorm:"size:32;index" json:"meal_category"`
	Cuisine      string           `gorm:"size:64" json:"cuisine"`
	PrepMinutes  int              `gorm:"not null;default:0" json:"prep_minutes"`
	CookMinutes  int              `gorm:"not null;default:0" json:"cook_minutes"`
	Difficulty   Difficulty       `gorm:"size:16" json:"difficulty"`
	DietaryTags  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	Nutrition    Nutrition        `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	Rating       *float64         `gorm:"type:float" json:"rating,omitempty"`
	Ingredients  IngredientLines  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Embedding    *pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	CreatedAt    time.Time        `json:"-"`
	UpdatedAt    time.Time        `json:"-"`
}

// TotalMinutes is prep plus cook time.
func (r Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// HasTag reports whether the recipe carries tag. Comparison ignores case and
// surrounding whitespace.
func (r Recipe) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.DietaryTags {
		if strings.ToLower(strings.TrimSpace(t)) == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so the catalog never shares slices with callers.
func (r Recipe) Clone() Recipe {
	out := r
	if r.DietaryTags != nil {
		out.DietaryTags = append(JSONBStringArray{}, r.DietaryTags...)
	} else {
		out.DietaryTags = JSONBStringArray{}
	}
	if r.Ingredients != nil {
		out.Ingredients = append(IngredientLines{}, r.Ingredients...)
	}
	if r.Rating != nil {
		v := *r.Rating
		out.Rating = &v
	}
	if r.Embedding != nil {
		v := pgvector.NewVector(append([]float32(nil), r.Embedding.Slice()...))
		out.Embedding = &v
	}
	return out
}

// Validate checks the structural invariants of a catalog entry.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("recipe %q: id is required", r.Name)
	}
	if r.Ingredients == nil {
		return fmt.Errorf("recipe %s: ingredients are required", r.ID)
	}
	if r.PrepMinutes < 0 || r.CookMinutes < 0 {
		return fmt.Errorf("recipe %s: prep and cook minutes must be non-negative", r.ID)
	}
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return fmt.Errorf("recipe %s: rating %.2f outside [0,5]", r.ID, *r.Rating)
	}
	n := r.Nutrition
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 || n.Fiber < 0 || n.Sodium < 0 {
		return fmt.Errorf("recipe %s: nutrition values must be non-negative", r.ID)
	}
	for i, line := range r.Ingredients {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("recipe %s: ingredient %d: %w", r.ID, i, err)
		}
	}
	return nil
}

// Validate checks a single ingredient line.
func (l IngredientLine) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !(l.Quantity > 0) || math.IsInf(l.Quantity, 0) {
		return fmt.Errorf("%s: quantity must be a positive finite number", l.Name)
	}
	return nil
}
