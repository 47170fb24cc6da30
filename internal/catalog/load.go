package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/model"
)

// ObjectFetcher downloads a single object by key.
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Decode reads a JSON array of recipes.
func Decode(r io.Reader) ([]model.Recipe, error) {
	var recipes []model.Recipe
	dec := json.NewDecoder(r)
	if err := dec.Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	for i := range recipes {
		recipes[i].Position = i
	}
	return recipes, nil
}

// LoadFile builds a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	recipes, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return New(recipes)
}

// LoadDB builds a catalog from the recipes table, ordered by position then id.
func LoadDB(ctx context.Context, db *gorm.DB) (*Catalog, error) {
	var recipes []model.Recipe
	if err := db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return New(recipes)
}

// LoadS3 builds a catalog from a JSON object.
func LoadS3(ctx context.Context, store ObjectFetcher, key string) (*Catalog, error) {
	data, err := store.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode catalog object %s: %w", key, err)
	}
	for i := range recipes {
		recipes[i].Position = i
	}
	return New(recipes)
}

// Open loads the catalog from the source named in cfg. db is only used for
// the db source.
func Open(ctx context.Context, cfg config.CatalogConfig, db *gorm.DB) (*Catalog, error) {
	switch cfg.Source {
	case "file", "":
		return LoadFile(cfg.Path)
	case "db":
		if db == nil {
			return nil, fmt.Errorf("catalog source db requires a database connection")
		}
		return LoadDB(ctx, db)
	case "s3":
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return LoadS3(ctx, store, cfg.S3Key)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// Persist upserts recipes into the recipes table. Position follows slice
// order so LoadDB returns them in the same order.
func Persist(ctx context.Context, db *gorm.DB, recipes []model.Recipe) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range recipes {
			r := recipes[i].Clone()
			r.Position = i
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&r).Error
			if err != nil {
				return fmt.Errorf("failed to upsert recipe %s: %w", r.ID, err)
			}
		}
		return nil
	})
}
