package service

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealplanner/backend/internal/catalog"
	"github.com/pageza/mealplanner/backend/internal/model"
)

const defaultSearchLimit = 20

// likeEscaper makes LIKE wildcards in a user query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeService serves catalog reads. Search uses the recipes table when a
// database is attached and the in-memory catalog otherwise.
type RecipeService struct {
	catalog *catalog.Catalog
	db      *gorm.DB
}

func NewRecipeService(c *catalog.Catalog, db *gorm.DB) *RecipeService {
	return &RecipeService{catalog: c, db: db}
}

// List returns the whole catalog, or one category when category is set.
func (s *RecipeService) List(_ context.Context, category model.MealCategory) []model.Recipe {
	if category == "" {
		return s.catalog.All()
	}
	return s.catalog.ByCategory(category)
}

func (s *RecipeService) Get(_ context.Context, id string) (model.Recipe, error) {
	return s.catalog.Get(id)
}

// Search finds recipes whose name, description or ingredients contain query.
// On Postgres the matches are ordered by embedding distance to the query.
func (s *RecipeService) Search(ctx context.Context, query string, limit int) ([]model.Recipe, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if query == "" {
		return []model.Recipe{}, nil
	}
	if s.db == nil {
		return s.searchCatalog(query, limit), nil
	}

	like := "%" + likeEscaper.Replace(query) + "%"
	var ids []string
	dbQuery := s.db.WithContext(ctx).Model(&model.Recipe{})
	if s.db.Dialector.Name() == "postgres" {
		vec := GenerateEmbedding(query)
		dbQuery = dbQuery.
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(ingredients::text) LIKE ? ESCAPE '\'`, like, like, like).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:                "embedding <-> ?, position ASC",
				Vars:               []interface{}{vec},
				WithoutParentheses: true,
			}})
	} else {
		// Fallback to keyword search for non-PostgreSQL databases
		dbQuery = dbQuery.
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(ingredients) LIKE ? ESCAPE '\'`, like, like, like).
			Order("position ASC")
	}
	if err := dbQuery.Limit(limit).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	// rows not in the loaded catalog are skipped
	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, err := s.catalog.Get(id); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RecipeService) searchCatalog(query string, limit int) []model.Recipe {
	out := []model.Recipe{}
	for _, r := range s.catalog.All() {
		if len(out) == limit {
			break
		}
		if matchesQuery(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r model.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) || strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, line := range r.Ingredients {
		if strings.Contains(strings.ToLower(line.Name), query) {
			return true
		}
	}
	return false
}
