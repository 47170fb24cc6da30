package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// EmbeddingDimensions matches the vector(3) column of the recipes table.
const EmbeddingDimensions = 3

// GenerateEmbedding returns a small deterministic embedding for text: its
// letter count, vowel share and consonant share. It needs no external model,
// so seeding and search agree on the same vectors.
func GenerateEmbedding(text string) pgvector.Vector {
	var letters, vowels, consonants float32
	for _, r := range strings.ToLower(text) {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
			letters++
		case r >= 'a' && r <= 'z':
			consonants++
			letters++
		}
	}
	if letters == 0 {
		return pgvector.NewVector(make([]float32, EmbeddingDimensions))
	}
	return pgvector.NewVector([]float32{letters, vowels / letters, consonants / letters})
}

// EmbedRecipe embeds the searchable text of a recipe.
func EmbedRecipe(r model.Recipe) pgvector.Vector {
	parts := []string{r.Name, r.Description, r.Cuisine}
	for _, line := range r.Ingredients {
		parts = append(parts, line.Name)
	}
	return GenerateEmbedding(strings.Join(parts, " "))
}
