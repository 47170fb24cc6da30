package model

import "strings"

// CookingTime is the user's tolerance for total preparation time.
type CookingTime string

const (
	CookingTimeQuick  CookingTime = "quick"
	CookingTimeMedium CookingTime = "medium"
	CookingTimeAny    CookingTime = "any"
)

// QuickMaxMinutes is the total-time cutoff for CookingTimeQuick.
const QuickMaxMinutes = 30

// UserPreferences is supplied per recommendation request and never stored by
// the engine.
type UserPreferences struct {
	DietaryRestrictions   []string    `json:"dietary_restrictions"`
	Allergies             []string    `json:"allergies"`
	HealthGoals           []string    `json:"health_goals"`
	DietType              string      `json:"diet_type"`
	CookingTimePreference CookingTime `json:"cooking_time_preference"`
}

// Normalize returns a copy with every tag lower-cased and trimmed, blanks and
// duplicates removed (first occurrence wins) and an empty cooking time
// defaulted to any.
func (p UserPreferences) Normalize() UserPreferences {
	out := UserPreferences{
		DietaryRestrictions:   normalizeTags(p.DietaryRestrictions),
		Allergies:             normalizeTags(p.Allergies),
		HealthGoals:           normalizeTags(p.HealthGoals),
		DietType:              normalizeTag(p.DietType),
		CookingTimePreference: CookingTime(normalizeTag(string(p.CookingTimePreference))),
	}
	if out.CookingTimePreference == "" {
		out.CookingTimePreference = CookingTimeAny
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
