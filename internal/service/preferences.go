package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/models"
)

// PreferenceService persists UserPreferences across the profile row and the
// per-tag tables.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the stored preferences in normalized form.
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (model.UserPreferences, error) {
	return s.load(s.db.WithContext(ctx), userID)
}

func (s *PreferenceService) load(db *gorm.DB, userID uuid.UUID) (model.UserPreferences, error) {
	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.UserPreferences{}, ErrUserNotFound
		}
		return model.UserPreferences{}, err
	}

	var dietary []models.DietaryPreference
	if err := db.Where("user_id = ?", userID).Find(&dietary).Error; err != nil {
		return model.UserPreferences{}, err
	}
	var allergens []models.Allergen
	if err := db.Where("user_id = ?", userID).Find(&allergens).Error; err != nil {
		return model.UserPreferences{}, err
	}
	var goals []models.HealthGoal
	if err := db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return model.UserPreferences{}, err
	}

	prefs := model.UserPreferences{
		DietType:              profile.DietType,
		CookingTimePreference: model.CookingTime(profile.CookingTimePreference),
	}
	for _, d := range dietary {
		prefs.DietaryRestrictions = append(prefs.DietaryRestrictions, d.PreferenceType)
	}
	for _, a := range allergens {
		prefs.Allergies = append(prefs.Allergies, a.AllergenName)
	}
	for _, g := range goals {
		prefs.HealthGoals = append(prefs.HealthGoals, g.Goal)
	}
	return canonical(prefs), nil
}

// canonical normalizes prefs and sorts the tag lists. Stored tags are sets,
// so sorting keeps Get and Update results comparable.
func canonical(prefs model.UserPreferences) model.UserPreferences {
	prefs = prefs.Normalize()
	sort.Strings(prefs.DietaryRestrictions)
	sort.Strings(prefs.Allergies)
	sort.Strings(prefs.HealthGoals)
	return prefs
}

// Update replaces the stored preferences and records every changed field in
// the preference history.
func (s *PreferenceService) Update(ctx context.Context, userID uuid.UUID, prefs model.UserPreferences) (model.UserPreferences, error) {
	prefs = canonical(prefs)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := s.load(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
			"diet_type":               prefs.DietType,
			"cooking_time_preference": string(prefs.CookingTimePreference),
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.DietaryPreference{}).Error; err != nil {
			return err
		}
		for _, tag := range prefs.DietaryRestrictions {
			if err := tx.Create(&models.DietaryPreference{UserID: userID, PreferenceType: tag}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return err
		}
		for _, name := range prefs.Allergies {
			if err := tx.Create(&models.Allergen{UserID: userID, AllergenName: name, SeverityLevel: 1}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.HealthGoal{}).Error; err != nil {
			return err
		}
		for _, goal := range prefs.HealthGoals {
			if err := tx.Create(&models.HealthGoal{UserID: userID, Goal: goal}).Error; err != nil {
				return err
			}
		}

		for _, change := range diffPreferences(userID, old, prefs, time.Now().UTC()) {
			if err := tx.Create(&change).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.UserPreferences{}, err
	}
	return prefs, nil
}

// History lists recorded preference changes, newest first.
func (s *PreferenceService) History(ctx context.Context, userID uuid.UUID) ([]models.PreferenceChange, error) {
	var history []models.PreferenceChange
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("changed_at DESC").
		Order("field ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// diffPreferences stamps every change of one update with the same time.
func diffPreferences(userID uuid.UUID, old, updated model.UserPreferences, at time.Time) []models.PreferenceChange {
	fields := []struct {
		name     string
		old, new string
	}{
		{"dietary_restrictions", strings.Join(old.DietaryRestrictions, ","), strings.Join(updated.DietaryRestrictions, ",")},
		{"allergies", strings.Join(old.Allergies, ","), strings.Join(updated.Allergies, ",")},
		{"health_goals", strings.Join(old.HealthGoals, ","), strings.Join(updated.HealthGoals, ",")},
		{"diet_type", old.DietType, updated.DietType},
		{"cooking_time_preference", string(old.CookingTimePreference), string(updated.CookingTimePreference)},
	}

	var changes []models.PreferenceChange
	for _, f := range fields {
		if f.old == f.new {
			continue
		}
		changes = append(changes, models.PreferenceChange{
			UserID:    userID,
			Field:     f.name,
			OldValue:  f.old,
			NewValue:  f.new,
			ChangedAt: at,
		})
	}
	return changes
}
