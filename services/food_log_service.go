// services/food_log_service.go
package services

import (
	"context"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type FoodLogService struct{ db *gorm.DB }

func NewFoodLogService(db *gorm.DB) *FoodLogService { return &FoodLogService{db: db} }

// SaveAnalysis writes one FoodLog, its FoodItems and five nutrient rows per
// item as a single transaction. Nothing is left behind if any stage fails;
// the failing stage travels in the PersistenceError.
func (s *FoodLogService) SaveAnalysis(
	ctx context.Context,
	userID uint,
	imageURL string,
	mealType models.MealType,
	loggedAt time.Time,
	analysis *AnalysisData,
) (*models.FoodLog, error) {

	var logID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := analysis.Summary.TotalCalories
		foodLog := models.FoodLog{
			UserID:         userID,
			ImageURL:       imageURL,
			MealType:       mealType,
			LoggedAt:       loggedAt,
			AnalysisStatus: models.AnalysisCompleted,
			TotalCalories:  &total,
		}
		if err := tx.Create(&foodLog).Error; err != nil {
			return &PersistenceError{Stage: PersistStageLog, Err: err}
		}
		logID = foodLog.ID

		for _, it := range analysis.Items {
			confidence := it.Confidence
			item := models.FoodItem{
				FoodLogID:  foodLog.ID,
				FoodName:   it.FoodName,
				Confidence: &confidence,
				Quantity:   it.Quantity,
				Calories:   it.Calories,
			}
			if err := tx.Create(&item).Error; err != nil {
				return &PersistenceError{Stage: PersistStageItem, Err: err}
			}

			rows := []models.Nutrient{
				{FoodItemID: item.ID, NutrientType: models.NutrientCarbohydrates, Value: it.Nutrients.Carbohydrates.Value, Unit: it.Nutrients.Carbohydrates.Unit},
				{FoodItemID: item.ID, NutrientType: models.NutrientProtein, Value: it.Nutrients.Protein.Value, Unit: it.Nutrients.Protein.Unit},
				{FoodItemID: item.ID, NutrientType: models.NutrientFat, Value: it.Nutrients.Fat.Value, Unit: it.Nutrients.Fat.Unit},
				{FoodItemID: item.ID, NutrientType: models.NutrientSugars, Value: it.Nutrients.Sugars.Value, Unit: it.Nutrients.Sugars.Unit},
				{FoodItemID: item.ID, NutrientType: models.NutrientSodium, Value: it.Nutrients.Sodium.Value, Unit: it.Nutrients.Sodium.Unit},
			}
			if err := tx.Create(&rows).Error; err != nil {
				return &PersistenceError{Stage: PersistStageNutrient, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// reload with items and nutrients
	var saved models.FoodLog
	if err := s.db.WithContext(ctx).
		Preload("Items.Nutrients").
		First(&saved, logID).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListByDate returns the user's logs whose capture time falls within the
// local calendar day, ordered by capture time, with nested items/nutrients.
func (s *FoodLogService) ListByDate(ctx context.Context, userID uint, date time.Time) ([]models.FoodLog, error) {
	start := dayStart(date)
	end := start.AddDate(0, 0, 1)

	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Preload("Items.Nutrients").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

// GetLog fetches one log, scoped to its owner.
func (s *FoodLogService) GetLog(ctx context.Context, userID, logID uint) (*models.FoodLog, error) {
	var foodLog models.FoodLog
	err := s.db.WithContext(ctx).
		Preload("Items.Nutrients").
		Where("id = ? AND user_id = ?", logID, userID).
		First(&foodLog).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &foodLog, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
