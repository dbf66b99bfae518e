package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodLog{},
		&models.FoodItem{},
		&models.Nutrient{},
	))
	return db
}

// analysisWithItems builds a canonical result whose summary total is given
// and whose items carry simple, distinct nutrient values.
func analysisWithItems(total float64, names ...string) *AnalysisData {
	items := make([]AnalyzedFoodItem, 0, len(names))
	for i, name := range names {
		base := float64(i + 1)
		items = append(items, AnalyzedFoodItem{
			FoodName:   name,
			Confidence: 0.9,
			Quantity:   "1 serving",
			Calories:   base * 100,
			Nutrients: FoodNutrients{
				Carbohydrates: NutrientValue{Value: base * 10, Unit: "g"},
				Protein:       NutrientValue{Value: base * 5, Unit: "g"},
				Fat:           NutrientValue{Value: base * 2, Unit: "g"},
				Sugars:        NutrientValue{Value: base, Unit: "g"},
				Sodium:        NutrientValue{Value: base * 100, Unit: "mg"},
			},
		})
	}
	return &AnalysisData{
		Items: items,
		Summary: NutritionSummary{
			TotalCalories:      total,
			TotalCarbohydrates: NutrientValue{Value: 0, Unit: "g"},
			TotalProtein:       NutrientValue{Value: 0, Unit: "g"},
			TotalFat:           NutrientValue{Value: 0, Unit: "g"},
		},
	}
}
