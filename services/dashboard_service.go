package services

import (
	"context"
	"math"
	"time"

	"backend/models"
)

// Fixed daily targets the dashboard measures against.
const (
	targetCalories      = 2000.0 // kcal
	targetCarbohydrates = 250.0  // g
	targetProtein       = 150.0  // g
	targetFat           = 65.0   // g
)

type DashboardService struct {
	logs *FoodLogService
}

func NewDashboardService(logs *FoodLogService) *DashboardService {
	return &DashboardService{logs: logs}
}

type NutrientTotals struct {
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Sugars        float64 `json:"sugars"`
	Sodium        float64 `json:"sodium"`
}

type TargetProgress struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"` // clamped to [0,100]
}

type DailyDashboard struct {
	Date          string                             `json:"date"`
	TotalCalories float64                            `json:"total_calories"`
	Meals         map[models.MealType][]models.FoodLog `json:"meals"`
	Nutrients     NutrientTotals                     `json:"nutrients"`
	Targets       map[string]TargetProgress          `json:"targets"`
}

// Daily aggregates one calendar day of logs for a user: meal grouping,
// calorie total (sum of each log's stored total, never recomputed from
// items), nutrient totals and percent-of-target per metric. Read-only.
func (s *DashboardService) Daily(ctx context.Context, userID uint, date time.Time) (*DailyDashboard, error) {
	logs, err := s.logs.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	meals := map[models.MealType][]models.FoodLog{}
	for _, mt := range models.MealTypes {
		meals[mt] = []models.FoodLog{}
	}

	var totalCalories float64
	var totals NutrientTotals

	for _, l := range logs {
		meals[l.MealType] = append(meals[l.MealType], l)
		if l.TotalCalories != nil {
			totalCalories += *l.TotalCalories
		}
		for _, item := range l.Items {
			for _, n := range item.Nutrients {
				// The writer stores enumerated kinds, so an exact
				// switch is enough; no label sniffing.
				switch n.NutrientType {
				case models.NutrientCarbohydrates:
					totals.Carbohydrates += n.Value
				case models.NutrientProtein:
					totals.Protein += n.Value
				case models.NutrientFat:
					totals.Fat += n.Value
				case models.NutrientSugars:
					totals.Sugars += n.Value
				case models.NutrientSodium:
					totals.Sodium += n.Value
				}
			}
		}
	}

	return &DailyDashboard{
		Date:          dayStart(date).Format("2006-01-02"),
		TotalCalories: totalCalories,
		Meals:         meals,
		Nutrients:     totals,
		Targets: map[string]TargetProgress{
			"calories":      progress(totalCalories, targetCalories),
			"carbohydrates": progress(totals.Carbohydrates, targetCarbohydrates),
			"protein":       progress(totals.Protein, targetProtein),
			"fat":           progress(totals.Fat, targetFat),
		},
	}, nil
}

func progress(actual, target float64) TargetProgress {
	return TargetProgress{
		Actual:  round2(actual),
		Target:  target,
		Percent: pctClamped(actual, target),
	}
}

func pctClamped(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return round2(math.Min(actual/target*100, 100))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
