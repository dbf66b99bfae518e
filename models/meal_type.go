package models

import "time"

// MealType is one of the four fixed meal slots a FoodLog is filed under.
// Assigned once from the capture time, never reassigned.
type MealType string

const (
    MealBreakfast MealType = "breakfast"
    MealLunch     MealType = "lunch"
    MealDinner    MealType = "dinner"
    MealSnack     MealType = "snack"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ClassifyMealType maps a capture timestamp to its meal slot by local hour:
// [04,11) breakfast, [11,17) lunch, [17,22) dinner, everything else snack.
func ClassifyMealType(t time.Time) MealType {
    hour := t.Hour()
    switch {
    case hour >= 4 && hour < 11:
        return MealBreakfast
    case hour >= 11 && hour < 17:
        return MealLunch
    case hour >= 17 && hour < 22:
        return MealDinner
    default:
        return MealSnack
    }
}

// NutrientType enumerates the five nutrient kinds the analyzer reports.
// The writer stores these exact values so readers never have to sniff
// free-text labels.
type NutrientType string

const (
    NutrientCarbohydrates NutrientType = "carbohydrates"
    NutrientProtein       NutrientType = "protein"
    NutrientFat           NutrientType = "fat"
    NutrientSugars        NutrientType = "sugars"
    NutrientSodium        NutrientType = "sodium"
)
