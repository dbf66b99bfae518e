package models

import (
    "time"

    "gorm.io/gorm"
)

// Analysis status of a FoodLog. Logs are created `completed` by the save
// pipeline; `pending`/`failed` exist for logs whose analysis never finished.
const (
    AnalysisPending   = "pending"
    AnalysisCompleted = "completed"
    AnalysisFailed    = "failed"
)

// One FoodLog per analyzed photo. Write-once: corrections require a new log.
type FoodLog struct {
    gorm.Model
    UserID         uint   `gorm:"index;not null"`
    ImageURL       string // public URL or local path of the uploaded photo
    MealType       MealType  `gorm:"type:varchar(16);not null"`
    LoggedAt       time.Time `gorm:"index;not null"`
    AnalysisStatus string    `gorm:"type:varchar(16);not null;default:pending"`
    TotalCalories  *float64  // nil until analysis completes
    Items          []FoodItem
}

// One recognized food within a FoodLog.
type FoodItem struct {
    gorm.Model
    FoodLogID  uint   `gorm:"index;not null"`
    FoodName   string `gorm:"not null"`
    Confidence *float64 // 0..1, nil when the analyzer gave none
    Quantity   string   // free text, e.g. "1 bowl"
    Calories   float64  `gorm:"not null"`
    Nutrients  []Nutrient
}

// One nutrient measurement within a FoodItem.
type Nutrient struct {
    gorm.Model
    FoodItemID   uint         `gorm:"index;not null"`
    NutrientType NutrientType `gorm:"type:varchar(32);not null"`
    Value        float64
    Unit         string
}
