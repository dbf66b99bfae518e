package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Canonical analysis result. Both analyzer response shapes normalize into
// this; nothing downstream ever sees the raw envelopes.

type NutrientValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type FoodNutrients struct {
	Carbohydrates NutrientValue `json:"carbohydrates"`
	Protein       NutrientValue `json:"protein"`
	Fat           NutrientValue `json:"fat"`
	Sugars        NutrientValue `json:"sugars"`
	Sodium        NutrientValue `json:"sodium"`
}

type AnalyzedFoodItem struct {
	FoodName   string        `json:"foodName"`
	Confidence float64       `json:"confidence"`
	Quantity   string        `json:"quantity"`
	Calories   float64       `json:"calories"`
	Nutrients  FoodNutrients `json:"nutrients"`
}

type NutritionSummary struct {
	TotalCalories      float64       `json:"totalCalories"`
	TotalCarbohydrates NutrientValue `json:"totalCarbohydrates"`
	TotalProtein       NutrientValue `json:"totalProtein"`
	TotalFat           NutrientValue `json:"totalFat"`
}

type AnalysisData struct {
	Items   []AnalyzedFoodItem `json:"items"`
	Summary NutritionSummary   `json:"summary"`
}

// Wire envelopes. The webhook usually answers with an array of wrappers but
// has been seen returning a bare object; both are accepted.
type webhookOutput struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type webhookEnvelope struct {
	Output *webhookOutput `json:"output"`
}

// Shape (a): itemized breakdown. Summary is a pointer so a missing summary
// can be told apart from an all-zero one.
type itemizedData struct {
	Items   []AnalyzedFoodItem `json:"items"`
	Summary *NutritionSummary  `json:"summary"`
}

// Shape (b): free-text dish description. Only the fields the synthesis needs
// are decoded; the prose breakdowns are dropped (a documented approximation).
type detailedData struct {
	OverallDescription         string `json:"overall_description"`
	FoodTypeAndCharacteristics struct {
		FoodName string `json:"food_name"`
	} `json:"food_type_and_characteristics"`
	CalorieEstimation struct {
		TotalEstimatedCalories string `json:"total_estimated_calories"`
		Notes                  string `json:"notes"`
	} `json:"calorie_estimation"`
}

const descriptiveConfidence = 0.95

// NormalizeAnalysis reconciles the analyzer's two response shapes into one
// AnalysisData. The presence of overall_description selects the descriptive
// shape; itemized is assumed otherwise.
func NormalizeAnalysis(raw json.RawMessage) (*AnalysisData, error) {
	out, err := firstOutput(raw)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, ErrAnalysisFailed
	}

	var probe struct {
		OverallDescription string `json:"overall_description"`
	}
	if err := json.Unmarshal(out.Data, &probe); err != nil {
		return nil, ErrMalformedResponse
	}

	if probe.OverallDescription != "" {
		return normalizeDescriptive(out.Data)
	}
	return normalizeItemized(out.Data)
}

func firstOutput(raw json.RawMessage) (*webhookOutput, error) {
	var envs []webhookEnvelope
	if err := json.Unmarshal(raw, &envs); err == nil {
		if len(envs) == 0 || envs[0].Output == nil {
			return nil, ErrMalformedResponse
		}
		return envs[0].Output, nil
	}

	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Output != nil {
		return env.Output, nil
	}
	return nil, ErrMalformedResponse
}

func normalizeItemized(data json.RawMessage) (*AnalysisData, error) {
	var d itemizedData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, ErrMalformedResponse
	}
	if len(d.Items) == 0 || d.Summary == nil {
		return nil, ErrEmptyResult
	}
	// Pass-through: item list and summary are stored as the analyzer sent
	// them; the calorie sum is not recomputed against the summary.
	return &AnalysisData{Items: d.Items, Summary: *d.Summary}, nil
}

func normalizeDescriptive(data json.RawMessage) (*AnalysisData, error) {
	var d detailedData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, ErrMalformedResponse
	}
	if d.FoodTypeAndCharacteristics.FoodName == "" {
		return nil, ErrEmptyResult
	}

	// "<N> kcal ~ <M> kcal": take the low end of the estimate.
	calories := firstNumber(d.CalorieEstimation.TotalEstimatedCalories)

	zeroG := NutrientValue{Value: 0, Unit: "g"}
	item := AnalyzedFoodItem{
		FoodName:   d.FoodTypeAndCharacteristics.FoodName,
		Confidence: descriptiveConfidence,
		Quantity:   "1 serving",
		Calories:   calories,
		Nutrients: FoodNutrients{
			Carbohydrates: zeroG,
			Protein:       zeroG,
			Fat:           zeroG,
			Sugars:        zeroG,
			Sodium:        NutrientValue{Value: 0, Unit: "mg"},
		},
	}
	return &AnalysisData{
		Items: []AnalyzedFoodItem{item},
		Summary: NutritionSummary{
			TotalCalories:      calories,
			TotalCarbohydrates: zeroG,
			TotalProtein:       zeroG,
			TotalFat:           zeroG,
		},
	}, nil
}

// firstNumber returns the first numeric token in s, or 0 if none exists.
func firstNumber(s string) float64 {
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, "~,()")
		tok = strings.ReplaceAll(tok, ",", "")
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return v
		}
	}
	return 0
}
