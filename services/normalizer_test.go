package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemizedResponse = `[{
  "output": {
    "success": true,
    "data": {
      "items": [
        {
          "foodName": "Kimchi Fried Rice",
          "confidence": 0.91,
          "quantity": "1 plate",
          "calories": 620,
          "nutrients": {
            "carbohydrates": {"value": 88, "unit": "g"},
            "protein": {"value": 14, "unit": "g"},
            "fat": {"value": 22, "unit": "g"},
            "sugars": {"value": 6, "unit": "g"},
            "sodium": {"value": 1150, "unit": "mg"}
          }
        },
        {
          "foodName": "Fried Egg",
          "confidence": 0.97,
          "quantity": "1 item",
          "calories": 90,
          "nutrients": {
            "carbohydrates": {"value": 0.5, "unit": "g"},
            "protein": {"value": 6, "unit": "g"},
            "fat": {"value": 7, "unit": "g"},
            "sugars": {"value": 0.2, "unit": "g"},
            "sodium": {"value": 70, "unit": "mg"}
          }
        }
      ],
      "summary": {
        "totalCalories": 700,
        "totalCarbohydrates": {"value": 88.5, "unit": "g"},
        "totalProtein": {"value": 20, "unit": "g"},
        "totalFat": {"value": 29, "unit": "g"}
      }
    }
  }
}]`

const descriptiveResponse = `[{
  "output": {
    "success": true,
    "data": {
      "overall_description": "A bowl of instant ramen topped with egg yolk and green onion.",
      "main_ingredients_analysis": {
        "noodle_ingredients": "wheat noodles",
        "soup_ingredients": "spicy broth"
      },
      "nutrient_analysis": {
        "sodium": "very high",
        "carbohydrates": "high"
      },
      "overall_analysis": "High sodium meal.",
      "food_type_and_characteristics": {
        "food_name": "Instant Ramen with Egg",
        "characteristics": {"soup": "spicy"}
      },
      "calorie_estimation": {
        "total_estimated_calories": "550 kcal ~ 650 kcal",
        "notes": "depends on how much broth is consumed"
      }
    }
  }
}]`

func TestNormalizeItemized(t *testing.T) {
	got, err := NormalizeAnalysis(json.RawMessage(itemizedResponse))
	require.NoError(t, err)

	// item count matches the analyzer's, values passed through untouched
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Kimchi Fried Rice", got.Items[0].FoodName)
	assert.Equal(t, 0.91, got.Items[0].Confidence)
	assert.Equal(t, 1150.0, got.Items[0].Nutrients.Sodium.Value)
	assert.Equal(t, "mg", got.Items[0].Nutrients.Sodium.Unit)

	// summary is pass-through, not recomputed (620+90 != 700 on purpose)
	assert.Equal(t, 700.0, got.Summary.TotalCalories)
	assert.NotEqual(t, got.Items[0].Calories+got.Items[1].Calories, got.Summary.TotalCalories)
}

func TestNormalizeDescriptive(t *testing.T) {
	got, err := NormalizeAnalysis(json.RawMessage(descriptiveResponse))
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.Equal(t, "Instant Ramen with Egg", item.FoodName)
	assert.Equal(t, "1 serving", item.Quantity)
	assert.Equal(t, 0.95, item.Confidence)
	assert.Equal(t, 550.0, item.Calories) // first numeric token of the range

	// prose nutrient info is dropped: all five values are zero
	assert.Zero(t, item.Nutrients.Carbohydrates.Value)
	assert.Zero(t, item.Nutrients.Protein.Value)
	assert.Zero(t, item.Nutrients.Fat.Value)
	assert.Zero(t, item.Nutrients.Sugars.Value)
	assert.Zero(t, item.Nutrients.Sodium.Value)
	assert.Equal(t, "mg", item.Nutrients.Sodium.Unit)

	assert.Equal(t, 550.0, got.Summary.TotalCalories)
}

func TestNormalizeAnalysisFailed(t *testing.T) {
	raw := json.RawMessage(`[{"output": {"success": false, "data": {}}}]`)
	_, err := NormalizeAnalysis(raw)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestNormalizeEmptyItems(t *testing.T) {
	raw := json.RawMessage(`[{"output": {"success": true, "data": {"items": [], "summary": {"totalCalories": 0}}}}]`)
	_, err := NormalizeAnalysis(raw)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestNormalizeMissingSummary(t *testing.T) {
	raw := json.RawMessage(`[{"output": {"success": true, "data": {"items": [{"foodName": "Rice", "calories": 300}]}}}]`)
	_, err := NormalizeAnalysis(raw)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestNormalizeBareObjectEnvelope(t *testing.T) {
	// the webhook sometimes answers with a single wrapper instead of an array
	bare := itemizedResponse[1 : len(itemizedResponse)-1]
	got, err := NormalizeAnalysis(json.RawMessage(bare))
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestNormalizeUnrecognizableEnvelope(t *testing.T) {
	for _, raw := range []string{`[]`, `{"hello": "world"}`, `42`} {
		_, err := NormalizeAnalysis(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrMalformedResponse, "payload %s", raw)
	}
}

func TestFirstNumber(t *testing.T) {
	assert.Equal(t, 550.0, firstNumber("550 kcal ~ 650 kcal"))
	assert.Equal(t, 1200.0, firstNumber("approx. 1,200 kcal"))
	assert.Equal(t, 0.0, firstNumber("unknown"))
	assert.Equal(t, 0.0, firstNumber(""))
}
