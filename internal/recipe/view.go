package recipe

import (
	"encoding/json"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// View projects an extracted object onto RecipeData. Fields with unexpected
// types are dropped rather than reported.
func View(obj map[string]any) model.RecipeData {
	var r model.RecipeData
	if obj == nil {
		return r
	}

	r.RecipeName, _ = scalarText(obj["recipe_name"])
	r.ServingSize, _ = scalarText(obj["serving_size"])
	r.AdditionalNotes, _ = scalarText(obj["additional_notes"])

	if items, ok := obj["ingredients"].([]any); ok {
		r.HasIngredients = true
		for _, item := range items {
			if ing, ok := ingredient(item); ok {
				r.Ingredients = append(r.Ingredients, ing)
			}
		}
	}

	switch m := obj["method"].(type) {
	case []any:
		r.Method.Steps = []string{}
		for _, step := range m {
			if s, ok := scalarText(step); ok {
				r.Method.Steps = append(r.Method.Steps, s)
				continue
			}
			if b, err := json.Marshal(step); err == nil {
				r.Method.Steps = append(r.Method.Steps, string(b))
			}
		}
	default:
		r.Method.Text, _ = scalarText(m)
	}

	return r
}

func ingredient(v any) (model.Ingredient, bool) {
	switch x := v.(type) {
	case string:
		return model.Ingredient{Text: x, Plain: true}, true
	case map[string]any:
		name, _ := scalarText(x["item"])
		if name == "" {
			name, _ = scalarText(x["name"])
		}
		qty, _ := scalarText(x["quantity"])
		notes, _ := scalarText(x["notes"])
		return model.Ingredient{Name: name, Quantity: qty, Notes: notes}, true
	default:
		return model.Ingredient{}, false
	}
}

// scalarText renders strings and numbers; other JSON values are not text.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}
