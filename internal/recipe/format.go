package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// IngredientLine renders an ingredient as "name - quantity, notes".
func IngredientLine(ing model.Ingredient) string {
	if ing.Plain {
		return ing.Text
	}
	var b strings.Builder
	b.WriteString(ing.Name)
	if ing.Quantity != "" {
		b.WriteString(" - ")
		b.WriteString(ing.Quantity)
	}
	if ing.Notes != "" {
		b.WriteString(", ")
		b.WriteString(ing.Notes)
	}
	return b.String()
}

// FormatText writes a human readable recipe view to w
func FormatText(w io.Writer, r model.RecipeData) error {
	var b strings.Builder

	fmt.Fprintln(&b, r.Title())
	if r.ServingSize != "" {
		fmt.Fprintf(&b, "Serving Size: %s\n", r.ServingSize)
	}
	if r.HasIngredients {
		fmt.Fprintln(&b, "Ingredients:")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", IngredientLine(ing))
		}
	}
	if !r.Method.Empty() {
		fmt.Fprintln(&b, "Method:")
		if r.Method.Steps != nil {
			for i, step := range r.Method.Steps {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
			}
		} else {
			fmt.Fprintf(&b, "  1. %s\n", r.Method.Text)
		}
	}
	if r.AdditionalNotes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", r.AdditionalNotes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// PrettyJSON encodes v with two-space indentation and without HTML escaping.
func PrettyJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
