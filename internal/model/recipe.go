package model

// Ingredient is one entry of a recipe's ingredient list. Plain text entries
// only set Text.
type Ingredient struct {
	Text     string
	Name     string
	Quantity string
	Notes    string
	Plain    bool
}

// Method is either a single block of text or an ordered list of steps.
type Method struct {
	Text  string
	Steps []string
}

// Empty reports whether the method carries nothing to display. An empty step
// list still counts as present.
func (m Method) Empty() bool {
	return m.Text == "" && m.Steps == nil
}

// RecipeData is the typed view of the recipe object a model returned. It is
// derived for display and never stored.
type RecipeData struct {
	RecipeName      string
	ServingSize     string
	Ingredients     []Ingredient
	HasIngredients  bool
	Method          Method
	AdditionalNotes string
}

// Title returns the recipe name or a generic heading
func (r RecipeData) Title() string {
	if r.RecipeName == "" {
		return "Recipe"
	}
	return r.RecipeName
}
