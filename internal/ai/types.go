package ai

type WeeklySummaryOutput struct {
	Summary string `json:"summary" validate:"notblank,maxwords=200"`
}

type SmartInsight struct {
	Title      string `json:"title" validate:"notblank"`
	Finding    string `json:"finding" validate:"notblank"`
	Suggestion string `json:"suggestion" validate:"notblank"`
}

type SmartInsightsOutput struct {
	Insights []SmartInsight `json:"insights" validate:"min=2,max=3,dive"`
}

type Recipe struct {
	Title        string   `json:"title" validate:"notblank"`
	Description  string   `json:"description" validate:"notblank"`
	Ingredients  []string `json:"ingredients" validate:"min=1,dive,notblank"`
	Instructions []string `json:"instructions" validate:"min=1,dive,notblank"`
	PrepTime     string   `json:"prepTime" validate:"notblank"`
}

type RecipesOutput struct {
	Recipes []Recipe `json:"recipes" validate:"min=2,max=3,dive"`
}

// Gemini responseSchema (OpenAPI alt kümesi)
func stringSchema(desc string) map[string]any {
	return map[string]any{"type": "STRING", "description": desc}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	return map[string]any{"type": "OBJECT", "properties": props, "required": required}
}

func arraySchema(items map[string]any, desc string) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items, "description": desc}
}

var (
	weeklySummarySchema = objectSchema(map[string]any{
		"summary": stringSchema("A brief summary report highlighting key wastage trends for the week."),
	}, "summary")

	smartInsightsSchema = objectSchema(map[string]any{
		"insights": arraySchema(objectSchema(map[string]any{
			"title":      stringSchema("A short, catchy title for the insight."),
			"finding":    stringSchema("A detailed description of the pattern or issue identified in the data."),
			"suggestion": stringSchema("A concrete, actionable suggestion to address the finding."),
		}, "title", "finding", "suggestion"), "An array of 2-3 smart insights based on the data."),
	}, "insights")

	recipesSchema = objectSchema(map[string]any{
		"recipes": arraySchema(objectSchema(map[string]any{
			"title":        stringSchema("The title of the recipe."),
			"description":  stringSchema("A short, enticing description of the dish."),
			"ingredients":  arraySchema(stringSchema("ingredient"), "A list of ingredients required for the recipe."),
			"instructions": arraySchema(stringSchema("step"), "The step-by-step instructions for preparing the dish."),
			"prepTime":     stringSchema(`Estimated preparation time (e.g., "15 minutes").`),
		}, "title", "description", "ingredients", "instructions", "prepTime"), "An array of 2-3 recipe suggestions."),
	}, "recipes")
)
