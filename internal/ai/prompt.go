package ai

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Template: {{name}} yer tutuculu prompt metni
type Template struct {
	Name     string
	Text     string
	Required []string
}

// Render: zorunlu değişken eksik veya boşsa hata; bilinmeyen yer tutucu boş kalır
func (t Template) Render(vars map[string]string) (string, error) {
	for _, name := range t.Required {
		if strings.TrimSpace(vars[name]) == "" {
			return "", fmt.Errorf("prompt %s: missing required variable %q", t.Name, name)
		}
	}
	return placeholder.ReplaceAllStringFunc(t.Text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		return vars[name]
	}), nil
}

var weeklySummaryPrompt = Template{
	Name:     "weekly_summary",
	Required: []string{"wastageData"},
	Text: `You are an expert in analyzing food wastage data and generating concise weekly summary reports.

Analyze the following weekly wastage data and generate a brief summary report highlighting key trends and issues.

Data: {{wastageData}}

Focus on identifying:
- Items with the highest wastage quantities.
- Most common reasons for wastage.
- Any significant changes or patterns compared to previous weeks (if mentioned in the data).

If cost data is included, start with the total financial impact of the week's waste.
The summary should be no more than 200 words and provide actionable insights for reducing wastage.
Return a JSON object with a single "summary" string field.`,
}

var smartInsightsPrompt = Template{
	Name:     "smart_insights",
	Required: []string{"wastageData"},
	Text: `You are an expert restaurant operations consultant specializing in food waste reduction.
Analyze the following JSON data representing food wastage over the past week.

Data: {{wastageData}}

Your task is to identify 2-3 key patterns, problems, or opportunities within this data. For each one, provide a short title, a clear finding and an actionable suggestion.

Prioritize insights that have a significant financial impact. If cost data is included, use it to frame your findings and suggestions in terms of monetary savings.

Example insights:
- Finding: "There's a consistent spike in 'Bread' spoilage on Mondays, costing an estimated $25 this week." Suggestion: "Review your weekend bread inventory and adjust Monday's order down by 15% to see if that reduces spoilage and saves cost."
- Finding: "Preparation Waste for 'Onions' is unusually high." Suggestion: "Conduct a brief training session with kitchen staff on proper onion dicing techniques to maximize yield."
- Finding: "Expired avocados accounted for over $50 in waste." Suggestion: "Switch to a supplier with a more frequent delivery schedule for avocados to minimize spoilage."

Focus on practical, easy-to-implement advice that leads to cost savings. Return a JSON object with an "insights" array.`,
}

var recipesPrompt = Template{
	Name:     "recipe_suggestions",
	Required: []string{"ingredients"},
	Text: `You are a creative chef who specializes in minimizing food waste by creating delicious recipes from leftovers.

A user has the following ingredients: {{ingredients}}

Please generate 2-3 distinct and creative recipe ideas based on these ingredients. For each recipe, provide a title, a short description, a list of ingredients (you can include common pantry staples not in the original list if necessary), step-by-step instructions, and an estimated prep time (e.g. "15 minutes").

Focus on recipes that are practical for a restaurant setting, potentially as staff meals or special menu items. Return a JSON object with a "recipes" array.`,
}
