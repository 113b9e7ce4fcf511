package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/recipe-match/internal/model"
	"github.com/rcliao/recipe-match/internal/recommend"
)

// featureTags are shown in text output when a recipe carries them.
var featureTags = []string{"vegetarian", "vegan", "gluten-free", "easy", "beginner-cook", "low-calorie", "high-protein"}

func writePlanText(w io.Writer, plan *recommend.Plan) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "RECIPE RECOMMENDATIONS")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	for _, meal := range plan.Meals {
		recipes := plan.Recipes[meal]
		fmt.Fprintf(w, "\n%s\n%s\n", strings.ToUpper(meal), strings.Repeat("-", 30))
		if len(recipes) == 0 {
			fmt.Fprintln(w, "  (no matching recipe)")
			continue
		}
		for i, r := range recipes {
			writeRecipeText(w, i+1, r)
		}
	}

	if len(plan.Warnings) > 0 {
		fmt.Fprintln(w, "\nWARNINGS")
		for _, warn := range plan.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
}

func writeRecipeText(w io.Writer, n int, r model.Recipe) {
	fmt.Fprintf(w, "\n%d. %s [%s]\n", n, r.Name, r.ID)
	fmt.Fprintf(w, "   Time: %d minutes\n", r.Minutes)
	fmt.Fprintf(w, "   Calories: %.0f\n", r.Calories())

	if len(r.Ingredients) > 0 {
		preview := strings.Join(r.Ingredients[:min(3, len(r.Ingredients))], ", ")
		if len(r.Ingredients) > 3 {
			preview += "..."
		}
		fmt.Fprintf(w, "   Ingredients: %s\n", preview)
	}

	var features []string
	for _, t := range featureTags {
		if r.HasTag(t) {
			features = append(features, t)
		}
	}
	if len(features) > 0 {
		fmt.Fprintf(w, "   Key Features: %s\n", strings.Join(features, ", "))
	}
}

func writeRecipesText(w io.Writer, recipes []model.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "(no recipes)")
		return
	}
	for i, r := range recipes {
		writeRecipeText(w, i+1, r)
	}
}
