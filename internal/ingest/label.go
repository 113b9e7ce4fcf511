package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/recipe-match/internal/model"
)

// Nutrition label patterns, e.g. "Calories 350 | Total Fat 12g | Sodium 300mg".
var (
	labelCalories     = regexp.MustCompile(`(?i)calories:?\s*(\d+(?:\.\d+)?)`)
	labelFat          = regexp.MustCompile(`(?i)total fat:?\s*(\d+(?:\.\d+)?)\s*g`)
	labelSaturatedFat = regexp.MustCompile(`(?i)saturated fat:?\s*(\d+(?:\.\d+)?)\s*g`)
	labelSugar        = regexp.MustCompile(`(?i)(?:total )?sugars?:?\s*(\d+(?:\.\d+)?)\s*g`)
	labelSodium       = regexp.MustCompile(`(?i)sodium:?\s*(\d+(?:\.\d+)?)\s*mg`)
	labelProtein      = regexp.MustCompile(`(?i)protein:?\s*(\d+(?:\.\d+)?)\s*g`)
	labelCarbohydrate = regexp.MustCompile(`(?i)total carbohydrates?:?\s*(\d+(?:\.\d+)?)\s*g`)

	durationHours   = regexp.MustCompile(`(?i)(\d+)\s*h(?:ou)?rs?`)
	durationMinutes = regexp.MustCompile(`(?i)(\d+)\s*min`)
)

// ParseNutritionLabel extracts what it can from a free-text nutrition label.
// Missing values are left at zero.
func ParseNutritionLabel(label string) model.Nutrition {
	return model.Nutrition{
		Calories:     firstFloat(labelCalories, label),
		Fat:          firstFloat(labelFat, label),
		SaturatedFat: firstFloat(labelSaturatedFat, label),
		Sugar:        firstFloat(labelSugar, label),
		Sodium:       firstFloat(labelSodium, label),
		Protein:      firstFloat(labelProtein, label),
		Carbohydrate: firstFloat(labelCarbohydrate, label),
	}
}

// ParseDuration converts strings like "1 hrs 20 mins" to minutes. ok is false
// when nothing could be read or the total is zero.
func ParseDuration(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	if m := durationHours.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		minutes += h * 60
	}
	if m := durationMinutes.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		minutes += n
	}
	return minutes, minutes > 0
}

func firstFloat(re *regexp.Regexp, s string) float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}
