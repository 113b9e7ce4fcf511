package preference

import "strconv"

// Meal names.
const (
	Breakfast = "breakfast"
	Brunch    = "brunch"
	Lunch     = "lunch"
	Dinner    = "dinner"
)

// DefaultDish is used when no dish type is selected.
const DefaultDish = "main-dish"

// DefaultMeals is used when no meal type is selected.
var DefaultMeals = []string{Breakfast, Lunch, Dinner}

// BeginnerTags mark recipes suitable for beginner cooks.
var BeginnerTags = []string{"easy", "beginner-cook"}

const (
	dietNoRestriction = "10"
	cuisineAny        = "15"
	calorieNone       = "7"
	timeNone          = "6"
	skillBeginner     = "1"
)

var dietInclusions = map[string]string{
	"1": "vegetarian",
	"2": "vegan",
	"3": "dietary",
	"4": "gluten-free",
	"5": "kosher",
	"6": "lactose-free",
}

var allergyMarkers = map[string]string{
	"7": "eggs_dairy",
	"8": "seafood",
	"9": "nuts",
}

// AllergyIngredients expands an allergy marker into ingredient substrings.
var AllergyIngredients = map[string][]string{
	"eggs_dairy": {"egg", "milk", "cheese", "cream", "butter", "yogurt"},
	"seafood":    {"fish", "shrimp", "crab", "lobster", "salmon", "tuna", "clam", "oyster", "mussel", "scallop", "squid", "anchov"},
	"nuts":       {"almond", "peanut", "walnut", "pecan", "cashew", "pistachio", "hazelnut", "macadamia"},
}

var allergyAliases = map[string]string{
	"dairy":     "eggs_dairy",
	"eggs":      "eggs_dairy",
	"shellfish": "seafood",
	"tree-nuts": "nuts",
}

var cuisines = map[string]string{
	"1":  "north-american",
	"2":  "european",
	"3":  "asian",
	"4":  "italian",
	"5":  "mexican",
	"6":  "canadian",
	"7":  "australian",
	"8":  "midwestern",
	"9":  "african",
	"10": "indian",
	"11": "greek",
	"12": "french",
	"13": "middle-eastern",
	"14": "chinese",
}

var meals = map[string]string{
	"1": Breakfast,
	"2": Brunch,
	"3": Lunch,
	"4": Dinner,
}

var dishes = map[string]string{
	"1": "main-dish",
	"2": "side-dish",
	"3": "dessert",
	"4": "appetizer",
	"5": "soup",
	"6": "beverage",
}

// dishAliases maps spellings seen in older corpora to the canonical dish tag.
var dishAliases = map[string]string{
	"side-dishes": "side-dish",
	"desserts":    "dessert",
	"appetizers":  "appetizer",
	"soups-stews": "soup",
	"soups":       "soup",
	"beverages":   "beverage",
}

// Band is an inclusive numeric range. Max 0 means no upper bound.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max,omitempty"`
}

// Open reports whether the band has no upper bound.
func (b Band) Open() bool { return b.Max == 0 }

var calorieBands = map[string]Band{
	"1": {1200, 1400},
	"2": {1400, 1600},
	"3": {1600, 1800},
	"4": {1800, 2200},
	"5": {2200, 2500},
	"6": {2500, 3000},
}

var timeBands = map[string]Band{
	"1": {0, 30},
	"2": {30, 60},
	"3": {60, 90},
	"4": {90, 120},
	"5": {120, 0},
}

// HasDishes reports whether a meal is filled per dish type rather than with a
// single recipe.
func HasDishes(meal string) bool {
	return meal == Lunch || meal == Dinner
}

// Cuisines returns the cuisine tags in code order.
func Cuisines() []string {
	out := make([]string, 0, len(cuisines))
	for i := 1; i <= len(cuisines); i++ {
		out = append(out, cuisines[strconv.Itoa(i)])
	}
	return out
}
