package recommend

import "github.com/rcliao/recipe-match/internal/model"

// assemble keys the picked recipes by every requested meal, including meals
// that ended up empty, and shuffles each list.
func assemble(meals []string, picked map[string][]model.Recipe, rng Rand) map[string][]model.Recipe {
	out := make(map[string][]model.Recipe, len(meals))
	for _, meal := range meals {
		list := append([]model.Recipe{}, picked[meal]...)
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		out[meal] = list
	}
	return out
}
