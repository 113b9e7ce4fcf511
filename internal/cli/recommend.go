package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/metrics"
	"github.com/rcliao/recipe-match/internal/preference"
	"github.com/rcliao/recipe-match/internal/recommend"
	"github.com/rcliao/recipe-match/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend recipes for the given preferences",
		Long: `Recommend one recipe per slot. Breakfast and brunch get one recipe each;
lunch and dinner get one per dish type. Answers are numeric codes or tag names.

  diet      1 vegetarian  2 vegan  3 dietary  4 gluten-free  5 kosher  6 lactose-free
            7 eggs_dairy  8 seafood  9 nuts (allergies)  10 no restriction
  calories  1 1200-1400  2 1400-1600  3 1600-1800  4 1800-2200  5 2200-2500  6 2500-3000  7 none
  time      1 <30  2 30-60  3 60-90  4 90-120  5 >120 minutes  6 none
  cuisine   1-14 (e.g. 4 italian, 10 indian)  15 any
  skill     1 beginner
  meals     1 breakfast  2 brunch  3 lunch  4 dinner
  dishes    1 main-dish  2 side-dish  3 dessert  4 appetizer  5 soup  6 beverage`,
		Run: runRecommend,
	}

	addAnswerFlags(cmd)
	cmd.Flags().String("metrics-out", "", "Write Prometheus text metrics to this file")

	RootCmd.AddCommand(cmd)
}

func addAnswerFlags(cmd *cobra.Command) {
	cmd.Flags().String("answers", "", "JSON file with answers; flags override its fields")
	cmd.Flags().String("diet", "", "Diet and allergy selections (comma-separated)")
	cmd.Flags().String("calories", "", "Daily calorie band")
	cmd.Flags().String("time", "", "Prep time band")
	cmd.Flags().String("cuisine", "", "Cuisines (comma-separated)")
	cmd.Flags().String("skill", "", "Skill level")
	cmd.Flags().String("meals", "", "Meals (comma-separated)")
	cmd.Flags().String("dishes", "", "Dish types for lunch and dinner (comma-separated)")
}

func readAnswers(cmd *cobra.Command) (preference.Answers, error) {
	var a preference.Answers

	if path, _ := cmd.Flags().GetString("answers"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return a, err
		}
		if err := json.Unmarshal(data, &a); err != nil {
			return a, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	lists := map[string]*[]string{"diet": &a.Diet, "cuisine": &a.Cuisine, "meals": &a.Meals, "dishes": &a.Dishes}
	for name, dst := range lists {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = splitList(v)
		}
	}
	scalars := map[string]*string{"calories": &a.Calories, "time": &a.Time, "skill": &a.Skill}
	for name, dst := range scalars {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return a, nil
}

func newEngine(coll store.Collection, rec recommend.Recorder) *recommend.Engine {
	opts := recommend.DefaultOptions()
	opts.CandidateLimit = cfg.Engine.CandidateLimit
	opts.IngredientScreening = cfg.Engine.IngredientScreening
	opts.DegradedFallback = cfg.Engine.DegradedFallback

	return recommend.NewEngine(coll, recommend.Config{
		Options: opts,
		Rand:    newRand(),
		Logger:  log,
		Metrics: rec,
	})
}

func runRecommend(cmd *cobra.Command, args []string) {
	answers, err := readAnswers(cmd)
	if err != nil {
		exitErr("read answers", err)
	}
	metricsOut, _ := cmd.Flags().GetString("metrics-out")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec := metrics.New()
	plan, err := newEngine(s, rec).Recommend(cmd.Context(), answers)
	if err != nil && !errors.Is(err, recommend.ErrCorpusUnavailable) {
		exitErr("recommend", err)
	}

	if metricsOut != "" {
		if werr := writeMetrics(rec, metricsOut); werr != nil {
			exitErr("write metrics", werr)
		}
	}

	if textFormat() {
		writePlanText(os.Stdout, plan)
	} else {
		printJSON(plan)
	}

	if err != nil {
		exitErr("recommend", err)
	}
}

func writeMetrics(rec *metrics.Recorder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
