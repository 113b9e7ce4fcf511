package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/ingest"
	"github.com/rcliao/recipe-match/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put [directions]",
		Short: "Store a single recipe",
		Long:  "Store a single recipe. Directions can be a positional arg or piped via stdin and are split into steps.",
		Run:   runPut,
	}

	cmd.Flags().String("id", "", "Recipe id (default: generated)")
	cmd.Flags().String("name", "", "Recipe name (required)")
	cmd.Flags().String("time", "", `Prep time in minutes or as text, e.g. "1 hrs 20 mins"`)
	cmd.Flags().Float64("calories", 0, "Calories per serving")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringP("ingredients", "i", "", "Comma-separated ingredients")
	cmd.Flags().String("description", "", "Short description")

	cmd.MarkFlagRequired("name")

	RootCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	timeStr, _ := cmd.Flags().GetString("time")
	calories, _ := cmd.Flags().GetFloat64("calories")
	tagsStr, _ := cmd.Flags().GetString("tags")
	ingredientsStr, _ := cmd.Flags().GetString("ingredients")
	description, _ := cmd.Flags().GetString("description")

	// Directions: positional arg first, then check stdin
	var directions string
	if len(args) > 0 {
		directions = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			directions = string(b)
		}
	}

	prepared, rejected := ingest.New(log).Prepare([]model.Recipe{{
		ID:          id,
		Name:        name,
		TotalTime:   timeStr,
		Description: description,
		Directions:  directions,
		Tags:        splitList(tagsStr),
		Ingredients: splitList(ingredientsStr),
		Nutrition:   model.Nutrition{Calories: calories},
	}})
	if len(rejected) > 0 {
		exitErr("put", fmt.Errorf("invalid recipe: %s", rejected[0].Err))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	r, err := s.Put(cmd.Context(), prepared[0])
	if err != nil {
		exitErr("put", err)
	}

	fmt.Printf(`{"ok":true,"id":%q,"name":%q}`+"\n", r.ID, r.Name)
}
