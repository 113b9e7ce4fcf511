package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Run:   runList,
	}

	cmd.Flags().StringP("tags", "t", "", "Filter by tags, all must match (comma-separated)")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output id and name")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	tagsStr, _ := cmd.Flags().GetString("tags")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	recipes, err := s.List(cmd.Context(), store.ListParams{
		Tags:  splitList(tagsStr),
		Limit: limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	switch {
	case idsOnly:
		for _, r := range recipes {
			fmt.Printf("%s\t%s\n", r.ID, r.Name)
		}
	case textFormat():
		writeRecipesText(os.Stdout, recipes)
	default:
		printJSON(recipes)
	}
}
