package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipe names, descriptions and ingredients",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		exitErr("search", fmt.Errorf("query is required"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	recipes, err := s.Search(cmd.Context(), store.SearchParams{Query: query, Limit: limit})
	if err != nil {
		exitErr("search", err)
	}

	if textFormat() {
		writeRecipesText(os.Stdout, recipes)
		return
	}
	printJSON(recipes)
}
