package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Run:   runStats,
	}

	cmd.Flags().IntP("top", "n", 0, "Only show the N most common tags (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	top, _ := cmd.Flags().GetInt("top")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}
	if top > 0 && len(stats.Tags) > top {
		stats.Tags = stats.Tags[:top]
	}

	if !textFormat() {
		printJSON(stats)
		return
	}
	fmt.Printf("backend:  %s\n", stats.Backend)
	if stats.DBPath != "" {
		fmt.Printf("path:     %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
	}
	fmt.Printf("recipes:  %d\n", stats.TotalRecipes)
	fmt.Printf("minutes:  %.1f avg\n", stats.AvgMinutes)
	fmt.Printf("calories: %.1f avg\n", stats.AvgCalories)
	for _, t := range stats.Tags {
		fmt.Printf("  %-20s %d\n", t.Tag, t.Count)
	}
}
