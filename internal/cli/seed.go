package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/sample"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with generated sample recipes",
		Run:   runSeed,
	}

	cmd.Flags().IntP("count", "n", 200, "Number of recipes to generate")
	cmd.Flags().Int64("seed", 1, "Generator seed")

	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	if count <= 0 {
		exitErr("seed", fmt.Errorf("count must be positive, got %d", count))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), sample.New(seed).Corpus(count))
	if err != nil {
		exitErr("seed", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
