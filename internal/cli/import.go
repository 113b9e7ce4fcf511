package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/recipe-match/internal/ingest"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import recipes from JSON",
		Long: `Import recipes from a file or stdin: a JSON array or one object per line.
Ids may be given as id or _id. Calories may be nested under nutrition, flattened,
a Food.com nutrition list, or a free-text label. Durations like "1 hrs 20 mins"
and free-text directions are parsed. Recipes failing validation are skipped and
reported.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open input", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := ingest.Read(in)
	if err != nil {
		exitErr("read recipes", err)
	}
	recipes, rejected := ingest.New(log).Prepare(raw)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), recipes)
	if err != nil {
		exitErr("import", err)
	}

	if textFormat() {
		fmt.Printf("imported %d, rejected %d\n", imported, len(rejected))
		return
	}
	printJSON(map[string]interface{}{
		"ok":       true,
		"imported": imported,
		"rejected": rejected,
	})
}
