package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recipes as JSON",
		Long:  "Export every recipe as a JSON array, or one object per line with --lines. The output can be fed back to import.",
		Run:   runExport,
	}

	cmd.Flags().Bool("lines", false, "Newline-delimited JSON")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	lines, _ := cmd.Flags().GetBool("lines")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	recipes, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	if !lines {
		printJSON(recipes)
		return
	}
	for _, r := range recipes {
		b, _ := json.Marshal(r)
		fmt.Println(string(b))
	}
}
