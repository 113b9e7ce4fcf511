package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the filters each slot would be queried with",
		Long:  "Print the normalised constraints, calorie windows and per-slot filter documents, in relaxation order, without querying the store.",
		Run:   runExplain,
	}

	addAnswerFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runExplain(cmd *cobra.Command, args []string) {
	answers, err := readAnswers(cmd)
	if err != nil {
		exitErr("read answers", err)
	}

	ex := newEngine(nil, nil).Explain(answers)
	printJSON(ex)
}
