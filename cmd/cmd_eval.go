// cmd_eval.go - Korpus-Evaluation gegen den laufenden Server
// Hauptfunktionen: newEvalCmd, evalHandler
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/7blacky7/uebersetzer/api"
	"github.com/7blacky7/uebersetzer/eval"
)

func evalHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	worst, _ := cmd.Flags().GetInt("worst")

	pairs, err := eval.LoadPairs(args[0], args[1], limit)
	if err != nil {
		return err
	}

	result, err := eval.Run(cmd.Context(), client, pairs, concurrency)
	if err != nil {
		return err
	}

	result.Report(os.Stdout)

	if worst > 0 {
		fmt.Printf("\nWorst %d translations:\n", worst)
		for _, s := range result.Worst(worst) {
			fmt.Printf("  %.3f  %q -> %q (expected %q)\n", s.Similarity, s.Source, s.Result, s.Reference)
		}
	}

	return nil
}

// newEvalCmd - Erstellt den eval Command
func newEvalCmd() *cobra.Command {
	evalCmd := &cobra.Command{
		Use:     "eval SOURCE_FILE REFERENCE_FILE",
		Short:   "Evaluate translation quality on a parallel corpus",
		Args:    cobra.ExactArgs(2),
		PreRunE: checkServerHeartbeat,
		RunE:    evalHandler,
	}
	evalCmd.Flags().Int("limit", 0, "Evaluate at most this many sentence pairs (0 evaluates everything)")
	evalCmd.Flags().Int("concurrency", 4, "Number of concurrent translation requests")
	evalCmd.Flags().Int("worst", 0, "Additionally list the lowest scoring translations")
	return evalCmd
}
