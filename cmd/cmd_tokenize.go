// cmd_tokenize.go - Tokenize- und History-Commands
// Hauptfunktionen: newTokenizeCmd, newHistoryCmd
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/7blacky7/uebersetzer/api"
)

func tokenizeHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	resp, err := client.Tokenize(cmd.Context(), &api.TokenizeRequest{Text: strings.Join(args, " ")})
	if err != nil {
		return err
	}

	fmt.Println(resp.Tokens)
	return nil
}

// newTokenizeCmd - Erstellt den tokenize Command
func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tokenize SENTENCE...",
		Short:   "Show the subword ids of a sentence",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: checkServerHeartbeat,
		RunE:    tokenizeHandler,
	}
}

func historyHandler(cmd *cobra.Command, _ []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := client.History(cmd.Context(), limit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"SOURCE", "RESULT", "DURATION", "CREATED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for _, t := range resp.Translations {
		table.Append([]string{
			t.Source,
			t.Result,
			(time.Duration(t.Duration) * time.Millisecond).String(),
			t.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()

	return nil
}

// newHistoryCmd - Erstellt den history Command
func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "List recent translations",
		Args:    cobra.ExactArgs(0),
		PreRunE: checkServerHeartbeat,
		RunE:    historyHandler,
	}
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to list (0 lists everything)")
	return historyCmd
}
