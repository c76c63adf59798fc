// cmd_translate.go - Uebersetzungs-Command mit interaktivem Modus
// Hauptfunktionen: newTranslateCmd, translateHandler, interactiveTranslate
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/7blacky7/uebersetzer/api"
)

func translateHandler(cmd *cobra.Command, args []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	plotLayer, _ := cmd.Flags().GetString("plot")
	maxLength, _ := cmd.Flags().GetInt("max-length")

	if len(args) == 0 {
		return interactiveTranslate(cmd, client, plotLayer, maxLength)
	}

	resp, err := client.Translate(cmd.Context(), &api.TranslateRequest{
		Text:      strings.Join(args, " "),
		MaxLength: maxLength,
		Plot:      plotLayer,
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Result)
	return nil
}

// interactiveTranslate liest Saetze zeilenweise von stdin
func interactiveTranslate(cmd *cobra.Command, client *api.Client, plotLayer string, maxLength int) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("Enter a sentence per line, Ctrl-D to exit.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print(">>> ")
		}

		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		resp, err := client.Translate(cmd.Context(), &api.TranslateRequest{
			Text:      text,
			MaxLength: maxLength,
			Plot:      plotLayer,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			continue
		}

		fmt.Println(resp.Result)
	}

	return scanner.Err()
}

// newTranslateCmd - Erstellt den translate Command
func newTranslateCmd() *cobra.Command {
	translateCmd := &cobra.Command{
		Use:     "translate [SENTENCE...]",
		Short:   "Translate a sentence, or start an interactive session",
		PreRunE: checkServerHeartbeat,
		RunE:    translateHandler,
	}
	translateCmd.Flags().String("plot", "", "Render the attention weights of a decoder layer, e.g. decoder_layer4_block2")
	translateCmd.Flags().Int("max-length", 0, "Maximum number of generated tokens (0 uses the server default)")
	return translateCmd
}
