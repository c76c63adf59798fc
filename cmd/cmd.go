// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs, versionHandler, checkServerHeartbeat
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/7blacky7/uebersetzer/api"
	"github.com/7blacky7/uebersetzer/envconfig"
	"github.com/7blacky7/uebersetzer/version"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// versionHandler - Zeigt die Version an
func versionHandler(cmd *cobra.Command, _ []string) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return
	}

	serverVersion, err := client.Version(cmd.Context())
	if err != nil {
		fmt.Println("Warning: could not connect to a running uebersetzer instance")
	}

	if serverVersion != "" {
		fmt.Printf("uebersetzer version is %s\n", serverVersion)
	}

	if serverVersion != version.Version {
		fmt.Printf("Warning: client version is %s\n", version.Version)
	}
}

// checkServerHeartbeat - Prueft ob der Server laeuft
func checkServerHeartbeat(cmd *cobra.Command, _ []string) error {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return err
	}

	if err := client.Heartbeat(cmd.Context()); err != nil {
		return fmt.Errorf("could not connect to a running uebersetzer instance at %s: %w", envconfig.Host(), err)
	}

	return nil
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "uebersetzer",
		Short:         "Neural machine translation",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	// Commands erstellen
	serveCmd := newServeCmd()
	translateCmd := newTranslateCmd()
	tokenizeCmd := newTokenizeCmd()
	historyCmd := newHistoryCmd()
	evalCmd := newEvalCmd()
	scheduleCmd := newScheduleCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	envs := []envconfig.EnvVar{envVars["UEBERSETZER_HOST"]}

	for _, cmd := range []*cobra.Command{
		translateCmd,
		tokenizeCmd,
		historyCmd,
		evalCmd,
		serveCmd,
	} {
		switch cmd {
		case translateCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{envVars["UEBERSETZER_HOST"], envVars["UEBERSETZER_MAX_LENGTH"]})
		case serveCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{
				envVars["UEBERSETZER_DEBUG"],
				envVars["UEBERSETZER_HOST"],
				envVars["UEBERSETZER_MAX_LENGTH"],
				envVars["UEBERSETZER_MODELS"],
				envVars["UEBERSETZER_NOHISTORY"],
				envVars["UEBERSETZER_ORIGINS"],
			})
		default:
			appendEnvDocs(cmd, envs)
		}
	}

	rootCmd.AddCommand(
		serveCmd,
		translateCmd,
		tokenizeCmd,
		historyCmd,
		evalCmd,
		scheduleCmd,
	)

	return rootCmd
}
