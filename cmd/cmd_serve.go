// cmd_serve.go - Server-Start
// Hauptfunktionen: RunServer, loadArtifacts, newServeCmd
package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/7blacky7/uebersetzer/config"
	"github.com/7blacky7/uebersetzer/envconfig"
	"github.com/7blacky7/uebersetzer/model"
	"github.com/7blacky7/uebersetzer/server"
	"github.com/7blacky7/uebersetzer/tokenizer"
)

// loadArtifacts laedt Checkpoint und Tokenizer
// Ohne Konfigurationsdatei gelten die Standard-Pfade unter UEBERSETZER_MODELS
func loadArtifacts(configPath string) (model.Model, tokenizer.TextProcessor, tokenizer.TextProcessor, error) {
	checkpointPath := filepath.Join(envconfig.Models(), "ckpt-best.bin")
	sourcePath := filepath.Join(envconfig.Models(), "tokenizer_source.json")
	targetPath := filepath.Join(envconfig.Models(), "tokenizer_target.json")

	if configPath != "" {
		cfg, err := config.LoadEval(configPath)
		if err != nil {
			return nil, nil, nil, err
		}
		checkpointPath = cfg.CheckpointPathBest
		sourcePath = cfg.TokenizerSourcePath
		targetPath = cfg.TokenizerTargetPath
	}

	m, err := model.New(checkpointPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load checkpoint %s: %w", checkpointPath, err)
	}

	source, err := tokenizer.Load(sourcePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load source tokenizer: %w", err)
	}

	target, err := tokenizer.Load(targetPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load target tokenizer: %w", err)
	}

	return m, source, target, nil
}

// RunServer - Startet den Uebersetzungs-Server
func RunServer(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	m, source, target, err := loadArtifacts(configPath)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", envconfig.Host().Host)
	if err != nil {
		return err
	}

	err = server.Serve(ln, m, source, target)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// newServeCmd - Erstellt den serve Command
func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the translation server",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
	serveCmd.Flags().String("config", "", "Path to an evaluation configuration file")
	return serveCmd
}
