// Package config - Strukturierte Datei-Konfiguration fuer Training und Evaluation
//
// Wird beim Prozessstart konsumiert, nicht von der Decode-Schleife selbst.
// Environment-Variablen (Laufzeit-Konfiguration) liegen in envconfig.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Shape describes the model architecture parameters shared by training
// and evaluation.
type Shape struct {
	NumLayers   int     `json:"num_layers"`
	DModel      int     `json:"d_model"`
	DFF         int     `json:"dff"`
	NumHeads    int     `json:"num_heads"`
	DropoutRate float32 `json:"dropout_rate"`
}

func (s Shape) validate() error {
	switch {
	case s.NumLayers <= 0:
		return fmt.Errorf("%w: num_layers must be positive", ErrInvalidConfig)
	case s.DModel <= 0:
		return fmt.Errorf("%w: d_model must be positive", ErrInvalidConfig)
	case s.NumHeads <= 0:
		return fmt.Errorf("%w: num_heads must be positive", ErrInvalidConfig)
	case s.DModel%s.NumHeads != 0:
		return fmt.Errorf("%w: d_model must be divisible by num_heads", ErrInvalidConfig)
	case s.DropoutRate < 0 || s.DropoutRate >= 1:
		return fmt.Errorf("%w: dropout_rate must be in [0, 1)", ErrInvalidConfig)
	}
	return nil
}

// Eval configures translation/evaluation runs.
type Eval struct {
	Shape

	Debug                bool   `json:"debug"`
	NumExamples          int    `json:"num_examples"`
	CheckpointPathBest   string `json:"checkpoint_path_best"`
	TokenizerSourcePath  string `json:"tokenizer_source_path"`
	TokenizerTargetPath  string `json:"tokenizer_target_path"`
	TranslationBatchSize int    `json:"translation_batch_size"`
}

// Train configures training runs, including corpus paths and target
// vocabulary sizes for tokenizer fitting.
type Train struct {
	Shape

	NumExamples int `json:"num_examples"`
	BatchSize   int `json:"batch_size"`
	Epochs      int `json:"epochs"`

	SourceUnaligned       string `json:"source_unaligned"`
	SourceTraining        string `json:"source_training"`
	SourceValidation      string `json:"source_validation"`
	SourceTargetVocabSize int    `json:"source_target_vocab_size"`

	TargetUnaligned       string `json:"target_unaligned"`
	TargetTraining        string `json:"target_training"`
	TargetValidation      string `json:"target_validation"`
	TargetTargetVocabSize int    `json:"target_target_vocab_size"`

	CheckpointPath      string `json:"checkpoint_path"`
	CheckpointPathBest  string `json:"checkpoint_path_best"`
	TokenizerSourcePath string `json:"tokenizer_source_path"`
	TokenizerTargetPath string `json:"tokenizer_target_path"`
}

// LoadEval reads and validates an evaluation configuration.
func LoadEval(path string) (*Eval, error) {
	var cfg Eval
	if err := load(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Shape.validate(); err != nil {
		return nil, err
	}
	if cfg.CheckpointPathBest == "" {
		return nil, fmt.Errorf("%w: checkpoint_path_best is required", ErrInvalidConfig)
	}
	if cfg.TokenizerSourcePath == "" || cfg.TokenizerTargetPath == "" {
		return nil, fmt.Errorf("%w: tokenizer paths are required", ErrInvalidConfig)
	}

	return &cfg, nil
}

// LoadTrain reads and validates a training configuration.
func LoadTrain(path string) (*Train, error) {
	var cfg Train
	if err := load(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Shape.validate(); err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 || cfg.Epochs <= 0 {
		return nil, fmt.Errorf("%w: batch_size and epochs must be positive", ErrInvalidConfig)
	}
	if cfg.CheckpointPath == "" || cfg.CheckpointPathBest == "" {
		return nil, fmt.Errorf("%w: checkpoint paths are required", ErrInvalidConfig)
	}

	return &cfg, nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return nil
}
