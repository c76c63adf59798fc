// Package model - Model-Interface und Architektur-Registry
//
// Dieses Paket definiert die Faehigkeit, die ein trainiertes
// Seq2Seq-Modell der Decode-Schleife anbieten muss, sowie eine
// Registry fuer konkrete Architekturen.
//
// Hauptkomponenten:
// - Model: Interface fuer den Encoder/Decoder-Forward-Pass
// - Register: Registriert Architektur-Konstruktoren
// - New: Laedt ein Modell aus einem Checkpoint
package model

import (
	"errors"
	"fmt"

	"github.com/7blacky7/uebersetzer/checkpoint"
	"github.com/7blacky7/uebersetzer/ml"
)

var ErrUnsupportedModel = errors.New("model not supported")

// Model is the capability a trained network offers the decode loop: one
// forward pass over the full encoder input and the decoder sequence so far.
//
// Inputs are a single-sequence batch of encoder ids, the decoder ids
// accumulated so far, a training-mode flag and the three attention masks
// from ml.BuildMasks. The returned logits cover every decoder position with
// shape (1, len(decIDs), targetVocab+2); attention weights are keyed by
// layer/block name and are for inspection only, never fed back.
type Model interface {
	Forward(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor) (*ml.Tensor, *AttentionWeights, error)
}

// models speichert registrierte Architektur-Konstruktoren
var models = make(map[string]func(*checkpoint.Checkpoint) (Model, error))

// Register registriert einen Konstruktor fuer eine Architektur.
// Mehrfach-Registrierung derselben Architektur ist ein Programmierfehler.
func Register(name string, f func(*checkpoint.Checkpoint) (Model, error)) {
	if _, ok := models[name]; ok {
		panic("model: model already registered")
	}

	models[name] = f
}

// New loads a checkpoint and constructs the architecture named in its
// metadata. Unknown architectures yield ErrUnsupportedModel.
func New(path string) (Model, error) {
	c, err := checkpoint.Read(path)
	if err != nil {
		return nil, err
	}

	return FromCheckpoint(c)
}

// FromCheckpoint constructs a model from an already loaded checkpoint.
func FromCheckpoint(c *checkpoint.Checkpoint) (Model, error) {
	f, ok := models[c.Meta.Architecture]
	if !ok {
		return nil, fmt.Errorf("%w: architecture %q", ErrUnsupportedModel, c.Meta.Architecture)
	}

	m, err := f(c)
	if err != nil {
		return nil, err
	}

	return m, nil
}
