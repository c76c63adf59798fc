// manager.go - Verwaltung von aktuellem und bestem Checkpoint
//
// Spiegelt die Trainings-Konfiguration: checkpoint_path haelt den letzten
// Stand, checkpoint_path_best den mit dem niedrigsten Validierungs-Loss.
package checkpoint

import (
	"errors"
	"log/slog"
	"os"
)

// Manager tracks the latest and the best checkpoint of a training run.
type Manager struct {
	Path     string
	BestPath string

	// DType selects the on-disk tensor encoding for new checkpoints.
	DType uint32
}

// SaveLatest writes c to the latest-checkpoint path.
func (m *Manager) SaveLatest(c *Checkpoint) error {
	slog.Debug("saving checkpoint", "path", m.Path, "step", c.Meta.Step, "loss", c.Meta.Loss)
	return Write(m.Path, c, m.DType)
}

// PromoteBest writes c to the best-checkpoint path if its loss improves on
// the currently stored best. Returns true when c became the new best.
func (m *Manager) PromoteBest(c *Checkpoint) (bool, error) {
	best, err := Read(m.BestPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first checkpoint of the run
	case err != nil:
		return false, err
	case best.Meta.Loss <= c.Meta.Loss:
		return false, nil
	}

	slog.Info("new best checkpoint", "path", m.BestPath, "step", c.Meta.Step, "loss", c.Meta.Loss)
	return true, Write(m.BestPath, c, m.DType)
}

// LoadLatest reads the latest checkpoint.
func (m *Manager) LoadLatest() (*Checkpoint, error) {
	return Read(m.Path)
}

// LoadBest reads the best checkpoint.
func (m *Manager) LoadBest() (*Checkpoint, error) {
	return Read(m.BestPath)
}
