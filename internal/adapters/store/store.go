// Package store persists engine state: parsed documents and the artifacts
// compiled for them. Two drivers share one record encoding, a file-per-entry
// JSON layout and a sqlite database.
package store

import (
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// New opens the state store selected by cfg.StoreDriver, rooted at the
// project directory.
func New(cfg *domain.Config, root string) (ports.StateStore, error) {
	switch cfg.StoreDriver {
	case domain.StoreDriverFile:
		return NewFile(filepath.Join(root, domain.DefaultStorePath()))
	case domain.StoreDriverSQLite:
		return NewSQLite(filepath.Join(root, domain.DefaultStateDBPath()))
	default:
		return nil, zerr.With(domain.ErrConfigInvalid, "store", cfg.StoreDriver)
	}
}
