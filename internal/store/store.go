package store

import (
	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// Store is where virtual-host declarations are persisted.
type Store interface {
	// Name identifies the implementation (sites-available, shared-file)
	Name() string

	// Exists reports whether rec is already declared
	Exists(rec *vhost.Record) (bool, error)

	// Check verifies the declaration location is usable without
	// writing; a missing directory is ErrNotFound
	Check() error

	// Write persists rec's declaration, failing with ErrAlreadyExists
	// when it is already declared
	Write(rec *vhost.Record) error

	// List returns the declared sites
	List() ([]string, error)

	// Path returns the file rec's declaration lives in
	Path(rec *vhost.Record) string
}

// New returns the store for cfg's platform.
func New(cfg config.Config) (Store, error) {
	switch cfg.Platform {
	case platform.Linux:
		return NewSitesAvailable(cfg.SitesAvailable, cfg.Platform), nil
	case platform.Windows:
		return NewSharedFile(cfg.SitesAvailable, cfg.Platform), nil
	default:
		return nil, verrors.UnsupportedPlatform(cfg.Platform.String())
	}
}
