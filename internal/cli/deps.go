package cli

import (
	"os"
	"runtime"

	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/executor"
	"github.com/ksyq12/vhostsync/internal/input"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
	RootChecker  RootChecker
	StdinReader  input.Reader
	Executor     executor.CommandExecutor
}

// ConfigLoader resolves the configuration with flags as the top layer
type ConfigLoader interface {
	Load(flags config.Layer) (config.Config, error)
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader: &realConfigLoader{},
	RootChecker:  &realRootChecker{},
	StdinReader:  input.NewStdinReader(),
	Executor:     executor.NewSystemExecutor(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load(flags config.Layer) (config.Config, error) {
	return config.Load(flags)
}

type realRootChecker struct{}

// RequireRoot checks the effective uid. Windows has no uid; write
// failures there surface as PERMISSION_DENIED from the write itself.
func (r *realRootChecker) RequireRoot() error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if os.Geteuid() != 0 {
		return errRootRequired
	}
	return nil
}

// errRootRequired is the sentinel error for root privilege check
var errRootRequired = &verrors.SiteError{
	Code:    verrors.ErrCodePermission,
	Message: "this operation requires root privileges. Please run with sudo",
}
