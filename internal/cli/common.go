package cli

import (
	"errors"

	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/hosts"
	"github.com/ksyq12/vhostsync/internal/output"
)

// loadConfig resolves and validates the configuration. Unsupported
// platforms and relative paths are rejected here, before any command
// touches the filesystem.
func loadConfig() (config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(flagLayer)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadHostFile returns the configured host table.
func loadHostFile() (*hosts.File, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return hosts.NewFile(cfg.HostTable), nil
}

func requireRoot() error {
	return deps.RootChecker.RequireRoot()
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// reportedError marks an error whose details were already printed, so
// only the exit status is left to set.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// reportError prints a command error in the active output mode.
func reportError(err error) {
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	if jsonOutput {
		_ = output.JSON(output.ErrorJSON{
			Code:  string(verrors.CodeOf(err)),
			Error: err.Error(),
		})
		return
	}
	output.Error("%v", err)
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	Action  string `json:"action,omitempty"`
	Address string `json:"address,omitempty"`
	Message string `json:"message,omitempty"`
}

// newSuccessResult creates a success result
func newSuccessResult(domain, action string) CommandResult {
	return CommandResult{
		Success: true,
		Domain:  domain,
		Action:  action,
	}
}
