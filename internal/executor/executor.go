// Package executor runs the system commands vhostsync needs after a site
// is declared: the Apache syntax check and the service reload.
//
// Commands go through CommandExecutor so tests can substitute
// MockExecutor and never touch the real service manager.
package executor

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments
	Execute(name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Apache drives apache2ctl and systemctl through an executor.
type Apache struct {
	exec    CommandExecutor
	ctl     string
	service string
}

// NewApache returns a controller for the Debian apache2 service.
func NewApache(e CommandExecutor) *Apache {
	return &Apache{exec: e, ctl: "apache2ctl", service: "apache2"}
}

// Installed reports whether the control binary is on PATH.
func (a *Apache) Installed() bool {
	_, err := a.exec.LookPath(a.ctl)
	return err == nil
}

// ConfigTest validates the Apache configuration syntax.
func (a *Apache) ConfigTest() error {
	out, err := a.exec.Execute(a.ctl, "configtest")
	if err != nil {
		return fmt.Errorf("apache config test failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// Reload asks systemd to reload Apache, falling back to a graceful
// restart through the control binary.
func (a *Apache) Reload() error {
	if _, err := a.exec.Execute("systemctl", "reload", a.service); err == nil {
		return nil
	}
	out, err := a.exec.Execute(a.ctl, "graceful")
	if err != nil {
		return fmt.Errorf("failed to reload apache: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// String returns the command line, e.g. "systemctl reload apache2"
func (c CommandCall) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
