package cli

import (
	"bytes"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/executor"
	"github.com/ksyq12/vhostsync/internal/input"
	"github.com/ksyq12/vhostsync/internal/output"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg   config.Config
	Err   error
	Calls []config.Layer
}

func (m *MockConfigLoader) Load(flags config.Layer) (config.Config, error) {
	m.Calls = append(m.Calls, flags)
	if m.Err != nil {
		return config.Config{}, m.Err
	}
	return m.Cfg, nil
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errRootRequired
	}
	return nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader: &MockConfigLoader{},
			RootChecker:  &MockRootChecker{IsRoot: true},
			StdinReader:  input.NewStringReader("y\n"),
			Executor:     &executor.MockExecutor{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(text string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(text)
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(e executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = e
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps      *Dependencies
	MockConfig   *MockConfigLoader
	MockExecutor *executor.MockExecutor
	Out          *bytes.Buffer
}

// NewTestHelper swaps in mock dependencies serving cfg, resets the
// command flags and captures command output until the test ends.
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, cfg config.Config) *TestHelper {
	t.Helper()

	mockConfig := &MockConfigLoader{Cfg: cfg}
	mockExec := &executor.MockExecutor{}

	helper := &TestHelper{
		T:            t,
		OldDeps:      deps,
		MockConfig:   mockConfig,
		MockExecutor: mockExec,
		Out:          &bytes.Buffer{},
	}

	deps = NewMockDeps().
		WithConfigLoader(mockConfig).
		WithExecutor(mockExec).
		Build()

	resetFlags()
	output.SetWriter(helper.Out)

	t.Cleanup(func() {
		deps = helper.OldDeps
		resetFlags()
		output.SetWriter(nil)
	})

	return helper
}

func resetFlags() {
	jsonOutput = false
	addFlags = siteFlags{}
	showFlags = siteFlags{}
	dryRun = false
	reload = false
	hostsIP = ""
	updateIP = ""
	hostsNewDomain = ""
	forceRemove = false
	flagLayer = config.Layer{}
}

// SetRootAccess sets whether root access is available
func (h *TestHelper) SetRootAccess(isRoot bool) {
	deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
}

// SetStdinInput sets the answers read from stdin, one per read.
// No answers means end of input.
func (h *TestHelper) SetStdinInput(answers ...string) {
	deps.StdinReader = input.NewStringReader(answers...)
}

// Output returns everything written since the last call and clears it.
func (h *TestHelper) Output() string {
	s := h.Out.String()
	h.Out.Reset()
	return s
}
