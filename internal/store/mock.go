package store

import (
	"path/filepath"

	"github.com/ksyq12/vhostsync/internal/vhost"
)

// MockStore is a test double for the Store interface
type MockStore struct {
	dir string

	// Function mocks - set these to customize behavior
	CheckFunc  func() error
	ExistsFunc func(rec *vhost.Record) (bool, error)
	WriteFunc  func(rec *vhost.Record) error
	ListFunc   func() ([]string, error)

	// Call tracking - check these to verify interactions
	CheckCalls  int
	ExistsCalls []*vhost.Record
	WriteCalls  []*vhost.Record
	ListCalls   int
}

// NewMockStore creates a new MockStore with default no-op implementations
func NewMockStore(dir string) *MockStore {
	return &MockStore{
		dir:         dir,
		ExistsCalls: make([]*vhost.Record, 0),
		WriteCalls:  make([]*vhost.Record, 0),
	}
}

// Name returns the store name
func (m *MockStore) Name() string {
	return "mock"
}

// Path returns <dir>/<site-id>.conf
func (m *MockStore) Path(rec *vhost.Record) string {
	return filepath.Join(m.dir, rec.ConfigFileName())
}

// Check records the call and invokes the mock function if set
func (m *MockStore) Check() error {
	m.CheckCalls++
	if m.CheckFunc != nil {
		return m.CheckFunc()
	}
	return nil
}

// Exists records the call and invokes the mock function if set
func (m *MockStore) Exists(rec *vhost.Record) (bool, error) {
	m.ExistsCalls = append(m.ExistsCalls, rec)
	if m.ExistsFunc != nil {
		return m.ExistsFunc(rec)
	}
	return false, nil
}

// Write records the call and invokes the mock function if set
func (m *MockStore) Write(rec *vhost.Record) error {
	m.WriteCalls = append(m.WriteCalls, rec)
	if m.WriteFunc != nil {
		return m.WriteFunc(rec)
	}
	return nil
}

// List records the call and invokes the mock function if set
func (m *MockStore) List() ([]string, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []string{}, nil
}

// Reset clears all call tracking
func (m *MockStore) Reset() {
	m.ExistsCalls = make([]*vhost.Record, 0)
	m.WriteCalls = make([]*vhost.Record, 0)
	m.ListCalls = 0
	m.CheckCalls = 0
}
