package hosts

import (
	"os"

	"github.com/ksyq12/vhostsync/internal/address"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
)

// File is a host table on disk. Every operation re-reads the file; the
// file is the source of truth and nothing is cached between calls.
type File struct {
	Path string
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads and parses the whole file.
func (f *File) Load() (*Table, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, verrors.FromFS(err, "failed to read host table", f.Path)
	}
	logger.Debug("Loaded host table %s (%d bytes)", f.Path, len(data))
	return Parse(string(data)), nil
}

// Save replaces the file content with t in a single write, keeping the
// existing file mode.
func (f *File) Save(t *Table) error {
	var perm os.FileMode = 0644
	if info, err := os.Stat(f.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(f.Path, []byte(t.Serialize()), perm); err != nil {
		return verrors.FromFS(err, "failed to write host table", f.Path)
	}
	logger.Debug("Wrote host table %s", f.Path)
	return nil
}

// Lookup returns the address mapped to domain.
func (f *File) Lookup(domain string) (address.Address, error) {
	t, err := f.Load()
	if err != nil {
		return address.Address{}, err
	}
	addr, ok := t.Lookup(domain)
	if !ok {
		return address.Address{}, verrors.NotFound(domain, "host entry not found")
	}
	return addr, nil
}

// List returns every entry in file order.
func (f *File) List() ([]Entry, error) {
	t, err := f.Load()
	if err != nil {
		return nil, err
	}
	return t.Entries(), nil
}

// Add appends e to the file.
func (f *File) Add(e Entry) error {
	return f.mutate(func(t *Table) error { return t.Add(e) })
}

// Remove drops domain's entry from the file.
func (f *File) Remove(domain string) error {
	return f.mutate(func(t *Table) error { return t.Remove(domain) })
}

// Update replaces domain's entry with e.
func (f *File) Update(domain string, e Entry) error {
	return f.mutate(func(t *Table) error { return t.Update(domain, e) })
}

func (f *File) mutate(fn func(*Table) error) error {
	t, err := f.Load()
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	return f.Save(t)
}
