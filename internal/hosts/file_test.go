package hosts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksyq12/vhostsync/internal/address"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
)

func writeHosts(t *testing.T, content string, perm os.FileMode) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return NewFile(path)
}

func readHosts(t *testing.T, f *File) string {
	t.Helper()
	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	return string(data)
}

func TestFileAddRemove(t *testing.T) {
	f := writeHosts(t, "127.0.0.1\tlocalhost\n", 0644)

	require.NoError(t, f.Add(NewEntry(address.MustParse("10.0.0.5"), "example.com")))
	assert.Equal(t, "127.0.0.1\tlocalhost\n10.0.0.5\texample.com", readHosts(t, f))

	addr, err := f.Lookup("example.com")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", addr.String())

	err = f.Add(NewEntry(address.Loopback(), "example.com"))
	assert.ErrorIs(t, err, verrors.ErrDuplicateDomain)

	require.NoError(t, f.Remove("example.com"))
	assert.Equal(t, "127.0.0.1\tlocalhost", readHosts(t, f))

	_, err = f.Lookup("example.com")
	assert.ErrorIs(t, err, verrors.ErrNotFound)
	assert.ErrorIs(t, f.Remove("example.com"), verrors.ErrNotFound)
}

func TestFileUpdateAndList(t *testing.T) {
	f := writeHosts(t, "# hosts\n127.0.0.1\tlocalhost\n10.0.0.1\tapi.test\n", 0644)

	require.NoError(t, f.Update("api.test", NewEntry(address.MustParse("10.0.0.9"), "api.test")))

	entries, err := f.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "localhost", entries[0].Domain)
	assert.Equal(t, "10.0.0.9", entries[1].Address.String())
	assert.Equal(t, "# hosts\n127.0.0.1\tlocalhost\n10.0.0.9\tapi.test", readHosts(t, f))
}

func TestFileRereadsEveryCall(t *testing.T) {
	f := writeHosts(t, "127.0.0.1\tlocalhost\n", 0644)

	_, err := f.Lookup("late.test")
	assert.ErrorIs(t, err, verrors.ErrNotFound)

	// Simulate an external edit between two operations.
	require.NoError(t, os.WriteFile(f.Path, []byte("127.0.0.1\tlocalhost\n10.1.1.1\tlate.test\n"), 0644))

	addr, err := f.Lookup("late.test")
	require.NoError(t, err)
	assert.Equal(t, "10.1.1.1", addr.String())
}

func TestFileKeepsMode(t *testing.T) {
	f := writeHosts(t, "127.0.0.1\tlocalhost\n", 0600)

	require.NoError(t, f.Add(NewEntry(address.Loopback(), "mode.test")))

	info, err := os.Stat(f.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent", "hosts"))

	_, err := f.Load()
	assert.ErrorIs(t, err, verrors.ErrNotFound)
	assert.ErrorIs(t, f.Add(NewEntry(address.Loopback(), "x.test")), verrors.ErrNotFound)
}

func TestFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	f := writeHosts(t, "127.0.0.1\tlocalhost\n", 0444)

	err := f.Add(NewEntry(address.Loopback(), "ro.test"))
	assert.ErrorIs(t, err, verrors.ErrPermissionDenied)
	assert.Equal(t, "127.0.0.1\tlocalhost\n", readHosts(t, f))
}
