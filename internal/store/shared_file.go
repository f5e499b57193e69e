package store

import (
	"os"
	"strings"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// SharedFile appends every declaration to one file.
type SharedFile struct {
	path     string
	platform platform.Platform
}

// NewSharedFile creates a store backed by the file at path rendering for p.
func NewSharedFile(path string, p platform.Platform) *SharedFile {
	return &SharedFile{path: path, platform: p}
}

// Name returns the store name
func (s *SharedFile) Name() string {
	return "shared-file"
}

// Path returns the shared file for every record.
func (s *SharedFile) Path(*vhost.Record) string {
	return s.path
}

// read returns the shared file's text; a missing file is empty.
func (s *SharedFile) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", verrors.FromFS(err, "failed to read declarations", s.path)
	}
	return string(data), nil
}

// Exists reports whether the file already contains rec's exact rendered
// stanza. A stanza for the same domain with different content does not
// count.
func (s *SharedFile) Exists(rec *vhost.Record) (bool, error) {
	content, err := rec.Render(s.platform)
	if err != nil {
		return false, err
	}
	text, err := s.read()
	if err != nil {
		return false, err
	}
	return strings.Contains(text, content), nil
}

// Check verifies the shared file's directory exists. The file itself
// may be absent; Write creates it.
func (s *SharedFile) Check() error {
	dir := parentDir(s.path)
	info, err := os.Stat(dir)
	if err != nil && !os.IsNotExist(err) {
		return verrors.FromFS(err, "failed to check declarations directory", dir)
	}
	if err != nil || !info.IsDir() {
		return &verrors.SiteError{
			Code:    verrors.ErrCodeNotFound,
			Message: "declarations directory does not exist",
			Path:    dir,
		}
	}
	return nil
}

// Write appends rec's stanza by rewriting the whole file in one write.
// The file is created if absent, its directory is not.
func (s *SharedFile) Write(rec *vhost.Record) error {
	if err := s.Check(); err != nil {
		return err
	}

	content, err := rec.Render(s.platform)
	if err != nil {
		return err
	}
	text, err := s.read()
	if err != nil {
		return err
	}
	if strings.Contains(text, content) {
		return verrors.AlreadyExists(rec.Domain(), "site is already declared", s.path)
	}

	nl := s.platform.Newline()
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += nl
	}
	text += content

	var perm os.FileMode = 0644
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(s.path, []byte(text), perm); err != nil {
		return verrors.FromFS(err, "failed to write declarations", s.path)
	}

	logger.Debug("Appended declaration for %s to %s", rec.Domain(), s.path)
	return nil
}

// List returns the ServerName of every stanza in the file, in file order.
// Only ServerName lines are read; the file is not otherwise parsed.
func (s *SharedFile) List() ([]string, error) {
	text, err := s.read()
	if err != nil {
		return nil, err
	}

	sites := []string{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && strings.EqualFold(fields[0], "ServerName") {
			sites = append(sites, fields[1])
		}
	}
	return sites, nil
}

// parentDir accepts both separators so Windows paths split correctly on
// any host.
func parentDir(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	switch {
	case i < 0:
		return "."
	case i == 0:
		return path[:1]
	default:
		return path[:i]
	}
}
