package store

import (
	"os"
	"strings"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// SitesAvailable keeps one declaration file per site in a directory.
type SitesAvailable struct {
	dir      string
	platform platform.Platform
}

// NewSitesAvailable creates a store rooted at dir rendering for p.
func NewSitesAvailable(dir string, p platform.Platform) *SitesAvailable {
	return &SitesAvailable{dir: dir, platform: p}
}

// Name returns the store name
func (s *SitesAvailable) Name() string {
	return "sites-available"
}

// Dir returns the sites-available directory
func (s *SitesAvailable) Dir() string {
	return s.dir
}

// Path returns <dir>/<site-id>.conf
func (s *SitesAvailable) Path(rec *vhost.Record) string {
	return s.platform.Join(s.dir, rec.ConfigFileName())
}

// Exists reports whether the site's declaration file exists.
func (s *SitesAvailable) Exists(rec *vhost.Record) (bool, error) {
	path := s.Path(rec)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, verrors.FromFS(err, "failed to check declaration", path)
	}
	return true, nil
}

// Check verifies the sites-available directory exists. The directory
// belongs to the Apache installation and is never created.
func (s *SitesAvailable) Check() error {
	info, err := os.Stat(s.dir)
	if os.IsNotExist(err) {
		return &verrors.SiteError{
			Code:    verrors.ErrCodeNotFound,
			Message: "sites-available directory does not exist",
			Path:    s.dir,
		}
	}
	if err != nil {
		return verrors.FromFS(err, "failed to check sites-available directory", s.dir)
	}
	if !info.IsDir() {
		return verrors.Validation("sites-available path is not a directory: " + s.dir)
	}
	return nil
}

// Write creates the site's declaration file. The file is created
// exclusively, so an existing declaration is never overwritten.
func (s *SitesAvailable) Write(rec *vhost.Record) error {
	if err := s.Check(); err != nil {
		return err
	}

	content, err := rec.Render(s.platform)
	if err != nil {
		return err
	}

	path := s.Path(rec)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return verrors.AlreadyExists(rec.Domain(), "site is already declared", path)
	}
	if err != nil {
		return verrors.FromFS(err, "failed to create declaration", path)
	}

	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return verrors.FromFS(werr, "failed to write declaration", path)
	}
	if cerr != nil {
		return verrors.FromFS(cerr, "failed to write declaration", path)
	}

	logger.Debug("Wrote declaration %s (%d bytes)", path, len(content))
	return nil
}

// List returns the site ids of every .conf file in the directory.
func (s *SitesAvailable) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, verrors.FromFS(err, "failed to read sites-available", s.dir)
	}

	sites := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		// Only include .conf files (not directories or hidden files)
		if !entry.IsDir() && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".conf") {
			sites = append(sites, strings.TrimSuffix(name, ".conf"))
		}
	}

	return sites, nil
}
