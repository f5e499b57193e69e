// Package vhost builds validated virtual-host records and renders them into
// Apache VirtualHost declarations.
//
// A Record is constructed once per provisioning request from Options and
// the active config.Config, and is never modified afterwards. Rendering is
// a pure function of the record and a platform.Platform:
//
//	rec, err := vhost.New(vhost.Options{
//	    Domain:        "example.com",
//	    Alias:         "www.example.com",
//	    RewriteEngine: true,
//	}, cfg)
//	text, err := rec.Render(cfg.Platform)
package vhost

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ksyq12/vhostsync/internal/address"
	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/hosts"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/template"
)

// Options are the caller-supplied attributes of a site. Only Domain is
// required.
type Options struct {
	Domain          string
	Address         string // dotted quad, loopback when empty
	Alias           string
	SiteID          string // first domain label when empty
	DocumentRoot    string // absolute, or relative to the sites root
	PublicSubfolder string
	RewriteEngine   bool
}

// Record is an immutable, validated virtual host.
type Record struct {
	siteID          string
	domain          string
	address         address.Address
	alias           string
	documentRoot    string
	publicSubfolder string
	rewriteEngine   bool
}

// New validates opts and resolves the document root against cfg.
func New(opts Options, cfg config.Config) (*Record, error) {
	if err := validateDomain(opts.Domain); err != nil {
		return nil, err
	}

	addr := address.Loopback()
	if opts.Address != "" {
		parsed, err := address.Parse(opts.Address)
		if err != nil {
			return nil, err
		}
		addr = parsed
	}

	if strings.ContainsAny(opts.Alias, " \t\r\n") {
		return nil, verrors.Validation(fmt.Sprintf("alias %q cannot contain whitespace", opts.Alias))
	}

	siteID := opts.SiteID
	if siteID == "" {
		siteID = strings.SplitN(opts.Domain, ".", 2)[0]
	}
	if strings.ContainsAny(siteID, " \t\r\n/\\") || siteID == "." || siteID == ".." {
		return nil, verrors.Validation(fmt.Sprintf("site id %q is not a valid file name", siteID))
	}

	p := cfg.Platform
	root := opts.DocumentRoot
	switch {
	case root == "":
		root = p.Join(cfg.SitesRoot, siteID)
	case !p.IsAbs(root):
		root = p.Join(cfg.SitesRoot, root)
	}
	if !p.IsAbs(root) {
		return nil, verrors.RelativePath("document root", root)
	}

	public := strings.Trim(opts.PublicSubfolder, `/\`)

	return &Record{
		siteID:          siteID,
		domain:          opts.Domain,
		address:         addr,
		alias:           opts.Alias,
		documentRoot:    root,
		publicSubfolder: public,
		rewriteEngine:   opts.RewriteEngine,
	}, nil
}

// validateDomain requires at least two non-empty labels and no whitespace.
func validateDomain(domain string) error {
	if domain == "" {
		return verrors.Validation("domain cannot be empty")
	}
	if strings.ContainsAny(domain, " \t\r\n#/\\") {
		return verrors.Validation(fmt.Sprintf("domain %q contains invalid characters", domain))
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return verrors.Validation(fmt.Sprintf("domain %q needs at least two labels", domain))
	}
	for _, l := range labels {
		if l == "" {
			return verrors.Validation(fmt.Sprintf("domain %q has an empty label", domain))
		}
	}
	return nil
}

// SiteID names the declaration file. It defaults to the first label of
// the domain.
func (r *Record) SiteID() string { return r.siteID }

// Domain is the validated fully-qualified domain.
func (r *Record) Domain() string { return r.domain }

// Address is the address the host entry points the domain at.
func (r *Record) Address() address.Address { return r.address }

// Alias is the optional ServerAlias; empty when unset.
func (r *Record) Alias() string { return r.alias }

// DocumentRoot is the site directory under the sites root.
func (r *Record) DocumentRoot() string { return r.documentRoot }

// PublicSubfolder is the optional served subfolder of the document root.
func (r *Record) PublicSubfolder() string { return r.publicSubfolder }

// RewriteEngine reports whether the declaration turns mod_rewrite on.
func (r *Record) RewriteEngine() bool { return r.rewriteEngine }

// ServedPath is the directory Apache serves: the document root, plus the
// public subfolder when one is set.
func (r *Record) ServedPath(p platform.Platform) string {
	if r.publicSubfolder == "" {
		return r.documentRoot
	}
	return r.documentRoot + p.Separator() + r.publicSubfolder
}

// HostEntry returns the host-table entry that points the domain at the
// record's address.
func (r *Record) HostEntry() hosts.Entry {
	return hosts.NewEntry(r.address, r.domain)
}

// ConfigFileName is the per-site declaration file name.
func (r *Record) ConfigFileName() string {
	return r.siteID + ".conf"
}

// Render returns the VirtualHost declaration as p expects it: separators,
// quoting and line endings all follow p.
func (r *Record) Render(p platform.Platform) (string, error) {
	if !p.Supported() {
		return "", verrors.UnsupportedPlatform(p.String())
	}

	root := r.ServedPath(p)
	if p == platform.Windows {
		root = `"` + root + `"`
	}

	return template.Render(template.Data{
		Address:       r.address.String(),
		Domain:        r.domain,
		DocumentRoot:  root,
		RewriteEngine: r.rewriteEngine,
		Alias:         r.alias,
	}, p.Newline())
}

// MarshalJSON exposes the record's fields for --json output.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SiteID          string `json:"site_id"`
		Domain          string `json:"domain"`
		Address         string `json:"address"`
		Alias           string `json:"alias,omitempty"`
		DocumentRoot    string `json:"document_root"`
		PublicSubfolder string `json:"public_subfolder,omitempty"`
		RewriteEngine   bool   `json:"rewrite_engine"`
	}{
		SiteID:          r.siteID,
		Domain:          r.domain,
		Address:         r.address.String(),
		Alias:           r.alias,
		DocumentRoot:    r.documentRoot,
		PublicSubfolder: r.publicSubfolder,
		RewriteEngine:   r.rewriteEngine,
	})
}
