package provision

import (
	"fmt"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// Operation is one change CreateSite would make.
type Operation struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Details string `json:"details,omitempty"`
}

// Plan describes what CreateSite would do, without doing it.
type Plan struct {
	Domain        string      `json:"domain"`
	SiteID        string      `json:"site_id"`
	Platform      string      `json:"platform"`
	Operations    []Operation `json:"operations"`
	Warnings      []string    `json:"warnings,omitempty"`
	ConfigPreview string      `json:"config_preview"`
}

// DryRun checks the same preconditions CreateSite does and returns the
// planned changes. It reads the store and host table but writes nothing.
func (o *Orchestrator) DryRun(rec *vhost.Record) (*Plan, error) {
	p := o.cfg.Platform
	if !p.Supported() {
		return nil, verrors.UnsupportedPlatform(p.String())
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if p == platform.Linux {
		if err := o.checkServer(); err != nil {
			return nil, err
		}
	}

	preview, err := rec.Render(p)
	if err != nil {
		return nil, err
	}

	if err := o.store.Check(); err != nil {
		return nil, err
	}
	exists, err := o.store.Exists(rec)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, verrors.AlreadyExists(rec.Domain(), "site is already declared", o.store.Path(rec))
	}

	if err := o.checkDirectory(rec); err != nil {
		return nil, err
	}

	plan := &Plan{
		Domain:        rec.Domain(),
		SiteID:        rec.SiteID(),
		Platform:      p.String(),
		ConfigPreview: preview,
	}

	declare := "create_file"
	if o.store.Name() == "shared-file" {
		declare = "append_file"
	}
	served := rec.ServedPath(p)
	entry := rec.HostEntry()
	plan.Operations = []Operation{
		{Action: declare, Target: o.store.Path(rec), Details: fmt.Sprintf("VirtualHost declaration for %s", rec.Domain())},
		{Action: "create_directory", Target: served, Details: "Site content directory"},
		{Action: "append_host", Target: o.cfg.HostTable, Details: entry.String()},
	}

	table, err := o.hosts.Load()
	if err != nil {
		return nil, err
	}
	if addr, ok := table.Lookup(rec.Domain()); ok {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("%s is already in the host table (%s); the entry will not be changed", rec.Domain(), addr))
	}

	if o.reload && p == platform.Linux {
		plan.Operations = append(plan.Operations,
			Operation{Action: "test_config", Target: "apache2ctl", Details: "Validate configuration syntax"},
			Operation{Action: "reload_server", Target: "apache2", Details: "Apply configuration changes"},
		)
	}

	return plan, nil
}
