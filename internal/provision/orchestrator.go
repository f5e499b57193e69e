// Package provision creates a site end to end: the virtual-host
// declaration, the content directory and the host-table entry.
//
// CreateSite runs its steps in a fixed order and stops at the first
// failure. Nothing is rolled back: a failure after the declaration was
// written leaves it (and the directory, if created) on disk, and the
// Result says so through Partial. A domain that is already in the host
// table is reported as a warning, not a failure, so a site whose host
// entry was added by hand still provisions.
//
// The orchestrator takes no locks. Running two provisioning processes
// against the same files at once is not supported.
package provision

import (
	"os"

	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/executor"
	"github.com/ksyq12/vhostsync/internal/hosts"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/platform"
	"github.com/ksyq12/vhostsync/internal/store"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// HostTable is the part of hosts.File the orchestrator uses.
type HostTable interface {
	Load() (*hosts.Table, error)
	Add(e hosts.Entry) error
}

// Options injects collaborators. Nil fields get the real implementation
// for the configuration.
type Options struct {
	Store    store.Store
	Hosts    HostTable
	Executor executor.CommandExecutor

	// Reload runs apache2ctl configtest and reloads the service after a
	// successful run. Linux only.
	Reload bool
}

// Orchestrator provisions sites against one configuration.
type Orchestrator struct {
	cfg    config.Config
	store  store.Store
	hosts  HostTable
	apache *executor.Apache
	reload bool
}

// New creates an orchestrator for cfg.
func New(cfg config.Config, opts Options) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		store:  opts.Store,
		hosts:  opts.Hosts,
		reload: opts.Reload,
	}
	if o.store == nil {
		// Unsupported platforms leave the store nil; CreateSite stops
		// at the platform step before it is needed.
		o.store, _ = store.New(cfg)
	}
	if o.hosts == nil {
		o.hosts = hosts.NewFile(cfg.HostTable)
	}
	e := opts.Executor
	if e == nil {
		e = executor.NewSystemExecutor()
	}
	o.apache = executor.NewApache(e)
	return o
}

func (o *Orchestrator) steps() []Step {
	steps := []Step{StepPlatform, StepConfig, StepServer, StepDeclaration, StepDirectory, StepHosts}
	if o.reload {
		steps = append(steps, StepReload)
	}
	return steps
}

// CreateSite provisions rec. The returned Result is never nil; check
// Result.Err for a stopping failure and Result.Warnings for the rest.
func (o *Orchestrator) CreateSite(rec *vhost.Record) *Result {
	res := &Result{Domain: rec.Domain(), SiteID: rec.SiteID()}
	p := o.cfg.Platform

	steps := o.steps()
	fail := func(i int, err error) *Result {
		res.record(steps[i], StatusFailed, "", err)
		res.skip(steps[i+1:]...)
		logger.ErrorFields("Provisioning stopped", logger.Fields{
			"site":    rec.SiteID(),
			"step":    string(steps[i]),
			"partial": res.Partial(),
		})
		return res
	}

	// platform
	if !p.Supported() {
		return fail(0, verrors.UnsupportedPlatform(p.String()))
	}
	res.record(StepPlatform, StatusOK, p.String(), nil)

	// config: every path absolute before anything is written
	if err := o.cfg.Validate(); err != nil {
		return fail(1, err)
	}
	res.record(StepConfig, StatusOK, "", nil)

	// server
	if p == platform.Linux {
		if err := o.checkServer(); err != nil {
			return fail(2, err)
		}
		res.record(StepServer, StatusOK, o.cfg.ServerRoot, nil)
	} else {
		res.record(StepServer, StatusSkipped, "not checked on "+p.String(), nil)
	}

	// declaration
	if err := o.store.Write(rec); err != nil {
		return fail(3, err)
	}
	res.record(StepDeclaration, StatusOK, o.store.Path(rec), nil)
	logger.Debug("Declared %s in %s", rec.Domain(), o.store.Path(rec))

	// directory
	dir, err := o.makeDirectory(rec)
	if err != nil {
		return fail(4, err)
	}
	res.record(StepDirectory, StatusOK, dir, nil)

	// hosts
	entry := rec.HostEntry()
	switch err := o.hosts.Add(entry); {
	case err == nil:
		res.record(StepHosts, StatusOK, entry.String(), nil)
	case verrors.Is(err, verrors.ErrDuplicateDomain):
		res.warn(StepHosts, err)
		logger.WarnFields("Site partially provisioned", logger.Fields{
			"site": rec.SiteID(),
			"step": string(StepHosts),
			"code": string(verrors.CodeOf(err)),
		})
	default:
		return fail(5, err)
	}

	if o.reload {
		o.runReload(res)
	}
	return res
}

func (o *Orchestrator) checkServer() error {
	info, err := os.Stat(o.cfg.ServerRoot)
	if err != nil && !os.IsNotExist(err) {
		return verrors.FromFS(err, "failed to check apache installation", o.cfg.ServerRoot)
	}
	if err != nil || !info.IsDir() {
		return verrors.ServerNotInstalled(o.cfg.ServerRoot)
	}
	return nil
}

// checkDirectory fails when a file occupies the document root or the
// served path. Missing or existing directories are fine.
func (o *Orchestrator) checkDirectory(rec *vhost.Record) error {
	for _, path := range []string{rec.DocumentRoot(), rec.ServedPath(o.cfg.Platform)} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return verrors.AlreadyExists(rec.Domain(), "a file occupies the site directory", path)
		}
	}
	return nil
}

// makeDirectory creates the served directory.
func (o *Orchestrator) makeDirectory(rec *vhost.Record) (string, error) {
	if err := o.checkDirectory(rec); err != nil {
		return "", err
	}
	served := rec.ServedPath(o.cfg.Platform)
	if err := os.MkdirAll(served, 0755); err != nil {
		return "", verrors.FromFS(err, "failed to create site directory", served)
	}
	logger.Debug("Site directory ready %s", served)
	return served, nil
}

func (o *Orchestrator) runReload(res *Result) {
	if o.cfg.Platform != platform.Linux {
		res.record(StepReload, StatusSkipped, "reload manually on "+o.cfg.Platform.String(), nil)
		return
	}
	if err := o.apache.ConfigTest(); err != nil {
		res.warn(StepReload, verrors.Wrap(verrors.ErrCodeValidation, "configuration test failed", err))
		return
	}
	if err := o.apache.Reload(); err != nil {
		res.warn(StepReload, verrors.Wrap(verrors.ErrCodeInternal, "reload failed", err))
		return
	}
	res.record(StepReload, StatusOK, "apache reloaded", nil)
}
