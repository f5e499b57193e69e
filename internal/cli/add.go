package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/provision"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

// siteFlags are the record attributes shared by add and show.
type siteFlags struct {
	ip      string
	alias   string
	root    string
	public  string
	siteID  string
	rewrite bool
}

func (f *siteFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ip, "ip", "", "Address the domain resolves to (default 127.0.0.1)")
	cmd.Flags().StringVarP(&f.alias, "alias", "a", "", "ServerAlias for the site")
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "Document root, absolute or relative to the sites root")
	cmd.Flags().StringVar(&f.public, "public", "", "Subfolder of the document root to serve (e.g. public)")
	cmd.Flags().StringVar(&f.siteID, "site-id", "", "Site name for the directory and declaration file (default: first domain label)")
	cmd.Flags().BoolVar(&f.rewrite, "rewrite", false, "Add RewriteEngine on")
}

func (f *siteFlags) record(domain string, cfg config.Config) (*vhost.Record, error) {
	return vhost.New(vhost.Options{
		Domain:          domain,
		Address:         f.ip,
		Alias:           f.alias,
		SiteID:          f.siteID,
		DocumentRoot:    f.root,
		PublicSubfolder: f.public,
		RewriteEngine:   f.rewrite,
	}, cfg)
}

var (
	addFlags siteFlags
	dryRun   bool
	reload   bool
)

var addCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Provision a new site",
	Long: `Provision a new site: write its VirtualHost declaration, create its
directory and add the domain to the host table.

A domain that is already in the host table is reported as a warning; the
declaration and directory are kept. Nothing is rolled back on failure.

Examples:
  vhostsync add blog.test
  vhostsync add example.com --alias www.example.com --rewrite --public public
  vhostsync add api.test --ip 10.0.0.5 --root /srv/api
  vhostsync add shop.test --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addFlags.bind(addCmd)
	addCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")
	addCmd.Flags().BoolVar(&reload, "reload", false, "Run apache2ctl configtest and reload Apache afterwards (linux)")

	rootCmd.AddCommand(addCmd)
}

// addResult is the --json shape of add.
type addResult struct {
	Success  bool              `json:"success"`
	Partial  bool              `json:"partial"`
	Code     string            `json:"code,omitempty"`
	Result   *provision.Result `json:"result"`
	Warnings []string          `json:"warnings,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec, err := addFlags.record(args[0], cfg)
	if err != nil {
		return err
	}

	orch := provision.New(cfg, provision.Options{
		Executor: deps.Executor,
		Reload:   reload,
	})

	// Dry-run mode: show what would be done without making changes
	if dryRun {
		plan, err := orch.DryRun(rec)
		if err != nil {
			return err
		}
		return outputDryRun(plan)
	}

	// Require root for system operations
	if err := requireRoot(); err != nil {
		return err
	}

	if !jsonOutput {
		output.Info("Provisioning %s...", rec.Domain())
	}
	res := orch.CreateSite(rec)
	stopErr := res.Err()

	if jsonOutput {
		out := addResult{
			Success: stopErr == nil,
			Partial: res.Partial(),
			Code:    string(res.Code()),
			Result:  res,
		}
		for _, w := range res.Warnings() {
			out.Warnings = append(out.Warnings, w.Error())
		}
		if err := output.JSON(out); err != nil {
			return err
		}
		if stopErr != nil {
			return reportedError{stopErr}
		}
		return nil
	}

	displaySteps(res)
	if stopErr != nil {
		if res.Partial() {
			output.Warn("Site %s is partially provisioned; completed steps were kept", rec.SiteID())
		}
		return stopErr
	}
	if len(res.Warnings()) > 0 {
		output.Warn("Site %s provisioned with warnings", rec.SiteID())
		return nil
	}
	output.Success("Site %s provisioned", rec.SiteID())
	return nil
}

func displaySteps(res *provision.Result) {
	for _, sr := range res.Steps {
		switch {
		case sr.Status == provision.StatusOK:
			output.Success("%-11s %s", sr.Step, sr.Detail)
		case sr.Status == provision.StatusFailed && sr.Warning:
			output.Warn("%-11s %v", sr.Step, sr.Err)
		case sr.Status == provision.StatusSkipped && sr.Detail != "":
			output.Print("  %-11s skipped (%s)", sr.Step, sr.Detail)
		}
	}
}

// outputDryRun prints the plan without making changes
func outputDryRun(plan *provision.Plan) error {
	if jsonOutput {
		return output.JSON(plan)
	}

	output.Info("Dry run for %s (site %s, %s); no changes made", plan.Domain, plan.SiteID, plan.Platform)
	rows := make([][]string, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		rows = append(rows, []string{op.Action, op.Target, op.Details})
	}
	output.Table([]string{"ACTION", "TARGET", "DETAILS"}, rows)
	for _, w := range plan.Warnings {
		output.Warn("%s", w)
	}
	output.Block("Declaration:", plan.ConfigPreview)
	return nil
}
