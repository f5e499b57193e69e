package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/store"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List declared sites",
	Long: `List the sites that have a VirtualHost declaration.

On Linux these are the .conf files in sites-available; on Windows, the
ServerName of each stanza in the shared declarations file.

Examples:
  vhostsync list
  vhostsync ls --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type siteList struct {
	Store string   `json:"store"`
	Path  string   `json:"path"`
	Sites []string `json:"sites"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(cfg)
	if err != nil {
		return err
	}

	sites, err := st.List()
	if err != nil {
		return err
	}
	sort.Strings(sites)

	if jsonOutput {
		return output.JSON(siteList{Store: st.Name(), Path: cfg.SitesAvailable, Sites: sites})
	}

	if len(sites) == 0 {
		output.Info("No sites declared in %s", cfg.SitesAvailable)
		return nil
	}

	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{s})
	}
	output.Table([]string{"SITE"}, rows)
	return nil
}
