package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/store"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

var showFlags siteFlags

var showCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Preview the declaration for a site",
	Long: `Render the VirtualHost declaration add would write for a domain,
and report whether it is already declared. Nothing is written.

Examples:
  vhostsync show blog.test
  vhostsync show example.com --alias www.example.com --rewrite
  vhostsync show blog.test --platform windows --sites-root 'D:\sites'`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showFlags.bind(showCmd)
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the preview for output
type showDetail struct {
	Record      *vhost.Record `json:"record"`
	Path        string        `json:"path"`
	Declared    bool          `json:"declared"`
	HostEntry   string        `json:"host_entry"`
	Declaration string        `json:"declaration"`
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec, err := showFlags.record(args[0], cfg)
	if err != nil {
		return err
	}

	text, err := rec.Render(cfg.Platform)
	if err != nil {
		return err
	}

	st, err := store.New(cfg)
	if err != nil {
		return err
	}
	declared, err := st.Exists(rec)
	if err != nil {
		logger.LogError(err, "could not check existing declarations")
	}

	detail := showDetail{
		Record:      rec,
		Path:        st.Path(rec),
		Declared:    declared,
		HostEntry:   rec.HostEntry().String(),
		Declaration: text,
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	output.Fields([][2]string{
		{"Site", rec.SiteID()},
		{"Domain", rec.Domain()},
		{"Address", rec.Address().String()},
		{"Document root", rec.ServedPath(cfg.Platform)},
		{"Declaration file", detail.Path},
		{"Declared", strconv.FormatBool(declared)},
		{"Host entry", detail.HostEntry},
	})
	output.Print("")
	output.Block("Declaration:", text)
	return nil
}
