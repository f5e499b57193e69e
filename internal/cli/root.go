package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/logger"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"

	// flagLayer holds the path and platform overrides, the highest
	// precedence configuration layer.
	flagLayer config.Layer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhostsync",
	Short: "Keep Apache virtual hosts and the host table in sync",
	Long: `vhostsync provisions local Apache sites: it writes the VirtualHost
declaration, creates the site directory and maps the domain in the
system host table, on Linux (sites-available) and Windows (XAMPP).

Paths come from platform defaults, ~/.config/vhostsync/config.yaml,
VHOSTSYNC_* environment variables and the flags below, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")

	pf.StringVar(&flagLayer.Platform, "platform", "", "Platform to act as (linux, windows)")
	pf.StringVar(&flagLayer.SitesRoot, "sites-root", "", "Directory holding site content")
	pf.StringVar(&flagLayer.SitesAvailable, "sites-available", "", "Declarations directory (linux) or shared file (windows)")
	pf.StringVar(&flagLayer.HostTable, "hosts-file", "", "Host table path")
	pf.StringVar(&flagLayer.ServerRoot, "server-root", "", "Apache installation directory")
}
