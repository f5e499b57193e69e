package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/executor"
	"github.com/ksyq12/vhostsync/internal/hosts"
	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/platform"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the resolved configuration and the files
add would write to.

Checks:
  - Platform support and configuration validity
  - Apache installation and config syntax (linux)
  - Declaration location (sites-available or the shared file)
  - Host table readability and write access

Examples:
  vhostsync doctor
  vhostsync doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Platform      string        `json:"platform"`
	Host          string        `json:"host"`
	Configuration []CheckResult `json:"configuration"`
	Server        []CheckResult `json:"server"`
	Files         []CheckResult `json:"files"`
}

// Errors counts the checks that failed outright.
func (r *DoctorReport) Errors() int {
	n := 0
	for _, group := range [][]CheckResult{r.Configuration, r.Server, r.Files} {
		for _, c := range group {
			if c.Status == "error" {
				n++
			}
		}
	}
	return n
}

func success(format string, args ...interface{}) CheckResult {
	return CheckResult{Status: "success", Message: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...interface{}) CheckResult {
	return CheckResult{Status: "warning", Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...interface{}) CheckResult {
	return CheckResult{Status: "error", Message: fmt.Sprintf(format, args...)}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	// Load without validating so a bad setting is reported as a check
	cfg, err := deps.ConfigLoader.Load(flagLayer)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report := &DoctorReport{Platform: cfg.Platform.String(), Host: platform.Describe()}
	report.Configuration = checkConfiguration(cfg)
	report.Server = checkServer(executor.NewApache(deps.Executor), cfg)
	report.Files = checkFiles(cfg)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	if n := report.Errors(); n > 0 {
		output.Print("")
		output.Warn("%d check(s) failed", n)
	}
	return nil
}

func checkConfiguration(cfg config.Config) []CheckResult {
	results := []CheckResult{}

	if cfg.Platform.Supported() {
		results = append(results, success("Platform %s supported", cfg.Platform))
	} else {
		results = append(results, failure("Platform %s not supported", cfg.Platform))
	}

	configPath, pathErr := config.ConfigPath()
	if pathErr != nil {
		results = append(results, warning("Could not determine config path"))
	} else if _, err := os.Stat(configPath); err == nil {
		displayPath := configPath
		if home := os.Getenv("HOME"); home != "" {
			displayPath = strings.Replace(configPath, home, "~", 1)
		}
		results = append(results, success("Config file exists (%s)", displayPath))
	} else {
		results = append(results, warning("No config file, using defaults"))
	}

	if err := cfg.Validate(); err != nil {
		results = append(results, failure("%v", err))
	} else {
		results = append(results, success("All configured paths are absolute"))
	}

	return results
}

func checkServer(apache *executor.Apache, cfg config.Config) []CheckResult {
	if cfg.Platform != platform.Linux {
		return []CheckResult{warning("Server checks skipped on %s", cfg.Platform)}
	}

	results := []CheckResult{}
	if info, err := os.Stat(cfg.ServerRoot); err == nil && info.IsDir() {
		results = append(results, success("Server root exists (%s)", cfg.ServerRoot))
	} else {
		results = append(results, failure("Server root missing (%s)", cfg.ServerRoot))
	}

	if !apache.Installed() {
		results = append(results, failure("Apache not installed"))
		return results
	}
	results = append(results, success("Apache installed"))

	if err := apache.ConfigTest(); err != nil {
		results = append(results, failure("Apache config syntax error"))
	} else {
		results = append(results, success("Apache config syntax OK"))
	}
	return results
}

func checkFiles(cfg config.Config) []CheckResult {
	results := []CheckResult{}

	switch cfg.Platform {
	case platform.Linux:
		if info, err := os.Stat(cfg.SitesAvailable); err == nil && info.IsDir() {
			results = append(results, success("sites-available exists (%s)", cfg.SitesAvailable))
		} else {
			results = append(results, failure("sites-available missing (%s)", cfg.SitesAvailable))
		}
	case platform.Windows:
		dir := filepath.Dir(cfg.SitesAvailable)
		if _, err := os.Stat(cfg.SitesAvailable); err == nil {
			results = append(results, success("Declarations file exists (%s)", cfg.SitesAvailable))
		} else if info, err := os.Stat(dir); err == nil && info.IsDir() {
			results = append(results, warning("Declarations file will be created (%s)", cfg.SitesAvailable))
		} else {
			results = append(results, failure("Declarations directory missing (%s)", dir))
		}
	}

	if cfg.HostTable == "" {
		return results
	}
	table, err := hosts.NewFile(cfg.HostTable).Load()
	if err != nil {
		results = append(results, failure("Host table unreadable: %v", err))
		return results
	}
	results = append(results, success("Host table readable (%d entries)", table.Len()))

	f, err := os.OpenFile(cfg.HostTable, os.O_WRONLY, 0)
	if err != nil {
		results = append(results, warning("Host table not writable, run with sudo"))
	} else {
		f.Close()
		results = append(results, success("Host table writable"))
	}
	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Info("Acting as %s on %s", report.Platform, report.Host)
	output.Print("")

	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking web server...")
	for _, check := range report.Server {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking files...")
	for _, check := range report.Files {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
