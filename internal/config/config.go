package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/platform"
)

// Config is the path configuration every component is built from.
// It is passed by value and never modified after Load returns.
type Config struct {
	Platform       platform.Platform
	SitesRoot      string
	SitesAvailable string
	HostTable      string
	ServerRoot     string
}

// Layer is one source of configuration values. Empty fields leave the
// lower layer's value in place.
type Layer struct {
	Platform       string `yaml:"platform,omitempty" env:"PLATFORM"`
	SitesRoot      string `yaml:"sites_root,omitempty" env:"SITES_ROOT"`
	SitesAvailable string `yaml:"sites_available,omitempty" env:"SITES_AVAILABLE"`
	HostTable      string `yaml:"hosts_file,omitempty" env:"HOSTS_FILE"`
	ServerRoot     string `yaml:"server_root,omitempty" env:"SERVER_ROOT"`
}

// envPrefix namespaces the environment variables, e.g. VHOSTSYNC_HOSTS_FILE.
const envPrefix = "VHOSTSYNC_"

// configDir is the default config directory
const configDir = ".config/vhostsync"
const configFile = "config.yaml"

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Default returns the platform defaults for p. Unsupported platforms get
// a Config with no paths, which Validate rejects.
func Default(p platform.Platform) Config {
	paths, err := platform.Defaults(p)
	if err != nil {
		return Config{Platform: p}
	}
	return FromPaths(p, paths)
}

// FromPaths builds a Config from explicit paths.
func FromPaths(p platform.Platform, paths platform.Paths) Config {
	return Config{
		Platform:       p,
		SitesRoot:      paths.SitesRoot,
		SitesAvailable: paths.SitesAvailable,
		HostTable:      paths.HostTable,
		ServerRoot:     paths.ServerRoot,
	}
}

// Load resolves the configuration from, lowest precedence first: platform
// defaults, the YAML config file, VHOSTSYNC_* environment variables and
// the flags layer.
func Load(flags Layer) (Config, error) {
	fileLayer, err := ReadFile()
	if err != nil {
		return Config{}, err
	}
	envLayer, err := ReadEnv(nil)
	if err != nil {
		return Config{}, err
	}
	return Resolve(platform.Detect(), fileLayer, envLayer, flags)
}

// Resolve merges layers on top of the defaults of the first platform named
// by a layer, or detected when none names one.
func Resolve(detected platform.Platform, layers ...Layer) (Config, error) {
	p := detected
	for _, l := range layers {
		if l.Platform == "" {
			continue
		}
		parsed, err := platform.Parse(l.Platform)
		if err != nil {
			return Config{}, verrors.Wrap(verrors.ErrCodeUnsupportedPlatform, "invalid platform setting", err)
		}
		p = parsed
	}

	cfg := Default(p)
	for _, l := range layers {
		cfg = cfg.merge(l)
	}
	return cfg, nil
}

func (c Config) merge(l Layer) Config {
	if l.SitesRoot != "" {
		c.SitesRoot = l.SitesRoot
	}
	if l.SitesAvailable != "" {
		c.SitesAvailable = l.SitesAvailable
	}
	if l.HostTable != "" {
		c.HostTable = l.HostTable
	}
	if l.ServerRoot != "" {
		c.ServerRoot = l.ServerRoot
	}
	return c
}

// ReadFile reads the YAML config file. A missing file is an empty layer.
func ReadFile() (Layer, error) {
	path, err := ConfigPath()
	if err != nil {
		return Layer{}, err
	}
	return readLayer(path)
}

func readLayer(path string) (Layer, error) {
	var l Layer
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return l, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("failed to parse config: %w", err)
	}
	return l, nil
}

// ReadEnv reads the VHOSTSYNC_* variables. A nil environment means the
// process environment.
func ReadEnv(environment map[string]string) (Layer, error) {
	var l Layer
	opts := env.Options{Prefix: envPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&l, opts); err != nil {
		return l, fmt.Errorf("parsing environment config: %w", err)
	}
	return l, nil
}

// Validate checks that the platform is supported and every path is
// absolute. It runs before anything is written.
func (c Config) Validate() error {
	if !c.Platform.Supported() {
		return verrors.UnsupportedPlatform(c.Platform.String())
	}
	checks := []struct {
		name string
		path string
	}{
		{"sites root", c.SitesRoot},
		{"sites-available path", c.SitesAvailable},
		{"host table path", c.HostTable},
		{"server root", c.ServerRoot},
	}
	for _, chk := range checks {
		if !c.Platform.IsAbs(chk.path) {
			return verrors.RelativePath(chk.name, chk.path)
		}
	}
	return nil
}
