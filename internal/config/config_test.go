package config

import (
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/platform"
)

func TestConfig(t *testing.T) {
	// Create temp directory for test config
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	configDir := filepath.Join(tempDir, ".config", "vhostsync")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	t.Run("ReadFileNonexistent", func(t *testing.T) {
		l, err := ReadFile()
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if l != (Layer{}) {
			t.Errorf("expected empty layer, got %+v", l)
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		content := "platform: windows\nsites_root: 'D:\\www'\nhosts_file: /tmp/hosts\n"
		if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		defer os.Remove(filepath.Join(configDir, "config.yaml"))

		l, err := ReadFile()
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if l.Platform != "windows" {
			t.Errorf("expected windows, got %s", l.Platform)
		}
		if l.SitesRoot != `D:\www` {
			t.Errorf("expected D:\\www, got %s", l.SitesRoot)
		}
		if l.HostTable != "/tmp/hosts" {
			t.Errorf("expected /tmp/hosts, got %s", l.HostTable)
		}
	})

	t.Run("ReadFileInvalid", func(t *testing.T) {
		path := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(path, []byte("sites_root: [unclosed"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		defer os.Remove(path)

		if _, err := ReadFile(); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestReadEnv(t *testing.T) {
	l, err := ReadEnv(map[string]string{
		"VHOSTSYNC_PLATFORM":   "linux",
		"VHOSTSYNC_HOSTS_FILE": "/srv/hosts",
		"SITES_ROOT":           "/ignored/without/prefix",
	})
	if err != nil {
		t.Fatalf("ReadEnv failed: %v", err)
	}
	if l.Platform != "linux" {
		t.Errorf("expected linux, got %s", l.Platform)
	}
	if l.HostTable != "/srv/hosts" {
		t.Errorf("expected /srv/hosts, got %s", l.HostTable)
	}
	if l.SitesRoot != "" {
		t.Errorf("unprefixed variable should be ignored, got %s", l.SitesRoot)
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults for detected platform", func(t *testing.T) {
		cfg, err := Resolve(platform.Windows)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.SitesRoot != `C:\xampp\htdocs` {
			t.Errorf("unexpected sites root %s", cfg.SitesRoot)
		}
	})

	t.Run("later layers win", func(t *testing.T) {
		file := Layer{SitesRoot: "/srv/file", HostTable: "/srv/file-hosts"}
		envLayer := Layer{SitesRoot: "/srv/env"}
		flags := Layer{SitesAvailable: "/srv/flags"}

		cfg, err := Resolve(platform.Linux, file, envLayer, flags)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.SitesRoot != "/srv/env" {
			t.Errorf("expected env sites root, got %s", cfg.SitesRoot)
		}
		if cfg.HostTable != "/srv/file-hosts" {
			t.Errorf("expected file host table, got %s", cfg.HostTable)
		}
		if cfg.SitesAvailable != "/srv/flags" {
			t.Errorf("expected flag sites-available, got %s", cfg.SitesAvailable)
		}
	})

	t.Run("platform from layer selects defaults", func(t *testing.T) {
		cfg, err := Resolve(platform.Linux, Layer{Platform: "windows"})
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.Platform != platform.Windows {
			t.Errorf("expected windows, got %s", cfg.Platform)
		}
		if cfg.HostTable != `C:\Windows\System32\drivers\etc\hosts` {
			t.Errorf("unexpected host table %s", cfg.HostTable)
		}
	})

	t.Run("mac resolves but does not validate", func(t *testing.T) {
		cfg, err := Resolve(platform.Mac)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if err := cfg.Validate(); !verrors.Is(err, verrors.ErrUnsupportedPlatform) {
			t.Errorf("expected unsupported platform, got %v", err)
		}
	})

	t.Run("invalid platform name", func(t *testing.T) {
		if _, err := Resolve(platform.Linux, Layer{Platform: "beos"}); err == nil {
			t.Error("expected error for unknown platform")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		Platform:       platform.Linux,
		SitesRoot:      "/var/www",
		SitesAvailable: "/etc/apache2/sites-available",
		HostTable:      "/etc/hosts",
		ServerRoot:     "/etc/apache2",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Config) Config
		want   error
	}{
		{"relative sites root", func(c Config) Config { c.SitesRoot = "www"; return c }, verrors.ErrRelativePath},
		{"empty hosts path", func(c Config) Config { c.HostTable = ""; return c }, verrors.ErrRelativePath},
		{"relative sites-available", func(c Config) Config { c.SitesAvailable = "./sites"; return c }, verrors.ErrRelativePath},
		{"windows path on linux", func(c Config) Config { c.ServerRoot = `C:\xampp`; return c }, verrors.ErrRelativePath},
		{"unknown platform", func(c Config) Config { c.Platform = platform.Unknown; return c }, verrors.ErrUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if !verrors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("value semantics", func(t *testing.T) {
		copied := valid
		copied.SitesRoot = "/elsewhere"
		if valid.SitesRoot != "/var/www" {
			t.Error("copy should not affect the original")
		}
	})
}
