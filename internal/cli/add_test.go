package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/vhostsync/internal/config"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/platform"
)

// linuxConfig lays out a Debian-style tree under a temp dir with an
// existing server root, sites-available and host table.
func linuxConfig(t *testing.T, hostsContent string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Platform:       platform.Linux,
		SitesRoot:      filepath.Join(dir, "www"),
		SitesAvailable: filepath.Join(dir, "apache2", "sites-available"),
		HostTable:      filepath.Join(dir, "hosts"),
		ServerRoot:     filepath.Join(dir, "apache2"),
	}
	if err := os.MkdirAll(cfg.SitesAvailable, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.HostTable, []byte(hostsContent), 0644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunAdd(t *testing.T) {
	tests := []struct {
		name       string
		domain     string
		hosts      string
		setupFlags func()
		wantErr    bool
		errCode    verrors.ErrorCode
		wantOutput []string
		validate   func(*testing.T, config.Config)
	}{
		{
			name:  "provision new site",
			hosts: "127.0.0.1\tlocalhost\n",
			setupFlags: func() {
				addFlags.rewrite = true
			},
			wantOutput: []string{"Site blog provisioned"},
			validate: func(t *testing.T, cfg config.Config) {
				conf := readFile(t, filepath.Join(cfg.SitesAvailable, "blog.conf"))
				if !strings.Contains(conf, "ServerName blog.test") {
					t.Errorf("declaration missing ServerName:\n%s", conf)
				}
				if !strings.Contains(conf, "RewriteEngine on") {
					t.Errorf("declaration missing RewriteEngine:\n%s", conf)
				}
				if info, err := os.Stat(filepath.Join(cfg.SitesRoot, "blog")); err != nil || !info.IsDir() {
					t.Errorf("site directory not created: %v", err)
				}
				if got := readFile(t, cfg.HostTable); got != "127.0.0.1\tlocalhost\n127.0.0.1\tblog.test" {
					t.Errorf("host table = %q", got)
				}
			},
		},
		{
			name:  "public subfolder and custom address",
			hosts: "127.0.0.1\tlocalhost\n",
			setupFlags: func() {
				addFlags.public = "public"
				addFlags.ip = "10.0.0.5"
			},
			validate: func(t *testing.T, cfg config.Config) {
				if _, err := os.Stat(filepath.Join(cfg.SitesRoot, "blog", "public")); err != nil {
					t.Errorf("public subfolder not created: %v", err)
				}
				if got := readFile(t, cfg.HostTable); !strings.HasSuffix(got, "10.0.0.5\tblog.test") {
					t.Errorf("host table = %q", got)
				}
			},
		},
		{
			name:       "domain already in host table is a warning",
			hosts:      "127.0.0.1\tlocalhost\n127.0.0.1\tblog.test\n",
			wantOutput: []string{"provisioned with warnings"},
			validate: func(t *testing.T, cfg config.Config) {
				if _, err := os.Stat(filepath.Join(cfg.SitesAvailable, "blog.conf")); err != nil {
					t.Errorf("declaration should be kept: %v", err)
				}
				if got := readFile(t, cfg.HostTable); got != "127.0.0.1\tlocalhost\n127.0.0.1\tblog.test\n" {
					t.Errorf("host table changed: %q", got)
				}
			},
		},
		{
			name:  "invalid address",
			hosts: "",
			setupFlags: func() {
				addFlags.ip = "256.0.0.1"
			},
			wantErr: true,
			errCode: verrors.ErrCodeInvalidAddress,
		},
		{
			name:    "invalid domain",
			domain:  "localhost",
			hosts:   "",
			wantErr: true,
			errCode: verrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := linuxConfig(t, tt.hosts)
			h := NewTestHelper(t, cfg)
			if tt.setupFlags != nil {
				tt.setupFlags()
			}

			domain := tt.domain
			if domain == "" {
				domain = "blog.test"
			}
			err := runAdd(nil, []string{domain})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runAdd() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && verrors.CodeOf(err) != tt.errCode {
				t.Errorf("error code = %s, want %s", verrors.CodeOf(err), tt.errCode)
			}

			out := h.Output()
			for _, want := range tt.wantOutput {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestRunAddRequiresRoot(t *testing.T) {
	cfg := linuxConfig(t, "")
	h := NewTestHelper(t, cfg)
	h.SetRootAccess(false)

	err := runAdd(nil, []string{"blog.test"})
	if !errors.Is(err, verrors.ErrPermissionDenied) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.SitesAvailable, "blog.conf")); !os.IsNotExist(statErr) {
		t.Error("nothing should be written without root")
	}
}

func TestRunAddDryRun(t *testing.T) {
	cfg := linuxConfig(t, "127.0.0.1\tlocalhost\n")
	h := NewTestHelper(t, cfg)
	h.SetRootAccess(false)
	dryRun = true

	if err := runAdd(nil, []string{"blog.test"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	out := h.Output()
	for _, want := range []string{"Dry run for blog.test", "create_file", "create_directory", "append_host", "<VirtualHost 127.0.0.1:80>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.SitesAvailable, "blog.conf")); !os.IsNotExist(err) {
		t.Error("dry run wrote a declaration")
	}
	if got := readFile(t, cfg.HostTable); got != "127.0.0.1\tlocalhost\n" {
		t.Errorf("dry run changed the host table: %q", got)
	}
}

func TestRunAddStopsWhenDeclared(t *testing.T) {
	cfg := linuxConfig(t, "")
	h := NewTestHelper(t, cfg)

	if err := os.WriteFile(filepath.Join(cfg.SitesAvailable, "blog.conf"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runAdd(nil, []string{"blog.test"})
	if !errors.Is(err, verrors.ErrAlreadyExists) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
	if got := readFile(t, filepath.Join(cfg.SitesAvailable, "blog.conf")); got != "keep" {
		t.Errorf("existing declaration overwritten: %q", got)
	}
	if got := readFile(t, cfg.HostTable); got != "" {
		t.Errorf("host table changed after a stop: %q", got)
	}
	if !strings.Contains(h.Output(), "server") {
		t.Error("completed steps not displayed")
	}
}

func TestRunAddJSON(t *testing.T) {
	cfg := linuxConfig(t, "127.0.0.1\tblog.test\n")
	h := NewTestHelper(t, cfg)
	jsonOutput = true

	if err := runAdd(nil, []string{"blog.test"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	var got addResult
	if err := json.Unmarshal(h.Out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, h.Out.String())
	}
	if !got.Success || !got.Partial {
		t.Errorf("success=%v partial=%v, want true true", got.Success, got.Partial)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("warnings = %v", got.Warnings)
	}
	if got.Result == nil || got.Result.SiteID != "blog" {
		t.Errorf("result = %+v", got.Result)
	}
}

func TestRunAddJSONFailureIsReported(t *testing.T) {
	cfg := linuxConfig(t, "")
	cfg.ServerRoot = filepath.Join(t.TempDir(), "missing")
	h := NewTestHelper(t, cfg)
	jsonOutput = true

	err := runAdd(nil, []string{"blog.test"})
	var reported reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reportedError, got %T %v", err, err)
	}
	if !errors.Is(err, verrors.ErrServerNotInstalled) {
		t.Errorf("expected server-not-installed, got %v", err)
	}

	var got addResult
	if err := json.Unmarshal(h.Out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Success || got.Code != string(verrors.ErrCodeServerNotInstalled) {
		t.Errorf("success=%v code=%q", got.Success, got.Code)
	}
}

func TestRunAddReload(t *testing.T) {
	cfg := linuxConfig(t, "")
	h := NewTestHelper(t, cfg)
	reload = true

	if err := runAdd(nil, []string{"blog.test"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	var cmds []string
	for _, c := range h.MockExecutor.Calls {
		cmds = append(cmds, c.String())
	}
	joined := strings.Join(cmds, "\n")
	if !strings.Contains(joined, "apache2ctl configtest") {
		t.Errorf("config test not run, calls:\n%s", joined)
	}
	if !strings.Contains(joined, "systemctl reload apache2") {
		t.Errorf("reload not run, calls:\n%s", joined)
	}
}
