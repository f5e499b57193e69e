package executor

import (
	"errors"
	"strings"
	"testing"
)

func TestSystemExecutor_Execute(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("echo command", func(t *testing.T) {
		output, err := exec.Execute("echo", "hello")
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if string(output) != "hello\n" {
			t.Errorf("expected 'hello\\n', got '%s'", string(output))
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.Execute("nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
	})
}

func TestSystemExecutor_LookPath(t *testing.T) {
	exec := NewSystemExecutor()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Fatalf("LookPath failed: %v", err)
	}
	if _, err := exec.LookPath("nonexistent-command-xyz-12345"); err == nil {
		t.Error("expected error for nonexistent command")
	}
}

func TestApache_ConfigTest(t *testing.T) {
	t.Run("syntax ok", func(t *testing.T) {
		mock := &MockExecutor{}
		if err := NewApache(mock).ConfigTest(); err != nil {
			t.Fatalf("ConfigTest failed: %v", err)
		}
		if len(mock.Calls) != 1 || mock.Calls[0].String() != "apache2ctl configtest" {
			t.Errorf("unexpected calls: %v", mock.Calls)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("AH00526: Syntax error on line 3\n"), errors.New("exit status 1")
			},
		}
		err := NewApache(mock).ConfigTest()
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "AH00526") {
			t.Errorf("error should carry command output, got %v", err)
		}
	})
}

func TestApache_Reload(t *testing.T) {
	t.Run("systemctl", func(t *testing.T) {
		mock := &MockExecutor{}
		if err := NewApache(mock).Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		if len(mock.Calls) != 1 || mock.Calls[0].String() != "systemctl reload apache2" {
			t.Errorf("unexpected calls: %v", mock.Calls)
		}
	})

	t.Run("falls back to graceful", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				if name == "systemctl" {
					return []byte("System has not been booted with systemd"), errors.New("exit status 1")
				}
				return nil, nil
			},
		}
		if err := NewApache(mock).Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		if len(mock.Calls) != 2 || mock.Calls[1].String() != "apache2ctl graceful" {
			t.Errorf("unexpected calls: %v", mock.Calls)
		}
	})

	t.Run("both fail", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("apache2 is not running"), errors.New("exit status 1")
			},
		}
		err := NewApache(mock).Reload()
		if err == nil || !strings.Contains(err.Error(), "apache2 is not running") {
			t.Errorf("expected reload error with output, got %v", err)
		}
	})
}

func TestApache_Installed(t *testing.T) {
	found := &MockExecutor{}
	if !NewApache(found).Installed() {
		t.Error("expected apache2ctl to be found")
	}

	missing := &MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("executable file not found in $PATH")
		},
	}
	if NewApache(missing).Installed() {
		t.Error("expected apache2ctl to be missing")
	}
}

func TestMockExecutor(t *testing.T) {
	mock := &MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			return []byte("mocked output"), nil
		},
	}
	output, err := mock.Execute("apache2ctl", "-S")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if string(output) != "mocked output" {
		t.Errorf("expected 'mocked output', got '%s'", string(output))
	}
	if mock.Calls[0].String() != "apache2ctl -S" {
		t.Errorf("unexpected call %q", mock.Calls[0].String())
	}

	path, err := mock.LookPath("apache2ctl")
	if err != nil || path != "/usr/bin/apache2ctl" {
		t.Errorf("LookPath = %q, %v", path, err)
	}
}
