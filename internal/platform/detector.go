// Package platform centralizes everything that differs between the
// host operating systems vhostsync runs on: which platform is active,
// its default file locations and its path conventions.
//
// No other package looks at runtime.GOOS; they receive a Platform value
// through config.Config instead.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform identifies a host operating system family.
type Platform int

const (
	Unknown Platform = iota
	Linux
	Windows
	// Mac is recognized so it can be reported by name, but it is not supported.
	Mac
)

// String returns the lowercase platform name.
func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case Mac:
		return "mac"
	default:
		return "unknown"
	}
}

// Supported reports whether operations may touch the filesystem on p.
func (p Platform) Supported() bool {
	return p == Linux || p == Windows
}

// Parse converts a platform name (as written in config files, environment
// variables and flags) to a Platform.
func Parse(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return Linux, nil
	case "windows":
		return Windows, nil
	case "mac", "macos", "darwin":
		return Mac, nil
	default:
		return Unknown, fmt.Errorf("unknown platform: %q (available: linux, windows)", name)
	}
}

// Detect returns the platform of the running process.
func Detect() Platform {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	case "darwin":
		return Mac
	default:
		return Unknown
	}
}

// Paths contains the file locations vhostsync works with.
type Paths struct {
	SitesRoot      string // parent of every site's content directory
	SitesAvailable string // directory (Linux) or shared declarations file (Windows)
	HostTable      string // the OS hosts file
	ServerRoot     string // Apache installation directory
}

// Defaults returns the default paths for p, probing the filesystem to tell
// Debian-style from RHEL-style Apache layouts.
func Defaults(p Platform) (Paths, error) {
	return defaultsWith(p, pathExists)
}

func defaultsWith(p Platform, exists func(string) bool) (Paths, error) {
	switch p {
	case Linux:
		return detectLinuxPaths(exists), nil
	case Windows:
		return windowsPaths(), nil
	default:
		return Paths{}, fmt.Errorf("unsupported platform: %s", p)
	}
}

// detectLinuxPaths prefers the Debian/Ubuntu layout and falls back to it
// when neither layout is installed, so ServerNotInstalled is reported later.
func detectLinuxPaths(exists func(string) bool) Paths {
	if !exists("/etc/apache2") && exists("/etc/httpd") {
		return Paths{
			SitesRoot:      "/var/www",
			SitesAvailable: "/etc/httpd/conf.d",
			HostTable:      "/etc/hosts",
			ServerRoot:     "/etc/httpd",
		}
	}
	return Paths{
		SitesRoot:      "/var/www",
		SitesAvailable: "/etc/apache2/sites-available",
		HostTable:      "/etc/hosts",
		ServerRoot:     "/etc/apache2",
	}
}

// windowsPaths are the XAMPP defaults.
func windowsPaths() Paths {
	return Paths{
		SitesRoot:      `C:\xampp\htdocs`,
		SitesAvailable: `C:\xampp\apache\conf\extra\httpd-vhosts.conf`,
		HostTable:      `C:\Windows\System32\drivers\etc\hosts`,
		ServerRoot:     `C:\xampp\apache`,
	}
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Describe returns a string describing the current process platform.
func Describe() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
