// Package config builds the immutable path configuration that every
// vhostsync component receives in its constructor.
//
// # Configuration Sources
//
// Values are layered, lowest precedence first:
//   - Platform defaults from the platform package (XAMPP on Windows,
//     Debian or RHEL Apache layout on Linux)
//   - The YAML file at ~/.config/vhostsync/config.yaml
//   - VHOSTSYNC_* environment variables
//   - Command-line flags
//
// Example config.yaml:
//
//	platform: linux
//	sites_root: /srv/www
//	sites_available: /etc/apache2/sites-available
//	hosts_file: /etc/hosts
//	server_root: /etc/apache2
//
// Environment variables use the same names in upper case:
//
//	VHOSTSYNC_PLATFORM=windows
//	VHOSTSYNC_SITES_ROOT='D:\www'
//
// # Usage
//
//	cfg, err := config.Load(config.Layer{HostTable: flagHosts})
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err // UNSUPPORTED_PLATFORM or RELATIVE_PATH
//	}
//
// Config is a value type; components keep their own copy, so there is no
// process-wide mutable state.
package config
