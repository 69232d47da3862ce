// Package config handles loading and parsing gantry configuration files.
//
// # Overview
//
// This package reads gantry's TOML configuration to discover the farmd API
// endpoint, the preferred printer, and the refresh behavior. All fields are
// optional; gantry works out-of-the-box against a farmd on localhost.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gantry/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// api_bind is the one exception to rule 3 and 4: Load leaves it empty when
// the file does not set it, so the caller can try mDNS discovery before
// falling back to DefaultAPIBind.
//
// # Default Values
//
//   - Config file: ~/.config/gantry/config.toml
//   - API endpoint: 127.0.0.1:7465 (DefaultAPIBind, applied by the caller)
//   - Poll interval: 2 seconds
//   - Stream: enabled
//
// # TOML Format
//
// Example gantry config.toml:
//
//	api_bind = "127.0.0.1:7465"
//	printer = "voron-1"
//	poll_seconds = 2
//	stream = true
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	client, err := farmd.NewClient(cfg.APIBind)
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. Command-line
// flags that cover the same fields are applied by the caller on top of the
// loaded struct.
package config
