// Package config handles loading and parsing the dashboard's configuration file.
//
// # Overview
//
// This package reads a small TOML file to discover the INTALKS backend's API
// endpoint, the websocket push endpoint, and a handful of local paths. Every
// field is optional; the dashboard works out-of-the-box against a backend on
// the default local port.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/intalksdash/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/intalksdash/config.toml
//   - API endpoint: 127.0.0.1:8000
//   - Socket URL: ws://<api_base>/socket (derived)
//   - Timezone: Asia/Kolkata
//   - Tick interval: 30 seconds
//   - Export directory: ~/Downloads
//   - Log file: ~/.local/state/intalksdash/intalksdash.log
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "127.0.0.1:8000"
//	socket_url = "ws://127.0.0.1:8000/socket"
//	timezone = "Asia/Kolkata"
//	tick_seconds = 30
//	export_dir = "~/Downloads"
//	log_path = "~/.local/state/intalksdash/intalksdash.log"
//
// All fields are optional. Tilde expansion is performed automatically on
// paths. When socket_url is omitted it is derived from api_base, stripping
// any http:// or https:// scheme first.
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
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
