// Package paths provides centralized path handling for dirx.
//
// Directories follow the XDG Base Directory layout:
//
//   - Config: $XDG_CONFIG_HOME/dirx (dirx.toml)
//   - State: $XDG_STATE_HOME/dirx (catalog.json, dirx.log)
//
// # Environment Variables
//
//   - DIRX_CONFIG_DIR: override the config directory
//   - DIRX_STATE_DIR: override the state directory
//
// Lookups are done on every call so tests can redirect them with t.Setenv.
package paths
