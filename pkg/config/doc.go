// Package config loads dirx configuration with koanf.
//
// Layers, lowest precedence first:
//
//  1. embedded/defaults.toml
//  2. the user file (paths.ConfigFilePath)
//  3. DIRX_ environment variables, with "__" separating section and key
package config
