package config

import (
	"time"
)

// Config is the full dirx configuration.
type Config struct {
	History   History   `koanf:"history" toml:"history"`
	Hydration Hydration `koanf:"hydration" toml:"hydration"`
	Matching  Matching  `koanf:"matching" toml:"matching"`
	Export    Export    `koanf:"export" toml:"export"`
	Logging   Logging   `koanf:"logging" toml:"logging"`
}

// History bounds the two undo stacks.
type History struct {
	TreeDepth  int `koanf:"tree_depth" toml:"tree_depth"`
	MacroDepth int `koanf:"macro_depth" toml:"macro_depth"`
}

// Hydration controls content loading after import.
type Hydration struct {
	Workers           int      `koanf:"workers" toml:"workers"`
	NoLinesExtensions []string `koanf:"no_lines_extensions" toml:"no_lines_extensions"`
}

// Matching controls pattern evaluation.
type Matching struct {
	RegexTimeoutMS int `koanf:"regex_timeout_ms" toml:"regex_timeout_ms"`
}

// RegexTimeout returns the regex guard as a duration. Zero means unbounded.
func (m Matching) RegexTimeout() time.Duration {
	if m.RegexTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(m.RegexTimeoutMS) * time.Millisecond
}

// Export controls the merged export document.
type Export struct {
	HeaderComment string `koanf:"header_comment" toml:"header_comment"`
	IncludeTree   bool   `koanf:"include_tree" toml:"include_tree"`
}

// Logging controls the rotated log file.
type Logging struct {
	FileEnabled bool `koanf:"file_enabled" toml:"file_enabled"`
	MaxSizeMB   int  `koanf:"max_size_mb" toml:"max_size_mb"`
	MaxBackups  int  `koanf:"max_backups" toml:"max_backups"`
	MaxAgeDays  int  `koanf:"max_age_days" toml:"max_age_days"`
}

// NoLinesSet returns the no-lines extensions as a lowercase lookup set.
func (h Hydration) NoLinesSet() map[string]bool {
	set := make(map[string]bool, len(h.NoLinesExtensions))
	for _, ext := range h.NoLinesExtensions {
		set[normalizeExt(ext)] = true
	}
	return set
}
