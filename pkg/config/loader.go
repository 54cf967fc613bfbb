package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/arthur-debert/dirx/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	dirxerrors "github.com/arthur-debert/dirx/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DIRX_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load reads defaults, the user file at paths.ConfigFilePath() and DIRX_ env vars.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFilePath())
}

// LoadFrom is Load with an explicit user config path. A missing file is not an error.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, dirxerrors.Wrap(err, dirxerrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, dirxerrors.Wrapf(err, dirxerrors.ErrConfigParse, "failed to load config from %s", configPath)
			}
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, dirxerrors.Wrap(err, dirxerrors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, dirxerrors.Wrap(err, dirxerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	normalize(&cfg)
	return &cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := LoadFrom("")
	if err != nil {
		// embedded defaults are part of the binary
		panic(err)
	}
	return cfg
}

// envKey maps DIRX_HISTORY__TREE_DEPTH to history.tree_depth.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func normalize(cfg *Config) {
	if cfg.History.TreeDepth < 1 {
		cfg.History.TreeDepth = 1
	}
	if cfg.History.MacroDepth < 1 {
		cfg.History.MacroDepth = 1
	}
	if cfg.Hydration.Workers < 1 {
		cfg.Hydration.Workers = 1
	}
	for i, ext := range cfg.Hydration.NoLinesExtensions {
		cfg.Hydration.NoLinesExtensions[i] = normalizeExt(ext)
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
