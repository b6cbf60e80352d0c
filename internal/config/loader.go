package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are separated
// by a double underscore: REFLEX_TIMING__CUE_INTERVAL=2s.
const EnvPrefix = "REFLEX_"

// LoadReflex loads the reflex trainer configuration.
// The embedded defaults are layered with the first override file found and
// then with REFLEX_* environment variables.
// File search order: customPath -> ~/.reflex/configs/reflex.yaml -> ./configs/reflex.yaml
func LoadReflex(customPath string) (ReflexConfig, error) {
	k := koanf.New(".")
	if err := k.Load(embeddedProvider(defaultReflexYAML), yaml.Parser()); err != nil {
		return DefaultReflexConfig(), fmt.Errorf("config: cannot parse defaults: %w", err)
	}
	if err := loadOverrides(k, customPath); err != nil {
		return DefaultReflexConfig(), err
	}

	var cfg ReflexConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return DefaultReflexConfig(), fmt.Errorf("config: cannot apply overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadOverrides merges file and environment settings into k.
func loadOverrides(k *koanf.Koanf, customPath string) error {
	// A custom path must load; the well-known locations are best effort.
	if customPath != "" {
		if err := k.Load(file.Provider(customPath), yaml.Parser()); err != nil {
			return fmt.Errorf("config: failed to load %s: %w", customPath, err)
		}
	} else {
		for _, path := range searchPaths() {
			if err := k.Load(file.Provider(path), yaml.Parser()); err == nil {
				break
			}
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return fmt.Errorf("config: failed to read environment: %w", err)
	}
	return nil
}

// embeddedProvider feeds the embedded default YAML to koanf.
type embeddedProvider []byte

func (p embeddedProvider) ReadBytes() ([]byte, error) {
	return p, nil
}

func (p embeddedProvider) Read() (map[string]any, error) {
	return nil, errors.New("config: embedded provider needs a parser")
}

// searchPaths returns the well-known override locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath("reflex.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "reflex.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reflex", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
