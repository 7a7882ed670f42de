package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
)

// UnmarshalTOML implements toml.Unmarshaler so a depends_on entry may be
// either a bare string ("core", shorthand for {path = "core"}) or a table
// ({path = "core", deprecated = true}), per spec.md §6.
func (d *Dependency) UnmarshalTOML(raw interface{}) error {
	switch v := raw.(type) {
	case string:
		d.Path = v
		return nil
	case map[string]interface{}:
		if path, ok := v["path"].(string); ok {
			d.Path = path
		}
		if dep, ok := v["deprecated"].(bool); ok {
			d.Deprecated = dep
		}
		return nil
	default:
		return fmt.Errorf("depends_on entry must be a string or table, got %T", raw)
	}
}

// LoadTOML reads and parses a project configuration file at path.
func LoadTOML(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseTOML(data)
}

// ParseTOML parses raw TOML bytes into a ProjectConfig and applies
// defaults + structural validation.
func ParseTOML(data []byte) (*ProjectConfig, error) {
	cfg := &ProjectConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("parsing TOML: %s", err)}
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExcludePatterns...)
	}
	for i := range cfg.Modules {
		if len(cfg.Modules[i].Visibility) == 0 {
			cfg.Modules[i].Visibility = []string{"*"}
		}
	}
}

// SaveTOML serializes cfg and writes it to path, overwriting any existing
// file. Dependency entries are always written as tables for determinism,
// even though the string shorthand is accepted on load.
func SaveTOML(path string, cfg *ProjectConfig) error {
	data, err := MarshalTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// MarshalTOML serializes cfg to TOML bytes.
func MarshalTOML(cfg *ProjectConfig) ([]byte, error) {
	data, err := toml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
