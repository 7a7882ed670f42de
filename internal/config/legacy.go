package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// legacyYAML is the pre-existing tag-based constraints format: each tag
// names the modules that carry it, and lists the tags it may depend on.
// spec.md §9 "Open questions": this is a migration format only, never the
// live representation.
type legacyYAML struct {
	SourceRoots []string `yaml:"source_roots"`
	Constraints map[string]struct {
		DependsOn []string `yaml:"depends_on"`
	} `yaml:"constraints"`
	ModuleTags map[string][]string `yaml:"module_tags"`
}

// LoadLegacyYAML parses the pre-existing tag-based constraints YAML format
// and converts it to the per-module depends_on form. Every module that
// carries a tag inherits, as its own depends_on, the union of modules
// carrying any tag that the tag-level constraint allows.
func LoadLegacyYAML(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading legacy config %s: %w", path, err)
	}

	var raw legacyYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("parsing legacy YAML: %s", err)}
	}

	tagToModules := make(map[string][]string)
	for modPath, tags := range raw.ModuleTags {
		for _, tag := range tags {
			tagToModules[tag] = append(tagToModules[tag], modPath)
		}
	}

	cfg := &ProjectConfig{SourceRoots: raw.SourceRoots}
	for modPath, tags := range raw.ModuleTags {
		mc := ModuleConfig{Path: modPath, Tags: tags}
		seen := make(map[string]bool)
		for _, tag := range tags {
			constraint, ok := raw.Constraints[tag]
			if !ok {
				continue
			}
			for _, allowedTag := range constraint.DependsOn {
				for _, depModule := range tagToModules[allowedTag] {
					if depModule == modPath || seen[depModule] {
						continue
					}
					seen[depModule] = true
					mc.DependsOn = append(mc.DependsOn, Dependency{Path: depModule})
				}
			}
		}
		cfg.Modules = append(cfg.Modules, mc)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MigrateLegacyYAML loads a legacy YAML config at legacyPath, writes the
// equivalent TOML config to tomlPath, and deletes legacyPath on success.
// Per spec.md §6 "Legacy migration": "the old file is deleted after
// successful write of the new one."
func MigrateLegacyYAML(legacyPath, tomlPath string) (*ProjectConfig, error) {
	cfg, err := LoadLegacyYAML(legacyPath)
	if err != nil {
		return nil, err
	}
	if err := SaveTOML(tomlPath, cfg); err != nil {
		return nil, err
	}
	if err := os.Remove(legacyPath); err != nil {
		return nil, fmt.Errorf("removing legacy config %s: %w", legacyPath, err)
	}
	return cfg, nil
}
