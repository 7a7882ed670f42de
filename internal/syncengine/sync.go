// Package syncengine implements spec.md §4.5: sync (converting dependency
// violations into declared dependencies), prune (the minimal dependency
// set consistent with the code), and comparing two configurations for
// exact-mode unused-dependency reporting.
package syncengine

import (
	"context"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
)

// Sync re-runs the boundary checker and, for every DependencyError it
// produces, adds the missing dependency to the source module's depends_on.
// It returns the updated configuration; the caller is responsible for
// persisting it (config.SaveTOML). Per spec.md §8, the first check() run
// after a successful sync reports no DependencyError (interface/visibility
// errors may remain).
func Sync(ctx context.Context, projectRoot string, cfg *config.ProjectConfig) (*config.ProjectConfig, error) {
	updated := cloneConfig(cfg)

	c := check.NewChecker(projectRoot, updated)
	res, err := c.Run(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range res.Diagnostics {
		if d.Kind != diagnostic.KindDependencyError {
			continue
		}
		m := updated.ModuleByPath(d.SourceModule)
		if m == nil {
			continue
		}
		if _, ok := m.HasDependency(d.InvalidModule); ok {
			continue
		}
		m.DependsOn = append(m.DependsOn, config.Dependency{Path: d.InvalidModule})
	}

	return updated, nil
}

// Prune clears every module's declared dependencies and re-runs Sync,
// yielding the minimal dependency declaration set consistent with the
// code (spec.md §4.5 "Prune").
func Prune(ctx context.Context, projectRoot string, cfg *config.ProjectConfig) (*config.ProjectConfig, error) {
	cleared := cloneConfig(cfg)
	for i := range cleared.Modules {
		cleared.Modules[i].DependsOn = nil
	}
	return Sync(ctx, projectRoot, cleared)
}

func cloneConfig(cfg *config.ProjectConfig) *config.ProjectConfig {
	clone := *cfg
	clone.Modules = make([]config.ModuleConfig, len(cfg.Modules))
	for i, m := range cfg.Modules {
		mc := m
		mc.DependsOn = append([]config.Dependency(nil), m.DependsOn...)
		mc.Tags = append([]string(nil), m.Tags...)
		mc.Visibility = append([]string(nil), m.Visibility...)
		clone.Modules[i] = mc
	}
	clone.SourceRoots = append([]string(nil), cfg.SourceRoots...)
	clone.Exclude = append([]string(nil), cfg.Exclude...)
	clone.Layers = append([]string(nil), cfg.Layers...)
	return &clone
}
