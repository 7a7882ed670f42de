// Package sarifreport renders a diagnostic list as a SARIF log (spec.md
// §6 "report"/"export"), the format consumers like GitHub code scanning
// and most editors understand natively.
package sarifreport

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/modbound/modbound/internal/diagnostic"
)

const (
	toolName           = "modbound"
	informationURI     = "https://github.com/modbound/modbound"
	unanchoredArtifact = "<project>"
)

// Build converts diagnostics into a SARIF 2.1.0 report with a single run.
func Build(diags []diagnostic.Diagnostic) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, err
	}

	run := sarif.NewRunWithInformationURI(toolName, informationURI)
	seenRules := make(map[string]bool)

	for _, d := range diags {
		ruleID := d.Kind.String()
		if !seenRules[ruleID] {
			run.AddRule(ruleID).WithDescription(ruleDescription(d.Kind))
			seenRules[ruleID] = true
		}

		level := "warning"
		if d.Kind.IsError() {
			level = "error"
		}

		file := d.File
		if file == "" {
			file = unanchoredArtifact
		}
		line := d.Line
		if line <= 0 {
			line = 1
		}

		run.CreateResultForRule(ruleID).
			WithLevel(level).
			WithMessage(sarif.NewTextMessage(d.String())).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(file)).
						WithRegion(sarif.NewSimpleRegion(line, line)),
				),
			)
	}

	report.AddRun(run)
	return report, nil
}

// WriteTo builds a report and writes it as JSON to w.
func WriteTo(w io.Writer, diags []diagnostic.Diagnostic) error {
	report, err := Build(diags)
	if err != nil {
		return err
	}
	return report.Write(w)
}

func ruleDescription(kind diagnostic.Kind) string {
	switch kind {
	case diagnostic.KindDependencyError:
		return "An import crosses a module boundary without a declared dependency."
	case diagnostic.KindInterfaceError:
		return "An import reaches into a strict module's internals instead of its public interface."
	case diagnostic.KindVisibilityError:
		return "An import reaches a module not visible to the importing module."
	case diagnostic.KindCircularDependencyError:
		return "A cycle exists in the declared module dependency graph."
	case diagnostic.KindConfigurationError:
		return "The project configuration is invalid or inconsistent with the source tree."
	case diagnostic.KindExternalDependencyError:
		return "An external import has no corresponding declared distribution."
	case diagnostic.KindUnusedDependencyError:
		return "A module declares a dependency that none of its imports uses."
	default:
		return "A non-fatal finding that does not affect the exit code."
	}
}
