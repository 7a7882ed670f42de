package sarifreport_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/sarifreport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_OneRunHoldsAllResults(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.DependencyError("a/x.py", 3, "a", "b", []string{"c"}, false),
		diagnostic.Warning("", 0, "distribution \"pyyaml\" is never imported"),
	}

	report, err := sarifreport.Build(diags)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Len(t, report.Runs[0].Results, 2)
}

func TestWriteTo_ProducesValidJSON(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.DependencyError("a/x.py", 3, "a", "b", []string{"c"}, false),
	}

	var buf bytes.Buffer
	require.NoError(t, sarifreport.WriteTo(&buf, diags))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2.1.0", decoded["version"])
}

func TestBuild_EmptyDiagnosticsStillProducesRun(t *testing.T) {
	report, err := sarifreport.Build(nil)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}
