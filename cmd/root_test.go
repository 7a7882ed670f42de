package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	oldRoot := rootCmd
	defer func() { rootCmd = oldRoot }()

	tests := []struct {
		name          string
		args          []string
		expectedError bool
	}{
		{name: "no arguments", args: []string{}, expectedError: false},
		{name: "help command", args: []string{"--help"}, expectedError: false},
		{name: "invalid command", args: []string{"invalidcommand"}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd = &cobra.Command{Use: "modbound"}
			rootCmd.AddCommand(&cobra.Command{Use: "validcommand"})

			rootCmd.SetArgs(tt.args)
			err := Execute()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRootCmdPersistentPreRun(t *testing.T) {
	tests := []struct {
		name           string
		disableMetrics bool
	}{
		{name: "metrics enabled", disableMetrics: false},
		{name: "metrics disabled", disableMetrics: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().Bool("disable-metrics", tt.disableMetrics, "")

			rootCmd.PersistentPreRun(cmd, []string{})

			disableMetrics, _ := cmd.Flags().GetBool("disable-metrics")
			assert.Equal(t, tt.disableMetrics, disableMetrics)
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "modbound"}
	cmd.AddCommand(rootCmd)

	configFlag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "modbound.toml", configFlag.DefValue)
}

func TestRootCmdOutput(t *testing.T) {
	oldRoot := rootCmd
	defer func() { rootCmd = oldRoot }()

	rootCmd = &cobra.Command{Use: "modbound"}
	rootCmd.AddCommand(&cobra.Command{Use: "validcommand"})

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetArgs([]string{"--help"})
	_ = rootCmd.Execute()

	assert.Contains(t, b.String(), "Usage:\n  modbound [command]")
}
