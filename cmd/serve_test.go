package cmd

import (
	"testing"
)

func TestNewServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	for flag, want := range map[string]string{
		"http-addr":       ":8080",
		"metrics-enabled": "true",
		"metrics-addr":    ":9090",
		"debug":           "false",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("serve command missing --%s flag", flag)
			continue
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", flag, f.DefValue, want)
		}
	}
}

func TestRootCmdHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing %q subcommand", want)
		}
	}
}
