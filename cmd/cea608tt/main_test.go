package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()
	root := newRootCommand()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"convert", "probe"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}
}

func TestConvertCommandDefaults(t *testing.T) {
	t.Parallel()
	cmd := newConvertCommand()
	if got := cmd.Flags().Lookup("format").DefValue; got != "vtt" {
		t.Errorf("default format = %q, want vtt", got)
	}
	if got := cmd.Flags().Lookup("out").DefValue; got != "" {
		t.Errorf("default out dir = %q, want empty", got)
	}
}
