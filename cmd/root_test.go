package cmd

import "testing"

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"impose", "plan", "inspect", "sample", "serve"} {
		sub, _, err := root.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("Expected subcommand %s, got %v (%v)", name, sub, err)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Expected persistent flag --%s", flag)
		}
	}
}
