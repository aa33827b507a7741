package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/isogrid/isogrid/pkg/layout"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "tree", "axes", "serve", "explore", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{layout.FormatJSON}},
		{"json", []string{"json"}},
		{"json,svg", []string{"json", "svg"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSlotArg(t *testing.T) {
	for _, s := range []string{"x", "y", "z"} {
		if _, ok := parseSlotArg(s); !ok {
			t.Errorf("parseSlotArg(%q) rejected a valid slot", s)
		}
	}
	for _, s := range []string{"", "w", "X", "xy"} {
		if _, ok := parseSlotArg(s); ok {
			t.Errorf("parseSlotArg(%q) accepted an invalid slot", s)
		}
	}
}
