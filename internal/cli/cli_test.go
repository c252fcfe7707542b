package cli

import (
	"context"
	"io"
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseData(t *testing.T) {
	got, err := parseData("50, 25,75")
	if err != nil {
		t.Fatalf("parseData: %v", err)
	}
	if !reflect.DeepEqual(got, []int{50, 25, 75}) {
		t.Errorf("parseData = %v", got)
	}

	if got, err := parseData(""); err != nil || got != nil {
		t.Errorf("empty input: got %v, %v", got, err)
	}

	if _, err := parseData("1,two,3"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "tree"},
		{"out", "out"},
		{"out.svg", "out"},
		{"out.png", "out"},
		{"archive.tar", "archive.tar"}, // not a known format, keep as-is
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"sample": false, "layout": false, "render": false,
		"demo": false, "serve": false, "cache": false, "completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandAttachesLogger(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetContext(context.Background())

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Fatalf("PersistentPreRunE: %v", err)
	}
	if got := loggerFromContext(root.Context()); got != c.Logger {
		t.Error("command context does not carry the CLI logger")
	}
}

func TestBaseOptionsFromConfig(t *testing.T) {
	c := &CLI{
		Logger: newLogger(io.Discard, LogInfo),
		Config: Config{
			Strategy: "radial",
			Style:    "dark",
			Formats:  []string{"png", "json"},
		},
	}
	opts := c.baseOptions()
	if opts.Strategy != "radial" || opts.Style != "dark" {
		t.Errorf("opts = %+v", opts)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"png", "json"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}

	// Mutating the returned slice must not touch the config.
	opts.Formats[0] = "svg"
	if c.Config.Formats[0] != "png" {
		t.Error("baseOptions aliased the config formats slice")
	}
}
