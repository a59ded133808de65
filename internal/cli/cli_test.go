package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pklampros/timelab/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, tex", []string{"svg", "tex"}},
		{"json,tex,svg", []string{"json", "tex", "svg"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRootCommandStructure(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "timelab" {
		t.Errorf("root use = %q", root.Use)
	}
	want := map[string]bool{"render": false, "layout": false, "cache": false}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestApplyConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelab.toml")
	cfg := `
direction = "down"
width = 800
formats = ["svg", "tex"]

[style]
dot_palette = ["#1b9e77", "#d95f02"]
show_border = true

[domain]
from = "2024-01-01T00:00:00Z"
to = "2024-06-01T00:00:00Z"

[latex]
reproducible = true
`
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{}
	if err := applyConfigFile(path, &opts); err != nil {
		t.Fatal(err)
	}

	if opts.Direction != "down" || opts.Width != 800 {
		t.Errorf("layout settings not applied: %+v", opts)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("formats = %v", opts.Formats)
	}
	if len(opts.DotPalette) != 2 || !opts.ShowBorder {
		t.Error("style settings not applied")
	}
	if opts.DomainFrom == "" || opts.DomainTo == "" {
		t.Error("domain not applied")
	}
	if !opts.Reproducible {
		t.Error("latex reproducible flag not applied")
	}
	// Height was not in the file and must stay untouched.
	if opts.Height != 0 {
		t.Errorf("height = %v, want 0", opts.Height)
	}
}

func TestApplyConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("direction = ["), 0644); err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{}
	if err := applyConfigFile(path, &opts); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestRenderCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "events.yaml")
	eventsYAML := `
- time: 2024-03-02T09:00:00Z
  text: kickoff
- time: 2024-03-08T17:00:00Z
  text: release
`
	if err := os.WriteFile(input, []byte(eventsYAML), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out.svg")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-o", output, "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not an svg document")
	}
}

func TestLayoutCommandWritesJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "events.json")
	if err := os.WriteFile(input, []byte(`[{"time": "2024-03-02", "text": "demo"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "layout.json")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"layout", input, "-o", output, "-d", "down"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"direction": "down"`) {
		t.Error("layout export missing direction")
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"cache", "path"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "timelab")
	if strings.TrimSpace(out.String()) != want {
		t.Errorf("cache path = %q, want %q", out.String(), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	shard := filepath.Join(dir, "timelab", "artifact", "ab")
	if err := os.MkdirAll(shard, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shard, "entry.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	n, err := countEntries(filepath.Join(dir, "timelab"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("entries after clear = %d, want 0", n)
	}
}
