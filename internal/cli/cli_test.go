package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", "lociview")
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "lociview") {
		t.Errorf("cacheDir() = %q, want XDG path", dir)
	}
}

func TestParseFormats(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,pdf", []string{"svg", "png", "pdf"}},
	}
	for _, tc := range cases {
		got := parseFormats(tc.in)
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		base, layout, format, want string
	}{
		{"", "plots/layout.toml", "svg", "plots/layout.svg"},
		{"out/figure", "layout.toml", "png", "out/figure.png"},
		{"out/figure.svg", "layout.toml", "pdf", "out/figure.pdf"},
	}
	for _, tc := range cases {
		if got := outputPath(tc.base, tc.layout, tc.format); got != tc.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q",
				tc.base, tc.layout, tc.format, got, tc.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"plot", "joint", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}
