package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	err := ValidateFormat("gif")
	if errors.GetCode(err) != errors.ErrCodeUnsupportedFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedFormat)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{ConfigPath: "layout.toml", Range1: "chr1:0-1000"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != 1 {
		t.Errorf("default PNG scale = %v, want 1", opts.PNGScale)
	}
}

func TestOptionsValidation(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing config", Options{Range1: "chr1:0-1000"}, errors.ErrCodeInvalidConfig},
		{"missing range", Options{ConfigPath: "a.toml"}, errors.ErrCodeInvalidRange},
		{"bad range", Options{ConfigPath: "a.toml", Range1: "nope"}, errors.ErrCodeInvalidRange},
		{"bad format", Options{ConfigPath: "a.toml", Range1: "chr1:0-1000",
			Formats: []string{"gif"}}, errors.ErrCodeUnsupportedFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.ValidateAndSetDefaults()
			if errors.GetCode(err) != tc.code {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tc.code)
			}
		})
	}
}

func TestRangeKeyJoint(t *testing.T) {
	opts := Options{ConfigPath: "a.toml", Range1: "chr1:0-1000", Joint: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if got := opts.rangeKey(); got != "chr1:0-1000|chr1:0-1000" {
		t.Errorf("rangeKey = %q, want paired key", got)
	}

	opts.Range2 = "chr2:0-500"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if got := opts.rangeKey(); got != "chr1:0-1000|chr2:0-500" {
		t.Errorf("rangeKey = %q", got)
	}
}

func writeLayout(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "layout.toml")
	layout := `
[[track]]
type = "XAxis"

[[track]]
type = "Spacer"
`
	if err := os.WriteFile(path, []byte(layout), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerExecuteSVG(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(nil, nil)

	res, err := r.Execute(context.Background(), Options{
		ConfigPath: writeLayout(t, dir),
		Range1:     "chr1:0-100,000",
		TempDir:    dir,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	svgOut, ok := res.Artifacts["svg"]
	if !ok {
		t.Fatal("no svg artifact")
	}
	if !strings.Contains(string(svgOut), "<svg") {
		t.Error("artifact is not an SVG document")
	}
	if res.Stats.TrackCount != 2 {
		t.Errorf("track count = %d, want 2", res.Stats.TrackCount)
	}
	if res.ConfigHash == "" {
		t.Error("config hash empty")
	}
}

func TestRunnerArtifactCache(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(store, nil)
	defer r.Close()

	opts := Options{
		ConfigPath: writeLayout(t, dir),
		Range1:     "chr1:0-100000",
		TempDir:    dir,
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ArtifactHit {
		t.Error("first run reported a cache hit")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("second run missed the artifact cache")
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from computed one")
	}

	refreshed, err := r.Execute(context.Background(), Options{
		ConfigPath: opts.ConfigPath,
		Range1:     opts.Range1,
		TempDir:    dir,
		Refresh:    true,
	})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.ArtifactHit {
		t.Error("refresh run served from cache")
	}
}

func TestRunnerExecuteBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte(`[[track]]
type = "Wiggle"
file = "a.wig"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		ConfigPath: path,
		Range1:     "chr1:0-1000",
		TempDir:    dir,
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}
