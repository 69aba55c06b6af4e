package utils

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	mode, err := c.BoundaryMode()
	if err != nil || mode != model.Toroidal {
		t.Fatalf("BoundaryMode = %v, %v; expected toroidal", mode, err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"width": 12, "boundary": "bounded", "frame_rate": 5000000, "pattern": "glider.rle"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Width != 12 || c.Height != DefaultConfig().Height {
		t.Fatalf("size = %dx%d", c.Width, c.Height)
	}
	if c.FrameRate != 5*time.Millisecond || c.Pattern != "glider.rle" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if mode, _ := c.BoundaryMode(); mode != model.Bounded {
		t.Fatalf("boundary = %v", mode)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{width"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"unknown boundary", func(c *Config) { c.Boundary = "klein" }},
		{"headless and window", func(c *Config) { c.Headless, c.Window, c.MaxGenerations = true, true, 3 }},
		{"headless forever", func(c *Config) { c.Headless, c.MaxGenerations = true, 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error for %+v", c)
			}
		})
	}

	c := DefaultConfig()
	c.Width = 0
	if err := c.Validate(); !errors.Is(err, model.ErrAllocation) {
		t.Fatalf("err = %v, expected ErrAllocation", err)
	}
}

func TestBind(t *testing.T) {
	c := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	err := fs.Parse([]string{"-width", "9", "-boundary", "bounded", "-pattern", "p.rle", "-ax", "1", "-ay", "2", "-seed", "5"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Width != 9 || c.Boundary != "bounded" || c.Pattern != "p.rle" || c.AnchorX != 1 || c.AnchorY != 2 || c.Seed != 5 {
		t.Fatalf("flags not applied: %+v", c)
	}
	if c.Height != DefaultConfig().Height {
		t.Fatalf("height changed to %d", c.Height)
	}
}
