package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/utils"
)

func writePattern(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern.rle")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseArgsPositional(t *testing.T) {
	c, err := parseArgs([]string{"-boundary", "bounded", "30", "20", "glider.rle"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if c.Width != 30 || c.Height != 20 || c.Pattern != "glider.rle" || c.Boundary != "bounded" {
		t.Fatalf("unexpected config: %+v", c)
	}

	c, err = parseArgs([]string{"-pattern", "x.rle", "30", "20", "rand"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if c.Pattern != "" {
		t.Fatalf("rand kept pattern %q", c.Pattern)
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"30"},
		{"a", "20"},
		{"30", "b"},
		{"0", "20"},
		{"1", "2", "3", "4"},
		{"-boundary", "spiral"},
		{"-nope"},
	} {
		if _, err := parseArgs(args, io.Discard); err == nil {
			t.Fatalf("parseArgs(%q) succeeded", args)
		}
	}
}

func TestParseArgsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"width": 11, "height": 12, "seed": 4}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := parseArgs([]string{"-config", path, "-height", "13"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if c.Width != 11 || c.Height != 13 || c.Seed != 4 {
		t.Fatalf("flags should override the file: %+v", c)
	}
}

func testConfig() utils.Config {
	c := utils.DefaultConfig()
	c.Width, c.Height = 12, 12
	c.Seed = 1
	c.FrameRate = 0
	c.SnapshotDir = ""
	return c
}

func TestInitializeGameWithPattern(t *testing.T) {
	c := testConfig()
	c.Pattern = writePattern(t, "x = 3, y = 1\n3o!\n")
	c.AnchorX, c.AnchorY = 5, 4

	g, err := initializeGame(c)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	for _, x := range []int{4, 5, 6} {
		if !g.grid.Alive(x, 5) {
			t.Fatalf("expected blinker cell at (%d,5)", x)
		}
	}

	g.Step()
	g.Step()
	if g.generation != 2 || g.grid.CountLivingCells() != 3 || !g.grid.Alive(4, 5) {
		t.Fatalf("blinker did not survive two generations")
	}
	if !strings.HasPrefix(g.Status(), "Gen: 2 | Living: 3") {
		t.Fatalf("status = %q", g.Status())
	}
}

func TestInitializeGameErrors(t *testing.T) {
	c := testConfig()
	c.Pattern = filepath.Join(t.TempDir(), "missing.rle")
	if _, err := initializeGame(c); !errors.Is(err, pattern.ErrPatternFile) {
		t.Fatalf("err = %v, expected ErrPatternFile", err)
	}

	c = testConfig()
	c.Height = 0
	if _, err := initializeGame(c); !errors.Is(err, model.ErrAllocation) {
		t.Fatalf("err = %v, expected ErrAllocation", err)
	}
}

func TestRandomSeedFallback(t *testing.T) {
	a, err := initializeGame(testConfig())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	b, _ := initializeGame(testConfig())
	if a.grid.CountLivingCells() == 0 {
		t.Fatal("random fill left the grid empty")
	}
	if a.grid.GetGridHash() != b.grid.GetGridHash() {
		t.Fatal("same seed gave different starting grids")
	}
}

func TestAutoRestartOnExtinction(t *testing.T) {
	c := testConfig()
	c.AutoRestart = true
	c.Pattern = writePattern(t, "o!")

	g, err := initializeGame(c)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	g.Step()
	if g.grid.CountLivingCells() == 0 {
		t.Fatal("extinct grid was not reseeded")
	}
	if !strings.Contains(g.Status(), "extinction") {
		t.Fatalf("status = %q", g.Status())
	}
}

func TestSnapshot(t *testing.T) {
	c := testConfig()
	c.SnapshotDir = t.TempDir()
	g, err := initializeGame(c)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	path, err := g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if filepath.Base(path) != "conway_12_12.bmp" {
		t.Fatalf("path = %q", path)
	}
	if !strings.Contains(g.Status(), "Image saved as") {
		t.Fatalf("status = %q", g.Status())
	}
}

func TestRunHeadless(t *testing.T) {
	c := testConfig()
	c.Headless = true
	c.MaxGenerations = 2
	c.Width, c.Height = 3, 3
	c.Pattern = writePattern(t, "$3o!")
	c.AnchorX, c.AnchorY = 0, 0

	g, err := initializeGame(c)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}

	var out bytes.Buffer
	if err = runHeadless(context.Background(), g, model.NewTerminalRenderer(&out)); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if g.generation != 2 {
		t.Fatalf("generation = %d, expected 2", g.generation)
	}
	if n := strings.Count(out.String(), "Gen: "); n != 3 {
		t.Fatalf("printed %d frames, expected 3:\n%s", n, out.String())
	}
}
