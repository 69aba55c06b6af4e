package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/export"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/utils"
)

// game ties the grid to the engine and the bookkeeping every driver shares
type game struct {
	config  utils.Config
	grid    *model.Grid
	engine  *model.Engine
	history *model.History
	stats   *utils.Stats
	rng     *rand.Rand

	generation     int
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
	lastEvent      string
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	boundary, err := config.BoundaryMode()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to parse boundary")
	}

	grid, err := model.NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create grid")
	}

	opts := []model.EngineOption{model.WithWorkers(config.Workers)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewCellPool()))
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &game{
		config:        config,
		grid:          grid,
		engine:        model.NewEngine(boundary, opts...),
		history:       model.NewHistory(config.StagnationThreshold),
		stats:         utils.NewStats(),
		rng:           model.NewRNG(seed),
		lastFrameTime: time.Now(),
	}
	if err = g.seedGrid(); err != nil {
		return nil, err
	}
	log.Printf("grid %dx%d boundary=%s seed=%d living=%d",
		grid.GetWidth(), grid.GetHeight(), boundary, seed, grid.CountLivingCells())
	return g, nil
}

// seedGrid stamps the configured pattern, or fills the grid randomly when there is none
func (g *game) seedGrid() error {
	if g.config.Pattern == "" {
		g.grid.Randomize(g.rng)
		return nil
	}

	p, err := pattern.LoadInto(g.grid, g.config.Pattern, g.config.AnchorX, g.config.AnchorY)
	if err != nil {
		return errors.Wrap(err, "[seedGrid] failed to load pattern")
	}
	log.Printf("pattern %s: declared %dx%d, %d live cells",
		g.config.Pattern, p.DeclaredWidth, p.DeclaredHeight, p.LiveCells())
	return nil
}

func (g *game) Grid() *model.Grid {
	return g.grid
}

// Step advances one generation and updates stats, stagnation tracking and restarts
func (g *game) Step() {
	g.history.Record(g.grid)
	g.engine.Step(g.grid)
	g.generation++

	living := g.grid.CountLivingCells()
	now := time.Now()
	g.stats.Update(g.generation, living, now.Sub(g.lastFrameTime))
	g.lastFrameTime = now

	if g.history.IsStagnant(g.grid) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	if !g.config.AutoRestart {
		return
	}
	if restart, reason := checkRestartConditions(living, g.stagnantCount, g.config); restart {
		log.Printf("restarting at generation %d: %s", g.generation, reason)
		g.lastEvent = "restarted: " + reason
		g.Reseed()
	}
}

// Reseed clears the grid and fills it randomly
func (g *game) Reseed() {
	g.grid.Randomize(g.rng)
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = g.generation
}

// Snapshot writes a BMP of the current generation
func (g *game) Snapshot() (string, error) {
	path, err := export.SaveSnapshot(g.config.SnapshotDir, g.grid)
	if err != nil {
		log.Printf("snapshot failed: %v", err)
		g.lastEvent = "snapshot failed"
		return "", err
	}
	log.Printf("snapshot written to %s", path)
	g.lastEvent = "Image saved as " + path
	return path, nil
}

// Done reports whether the generation limit has been reached
func (g *game) Done() bool {
	return g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations
}

// Status renders the one-line summary shown under the grid
func (g *game) Status() string {
	living := g.grid.CountLivingCells()
	density := float64(living) / float64(g.grid.GetWidth()*g.grid.GetHeight()) * 100

	status := "Active"
	if g.stagnantCount > 0 {
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if living == 0 {
		status = "Extinct"
	}

	line := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | %.1f gen/sec | %s",
		g.generation, living, density, g.stats.GenerationsPerSecond, status)
	if g.generation > g.lastRestartGen && g.lastRestartGen > 0 {
		line += fmt.Sprintf(" | since restart: %d", g.generation-g.lastRestartGen)
	}
	if g.lastEvent != "" {
		line += " | " + g.lastEvent
	}
	return line
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// runHeadless prints frames to stdout until the generation limit or cancellation
func runHeadless(ctx context.Context, g *game, renderer *model.TerminalRenderer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintln(renderer.Out, g.Status())
		if err := renderer.Display(g.grid); err != nil {
			return err
		}
		if g.Done() {
			return nil
		}
		g.Step()
		if g.config.FrameRate > 0 {
			time.Sleep(g.config.FrameRate)
		}
	}
}
