// Package tui drives a simulation in the terminal with tcell.
package tui

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
)

const (
	aliveRune = '█'
	deadRune  = ' '

	eventBuffer = 16
)

// Simulation is what the driver needs from a running game
type Simulation interface {
	Grid() *model.Grid
	Step()
	Reseed()
	Snapshot() (string, error)
	Status() string
	Done() bool
}

// Driver paints the grid every tick and reacts to keys:
// q/Esc/Ctrl-C quit, s snapshot, space pause, n single step, r reseed.
type Driver struct {
	screen tcell.Screen
	sim    Simulation
	frame  time.Duration
	paused bool

	aliveStyle  tcell.Style
	deadStyle   tcell.Style
	statusStyle tcell.Style
}

// New initialises a terminal screen for sim
func New(sim Simulation, frame time.Duration) (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[tui.New] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[tui.New] failed to init screen")
	}
	return NewWithScreen(screen, sim, frame), nil
}

// NewWithScreen wraps an already initialised screen
func NewWithScreen(screen tcell.Screen, sim Simulation, frame time.Duration) *Driver {
	if frame <= 0 {
		frame = time.Millisecond
	}
	screen.HideCursor()
	return &Driver{
		screen:      screen,
		sim:         sim,
		frame:       frame,
		aliveStyle:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
		deadStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Reverse(true),
	}
}

// Run blocks until the user quits, the simulation is done or ctx is cancelled.
// The screen is finalised before Run returns.
func (d *Driver) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, eventBuffer)
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-egCtx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		defer d.screen.Fini()
		defer cancel()
		return d.loop(egCtx, events)
	})

	return eg.Wait()
}

func (d *Driver) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(d.frame)
	defer ticker.Stop()

	d.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handleEvent(ev) {
				return nil
			}
			d.draw()
		case <-ticker.C:
			if d.sim.Done() {
				return nil
			}
			if !d.paused {
				d.sim.Step()
			}
			d.draw()
		}
	}
}

// handleEvent returns false when the driver should stop
func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 's', 'S':
				if _, err := d.sim.Snapshot(); err != nil {
					log.Printf("tui: %v", err)
				}
			case ' ':
				d.paused = !d.paused
			case 'n', 'N':
				if d.paused {
					d.sim.Step()
				}
			case 'r', 'R':
				d.sim.Reseed()
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *Driver) draw() {
	grid := d.sim.Grid()
	sw, sh := d.screen.Size()
	w, h := min(grid.GetWidth(), sw), min(grid.GetHeight(), sh)

	d.screen.Clear()
	for y := range h {
		for x := range w {
			if grid.Alive(x, y) {
				d.screen.SetContent(x, y, aliveRune, nil, d.aliveStyle)
			} else {
				d.screen.SetContent(x, y, deadRune, nil, d.deadStyle)
			}
		}
	}

	if h < sh {
		status := d.sim.Status()
		if d.paused {
			status = "[paused] " + status
		}
		for i, r := range []rune(status) {
			if i >= sw {
				break
			}
			d.screen.SetContent(i, h, r, nil, d.statusStyle)
		}
	}
	d.screen.Show()
}

// Paused reports whether ticks are currently suspended
func (d *Driver) Paused() bool {
	return d.paused
}
