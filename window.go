//go:build ebiten

package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// windowGame adapts a game to the ebiten.Game interface
type windowGame struct {
	sim      *game
	img      *ebiten.Image
	buf      []byte
	scale    int
	paused   bool
	tickOnce bool
}

func newWindowGame(sim *game, scale int) *windowGame {
	w, h := sim.grid.GetWidth(), sim.grid.GetHeight()
	if scale <= 0 {
		scale = 1
	}
	return &windowGame{
		sim:   sim,
		img:   ebiten.NewImage(w, h),
		buf:   make([]byte, 4*w*h),
		scale: scale,
	}
}

// Update handles keys and advances the simulation once per tick
func (wg *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		wg.paused = !wg.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		wg.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		wg.sim.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if _, err := wg.sim.Snapshot(); err != nil {
			log.Printf("window: %v", err)
		}
	}

	if wg.sim.Done() {
		return ebiten.Termination
	}
	if !wg.paused || wg.tickOnce {
		wg.sim.Step()
		wg.tickOnce = false
	}
	return nil
}

// Draw uploads the cells as white-on-black pixels and scales them up
func (wg *windowGame) Draw(screen *ebiten.Image) {
	for i, c := range wg.sim.grid.Cells() {
		v := byte(0)
		if c != 0 {
			v = 255
		}
		base := i * 4
		wg.buf[base+0] = v
		wg.buf[base+1] = v
		wg.buf[base+2] = v
		wg.buf[base+3] = 255
	}
	wg.img.WritePixels(wg.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(wg.scale), float64(wg.scale))
	screen.DrawImage(wg.img, op)
}

// Layout returns the logical screen size
func (wg *windowGame) Layout(int, int) (int, int) {
	return wg.sim.grid.GetWidth() * wg.scale, wg.sim.grid.GetHeight() * wg.scale
}

func runWindow(sim *game) error {
	wg := newWindowGame(sim, sim.config.Scale)

	ebiten.SetWindowTitle("go-life")
	if sim.config.FrameRate > 0 {
		ebiten.SetTPS(max(1, int(1e9/sim.config.FrameRate.Nanoseconds())))
	}
	w, h := wg.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(wg); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
