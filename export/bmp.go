// Package export writes still images of a grid.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/sheikhrachel/go-life/model"
)

// Image converts the grid to an RGB image, one pixel per cell: alive white, dead black
func Image(g *model.Grid) *image.RGBA {
	w, h := g.GetWidth(), g.GetHeight()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cells := g.Cells()
	for i, c := range cells {
		v := uint8(0)
		if c != 0 {
			v = 255
		}
		img.SetRGBA(i%w, i/w, color.RGBA{R: v, G: v, B: v, A: 255})
	}
	return img
}

// WriteBMP encodes the grid as a BMP
func WriteBMP(w io.Writer, g *model.Grid) error {
	if err := bmp.Encode(w, Image(g)); err != nil {
		return errors.Wrap(err, "[WriteBMP] failed to encode")
	}
	return nil
}

// SnapshotName is the file name used for a grid of the given size
func SnapshotName(width, height int) string {
	return fmt.Sprintf("conway_%d_%d.bmp", width, height)
}

// SaveSnapshot writes the grid to dir/conway_<w>_<h>.bmp and returns the path
func SaveSnapshot(dir string, g *model.Grid) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, SnapshotName(g.GetWidth(), g.GetHeight()))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "[SaveSnapshot] failed to create file: %+v", path)
	}
	if err = WriteBMP(f, g); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "[SaveSnapshot] failed to write file: %+v", path)
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrapf(err, "[SaveSnapshot] failed to close file: %+v", path)
	}
	return path, nil
}
