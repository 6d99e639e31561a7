package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"ray-engine/core"
)

// Film accumulates radiance samples per pixel. Workers own disjoint rows,
// so accumulation needs no locking.
type Film struct {
	Width  int
	Height int

	sums   []core.Color
	counts []uint32
}

func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		sums:   make([]core.Color, width*height),
		counts: make([]uint32, width*height),
	}
}

func (f *Film) Add(column, row int, sample core.Color) {
	index := row*f.Width + column
	f.sums[index] = f.sums[index].Add(sample)
	f.counts[index]++
}

// At returns the mean of the samples accumulated for a pixel.
func (f *Film) At(column, row int) core.Color {
	index := row*f.Width + column
	if f.counts[index] == 0 {
		return core.ColorBlack
	}
	return f.sums[index].Scale(1.0 / float32(f.counts[index]))
}

// Image converts the film to an 8-bit image with gamma 2.2.
func (f *Film) Image() *image.NRGBA {
	result := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))

	for row := 0; row < f.Height; row++ {
		for column := 0; column < f.Width; column++ {
			mean := f.At(column, row)
			result.SetNRGBA(column, row, color.NRGBA{
				R: toByte(mean.R),
				G: toByte(mean.G),
				B: toByte(mean.B),
				A: 255,
			})
		}
	}

	return result
}

func toByte(value float32) uint8 {
	if value < 0 {
		value = 0
	}
	encoded := math.Pow(float64(value), 1.0/2.2)
	if encoded > 1 {
		encoded = 1
	}
	return uint8(encoded*255.0 + 0.5)
}

// WritePNG exports the film.
func (f *Film) WritePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, f.Image()); err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}

	return nil
}
