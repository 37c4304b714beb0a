package analysis

import "fmt"

// Grid is a 2D real-valued pixel grid with 1-based indices, mirroring the
// FITS convention of the input images. X runs along the first image axis,
// Y along the second.
type Grid struct {
	data []float64
	xDim int
	yDim int
}

// NewGrid allocates an empty grid of the given dimensions.
func NewGrid(xDim, yDim int) (*Grid, error) {
	if xDim < 1 || yDim < 1 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", xDim, yDim)
	}
	if xDim > MaxImageDim || yDim > MaxImageDim {
		return nil, fmt.Errorf("grid %dx%d exceeds maximum dimension %d", xDim, yDim, MaxImageDim)
	}
	return &Grid{
		data: make([]float64, xDim*yDim),
		xDim: xDim,
		yDim: yDim,
	}, nil
}

// GridFromSamples builds a grid from a flat sample stream in FITS order:
// x varies fastest, y slowest. Extra samples are ignored; missing samples
// leave zeros.
func GridFromSamples(samples []float64, xDim, yDim int) (*Grid, error) {
	g, err := NewGrid(xDim, yDim)
	if err != nil {
		return nil, err
	}
	n := len(samples)
	if n > xDim*yDim {
		n = xDim * yDim
	}
	copy(g.data, samples[:n])
	return g, nil
}

// XDim returns the size of the first axis.
func (g *Grid) XDim() int { return g.xDim }

// YDim returns the size of the second axis.
func (g *Grid) YDim() int { return g.yDim }

// At returns the pixel at 1-based coordinates (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.data[(y-1)*g.xDim+(x-1)]
}

// Set writes the pixel at 1-based coordinates (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.data[(y-1)*g.xDim+(x-1)] = v
}

// Samples returns the backing sample stream in FITS order: x varies
// fastest, y slowest. The slice aliases the grid's storage.
func (g *Grid) Samples() []float64 { return g.data }

// Center returns the 1-based center coordinates, computed per axis as
// ((dim-1)/2)+1 so odd and even sizes both behave.
func (g *Grid) Center() (x0, y0 int) {
	return (g.xDim-1)/2 + 1, (g.yDim-1)/2 + 1
}

// MaxRadius returns the default outer radius derived from the shorter axis.
func (g *Grid) MaxRadius() int {
	if g.xDim < g.yDim {
		return (g.xDim - 1) / 2
	}
	return (g.yDim - 1) / 2
}
