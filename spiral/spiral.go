// Package spiral synthesizes logarithmic-spiral test images for exercising
// and validating the pitch analysis pipeline.
package spiral

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Params describes one synthetic spiral image.
type Params struct {
	// Size is the image width and height in pixels; it must be odd so the
	// spiral center lands on a pixel.
	Size int

	// Pitch is the spiral pitch angle in degrees. Positive values wind
	// counterclockwise outward.
	Pitch float64

	// Arms is the number of spiral arms.
	Arms int

	// Sweep is the angular extent of each arm in degrees.
	Sweep float64

	// R0 is the arm's starting radius in pixels.
	R0 float64

	// Rotation offsets the whole pattern, in degrees.
	Rotation float64

	// Foreground and Background are the arm and sky brightness.
	Foreground float64
	Background float64

	// Core, when positive, draws a filled disc of Foreground brightness
	// with the given radius at the center.
	Core float64

	// Noise adds uniform noise in [0, Noise) to every pixel, seeded by
	// Seed for reproducibility.
	Noise float64
	Seed  int64
}

// DefaultParams returns a two-armed 20 degree spiral on a 255 pixel canvas.
func DefaultParams() Params {
	return Params{
		Size:       255,
		Pitch:      20.0,
		Arms:       2,
		Sweep:      360.0,
		R0:         8.0,
		Foreground: 128.0,
	}
}

// Generate renders the spiral as a flat sample stream in image order,
// x varying fastest.
func Generate(p Params) ([]float64, error) {
	if p.Size < 3 || p.Size%2 == 0 {
		return nil, fmt.Errorf("size must be odd and at least 3, got %d", p.Size)
	}
	if p.Arms < 1 {
		return nil, fmt.Errorf("need at least one arm, got %d", p.Arms)
	}
	if math.Abs(p.Pitch) >= 90.0 {
		return nil, fmt.Errorf("pitch angle %g out of range", p.Pitch)
	}
	if p.Sweep <= 0 {
		return nil, fmt.Errorf("sweep must be positive, got %g", p.Sweep)
	}

	img := make([]float64, p.Size*p.Size)
	if p.Background != 0 {
		floats.AddConst(p.Background, img)
	}

	c := p.Size / 2
	maxR := float64(c) - 1.0
	tanPhi := math.Tan(p.Pitch * math.Pi / 180.0)
	armStep := 2.0 * math.Pi / float64(p.Arms)

	// Each arm is r = r0 * exp(theta * tan(pitch)), traced densely enough
	// that adjacent samples land on neighboring pixels.
	steps := int(p.Sweep * 32)
	for arm := 0; arm < p.Arms; arm++ {
		phase := p.Rotation*math.Pi/180.0 + float64(arm)*armStep
		for s := 0; s <= steps; s++ {
			theta := float64(s) / float64(steps) * p.Sweep * math.Pi / 180.0
			r := p.R0 * math.Exp(theta*tanPhi)
			if r > maxR {
				break
			}
			x := c + int(math.Round(r*math.Cos(theta+phase)))
			y := c + int(math.Round(r*math.Sin(theta+phase)))
			stamp(img, p.Size, x, y, p.Foreground)
		}
	}

	if p.Core > 0 {
		cr := int(p.Core)
		for dy := -cr; dy <= cr; dy++ {
			for dx := -cr; dx <= cr; dx++ {
				if float64(dx*dx+dy*dy) <= p.Core*p.Core {
					stamp(img, p.Size, c+dx, c+dy, p.Foreground)
				}
			}
		}
	}

	if p.Noise > 0 {
		rng := rand.New(rand.NewSource(p.Seed))
		for i := range img {
			img[i] += rng.Float64() * p.Noise
		}
	}

	return img, nil
}

// stamp paints a pixel and its 4-neighborhood so traced arms are wide enough
// to survive the polar resampling.
func stamp(img []float64, size, x, y int, v float64) {
	for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		px, py := x+d[0], y+d[1]
		if px < 0 || px >= size || py < 0 || py >= size {
			continue
		}
		img[py*size+px] = v
	}
}
