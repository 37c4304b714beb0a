package analysis

import (
	"math"
	"testing"
)

// uniformGrid returns a 15x15 grid filled with v.
func uniformGrid(t *testing.T, v float64) *Grid {
	t.Helper()
	g, err := NewGrid(15, 15)
	if err != nil {
		t.Fatal(err)
	}
	for y := 1; y <= 15; y++ {
		for x := 1; x <= 15; x++ {
			g.Set(x, y, v)
		}
	}
	return g
}

func testAnnulus(grid *Grid, outer int) annulus {
	x0, y0 := grid.Center()
	return annulus{
		logOuter: math.Log(float64(outer)),
		ctrVal:   grid.At(x0, y0),
		x0:       x0,
		y0:       y0,
	}
}

// With the test geometry's radial step of 2*pi/8, radii 1..5 cover exactly
// three logarithmic steps per angular row.
func TestBuildAnnulusNorma(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 2.0)
	ann := testAnnulus(grid, 5)

	dst := make([]complex128, g.signalLen())
	norma := buildAnnulus(dst, grid, g, Config{}, ann)

	if math.Abs(norma-48.0) > 1e-12 {
		t.Errorf("norma = %g, want 48 (24 samples of 2.0)", norma)
	}

	included := 0
	for _, v := range dst {
		if v != 0 {
			included++
		}
	}
	if included != 24 {
		t.Errorf("%d nonzero samples, want 24", included)
	}
}

func TestBuildAnnulusZeroPad(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 2.0)
	ann := testAnnulus(grid, 5)

	dst := make([]complex128, g.signalLen())
	norma := buildAnnulus(dst, grid, g, Config{ZeroPad: true}, ann)

	// Only two of the eight angular rows survive the padding band.
	if math.Abs(norma-12.0) > 1e-12 {
		t.Errorf("norma = %g, want 12", norma)
	}
	for ti := 0; ti < g.dimTheta; ti++ {
		rowZero := true
		for ri := 0; ri < g.dimRadius; ri++ {
			if dst[ti*g.dimRadius+ri] != 0 {
				rowZero = false
			}
		}
		wantZero := ti < 2 || ti >= 4
		if rowZero != wantZero {
			t.Errorf("row %d zeroed=%v, want %v", ti, rowZero, wantZero)
		}
	}
}

func TestBuildAnnulusMaskCore(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 2.0)
	ann := testAnnulus(grid, 5)

	dst := make([]complex128, g.signalLen())
	norma := buildAnnulus(dst, grid, g, Config{MaskCore: true}, ann)

	// Every pixel is as bright as the center, so everything is masked.
	if norma != 0 {
		t.Errorf("norma = %g, want 0", norma)
	}
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestBuildAnnulusFixedWidth(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 2.0)
	ann := testAnnulus(grid, 5)
	ann.logLo = math.Log(2.0)
	ann.logHi = math.Log(4.0)

	dst := make([]complex128, g.signalLen())
	norma := buildAnnulus(dst, grid, g, Config{FixedWidth: 2}, ann)

	// Only the second logarithmic step falls inside [ln 2, ln 4].
	if math.Abs(norma-16.0) > 1e-12 {
		t.Errorf("norma = %g, want 16", norma)
	}
}

func TestBuildAnnulusReverse(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 2.0)
	ann := testAnnulus(grid, 5)
	ann.logRad = math.Log(5.0)

	dst := make([]complex128, g.signalLen())
	norma := buildAnnulus(dst, grid, g, Config{Reverse: true}, ann)

	if math.Abs(norma-48.0) > 1e-12 {
		t.Errorf("norma = %g, want 48", norma)
	}
}

func TestBuildAnnulusZeroSignal(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 0.0)
	ann := testAnnulus(grid, 5)

	dst := make([]complex128, g.signalLen())
	if norma := buildAnnulus(dst, grid, g, Config{}, ann); norma != 0 {
		t.Errorf("norma = %g, want 0 for a dark image", norma)
	}
}

func TestFindBarRadius(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 1.0)
	x0, y0 := grid.Center()
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy <= 4 {
				grid.Set(x0+dx, y0+dy, 5.0)
			}
		}
	}

	lb := findBarRadius(grid, g, 5, x0, y0, 5.0)

	// The walk survives the first logarithmic step (radius ~2.19 lands on
	// bright pixels after truncation) and stops at the second.
	if math.Abs(lb-g.radStep) > 1e-12 {
		t.Errorf("bar log-radius = %g, want %g", lb, g.radStep)
	}
}

func TestFindBarRadiusDarkCenter(t *testing.T) {
	g := testGeometry()
	grid := uniformGrid(t, 1.0)
	x0, y0 := grid.Center()

	if lb := findBarRadius(grid, g, 5, x0, y0, 5.0); lb != 0 {
		t.Errorf("bar log-radius = %g, want 0", lb)
	}
}
