package analysis

import (
	"math"
	"testing"
)

func testGeometry() geometry {
	return newGeometry(Config{
		DimTheta: 8, DimRadius: 8,
		FreqStep: 1.0, FreqMin: -3.0, FreqMax: 3.0,
		ModeMin: 0, ModeMax: 3,
	})
}

func TestRemapModeOrdering(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	// One mode's worth of distinguishable coefficients at mode 1.
	src := make([]complex128, 2*n)
	for k := 0; k < n; k++ {
		src[n+k] = complex(float64(k+1), float64(10*(k+1)))
	}

	bins := make([]FrequencyBin, n+2)
	remapMode(bins, src, 1, g)

	// Native DC lands on the mid-frequency slot.
	if bins[g.midIndex].Real != 1 || bins[g.midIndex].Imag != -10 {
		t.Errorf("mid slot = (%g, %g), want (1, -10)", bins[g.midIndex].Real, bins[g.midIndex].Imag)
	}
	// Positive native bins fill the upper half in order.
	for k := 1; k < n/2; k++ {
		slot := g.midIndex + k
		if bins[slot].Real != float64(k+1) {
			t.Errorf("slot %d real = %g, want %d", slot, bins[slot].Real, k+1)
		}
	}
	// Negative native bins fill the lower half.
	for k := n/2 + 1; k < n; k++ {
		slot := k - n/2 + 1
		if bins[slot].Real != float64(k+1) {
			t.Errorf("slot %d real = %g, want %d", slot, bins[slot].Real, k+1)
		}
	}
	// The wrap bin is written in full to the top slot.
	if bins[n+1].Real != float64(n/2+1) {
		t.Errorf("wrap slot real = %g, want %d", bins[n+1].Real, n/2+1)
	}
}

func TestRemapModeWrapAlias(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	src := make([]complex128, n)
	src[n/2] = complex(3, 4)

	bins := make([]FrequencyBin, n+2)
	remapMode(bins, src, 0, g)

	if bins[n+1].Abs != 5 {
		t.Errorf("wrap slot abs = %g, want 5", bins[n+1].Abs)
	}
	// The wrap magnitude aliases into slot 1 with zeroed components.
	if bins[1].Abs != 5 || bins[1].Real != 0 || bins[1].Imag != 0 {
		t.Errorf("alias slot = {%g %g %g}, want {0 0 5}",
			bins[1].Real, bins[1].Imag, bins[1].Abs)
	}
}

func TestRemapModeFrequencyLabels(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	bins := make([]FrequencyBin, n+2)
	remapMode(bins, make([]complex128, n), 0, g)

	for j := 1; j <= n+1; j++ {
		if bins[j].Freq != g.freqAt(j) {
			t.Errorf("slot %d freq = %g, want %g", j, bins[j].Freq, g.freqAt(j))
		}
	}
	if bins[g.midIndex].Freq != 0 {
		t.Errorf("mid slot freq = %g, want 0", bins[g.midIndex].Freq)
	}
}

func TestRemapImagSignInverted(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	src := make([]complex128, n)
	src[1] = complex(2, 7)

	bins := make([]FrequencyBin, n+2)
	remapMode(bins, src, 0, g)

	slot := g.midIndex + 1
	if bins[slot].Imag != -7 {
		t.Errorf("slot %d imag = %g, want -7", slot, bins[slot].Imag)
	}
	if bins[slot].Abs != math.Hypot(2, 7) {
		t.Errorf("slot %d abs = %g, want %g", slot, bins[slot].Abs, math.Hypot(2, 7))
	}
}

func TestAccumulate(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius
	sum := newSummedSpectrum(g, 0, 0)

	bins := make([]FrequencyBin, n+2)
	for j := 1; j <= n+1; j++ {
		bins[j].Freq = g.freqAt(j)
		bins[j].Abs = 1.0
	}
	bins[g.midIndex].Abs = math.NaN()

	accumulate(bins, 0, g, sum)
	accumulate(bins, 0, g, sum)

	if sum.Bins() != g.sumBins {
		t.Fatalf("sum has %d bins, want %d", sum.Bins(), g.sumBins)
	}
	for i := 0; i < sum.Bins(); i++ {
		want := 2.0
		if sum.Frequency(i) == 0 {
			// The NaN bin keeps its slot but contributes nothing.
			want = 0.0
		}
		if got := sum.Amplitude(0, i); got != want {
			t.Errorf("bin %d (freq %g) = %g, want %g", i, sum.Frequency(i), got, want)
		}
	}
}

func TestApplyHighPass(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	bins := make([]FrequencyBin, n+2)
	for j := 1; j <= n+1; j++ {
		bins[j].Freq = g.freqAt(j)
		bins[j].Real, bins[j].Imag, bins[j].Abs = 1, 1, 1
	}

	applyHighPass(bins, 2, g)

	for j := 1; j <= n+1; j++ {
		zeroed := bins[j].Abs == 0
		inside := math.Abs(bins[j].Freq) < 0.5
		if zeroed != inside {
			t.Errorf("slot %d (freq %g): zeroed=%v inside=%v", j, bins[j].Freq, zeroed, inside)
		}
		if bins[j].Freq != g.freqAt(j) {
			t.Errorf("slot %d freq label disturbed", j)
		}
	}
}

func TestApplyHighPassModeZeroIsNoOp(t *testing.T) {
	g := testGeometry()
	n := g.dimRadius

	bins := make([]FrequencyBin, n+2)
	for j := 1; j <= n+1; j++ {
		bins[j].Freq = g.freqAt(j)
		bins[j].Abs = 1
	}

	applyHighPass(bins, 0, g)

	for j := 1; j <= n+1; j++ {
		if bins[j].Abs != 1 {
			t.Errorf("slot %d zeroed by mode-0 high pass", j)
		}
	}
}
