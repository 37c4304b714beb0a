package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// InverseTransform rebuilds the polar-plane contribution of a single
// harmonic mode from its remapped frequency bins. The remap is undone,
// including the imaginary sign inversion, the mode's row is placed back at
// its native position with all other rows zero, and the inverse 2D transform
// is applied. The result is a dimTheta x dimRadius real image, row-major by
// angle, matching the annulus input layout.
func (a *Analyzer) InverseTransform(bins []FrequencyBin, mode int) ([][]float64, error) {
	n := a.g.dimRadius
	if len(bins) < n+2 {
		return nil, fmt.Errorf("bin record array has %d entries, need %d", len(bins), n+2)
	}
	if mode < 0 || mode >= a.g.dimTheta {
		return nil, fmt.Errorf("mode %d outside the %d angular rows", mode, a.g.dimTheta)
	}

	half := n / 2
	spec := make([][]complex128, a.g.dimTheta)
	for r := range spec {
		spec[r] = make([]complex128, n)
	}

	row := spec[mode]
	for cp := 0; cp < half; cp++ {
		b := bins[cp+half+1]
		row[cp] = complex(b.Real, -b.Imag)
	}
	wrap := bins[n+1]
	row[half] = complex(wrap.Real, -wrap.Imag)
	for cp := -half + 1; cp <= -1; cp++ {
		b := bins[cp+half+1]
		row[n+cp] = complex(b.Real, -b.Imag)
	}

	out := fft.IFFT2(spec)

	img := make([][]float64, a.g.dimTheta)
	for r := range img {
		img[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			img[r][c] = real(out[r][c])
		}
	}
	return img, nil
}
