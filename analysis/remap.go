package analysis

import (
	"math"
	"math/cmplx"
)

// remapMode reorders one harmonic mode's slice of the raw transform output
// into the physically-ordered frequency axis. The native layout places DC at
// offset 0, ascending positive frequencies through the first half, the
// wrap point at N/2 and negative frequencies behind it. After remapping,
// slot midIndex holds DC, slots below it the negative frequencies and slots
// above it the positive ones.
//
// Two conventions inherited from the original algorithm are preserved on
// purpose: the imaginary component is sign-inverted to undo the transform
// library's convention, and the wrap-point bin is written in full to slot
// N+1 while its magnitude also aliases into slot 1.
//
// dst must hold dimRadius+2 records; slots 1..dimRadius+1 are written,
// including the frequency label of every slot.
func remapMode(dst []FrequencyBin, src []complex128, mode int, g geometry) {
	n := g.dimRadius
	half := n / 2
	counter := mode * n

	for cp := 0; cp < half; cp++ {
		setBin(&dst[cp+half+1], src[counter])
		counter++
	}

	setBin(&dst[n+1], src[counter])
	dst[1].Real = 0
	dst[1].Imag = 0
	dst[1].Abs = cmplx.Abs(src[counter])
	counter++

	for cp := -half + 1; cp <= -1; cp++ {
		setBin(&dst[cp+half+1], src[counter])
		counter++
	}

	for j := 1; j <= n+1; j++ {
		dst[j].Freq = g.freqAt(j)
	}
}

func setBin(b *FrequencyBin, v complex128) {
	b.Real = real(v)
	b.Imag = -imag(v)
	b.Abs = cmplx.Abs(v)
}

// accumulate adds every in-band, non-NaN remapped magnitude into the mode's
// summed spectrum, one serialized update per contributing bin. It runs before
// any high-pass filtering so the sum is always over the unfiltered spectrum.
func accumulate(bins []FrequencyBin, mode int, g geometry, sum *SummedSpectrum) {
	ptr := 0
	for j := 1; j <= g.dimRadius+1; j++ {
		f := bins[j].Freq
		if f < g.freqMin || f > g.freqMax {
			continue
		}
		if !math.IsNaN(bins[j].Abs) {
			sum.add(mode, ptr, bins[j].Abs)
		}
		ptr++
	}
}

// applyHighPass zeroes the magnitude and components of bins within a quarter
// mode of zero frequency. Frequency labels are never touched.
func applyHighPass(bins []FrequencyBin, mode int, g geometry) {
	cut := 0.25 * float64(mode)
	for j := 1; j <= g.dimRadius+1; j++ {
		if bins[j].Freq < cut && bins[j].Freq > -cut {
			bins[j].Abs = 0
			bins[j].Real = 0
			bins[j].Imag = 0
		}
	}
}
