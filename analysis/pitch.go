package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Outcome classifies an extractor stage result. NaN marks a legitimate
// low-or-no-signal condition; Error names a specific failure. Both are
// recovered at (mode, radius) granularity, never aborting the file.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNaN
	OutcomeError
)

// Named extractor failures.
var (
	ErrNoMaximum     = errors.New("no valid maximum amplitude in window")
	ErrAllNaN        = errors.New("no valid bins in noise window")
	ErrZeroSigma     = errors.New("noise deviation below epsilon")
	ErrInvalidResult = errors.New("result record missing pitch stage output")
	ErrBracketScan   = errors.New("half-maximum crossing not found in window")
)

// sigmaEpsilon guards the SNR division against a flat noise window.
const sigmaEpsilon = 1e-10

// Extractor derives pitch, phase, SNR and FWHM statistics from a remapped
// spectrum. The stages depend on each other through the Result record: SNR
// reads the dominant-bin fields PitchPhase wrote, and FWHM reads SNR's
// average amplitude.
type Extractor struct {
	g       geometry
	scratch []float64
}

func newExtractor(g geometry) *Extractor {
	return &Extractor{
		g:       g,
		scratch: make([]float64, 0, g.windowHi-g.windowLo+1),
	}
}

// PitchPhase locates the dominant frequency bin in the central window
// (excluding the mid-frequency slot) and derives the pitch and phase angles.
func (e *Extractor) PitchPhase(bins []FrequencyBin, mode int, res *Result) (Outcome, error) {
	aMax := math.Inf(-1)
	index := -1
	sawValid := false

	for i := e.g.windowLo; i <= e.g.windowHi; i++ {
		if !math.IsNaN(bins[i].Abs) {
			sawValid = true
		}
		// NaN magnitudes never satisfy the comparison, so they can
		// never become the maximum.
		if i != e.g.midIndex && bins[i].Abs > aMax {
			index = i
			aMax = bins[i].Abs
		}
	}

	if !sawValid {
		return OutcomeNaN, nil
	}
	if index < 0 {
		return OutcomeError, ErrNoMaximum
	}

	res.Amp = bins[index].Abs
	res.Freq = bins[index].Freq
	res.Index = index

	res.Pitch = math.Atan2(float64(mode), bins[index].Freq) / GrRad
	if math.Abs(res.Pitch) > 90.0 {
		res.Pitch -= 180.0
	}
	res.Phase = math.Atan2(bins[index].Imag, bins[index].Real) / GrRad / float64(mode)
	return OutcomeOK, nil
}

// SNR estimates the noise floor of the window (mean magnitude, mid slot
// excluded) and the signal-to-noise ratio of the dominant bin against the
// population standard deviation of the window.
func (e *Extractor) SNR(bins []FrequencyBin, res *Result) (Outcome, error) {
	vals := e.scratch[:0]
	for i := e.g.windowLo; i <= e.g.windowHi; i++ {
		if i != e.g.midIndex && !math.IsNaN(bins[i].Abs) {
			vals = append(vals, bins[i].Abs)
		}
	}
	e.scratch = vals[:0]

	if len(vals) == 0 {
		return OutcomeError, ErrAllNaN
	}

	mean := stat.Mean(vals, nil)
	res.AvgAmp = mean

	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	sigma := math.Sqrt(ss / float64(len(vals)))
	if sigma <= sigmaEpsilon {
		return OutcomeError, ErrZeroSigma
	}

	res.SNR = (res.Amp - mean) / sigma
	if math.IsNaN(res.SNR) {
		return OutcomeNaN, nil
	}
	return OutcomeOK, nil
}

// FWHM scans outward from the dominant bin in both directions, skipping the
// mid-frequency slot, until the magnitude drops below half way between peak
// and noise floor. The width is the bin count between the crossings,
// inclusive.
func (e *Extractor) FWHM(bins []FrequencyBin, res *Result) (Outcome, error) {
	if res.Index < e.g.windowLo || res.Index > e.g.windowHi {
		return OutcomeError, ErrInvalidResult
	}

	limit := res.Amp - (res.Amp-res.AvgAmp)/2.0
	hi, lo := 0, 0

	for i := res.Index + 1; i <= e.g.windowHi; i++ {
		if i == e.g.midIndex {
			continue
		}
		if bins[i].Abs < limit {
			hi = i - 1
			break
		}
	}

	for i := res.Index - 1; i >= e.g.windowLo; i-- {
		if i == e.g.midIndex {
			continue
		}
		if bins[i].Abs < limit {
			lo = i + 1
			break
		}
	}

	if hi == 0 || lo == 0 {
		return OutcomeError, ErrBracketScan
	}

	res.FWHM = float64(hi - lo + 1)
	return OutcomeOK, nil
}
