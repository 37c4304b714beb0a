package analysis

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// FrequencyBin is one physically-ordered entry of a remapped spectrum.
type FrequencyBin struct {
	Real float64
	Imag float64
	Abs  float64
	Freq float64
}

// Result holds the extracted statistics for one (mode, radius) pair.
// NaN values mark a legitimate no-signal outcome, not a failure.
type Result struct {
	// Index is the 1-based remapped slot of the dominant frequency bin.
	Index int

	// Freq and Amp locate the dominant bin on the physical axis.
	Freq float64
	Amp  float64

	// AvgAmp is the mean magnitude of the noise window.
	AvgAmp float64

	// Pitch and Phase are in degrees.
	Pitch float64
	Phase float64

	SNR  float64
	FWHM float64
}

func (r *Result) setAllNaN() {
	r.Index = 0
	r.Freq = math.NaN()
	r.Amp = math.NaN()
	r.setNoiseNaN()
	r.Pitch = math.NaN()
	r.Phase = math.NaN()
}

func (r *Result) setNoiseNaN() {
	r.AvgAmp = math.NaN()
	r.SNR = math.NaN()
	r.FWHM = math.NaN()
}

// SummedSpectrum accumulates per-mode remapped magnitudes across all radii of
// one file. Additions are serialized; every worker contributes through add.
type SummedSpectrum struct {
	mu      sync.Mutex
	modeMin int
	freqs   []float64
	amps    [][]float64
}

func newSummedSpectrum(g geometry, modeMin, modeMax int) *SummedSpectrum {
	s := &SummedSpectrum{
		modeMin: modeMin,
		freqs:   make([]float64, g.sumBins),
		amps:    make([][]float64, modeMax-modeMin+1),
	}
	for i := range s.freqs {
		s.freqs[i] = g.freqMin + float64(i)*g.freqStep
	}
	for m := range s.amps {
		s.amps[m] = make([]float64, g.sumBins)
	}
	return s
}

// add accumulates one bin contribution under the spectrum's critical section.
func (s *SummedSpectrum) add(mode, bin int, v float64) {
	s.mu.Lock()
	s.amps[mode-s.modeMin][bin] += v
	s.mu.Unlock()
}

// Bins returns the number of frequency bins per mode.
func (s *SummedSpectrum) Bins() int { return len(s.freqs) }

// Frequency returns the physical frequency of bin i.
func (s *SummedSpectrum) Frequency(i int) float64 { return s.freqs[i] }

// Amplitude returns the summed magnitude for a mode at bin i.
func (s *SummedSpectrum) Amplitude(mode, i int) float64 {
	return s.amps[mode-s.modeMin][i]
}

// Total returns the integrated summed magnitude for a mode.
func (s *SummedSpectrum) Total(mode int) float64 {
	return floats.Sum(s.amps[mode-s.modeMin])
}

// Amplitudes returns a copy of the summed magnitudes for a mode.
func (s *SummedSpectrum) Amplitudes(mode int) []float64 {
	out := make([]float64, len(s.freqs))
	copy(out, s.amps[mode-s.modeMin])
	return out
}

// FileResult is the complete output of analyzing one image: a mode-by-radius
// grid of Results plus the per-mode summed spectrum. Cells are written once
// during analysis and only read afterward.
type FileResult struct {
	modeMin int
	modeMax int
	outer   int
	results [][]Result

	// Sum is the per-mode summed spectrum over all radii.
	Sum *SummedSpectrum

	// Polar holds the radius-1 log-polar sampling (DimTheta*DimRadius,
	// theta varying fastest) when polar map capture is enabled.
	Polar []float64
}

func newFileResult(g geometry, cfg Config, outer int) *FileResult {
	fr := &FileResult{
		modeMin: cfg.ModeMin,
		modeMax: cfg.ModeMax,
		outer:   outer,
		results: make([][]Result, cfg.ModeMax-cfg.ModeMin+1),
		Sum:     newSummedSpectrum(g, cfg.ModeMin, cfg.ModeMax),
	}
	for m := range fr.results {
		fr.results[m] = make([]Result, outer+1)
	}
	if cfg.PolarMap {
		fr.Polar = make([]float64, g.signalLen())
	}
	return fr
}

// ModeMin returns the lowest analyzed harmonic mode.
func (fr *FileResult) ModeMin() int { return fr.modeMin }

// ModeMax returns the highest analyzed harmonic mode.
func (fr *FileResult) ModeMax() int { return fr.modeMax }

// Outer returns the outer radius bound; valid radii are 1..Outer()-1.
func (fr *FileResult) Outer() int { return fr.outer }

// Result returns the extracted statistics for one (mode, radius) cell.
func (fr *FileResult) Result(mode, radius int) Result {
	return fr.results[mode-fr.modeMin][radius]
}

func (fr *FileResult) cell(mode, radius int) *Result {
	return &fr.results[mode-fr.modeMin][radius]
}
