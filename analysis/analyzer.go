package analysis

import (
	"fmt"
	"math"
	"sync"

	"github.com/astrobits/spiralfft/logging"
)

// Analyzer runs the annulus-wise polar FFT analysis pipeline for one
// configured geometry. It is safe for sequential reuse across files; every
// Analyze call builds fresh accumulators.
type Analyzer struct {
	cfg    Config
	g      geometry
	logger logging.Logger
}

// New validates the configuration and builds an Analyzer.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg: cfg,
		g:   newGeometry(cfg),
		logger: logging.WithFields(logging.Fields{
			"component": "analyzer",
		}),
	}, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// workerContext owns one worker's exclusive scratch state: the annulus input
// and transform output buffers, the remapped bin records, the transform plan
// and the extractor. Buffers are allocated once and reused across radii.
type workerContext struct {
	in   []complex128
	out  []complex128
	bins []FrequencyBin
	fft  *transform2D
	ext  *Extractor
}

func (a *Analyzer) newWorkerContext() *workerContext {
	return &workerContext{
		in:   make([]complex128, a.g.signalLen()),
		out:  make([]complex128, a.g.signalLen()),
		bins: make([]FrequencyBin, a.g.dimRadius+2),
		fft:  newTransform2D(a.g.dimTheta, a.g.dimRadius),
		ext:  newExtractor(a.g),
	}
}

// Analyze processes one image: every inner radius 1..outer-1 is sampled,
// transformed, remapped and analyzed independently across the worker pool.
// An outer radius of zero or less derives the bound from the image geometry.
func (a *Analyzer) Analyze(grid *Grid, outer int) (*FileResult, error) {
	if grid == nil {
		return nil, fmt.Errorf("nil image grid")
	}
	if outer <= 0 {
		outer = grid.MaxRadius()
	}
	if outer < 2 {
		return nil, fmt.Errorf("outer radius %d leaves no annuli to analyze", outer)
	}
	if outer > grid.MaxRadius() {
		return nil, fmt.Errorf("outer radius %d exceeds image bound %d", outer, grid.MaxRadius())
	}

	x0, y0 := grid.Center()
	base := annulus{
		logOuter: math.Log(float64(outer)),
		ctrVal:   grid.At(x0, y0),
		x0:       x0,
		y0:       y0,
	}
	if a.cfg.MaskBar {
		base.logBar = findBarRadius(grid, a.g, outer, x0, y0, base.ctrVal)
		a.logger.Info("estimated bar radius", logging.Fields{
			"radius": math.Exp(base.logBar),
		})
	}

	fr := newFileResult(a.g, a.cfg, outer)

	workers := a.cfg.workerCount()
	if workers > outer-1 {
		workers = outer - 1
	}

	ctxs := make([]*workerContext, workers)
	for i := range ctxs {
		ctxs[i] = a.newWorkerContext()
	}

	radii := make(chan int)
	var wg sync.WaitGroup
	for _, ctx := range ctxs {
		wg.Add(1)
		go func(ctx *workerContext) {
			defer wg.Done()
			for radius := range radii {
				a.processRadius(ctx, grid, fr, base, radius)
			}
		}(ctx)
	}

	for radius := 1; radius < outer; radius++ {
		radii <- radius
	}
	close(radii)
	wg.Wait()

	a.logger.Debug("file analysis complete", logging.Fields{
		"outer":   outer,
		"workers": workers,
	})
	return fr, nil
}

// processRadius runs the full per-annulus body: sample, transform, normalize,
// then remap and extract once per harmonic mode. Extractor failures degrade
// the affected statistics to NaN and never abort the worker.
func (a *Analyzer) processRadius(ctx *workerContext, grid *Grid, fr *FileResult, base annulus, radius int) {
	ann := base
	if a.cfg.Reverse {
		ann.logRad = math.Log(float64(fr.outer - radius + 1))
	} else {
		ann.logRad = math.Log(float64(radius))
	}
	if w := a.cfg.FixedWidth; w > 0 {
		half := w / 2
		if radius <= half || radius >= fr.outer-half {
			// Exclusion band of the fixed-width window.
			return
		}
		ann.logLo = math.Log(float64(radius - half))
		ann.logHi = math.Log(float64(radius + half))
	}

	for i := range ctx.in {
		ctx.in[i] = 0
		ctx.out[i] = 0
	}

	norma := buildAnnulus(ctx.in, grid, a.g, a.cfg, ann)

	if a.cfg.PolarMap && radius == 1 {
		capturePolar(fr.Polar, ctx.in, a.g)
	}

	ctx.fft.execute(ctx.in, ctx.out)

	// A zero-signal annulus normalizes to NaN here; downstream stages
	// treat that as a no-signal outcome rather than an error.
	div := complex(norma, 0)
	for i := range ctx.out {
		ctx.out[i] /= div
	}

	for mode := a.cfg.ModeMin; mode <= a.cfg.ModeMax; mode++ {
		remapMode(ctx.bins, ctx.out, mode, a.g)
		accumulate(ctx.bins, mode, a.g, fr.Sum)
		if a.cfg.HighPass {
			applyHighPass(ctx.bins, mode, a.g)
		}
		a.extract(ctx, mode, radius, fr.cell(mode, radius))
	}
}

// extract runs the staged extractor against the current bin records,
// degrading later stages to NaN when an earlier one fails.
func (a *Analyzer) extract(ctx *workerContext, mode, radius int, res *Result) {
	outcome, err := ctx.ext.PitchPhase(ctx.bins, mode, res)
	if outcome != OutcomeOK {
		if outcome == OutcomeError {
			a.logger.Warn("pitch extraction failed", logging.Fields{
				"mode": mode, "radius": radius, "err": err,
			})
		} else {
			a.logger.Debug("no signal in window", logging.Fields{
				"mode": mode, "radius": radius,
			})
		}
		res.setAllNaN()
		return
	}

	outcome, err = ctx.ext.SNR(ctx.bins, res)
	if outcome == OutcomeError {
		a.logger.Warn("snr extraction failed", logging.Fields{
			"mode": mode, "radius": radius, "err": err,
		})
		res.setNoiseNaN()
		return
	}

	outcome, err = ctx.ext.FWHM(ctx.bins, res)
	if outcome == OutcomeError {
		a.logger.Warn("fwhm extraction failed", logging.Fields{
			"mode": mode, "radius": radius, "err": err,
		})
		res.FWHM = math.NaN()
	}
}

// capturePolar copies the annulus input into the polar map layout used by
// the FITS export: theta varies fastest, radius slowest.
func capturePolar(dst []float64, in []complex128, g geometry) {
	i := 0
	for ri := 0; ri < g.dimRadius; ri++ {
		for ti := 0; ti < g.dimTheta; ti++ {
			dst[i] = real(in[ti*g.dimRadius+ri])
			i++
		}
	}
}
