package analysis

import "math"

// zeroPadBand is the number of angular rows (plus one, in counter space)
// zeroed at each edge of the polar plane when zero padding is enabled.
const zeroPadBand = 4

// annulus carries the per-file and per-radius sampling thresholds. All radius
// thresholds are in natural-log space; the logs are computed once outside the
// per-sample loop.
type annulus struct {
	logRad   float64 // growing-annulus threshold (inner, or outer in reverse mode)
	logLo    float64 // fixed-annulus inner threshold
	logHi    float64 // fixed-annulus outer threshold
	logOuter float64 // log of the file's outer radius bound
	logBar   float64 // log of the masked bar radius
	ctrVal   float64 // center brightness, for intensity masking
	x0, y0   int     // 1-based image center
}

// buildAnnulus fills dst with the log-polar sampling of one annulus: for each
// angular and logarithmic-radius step, either the Cartesian pixel under the
// sample or an exact zero, according to the layered inclusion rules. Exactly
// one rule applies per sample. The return value is the normalization sum over
// included samples; a zero-signal annulus legitimately returns zero.
func buildAnnulus(dst []complex128, grid *Grid, g geometry, cfg Config, ann annulus) float64 {
	norma := 0.0
	counter := 0

	for ti := 0; ti < g.dimTheta; ti++ {
		countTheta := ti + 2 // counter space of the inherited mapping
		thetaRadians := float64(ti) * g.thetaStep * GrRad
		sinT, cosT := math.Sincos(thetaRadians)

		for ri := 0; ri < g.dimRadius; ri++ {
			lnr := float64(ri) * g.radStep

			switch {
			case cfg.ZeroPad && (countTheta < zeroPadBand || countTheta > g.dimTheta-3):
				dst[counter] = 0

			case cfg.MaskBar && lnr <= ann.logBar:
				dst[counter] = 0

			case cfg.Reverse && (lnr > ann.logRad || lnr > ann.logOuter):
				dst[counter] = 0

			case cfg.FixedWidth > 0 && (lnr > ann.logHi || lnr < ann.logLo):
				dst[counter] = 0

			case cfg.FixedWidth == 0 && !cfg.Reverse && (lnr > ann.logOuter || lnr < ann.logRad):
				dst[counter] = 0

			default:
				r := math.Exp(lnr)
				a := int(r*cosT) + ann.x0
				b := int(r*sinT) + ann.y0
				v := grid.At(a, b)
				if cfg.MaskCore && v >= ann.ctrVal {
					dst[counter] = 0
				} else {
					dst[counter] = complex(v, 0)
					norma += v
				}
			}
			counter++
		}
	}
	return norma
}

// findBarRadius estimates the bar radius for the line-mask variant: per
// angle, walk outward while pixels stay at least as bright as the center
// value and keep the largest such log-radius over all angles.
func findBarRadius(grid *Grid, g geometry, outer, x0, y0 int, limit float64) float64 {
	logEdge := math.Log(float64(outer))
	lb := 0.0

	for ti := 0; ti < g.dimTheta; ti++ {
		thetaRadians := float64(ti) * g.thetaStep * GrRad
		sinT, cosT := math.Sincos(thetaRadians)
		skip := false

		for ri := 0; ri < g.dimRadius; ri++ {
			lnr := float64(ri) * g.radStep
			if skip || lnr > logEdge {
				continue
			}
			r := math.Exp(lnr)
			a := int(r*cosT) + x0
			b := int(r*sinT) + y0
			if grid.At(a, b) >= limit {
				if lnr > lb {
					lb = lnr
				}
			} else {
				skip = true
			}
		}
	}
	return lb
}
