package analysis

import "gonum.org/v1/gonum/dsp/fourier"

// transform2D executes the forward 2D complex-to-complex DFT for the fixed
// annulus dimensions. The row and column plans are precomputed at
// construction; execution only touches the caller-supplied buffers, so each
// worker owns one transform2D and runs it against its own scratch.
type transform2D struct {
	rows int // angular dimension
	cols int // radial dimension

	rowPlan *fourier.CmplxFFT
	colPlan *fourier.CmplxFFT

	colIn  []complex128
	colOut []complex128
}

func newTransform2D(rows, cols int) *transform2D {
	return &transform2D{
		rows:    rows,
		cols:    cols,
		rowPlan: fourier.NewCmplxFFT(cols),
		colPlan: fourier.NewCmplxFFT(rows),
		colIn:   make([]complex128, rows),
		colOut:  make([]complex128, rows),
	}
}

// execute computes the forward 2D DFT of src into dst, row transforms first
// and column transforms in place on the intermediate. src and dst must both
// hold rows*cols values and must not alias.
func (t *transform2D) execute(src, dst []complex128) {
	for r := 0; r < t.rows; r++ {
		lo := r * t.cols
		t.rowPlan.Coefficients(dst[lo:lo+t.cols], src[lo:lo+t.cols])
	}

	for c := 0; c < t.cols; c++ {
		for r := 0; r < t.rows; r++ {
			t.colIn[r] = dst[r*t.cols+c]
		}
		t.colPlan.Coefficients(t.colOut, t.colIn)
		for r := 0; r < t.rows; r++ {
			dst[r*t.cols+c] = t.colOut[r]
		}
	}
}
