package fits

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ReadText decodes a whitespace-separated sample stream. If the first two
// values are equal positive integers they are taken as the image dimensions
// and the rest as samples; otherwise the whole stream is samples and the
// image is assumed square.
func ReadText(r io.Reader) (*Image, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var vals []float64
	for sc.Scan() {
		f, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("bad sample %q: %w", sc.Text(), err)
		}
		vals = append(vals, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning text image: %w", err)
	}
	if len(vals) < 3 {
		return nil, fmt.Errorf("text image holds only %d values", len(vals))
	}

	d0, d1 := vals[0], vals[1]
	if d0 > 0 && d0 == math.Trunc(d0) && d0 == d1 && int(d0)*int(d1) <= len(vals)-2 {
		dim := int(d0)
		return &Image{XDim: dim, YDim: dim, Samples: vals[2 : 2+dim*dim]}, nil
	}

	dim := int(math.Sqrt(float64(len(vals))))
	if dim*dim != len(vals) {
		return nil, fmt.Errorf("cannot infer square dimensions from %d samples", len(vals))
	}
	return &Image{XDim: dim, YDim: dim, Samples: vals}, nil
}
