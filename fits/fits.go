// Package fits reads and writes the minimal subset of the FITS image format
// the analysis pipeline needs: single-HDU primary images with integer or
// floating-point pixels, plus the whitespace-separated text fallback some
// survey pipelines emit.
package fits

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/astrobits/spiralfft/logging"
)

const (
	blockSize = 2880
	cardSize  = 80
)

// Image is a decoded 2D primary HDU.
type Image struct {
	XDim    int
	YDim    int
	Samples []float64 // x varies fastest
}

// ReadImage opens a file, sniffs the format from its leading bytes and
// decodes it as either a binary FITS image or a text sample stream.
func ReadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 6)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding image: %w", err)
	}

	if string(magic) == "SIMPLE" {
		logging.Debug("decoding binary image", logging.Fields{"path": path})
		return ReadBinary(f)
	}
	logging.Debug("decoding text image", logging.Fields{"path": path})
	return ReadText(f)
}

// header holds the cards the decoder cares about.
type header struct {
	bitpix int
	naxis  int
	naxis1 int
	naxis2 int
	bscale float64
	bzero  float64
}

// ReadBinary decodes a binary single-HDU FITS image. Only BITPIX values of
// 8, 16, 32, -32 and -64 are supported; BSCALE and BZERO are applied.
func ReadBinary(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	h := header{bscale: 1.0}

	block := make([]byte, blockSize)
	done := false
	for !done {
		if _, err := io.ReadFull(br, block); err != nil {
			return nil, fmt.Errorf("reading header block: %w", err)
		}
		for off := 0; off < blockSize; off += cardSize {
			card := string(block[off : off+cardSize])
			key := strings.TrimSpace(card[:8])
			if key == "END" {
				done = true
				break
			}
			if err := h.apply(key, card); err != nil {
				return nil, err
			}
		}
	}

	if h.naxis < 2 || h.naxis1 < 1 || h.naxis2 < 1 {
		return nil, fmt.Errorf("image is not two-dimensional (NAXIS=%d)", h.naxis)
	}

	n := h.naxis1 * h.naxis2
	pixelBytes := h.bitpix
	if pixelBytes < 0 {
		pixelBytes = -pixelBytes
	}
	pixelBytes /= 8

	// Trailing block padding, if present, is simply left unread.
	raw := make([]byte, n*pixelBytes)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("reading pixel data: %w", err)
	}

	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := decodePixel(raw[i*pixelBytes:], h.bitpix)
		if err != nil {
			return nil, err
		}
		samples[i] = h.bzero + h.bscale*v
	}

	return &Image{XDim: h.naxis1, YDim: h.naxis2, Samples: samples}, nil
}

func (h *header) apply(key, card string) error {
	if len(card) < 10 || card[8] != '=' {
		return nil
	}
	val := strings.TrimSpace(card[10:])
	if i := strings.IndexByte(val, '/'); i >= 0 {
		val = strings.TrimSpace(val[:i])
	}

	switch key {
	case "BITPIX":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("bad BITPIX card %q", val)
		}
		switch n {
		case 8, 16, 32, -32, -64:
			h.bitpix = n
		default:
			return fmt.Errorf("unsupported BITPIX %d", n)
		}
	case "NAXIS":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("bad NAXIS card %q", val)
		}
		h.naxis = n
	case "NAXIS1":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("bad NAXIS1 card %q", val)
		}
		h.naxis1 = n
	case "NAXIS2":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("bad NAXIS2 card %q", val)
		}
		h.naxis2 = n
	case "BSCALE":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("bad BSCALE card %q", val)
		}
		h.bscale = f
	case "BZERO":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("bad BZERO card %q", val)
		}
		h.bzero = f
	}
	return nil
}

func decodePixel(b []byte, bitpix int) (float64, error) {
	switch bitpix {
	case 8:
		return float64(b[0]), nil
	case 16:
		return float64(int16(binary.BigEndian.Uint16(b))), nil
	case 32:
		return float64(int32(binary.BigEndian.Uint32(b))), nil
	case -32:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case -64:
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	}
	return 0, fmt.Errorf("unsupported BITPIX %d", bitpix)
}

func pad(n int) int {
	if r := n % blockSize; r != 0 {
		return n + blockSize - r
	}
	return n
}
