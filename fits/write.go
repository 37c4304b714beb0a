package fits

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Write encodes a 2D sample stream as a minimal binary FITS image with
// BITPIX -32. Samples are in FITS order, x varying fastest.
func Write(w io.Writer, samples []float64, xDim, yDim int) error {
	if xDim < 1 || yDim < 1 || len(samples) < xDim*yDim {
		return fmt.Errorf("cannot write %dx%d image from %d samples", xDim, yDim, len(samples))
	}

	bw := bufio.NewWriter(w)

	cards := [][2]string{
		{"SIMPLE", "T"},
		{"BITPIX", "-32"},
		{"NAXIS", "2"},
		{"NAXIS1", fmt.Sprintf("%d", xDim)},
		{"NAXIS2", fmt.Sprintf("%d", yDim)},
	}

	written := 0
	for _, c := range cards {
		card := fmt.Sprintf("%-8s= %20s", c[0], c[1])
		if err := writeCard(bw, card); err != nil {
			return err
		}
		written += cardSize
	}
	if err := writeCard(bw, "END"); err != nil {
		return err
	}
	written += cardSize
	if err := padBlock(bw, written, ' '); err != nil {
		return err
	}

	n := xDim * yDim
	var buf [4]byte
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint32(buf[:], math.Float32bits(float32(samples[i])))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("writing pixel data: %w", err)
		}
	}
	if err := padBlock(bw, n*4, 0); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteFile writes a binary FITS image to path, replacing any existing file.
func WriteFile(path string, samples []float64, xDim, yDim int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	if err := Write(f, samples, xDim, yDim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCard(w io.Writer, card string) error {
	buf := make([]byte, cardSize)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, card)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing header card: %w", err)
	}
	return nil
}

func padBlock(w io.Writer, written int, fill byte) error {
	need := pad(written) - written
	if need == 0 {
		return nil
	}
	buf := make([]byte, need)
	if fill != 0 {
		for i := range buf {
			buf[i] = fill
		}
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing block padding: %w", err)
	}
	return nil
}
