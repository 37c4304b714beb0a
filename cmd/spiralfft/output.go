package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/astrobits/spiralfft/analysis"
)

// writeResults writes one fixed-width table per harmonic mode, named
// <base>_m<mode>, with a row per inner radius. The second column labels the
// row as <base><radius>_m<mode> so downstream fitting tools can join rows
// across files.
func writeResults(base string, fr *analysis.FileResult) error {
	for mode := fr.ModeMin(); mode <= fr.ModeMax(); mode++ {
		path := fmt.Sprintf("%s_m%d", base, mode)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating result file: %w", err)
		}
		w := bufio.NewWriter(f)

		for radius := 1; radius < fr.Outer(); radius++ {
			res := fr.Result(mode, radius)
			label := fmt.Sprintf("%s%d_m%d", base, radius, mode)
			fmt.Fprintf(w, "%6d%11s%8.2f%12.3f%9.2f%11.3f%11.3f%11.3f\n",
				mode, label, res.Freq, res.Amp, res.Pitch, res.Phase, res.SNR, res.FWHM)
		}

		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("writing result file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing result file: %w", err)
		}
	}
	return nil
}

// writeSum writes one summed-spectrum table per harmonic mode, named
// <base>_sum_m<mode>, with a frequency and accumulated magnitude per row.
func writeSum(base string, fr *analysis.FileResult) error {
	for mode := fr.ModeMin(); mode <= fr.ModeMax(); mode++ {
		path := fmt.Sprintf("%s_sum_m%d", base, mode)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating sum file: %w", err)
		}
		w := bufio.NewWriter(f)

		for i := 0; i < fr.Sum.Bins(); i++ {
			fmt.Fprintf(w, "%6.2f     %f\n", fr.Sum.Frequency(i), fr.Sum.Amplitude(mode, i))
		}

		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("writing sum file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing sum file: %w", err)
		}
	}
	return nil
}
