// Command spiralfft measures spiral pitch angles in galaxy images by polar
// resampling each annulus, applying a 2D Fourier transform and extracting
// the dominant frequency of each harmonic mode.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/astrobits/spiralfft/analysis"
	"github.com/astrobits/spiralfft/fits"
	"github.com/astrobits/spiralfft/logging"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "work list file; one image[,result[,radius]] per line")
		configPath = flag.String("config", "", "YAML configuration file")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		reverse    = flag.Bool("reverse", false, "grow annuli inward from the outer radius")
		fixedWidth = flag.Int("fixed", 0, "analyze fixed-width annuli of this many pixels")
		zeroPad    = flag.Bool("zero", false, "zero-pad the angular edges of the polar plane")
		mask       = flag.Int("mask", -1, "mask mode: 0 center brightness, 1 bar estimate")
		highPass   = flag.Bool("highpass", false, "suppress low-frequency bins near each mode")
		polarMap   = flag.Bool("polar", false, "write the radius-1 polar sampling as <result>_polar.fits")
		workers    = flag.Int("workers", 0, "worker pool size; 0 means one per CPU")
	)
	flag.Parse()

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	cfg := analysis.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = analysis.LoadConfig(*configPath)
		if err != nil {
			logging.Fatal(err, "invalid configuration", logging.Fields{"path": *configPath})
		}
	}

	// Explicit flags override the file. flag.Visit only reports flags that
	// were actually set on the command line.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "reverse":
			cfg.Reverse = *reverse
		case "fixed":
			cfg.FixedWidth = *fixedWidth
		case "zero":
			cfg.ZeroPad = *zeroPad
		case "mask":
			cfg.MaskCore = *mask == 0
			cfg.MaskBar = *mask == 1
		case "highpass":
			cfg.HighPass = *highPass
		case "polar":
			cfg.PolarMap = *polarMap
		case "workers":
			cfg.Workers = *workers
		}
	})

	var entries []workEntry
	var err error
	switch {
	case *inputPath != "":
		entries, err = readWorkList(*inputPath)
	case flag.NArg() > 0:
		entries, err = parseWorkArgs(flag.Args())
	default:
		fmt.Fprintln(os.Stderr, "usage: spiralfft [flags] image[,result[,radius]] ...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err != nil {
		logging.Fatal(err, "invalid work list")
	}

	analyzer, err := analysis.New(cfg)
	if err != nil {
		logging.Fatal(err, "invalid configuration")
	}

	processed, failed := 0, 0
	for _, e := range entries {
		if err := processEntry(analyzer, e); err != nil {
			logging.Error(err, "file failed", logging.Fields{"image": e.Image})
			failed++
			continue
		}
		processed++
	}

	logging.Info("run complete", logging.Fields{
		"processed": processed,
		"failed":    failed,
	})
	if failed > 0 && processed == 0 {
		os.Exit(1)
	}
}

func processEntry(analyzer *analysis.Analyzer, e workEntry) error {
	img, err := fits.ReadImage(e.Image)
	if err != nil {
		return err
	}
	grid, err := analysis.GridFromSamples(img.Samples, img.XDim, img.YDim)
	if err != nil {
		return err
	}

	logging.Info("analyzing image", logging.Fields{
		"image":  e.Image,
		"result": e.Result,
		"xdim":   img.XDim,
		"ydim":   img.YDim,
	})

	fr, err := analyzer.Analyze(grid, e.Radius)
	if err != nil {
		return err
	}

	for mode := fr.ModeMin(); mode <= fr.ModeMax(); mode++ {
		logging.Debug("mode power", logging.Fields{
			"mode":  mode,
			"power": fr.Sum.Total(mode),
		})
	}

	if err := writeResults(e.Result, fr); err != nil {
		return err
	}
	if err := writeSum(e.Result, fr); err != nil {
		return err
	}
	if fr.Polar != nil {
		cfg := analyzer.Config()
		if err := fits.WriteFile(e.Result+"_polar.fits", fr.Polar, cfg.DimTheta, cfg.DimRadius); err != nil {
			return err
		}
	}
	return nil
}
