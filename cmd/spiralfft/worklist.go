package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// workEntry names one image to analyze, the basename of its result files and
// an optional outer radius override (zero means derive from the image).
type workEntry struct {
	Image  string
	Result string
	Radius int
}

// parseWorkEntry parses one `image[,result[,radius]]` item. Blank middle
// fields are tolerated; a missing result name defaults to the image name
// without its extension.
func parseWorkEntry(line string) (workEntry, error) {
	parts := strings.Split(line, ",")
	e := workEntry{Image: strings.TrimSpace(parts[0])}
	if e.Image == "" {
		return e, fmt.Errorf("work entry %q has no image name", line)
	}

	if len(parts) > 1 {
		e.Result = strings.TrimSpace(parts[1])
	}
	if e.Result == "" {
		base := filepath.Base(e.Image)
		e.Result = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		r, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || r < 0 {
			return e, fmt.Errorf("work entry %q has bad radius %q", line, parts[2])
		}
		e.Radius = r
	}
	if len(parts) > 3 {
		return e, fmt.Errorf("work entry %q has too many fields", line)
	}
	return e, nil
}

// readWorkList reads entries from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func readWorkList(path string) ([]workEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening work list: %w", err)
	}
	defer f.Close()

	var entries []workEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := parseWorkEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading work list: %w", err)
	}
	return entries, nil
}

func parseWorkArgs(args []string) ([]workEntry, error) {
	entries := make([]workEntry, 0, len(args))
	for _, a := range args {
		e, err := parseWorkEntry(a)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
