package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWorkEntry(t *testing.T) {
	cases := []struct {
		name string
		line string
		want workEntry
		err  bool
	}{
		{"image only", "ngc1300.fits", workEntry{Image: "ngc1300.fits", Result: "ngc1300"}, false},
		{"image and result", "ngc1300.fits,run1", workEntry{Image: "ngc1300.fits", Result: "run1"}, false},
		{"full entry", "ngc1300.fits,run1,90", workEntry{Image: "ngc1300.fits", Result: "run1", Radius: 90}, false},
		{"blank result", "ngc1300.fits,,90", workEntry{Image: "ngc1300.fits", Result: "ngc1300", Radius: 90}, false},
		{"blank radius", "ngc1300.fits,run1,", workEntry{Image: "ngc1300.fits", Result: "run1"}, false},
		{"directory stripped", "data/ngc1300.fits", workEntry{Image: "data/ngc1300.fits", Result: "ngc1300"}, false},
		{"spaces tolerated", " ngc1300.fits , run1 , 90 ", workEntry{Image: "ngc1300.fits", Result: "run1", Radius: 90}, false},
		{"empty image", ",run1", workEntry{}, true},
		{"bad radius", "ngc1300.fits,run1,ninety", workEntry{}, true},
		{"negative radius", "ngc1300.fits,run1,-5", workEntry{}, true},
		{"too many fields", "a,b,1,extra", workEntry{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseWorkEntry(tc.line)
			if tc.err {
				if err == nil {
					t.Fatalf("parseWorkEntry(%q) succeeded, want error", tc.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWorkEntry(%q): %v", tc.line, err)
			}
			if got != tc.want {
				t.Errorf("parseWorkEntry(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}

func TestReadWorkList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.txt")
	data := "# survey batch 3\n\nngc1300.fits,run1,90\nngc4321.fits\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := readWorkList(path)
	if err != nil {
		t.Fatalf("readWorkList: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d entries, want 2", len(entries))
	}
	if entries[0].Result != "run1" || entries[0].Radius != 90 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Result != "ngc4321" || entries[1].Radius != 0 {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestReadWorkListMissing(t *testing.T) {
	if _, err := readWorkList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("readWorkList succeeded on a missing file")
	}
}
