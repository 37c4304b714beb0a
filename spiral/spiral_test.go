package spiral

import "testing"

func TestGenerateDefaults(t *testing.T) {
	p := DefaultParams()
	img, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(img) != p.Size*p.Size {
		t.Fatalf("image has %d samples, want %d", len(img), p.Size*p.Size)
	}

	lit := 0
	for _, v := range img {
		if v == p.Foreground {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no arm pixels rendered")
	}
	// Arms must stay a sparse feature, not flood the canvas.
	if lit > len(img)/4 {
		t.Errorf("%d of %d pixels lit", lit, len(img))
	}
}

func TestGenerateBackgroundAndCore(t *testing.T) {
	p := DefaultParams()
	p.Background = 10.0
	p.Core = 4.0
	img, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}

	c := p.Size / 2
	if v := img[c*p.Size+c]; v != p.Foreground {
		t.Errorf("core center = %g, want %g", v, p.Foreground)
	}
	if v := img[0]; v != p.Background {
		t.Errorf("corner = %g, want background %g", v, p.Background)
	}
}

func TestGenerateNoiseReproducible(t *testing.T) {
	p := DefaultParams()
	p.Noise = 5.0
	p.Seed = 99

	a, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs across identical seeds", i)
		}
	}

	p.Seed = 100
	c, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical noise")
	}
}

func TestGenerateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"even size", func(p *Params) { p.Size = 256 }},
		{"tiny size", func(p *Params) { p.Size = 1 }},
		{"no arms", func(p *Params) { p.Arms = 0 }},
		{"vertical pitch", func(p *Params) { p.Pitch = 90.0 }},
		{"zero sweep", func(p *Params) { p.Sweep = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			if _, err := Generate(p); err == nil {
				t.Error("Generate accepted invalid parameters")
			}
		})
	}
}
