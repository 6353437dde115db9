package shader

import (
	"math"
	"testing"
)

func TestFbm_Bounded(t *testing.T) {
	// Each octave contributes at most its amplitude; the sum stays below 1.
	for x := -5.0; x <= 5; x += 0.37 {
		for y := -5.0; y <= 5; y += 0.41 {
			if v := fbm(x, y); math.Abs(v) > 1 {
				t.Fatalf("fbm(%v, %v) = %v, want |v| <= 1", x, y, v)
			}
		}
	}
}

func TestNoise_Smoothstep(t *testing.T) {
	// At integer lattice points noise returns the corner value.
	for _, p := range [][2]float64{{0, 0}, {3, -2}, {-7, 11}} {
		want := math.Sin(p[0] + p[1]*19.19)
		if got := noise(p[0], p[1]); math.Abs(got-want) > 1e-12 {
			t.Errorf("noise(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestShade_BrightnessScalesLinearly(t *testing.T) {
	in := Inputs{Time: 3.2, Pointer: [2]float32{0.1, -0.3}, Brightness: 1}
	base := Shade(400, 300, 800, 600, in)
	in.Brightness = 2
	doubled := Shade(400, 300, 800, 600, in)
	in.Brightness = 0
	black := Shade(400, 300, 800, 600, in)
	for i := range base {
		if math.Abs(doubled[i]-2*base[i]) > 1e-9 {
			t.Errorf("channel %d: brightness 2 = %v, want %v", i, doubled[i], 2*base[i])
		}
		if black[i] != 0 {
			t.Errorf("channel %d: brightness 0 = %v, want 0", i, black[i])
		}
	}
}

func TestShade_GlowFollowsPointer(t *testing.T) {
	const w, h = 800.0, 600.0
	// Pixel at the centre: uv = (0, 0).
	near := Shade(w/2, h/2, w, h, Inputs{Time: 1, Pointer: [2]float32{0, 0}, Brightness: 1})
	far := Shade(w/2, h/2, w, h, Inputs{Time: 1, Pointer: [2]float32{1, 1}, Brightness: 1})
	sum := func(c RGB) float64 { return c[0] + c[1] + c[2] }
	if sum(near) <= sum(far) {
		t.Errorf("glow under pointer %v not brighter than far pointer %v", near, far)
	}
}

func TestShade_NonNegativeAndFinite(t *testing.T) {
	in := Inputs{Time: 12.5, Pointer: [2]float32{-0.8, 0.6}, Brightness: 2}
	for x := 0.0; x < 640; x += 53 {
		for y := 0.0; y < 480; y += 47 {
			c := Shade(x, y, 640, 480, in)
			for i, v := range c {
				if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("Shade(%v, %v)[%d] = %v", x, y, i, v)
				}
			}
		}
	}
}

func TestShade_ZeroSurface(t *testing.T) {
	if c := Shade(0, 0, 0, 0, Inputs{Brightness: 1}); c != (RGB{}) {
		t.Errorf("Shade on empty surface = %v, want black", c)
	}
}
