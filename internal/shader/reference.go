package shader

import "math"

// RGB is a linear colour, one float per channel.
type RGB [3]float64

// Shade evaluates FragmentSource on the CPU for the pixel at (fragX, fragY)
// on a surface of width×height physical pixels. fragY grows upward, as
// gl_FragCoord does.
func Shade(fragX, fragY, width, height float64, in Inputs) RGB {
	short := math.Min(width, height)
	if short <= 0 {
		return RGB{}
	}
	uvx := (fragX - 0.5*width) / short
	uvy := (fragY - 0.5*height) / short

	elapsed := float64(in.Time)
	t := elapsed * 0.2
	px := uvx + math.Sin(t)*0.1
	py := uvy + math.Cos(t)*0.1

	pattern1 := fbm(px*3+t, py*3+t)
	pattern2 := fbm(px*5-t, py*5-t)

	col1 := mixRGB(RGB{0.1, 0.05, 0.2}, RGB{0.3, 0.2, 0.5}, pattern1)
	col2 := mixRGB(RGB{0.2, 0.4, 0.6}, RGB{0.1, 0.3, 0.4}, pattern2)
	c := mixRGB(col1, col2, 0.5+0.5*math.Sin(elapsed*0.1))

	// (mouse+1)*0.5 recentred and rescaled is the pointer itself.
	dx := uvx - float64(in.Pointer[0])
	dy := uvy - float64(in.Pointer[1])
	glow := math.Exp(-math.Hypot(dx, dy) * 4)
	glowTint := RGB{0.3, 0.4, 0.5}

	vignette := 1 - math.Hypot(uvx, uvy)*0.5
	brightness := float64(in.Brightness)

	for i := range c {
		v := (c[i] + glowTint[i]*glow) * vignette
		c[i] = math.Pow(math.Max(v, 0), 0.8) * brightness
	}
	return c
}

func noise(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	a := math.Sin(ix + iy*19.19)
	b := math.Sin(ix + 1 + iy*19.19)
	c := math.Sin(ix + (iy+1)*19.19)
	d := math.Sin(ix + 1 + (iy+1)*19.19)
	return mix(mix(a, b, fx), mix(c, d, fx), fy)
}

func fbm(x, y float64) float64 {
	v, amp, freq := 0.0, 0.5, 1.0
	for range Octaves {
		v += amp * noise(x*freq, y*freq)
		freq *= 2
		amp *= 0.5
	}
	return v
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func mixRGB(a, b RGB, t float64) RGB {
	return RGB{mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t)}
}
