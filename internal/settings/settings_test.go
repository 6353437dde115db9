package settings

import (
	"errors"
	"math"
	"testing"
)

func TestClampBrightness(t *testing.T) {
	tests := []struct {
		in   float64
		want float32
	}{
		{1, 1},
		{0.1, 0.1},
		{2, 2},
		{0, 0.1},
		{-5, 0.1},
		{2.5, 2},
		{math.Inf(1), 2},
		{math.Inf(-1), 0.1},
		{1.04, 1},
		{1.06, 1.1},
		{0.7000001, 0.7},
	}
	for _, tt := range tests {
		got, err := ClampBrightness(tt.in)
		if err != nil {
			t.Errorf("ClampBrightness(%v) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ClampBrightness(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampBrightness_NaN(t *testing.T) {
	if _, err := ClampBrightness(math.NaN()); !errors.Is(err, ErrInvalidBrightness) {
		t.Errorf("ClampBrightness(NaN) error = %v, want ErrInvalidBrightness", err)
	}
}

func TestController_NeverOutOfRange(t *testing.T) {
	c := NewController(Default())
	for _, v := range []float64{-1, 0, 0.05, 0.3, 1.99, 2.01, 100, math.NaN(), math.Inf(1)} {
		_ = c.SetBrightness(v)
		b := c.Snapshot().Brightness
		if b < MinBrightness || b > MaxBrightness {
			t.Fatalf("after SetBrightness(%v) brightness = %v", v, b)
		}
	}
}

func TestController_Defaults(t *testing.T) {
	c := NewController(Default())
	if s := c.Snapshot(); s.Brightness != 1 || !s.Dark {
		t.Errorf("default snapshot = %+v, want brightness 1 dark", s)
	}
	c = NewController(Snapshot{Brightness: 9})
	if got := c.Snapshot().Brightness; got != 2 {
		t.Errorf("NewController clamps to %v, want 2", got)
	}
}

func TestController_StepBrightness(t *testing.T) {
	c := NewController(Default())
	c.StepBrightness(3)
	if got := c.Snapshot().Brightness; got != 1.3 {
		t.Errorf("after +3 steps = %v, want 1.3", got)
	}
	c.StepBrightness(-20)
	if got := c.Snapshot().Brightness; got != 0.1 {
		t.Errorf("after -20 steps = %v, want 0.1", got)
	}
	c.StepBrightness(50)
	if got := c.Snapshot().Brightness; got != 2 {
		t.Errorf("after +50 steps = %v, want 2", got)
	}
}

func TestController_OnChange(t *testing.T) {
	c := NewController(Default())
	var seen []Snapshot
	c.OnChange(func(s Snapshot) { seen = append(seen, s) })

	_ = c.SetBrightness(1) // unchanged
	c.ToggleTheme()
	_ = c.SetBrightness(0.5)
	c.SetDark(false) // unchanged
	_ = c.Apply(Snapshot{Brightness: 0.5, Dark: false})
	_ = c.Apply(Snapshot{Brightness: 1.5, Dark: true})

	want := []Snapshot{
		{Brightness: 1, Dark: false},
		{Brightness: 0.5, Dark: false},
		{Brightness: 1.5, Dark: true},
	}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %+v, want %+v", i, seen[i], want[i])
		}
	}
}
