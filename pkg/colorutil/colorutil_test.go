package colorutil

import (
	"errors"
	"image/color"
	"testing"

	"gonum.org/v1/plot/palette"
)

func TestRampEndpoints(t *testing.T) {
	r := Gray()

	lo, err := r.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if lo.(color.NRGBA).R != 0 {
		t.Errorf("low end: got %+v, want black", lo)
	}

	hi, err := r.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if hi.(color.NRGBA).R != 255 {
		t.Errorf("high end: got %+v, want white", hi)
	}
}

func TestRampRangeErrors(t *testing.T) {
	r := Viridis()
	if _, err := r.At(-0.1); !errors.Is(err, palette.ErrUnderflow) {
		t.Errorf("below min: got %v, want ErrUnderflow", err)
	}
	if _, err := r.At(1.1); !errors.Is(err, palette.ErrOverflow) {
		t.Errorf("above max: got %v, want ErrOverflow", err)
	}
}

func TestRGBAClamps(t *testing.T) {
	r := Gray()
	if c := r.RGBA(-5); c.R != 0 {
		t.Errorf("clamped low: got %+v, want black", c)
	}
	if c := r.RGBA(5); c.R != 255 {
		t.Errorf("clamped high: got %+v, want white", c)
	}
}

func TestRampRescaledRange(t *testing.T) {
	r := Gray()
	r.SetMin(10)
	r.SetMax(20)
	mid, err := r.At(15)
	if err != nil {
		t.Fatalf("At(15): %v", err)
	}
	c := mid.(color.NRGBA)
	if c.R < 100 || c.R > 155 {
		t.Errorf("midpoint of rescaled ramp: got %+v, want mid gray", c)
	}
}

func TestPaletteSize(t *testing.T) {
	p := Viridis().Palette(64)
	if n := len(p.Colors()); n != 64 {
		t.Errorf("palette size: got %d, want 64", n)
	}
}

func TestByName(t *testing.T) {
	if ByName("gray").Name() != "gray" {
		t.Error("ByName(gray) did not return the gray ramp")
	}
	if ByName("nonsense").Name() != "viridis" {
		t.Error("unknown name must fall back to viridis")
	}
}
