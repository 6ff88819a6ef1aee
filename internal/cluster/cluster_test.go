package cluster

import (
	"errors"
	"testing"

	"driftscope/pkg/geometry"
)

func TestBoundsExpandsByBorder(t *testing.T) {
	points := PointSet{{Channel: 10, Time: 5}, {Channel: 12, Time: 7}}
	region, err := Bounds(points, geometry.UniformBorder(2))
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := geometry.NewRegion(8, 14, 3, 9)
	if region != want {
		t.Errorf("got %+v, want %+v", region, want)
	}
}

func TestBoundsContainmentProperty(t *testing.T) {
	points := PointSet{
		{Channel: 3, Time: 19}, {Channel: 40, Time: 2},
		{Channel: 17, Time: 11}, {Channel: 40, Time: 19},
	}
	for _, b := range []geometry.Border{
		geometry.UniformBorder(0),
		geometry.UniformBorder(5),
		geometry.AsymmetricBorder(2, 9),
	} {
		region, err := Bounds(points, b)
		if err != nil {
			t.Fatalf("Bounds(border=%+v): %v", b, err)
		}
		for _, p := range points {
			if !region.Contains(p) {
				t.Errorf("border %+v: region %+v missing point %+v", b, region, p)
			}
		}
		if region.Channels.Lo != 3-b.Channel || region.Channels.Hi != 40+b.Channel {
			t.Errorf("border %+v: channel span %+v not expanded exactly", b, region.Channels)
		}
		if region.Times.Lo != 2-b.Time || region.Times.Hi != 19+b.Time {
			t.Errorf("border %+v: time span %+v not expanded exactly", b, region.Times)
		}
	}
}

func TestBoundsEmptySet(t *testing.T) {
	_, err := Bounds(nil, geometry.UniformBorder(1))
	if !errors.Is(err, ErrEmptyPointSet) {
		t.Errorf("got %v, want ErrEmptyPointSet", err)
	}
}

func TestBoundsRejectsNegativeBorder(t *testing.T) {
	points := PointSet{{Channel: 1, Time: 1}}
	if _, err := Bounds(points, geometry.AsymmetricBorder(-1, 0)); err == nil {
		t.Error("expected error for negative border margin")
	}
}

func TestPointsFromHits(t *testing.T) {
	hits := []Hit{
		{Channel: 5, Time: 1, DriftRate: 0.3, SNR: 12},
		{Channel: 6, Time: 2, DriftRate: 0.3, SNR: 11},
	}
	pts := Points(hits)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	if pts[0] != geometry.NewPoint(5, 1) || pts[1] != geometry.NewPoint(6, 2) {
		t.Errorf("unexpected points %+v", pts)
	}
}
