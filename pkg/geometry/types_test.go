package geometry

import "testing"

func TestSpanCount(t *testing.T) {
	s := NewSpan(8, 14)
	if got := s.Count(); got != 7 {
		t.Errorf("Count: got %d, want 7", got)
	}
	if one := NewSpan(3, 3).Count(); one != 1 {
		t.Errorf("single-index span count: got %d, want 1", one)
	}
}

func TestNewSpanSwapsReversed(t *testing.T) {
	s := NewSpan(10, 2)
	if s.Lo != 2 || s.Hi != 10 {
		t.Errorf("got [%d,%d], want [2,10]", s.Lo, s.Hi)
	}
}

func TestSpanExpand(t *testing.T) {
	s := NewSpan(5, 9).Expand(3)
	if s.Lo != 2 || s.Hi != 12 {
		t.Errorf("got [%d,%d], want [2,12]", s.Lo, s.Hi)
	}
}

func TestSpanClip(t *testing.T) {
	tests := []struct {
		name   string
		in     Span
		lo, hi int
		want   Span
	}{
		{"inside", Span{2, 8}, 0, 10, Span{2, 8}},
		{"overhang both", Span{-5, 15}, 0, 10, Span{0, 10}},
		{"entirely below", Span{-9, -4}, 0, 10, Span{0, 0}},
		{"entirely above", Span{20, 30}, 0, 10, Span{10, 10}},
	}
	for _, tt := range tests {
		if got := tt.in.Clip(tt.lo, tt.hi); got != tt.want {
			t.Errorf("%s: got [%d,%d], want [%d,%d]", tt.name, got.Lo, got.Hi, tt.want.Lo, tt.want.Hi)
		}
	}
}

func TestRegionExpand(t *testing.T) {
	r := NewRegion(10, 12, 5, 7).Expand(UniformBorder(2))
	want := NewRegion(8, 14, 3, 9)
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestUniformEqualsAsymmetric(t *testing.T) {
	if UniformBorder(3) != AsymmetricBorder(3, 3) {
		t.Error("UniformBorder(3) should equal AsymmetricBorder(3,3)")
	}
}

func TestBorderValid(t *testing.T) {
	if !UniformBorder(0).Valid() {
		t.Error("zero border must be valid")
	}
	if AsymmetricBorder(-1, 2).Valid() {
		t.Error("negative channel margin must be invalid")
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point{{10, 5}, {12, 7}, {11, 6}}
	r, ok := BoundingBox(points)
	if !ok {
		t.Fatal("BoundingBox reported empty for a non-empty set")
	}
	want := NewRegion(10, 12, 5, 7)
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
	for _, p := range points {
		if !r.Contains(p) {
			t.Errorf("region %+v does not contain %+v", r, p)
		}
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	if _, ok := BoundingBox(nil); ok {
		t.Error("BoundingBox of empty set must report not-ok")
	}
}

func TestBoundingBoxSinglePoint(t *testing.T) {
	r, ok := BoundingBox([]Point{{42, 3}})
	if !ok {
		t.Fatal("unexpected empty")
	}
	if r.Channels != (Span{42, 42}) || r.Times != (Span{3, 3}) {
		t.Errorf("got %+v, want degenerate region at (42,3)", r)
	}
}
