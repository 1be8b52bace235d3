package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestTranslate(t *testing.T) {
	got := Translate(Vec2{2, 3}, Vec2{10, 11})
	if got != (Vec2{12, 14}) {
		t.Errorf("Translate = %v, want {12 14}", got)
	}
}

func TestTranslateAssociative(t *testing.T) {
	v := Vec2{0.25, -7.5}
	d1 := Vec2{3, 4}
	d2 := Vec2{-1.5, 8}

	if got, want := Translate(Translate(v, d1), d2), Translate(v, Translate(d1, d2)); got != want {
		t.Errorf("translate chain = %v, combined delta = %v", got, want)
	}
}

func TestScale(t *testing.T) {
	got := Scale(Vec2{2, 3}, 5)
	if got != (Vec2{10, 15}) {
		t.Errorf("Scale = %v, want {10 15}", got)
	}
}

func TestRotateAroundOrigin(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec2
		degrees float64
		want    Vec2
	}{
		{"quarter turn is clockwise", Vec2{1, 0}, 90, Vec2{0, -1}},
		{"negative eighth turn", Vec2{1, 0}, -45, Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}},
		{"half turn", Vec2{1, 2}, 180, Vec2{-1, -2}},
		{"zero", Vec2{3, -4}, 0, Vec2{3, -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotateAroundOrigin(tt.v, tt.degrees); !near(got, tt.want) {
				t.Errorf("RotateAroundOrigin(%v, %v) = %v, want %v", tt.v, tt.degrees, got, tt.want)
			}
		})
	}
}

func TestRotateAroundPoint(t *testing.T) {
	got := RotateAroundPoint(Vec2{2, 3}, Vec2{2, 2}, 90)
	if got != (Vec2{3, 2}) {
		t.Errorf("RotateAroundPoint = %v, want exactly {3 2}", got)
	}
}

func TestRotateAroundPointMatchesComposition(t *testing.T) {
	v, pivot := Vec2{5.3, -1.1}, Vec2{0.7, 2.9}
	for _, deg := range []float64{-170, -33.3, 0, 12.5, 90, 271} {
		want := Translate(RotateAroundOrigin(Translate(v, Vec2{-pivot.X, -pivot.Y}), deg), pivot)
		if got := RotateAroundPoint(v, pivot, deg); got != want {
			t.Errorf("deg %v: got %v, want %v", deg, got, want)
		}
	}
}

func TestRotateAroundPointInverse(t *testing.T) {
	points := []Vec2{{0, 0}, {1, 2}, {-3.5, 7.25}, {1e3, -1e3}}
	pivots := []Vec2{{0, 0}, {2, 2}, {-10, 4.5}}
	angles := []float64{-359, -90, -12.34, 0, 45, 90, 179.9}

	for _, v := range points {
		for _, p := range pivots {
			for _, deg := range angles {
				back := RotateAroundPoint(RotateAroundPoint(v, p, deg), p, -deg)
				if math.Abs(back.X-v.X) > 1e-6 || math.Abs(back.Y-v.Y) > 1e-6 {
					t.Errorf("v=%v pivot=%v deg=%v: round trip gave %v", v, p, deg, back)
				}
			}
		}
	}
}

func TestHeadingBetween(t *testing.T) {
	tests := []struct {
		prev, next Vec2
		want       float64
	}{
		{Vec2{0, 0}, Vec2{1, 0}, 0},
		{Vec2{0, 0}, Vec2{0, 1}, 90},
		{Vec2{1, 1}, Vec2{0, 0}, -135},
		{Vec2{0, 0}, Vec2{-1, 0}, 180},
	}

	for _, tt := range tests {
		if got := HeadingBetween(tt.prev, tt.next); math.Abs(got-tt.want) > eps {
			t.Errorf("HeadingBetween(%v, %v) = %v, want %v", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestVec2IsValid(t *testing.T) {
	if !(Vec2{1, 2}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec2{math.NaN(), 0}).IsValid() || (Vec2{0, math.Inf(-1)}).IsValid() {
		t.Error("non-finite vector reported valid")
	}
}
