package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := Right.Cross(Up)
	want := Forward
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3ApproxEqual(t *testing.T) {
	tests := []struct {
		a, b Vec3
		want bool
	}{
		{Vec3{1, 2, 3}, Vec3{1, 2, 3}, true},
		{Vec3{1, 2, 3}, Vec3{1, 2, 3.000001}, true},
		{Vec3{1, 2, 3}, Vec3{1, 2, 3.01}, false},
		{Vec3{}, Vec3{0.1, 0, 0}, false},
	}

	for _, tt := range tests {
		if got := tt.a.ApproxEqual(tt.b); got != tt.want {
			t.Errorf("%v.ApproxEqual(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
