package math

// Vec4 is a 4-component vector. Loop templates store homogeneous points with w = 1.
type Vec4 [4]float32

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Deg2Rad converts degrees to radians.
const Deg2Rad = float32(3.14159265358979323846 / 180)
