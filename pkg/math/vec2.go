package math

// Vec2 is a 2D vector. Ring texture coordinates store u in X and the
// along-segment v in Y.
type Vec2 struct {
	X, Y float32
}
