package avatar

import "fmt"

// Curve shapes the vertical motion of one jump phase. Eval maps normalized
// time in [0,1] to a fraction of the jump height.
type Curve int

const (
	CurveLinear Curve = iota
	CurveSmooth
	CurveEaseOut
)

var curveNames = map[string]Curve{
	"linear":   CurveLinear,
	"smooth":   CurveSmooth,
	"ease-out": CurveEaseOut,
}

// ParseCurve returns the curve with the given config name.
func ParseCurve(name string) (Curve, error) {
	c, ok := curveNames[name]
	if !ok {
		return CurveLinear, fmt.Errorf("unknown curve %q (want linear, smooth or ease-out)", name)
	}
	return c, nil
}

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveSmooth:
		return "smooth"
	case CurveEaseOut:
		return "ease-out"
	default:
		return "unknown"
	}
}

// Eval samples the curve. t is clamped to [0,1]; every curve maps 0 to 0
// and 1 to 1.
func (c Curve) Eval(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch c {
	case CurveSmooth:
		return t * t * (3 - 2*t)
	case CurveEaseOut:
		u := 1 - t
		return 1 - u*u
	default:
		return t
	}
}
