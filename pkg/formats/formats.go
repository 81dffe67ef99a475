// Package formats provides writers for interchange mesh formats.
package formats

import "errors"

// ErrInvalidMesh is returned when mesh data cannot be encoded.
var ErrInvalidMesh = errors.New("invalid mesh")
