package renderer

import (
	"strings"

	"github.com/pklampros/timelab/pkg/errors"
)

// Direction is the side of the time axis that labels are pushed towards.
// Left and right imply a vertical axis, up and down a horizontal one.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// Vertical reports whether the time axis runs vertically, which is the case
// when labels extend left or right.
func (d Direction) Vertical() bool {
	return d == DirLeft || d == DirRight
}

// ParseDirection converts a direction name to its enum value. Unknown names
// fail with an INVALID_DIRECTION error rather than falling back to a default.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return DirRight, nil
	case "left":
		return DirLeft, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (want up, down, left or right)", s)
}
