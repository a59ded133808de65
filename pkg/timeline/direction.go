package timeline

import "github.com/pklampros/timelab/pkg/renderer"

// Direction is re-exported from the renderer so that callers configuring a
// timeline do not need to import the layer geometry package.
type Direction = renderer.Direction

const (
	DirRight = renderer.DirRight
	DirLeft  = renderer.DirLeft
	DirUp    = renderer.DirUp
	DirDown  = renderer.DirDown
)

// ParseDirection converts a direction name ("up", "down", "left", "right")
// to its enum value.
var ParseDirection = renderer.ParseDirection
