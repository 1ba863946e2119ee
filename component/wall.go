package component

import "github.com/dogsinatas29/doomforantigravity/level"

// WallComponent is a static wall segment in grid space with its material id
type WallComponent struct {
	level.Segment
}
