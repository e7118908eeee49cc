// Package component holds the data attached to entities: transforms, materials, renderable
// shapes, UI elements, animations and tilemaps.
package component

// Vector is a 2D vector in world units.
type Vector struct {
	X, Y float32
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by f.
func (v Vector) Scale(f float32) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Position is an integer grid position inside a tilemap.
type Position struct {
	X, Y, Z int
}

// Dimensions is the integer size of a tilemap in cells.
type Dimensions struct {
	Width, Height, Depth int
}
