package component

// Renderable is implemented by every component the pre-renderer turns into vertex and index buffers.
type Renderable interface {
	// Vertices computes the vertex payload. material may be nil for UI components.
	Vertices(material *Material) []TexturedVertex
	Indices() []uint16
	Topology() Topology
	IsDirty() bool
	SetDirty(dirty bool)
	// PivotOffset is the rotation pivot relative to the entity origin.
	PivotOffset(material *Material) Vector
	// RenderPriority breaks draw order ties inside one layer, higher draws later.
	RenderPriority() int
}

// Pivot selects the rotation pivot of a shape.
type Pivot struct {
	center bool
	custom *Vector
}

// PivotTopLeft rotates around the entity origin.
func PivotTopLeft() Pivot { return Pivot{} }

// PivotCenter rotates around the middle of the shape.
func PivotCenter() Pivot { return Pivot{center: true} }

// PivotCustom rotates around an explicit offset.
func PivotCustom(x, y float32) Pivot { return Pivot{custom: &Vector{X: x, Y: y}} }

func (p Pivot) offset(width, height float32) Vector {
	switch {
	case p.custom != nil:
		return *p.custom
	case p.center:
		return Vector{X: width / 2, Y: height / 2}
	default:
		return Vector{}
	}
}

var quadIndices = []uint16{0, 1, 3, 3, 1, 2}

// QuadIndices returns the two-triangle index list shared by every quad.
func QuadIndices() []uint16 {
	out := make([]uint16, len(quadIndices))
	copy(out, quadIndices)
	return out
}

// quad lays out a width x height rectangle starting at the origin, y pointing down,
// with uvs [u0, v0] at the top-left and [u1, v1] at the bottom-right.
func quad(width, height, u0, v0, u1, v1 float32) []TexturedVertex {
	return []TexturedVertex{
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{u0, v0}},
		{Position: [3]float32{0, height, 0}, TexCoords: [2]float32{u0, v1}},
		{Position: [3]float32{width, height, 0}, TexCoords: [2]float32{u1, v1}},
		{Position: [3]float32{width, 0, 0}, TexCoords: [2]float32{u1, v0}},
	}
}

// QuadVertices lays out a width x height quad with the given uv corners.
func QuadVertices(width, height, u0, v0, u1, v1 float32) []TexturedVertex {
	return quad(width, height, u0, v0, u1, v1)
}

// Pickable opts a renderable into cursor color picking. Tiles are always pickable.
type Pickable struct{}
