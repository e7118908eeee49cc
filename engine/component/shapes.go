package component

var (
	_ Renderable = &Triangle{}
	_ Renderable = &Square{}
	_ Renderable = &Rectangle{}
	_ Renderable = &Line{}
	_ Renderable = &Polygon{}
)

// Triangle is a filled triangle.
type Triangle struct {
	points [3]Vector
	uvs    [3]Vector
	dirty  bool
}

// NewTriangle builds a triangle from three points relative to the entity origin.
func NewTriangle(a, b, c Vector) Triangle {
	return Triangle{
		points: [3]Vector{a, b, c},
		uvs:    [3]Vector{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	}
}

// SetPoints replaces the corners.
func (t *Triangle) SetPoints(a, b, c Vector) {
	t.points = [3]Vector{a, b, c}
	t.dirty = true
}

func (t *Triangle) Vertices(_ *Material) []TexturedVertex {
	out := make([]TexturedVertex, 3)
	for i, p := range t.points {
		out[i] = TexturedVertex{Position: [3]float32{p.X, p.Y, 0}, TexCoords: [2]float32{t.uvs[i].X, t.uvs[i].Y}}
	}
	return out
}

func (t *Triangle) Indices() []uint16 { return []uint16{0, 1, 2} }
func (t *Triangle) Topology() Topology { return TopologyTriangleList }
func (t *Triangle) IsDirty() bool { return t.dirty }
func (t *Triangle) SetDirty(dirty bool) { t.dirty = dirty }
func (t *Triangle) PivotOffset(_ *Material) Vector { return Vector{} }
func (t *Triangle) RenderPriority() int { return 0 }

// Square is a filled square.
type Square struct {
	length float32
	pivot  Pivot
	dirty  bool
}

// NewSquare builds a square of side length.
func NewSquare(length float32, pivot Pivot) Square {
	return Square{length: length, pivot: pivot}
}

// SetLength resizes the square.
func (s *Square) SetLength(length float32) {
	s.length = length
	s.dirty = true
}

func (s *Square) Vertices(_ *Material) []TexturedVertex {
	return quad(s.length, s.length, 0, 0, 1, 1)
}

func (s *Square) Indices() []uint16 { return QuadIndices() }
func (s *Square) Topology() Topology { return TopologyTriangleList }
func (s *Square) IsDirty() bool { return s.dirty }
func (s *Square) SetDirty(dirty bool) { s.dirty = dirty }
func (s *Square) RenderPriority() int { return 0 }
func (s *Square) PivotOffset(_ *Material) Vector {
	return s.pivot.offset(s.length, s.length)
}

// Rectangle is a filled rectangle.
type Rectangle struct {
	width, height float32
	pivot         Pivot
	dirty         bool
}

// NewRectangle builds a width x height rectangle.
func NewRectangle(width, height float32, pivot Pivot) Rectangle {
	return Rectangle{width: width, height: height, pivot: pivot}
}

// SetSize resizes the rectangle.
func (r *Rectangle) SetSize(width, height float32) {
	r.width, r.height = width, height
	r.dirty = true
}

func (r *Rectangle) Vertices(_ *Material) []TexturedVertex {
	return quad(r.width, r.height, 0, 0, 1, 1)
}

func (r *Rectangle) Indices() []uint16 { return QuadIndices() }
func (r *Rectangle) Topology() Topology { return TopologyTriangleList }
func (r *Rectangle) IsDirty() bool { return r.dirty }
func (r *Rectangle) SetDirty(dirty bool) { r.dirty = dirty }
func (r *Rectangle) RenderPriority() int { return 0 }
func (r *Rectangle) PivotOffset(_ *Material) Vector {
	return r.pivot.offset(r.width, r.height)
}

// Line is an open polyline drawn with one segment between each consecutive pair of points.
type Line struct {
	points []Vector
	dirty  bool
}

// NewLine builds a polyline. At least two points are expected.
func NewLine(points ...Vector) Line {
	return Line{points: points}
}

// SetPoints replaces the points.
func (l *Line) SetPoints(points ...Vector) {
	l.points = points
	l.dirty = true
}

func (l *Line) Vertices(_ *Material) []TexturedVertex {
	return outlineVertices(l.points)
}

func (l *Line) Indices() []uint16 {
	var out []uint16
	for i := 0; i+1 < len(l.points); i++ {
		out = append(out, uint16(i), uint16(i+1))
	}
	return out
}

func (l *Line) Topology() Topology { return TopologyLineList }
func (l *Line) IsDirty() bool { return l.dirty }
func (l *Line) SetDirty(dirty bool) { l.dirty = dirty }
func (l *Line) PivotOffset(_ *Material) Vector { return Vector{} }
func (l *Line) RenderPriority() int { return 0 }

// Polygon is a closed outline.
type Polygon struct {
	points []Vector
	dirty  bool
}

// NewPolygon builds a closed outline through points.
func NewPolygon(points ...Vector) Polygon {
	return Polygon{points: points}
}

// SetPoints replaces the points.
func (p *Polygon) SetPoints(points ...Vector) {
	p.points = points
	p.dirty = true
}

func (p *Polygon) Vertices(_ *Material) []TexturedVertex {
	return outlineVertices(p.points)
}

func (p *Polygon) Indices() []uint16 {
	n := len(p.points)
	var out []uint16
	for i := 0; i < n && n > 1; i++ {
		out = append(out, uint16(i), uint16((i+1)%n))
	}
	return out
}

func (p *Polygon) Topology() Topology { return TopologyLineList }
func (p *Polygon) IsDirty() bool { return p.dirty }
func (p *Polygon) SetDirty(dirty bool) { p.dirty = dirty }
func (p *Polygon) PivotOffset(_ *Material) Vector { return Vector{} }
func (p *Polygon) RenderPriority() int { return 0 }

func outlineVertices(points []Vector) []TexturedVertex {
	out := make([]TexturedVertex, len(points))
	for i, p := range points {
		out[i] = TexturedVertex{Position: [3]float32{p.X, p.Y, 0}}
	}
	return out
}
