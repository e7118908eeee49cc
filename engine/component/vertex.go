package component

import (
	"github.com/Carmen-Shannon/scion-go/common"
)

// Topology is the primitive assembly used to draw a renderable.
type Topology uint8

const (
	TopologyTriangleList Topology = iota
	TopologyLineList
)

// TexturedVertex is the vertex layout shared by every 2D pipeline. All fields are 4 byte
// aligned so the slice can be uploaded as-is.
type TexturedVertex struct {
	Position      [3]float32
	TexCoords     [2]float32
	Depth         float32
	PickingColor  [4]float32
	EnablePicking uint32
}

// VertexBytes returns the GPU representation of vertices.
func VertexBytes(vertices []TexturedVertex) []byte {
	return common.SliceToBytes(vertices)
}

// IndexBytes returns the GPU representation of u16 indices, padded to a multiple of 4 bytes
// because buffer writes must be 4 byte aligned.
func IndexBytes(indices []uint16) []byte {
	padded := indices
	if len(padded)%2 != 0 {
		padded = append(append(make([]uint16, 0, len(indices)+1), indices...), 0)
	}
	return common.SliceToBytes(padded)
}

// TransformUniform is the per-entity uniform consumed by the vertex shader.
type TransformUniform struct {
	Model          [16]float32
	ViewProjection [16]float32
	IsUI           uint32
	_              [3]uint32
}

// Bytes returns the GPU representation of the uniform.
func (u TransformUniform) Bytes() []byte {
	return common.StructToBytes(&u)
}

// ColorPickingUniform carries the picking color of a renderable drawn by the offscreen pass.
type ColorPickingUniform struct {
	Color  [4]float32
	Enable uint32
	_      [3]uint32
}

// NewColorPickingUniform builds an enabled picking uniform for color c.
func NewColorPickingUniform(c common.Color) ColorPickingUniform {
	return ColorPickingUniform{Color: c.Float4(), Enable: 1}
}

// Bytes returns the GPU representation of the uniform.
func (u ColorPickingUniform) Bytes() []byte {
	return common.StructToBytes(&u)
}
