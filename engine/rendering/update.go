// Package rendering holds everything that crosses the boundary between the simulation goroutine
// and the rendering goroutine: the update commands, the draw list, the windowing events, and the
// opaque Renderer contract driven by the rendering thread.
package rendering

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/Carmen-Shannon/scion-go/engine/ecs"
)

// Update is one GPU-bound write produced by the pre-renderer.
type Update interface {
	isUpdate()
}

// DiffuseKind selects how a diffuse texture is sampled.
type DiffuseKind uint8

const (
	DiffuseColor DiffuseKind = iota
	DiffuseTexture
	DiffuseTileset
)

// DiffuseBindGroupUpdate uploads the texture identified by Key once.
type DiffuseBindGroupUpdate struct {
	Key     string
	Kind    DiffuseKind
	Texture common.TextureStagingData
}

// TransformUniformUpdate replaces the transform uniform of Entity.
type TransformUniformUpdate struct {
	Entity  ecs.Entity
	Uniform component.TransformUniform
}

// ColorPickingUniformUpdate replaces the picking uniform of Entity.
type ColorPickingUniformUpdate struct {
	Entity  ecs.Entity
	Uniform component.ColorPickingUniform
}

// VertexBufferUpdate replaces the vertex buffer of Entity.
type VertexBufferUpdate struct {
	Entity   ecs.Entity
	Contents []byte
}

// IndexBufferUpdate replaces the index buffer of Entity.
type IndexBufferUpdate struct {
	Entity   ecs.Entity
	Contents []byte
}

func (DiffuseBindGroupUpdate) isUpdate()    {}
func (TransformUniformUpdate) isUpdate()    {}
func (ColorPickingUniformUpdate) isUpdate() {}
func (VertexBufferUpdate) isUpdate()        {}
func (IndexBufferUpdate) isUpdate()         {}

// DrawInfo describes one draw call.
type DrawInfo struct {
	// Layer is the global z of the entity, lower layers are painted first.
	Layer int
	// Priority breaks ties inside one layer, higher is painted later.
	Priority int
	Entity   ecs.Entity
	// IndexCount is the number of indices to draw from the entity's index buffer.
	IndexCount uint32
	// TextureKey names the diffuse bind group, empty when the entity has no material.
	TextureKey string
	Topology   component.Topology
	// TypeName is the renderable component kind, for diagnostics.
	TypeName string
	UI       bool
}

// SortDrawInfos orders draws by layer then priority. The sort is stable so draws with the same
// key keep their emission order.
//
// Parameters:
//   - draws: the draw list to sort in place
func SortDrawInfos(draws []DrawInfo) {
	slices.SortStableFunc(draws, func(a, b DrawInfo) int {
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.Priority, b.Priority)
	})
}
