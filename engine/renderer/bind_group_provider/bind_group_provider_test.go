package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderDefaults(t *testing.T) {
	p := NewBindGroupProvider("entity 3 mesh", WithIndexCount(6))

	assert.Equal(t, "entity 3 mesh", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(1))
	assert.Equal(t, uint32(6), p.IndexCount())
	assert.False(t, Mesh(p))
	assert.False(t, Mesh(nil))
}

func TestReleaseResetsBookkeeping(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetVertexBuffer(nil, 128)
	p.SetIndexBuffer(nil, 16)
	p.SetIndexCount(6)

	assert.Equal(t, uint64(128), p.VertexCapacity())
	assert.Equal(t, uint64(16), p.IndexCapacity())

	p.Release()
	assert.Zero(t, p.VertexCapacity())
	assert.Zero(t, p.IndexCapacity())
	assert.Zero(t, p.IndexCount())
}

func TestMeshRequiresBothBuffersAndIndices(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetVertexBuffer(nil, 176)
	assert.False(t, Mesh(p))

	p.SetIndexBuffer(nil, 12)
	assert.False(t, Mesh(p))

	p.SetIndexCount(6)
	assert.True(t, Mesh(p))
}
