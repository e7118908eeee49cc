package shader

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutMatchesTexturedVertex(t *testing.T) {
	var v component.TexturedVertex
	layout := VertexLayout()

	assert.Equal(t, uint64(unsafe.Sizeof(v)), layout.ArrayStride)
	require.Len(t, layout.Attributes, 5)
	offsets := []uintptr{
		unsafe.Offsetof(v.Position),
		unsafe.Offsetof(v.TexCoords),
		unsafe.Offsetof(v.Depth),
		unsafe.Offsetof(v.PickingColor),
		unsafe.Offsetof(v.EnablePicking),
	}
	for i, attr := range layout.Attributes {
		assert.Equal(t, uint64(offsets[i]), attr.Offset, "attribute %d", i)
		assert.Equal(t, uint32(i), attr.ShaderLocation)
	}
}

func TestUniformSizesMatchComponents(t *testing.T) {
	assert.Len(t, component.TransformUniform{}.Bytes(), TransformUniformLen)
	assert.Len(t, component.ColorPickingUniform{}.Bytes(), PickingUniformLen)
}

func TestSourceDeclaresEntryPoints(t *testing.T) {
	src := Source()
	for _, entry := range []string{VertexEntryPoint, FragmentEntryPoint, PickingEntryPoint} {
		assert.True(t, strings.Contains(src, "fn "+entry+"("), entry)
	}
}

func TestBindGroupLayoutDescriptors(t *testing.T) {
	descs := BindGroupLayoutDescriptors()
	require.Len(t, descs, 3)
	assert.Len(t, descs[GroupTransform].Entries, 1)
	assert.Len(t, descs[GroupDiffuse].Entries, 2)
	assert.Len(t, descs[GroupPicking].Entries, 1)
}
