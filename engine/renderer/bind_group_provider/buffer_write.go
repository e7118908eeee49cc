package bind_group_provider

// BufferWrite describes a single uniform write targeting a binding of a BindGroupProvider.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Mesh reports whether the provider has allocated both buffers and has something to draw.
//
// Parameters:
//   - p: the mesh provider, may be nil
//
// Returns:
//   - bool: true when a draw call can be issued
func Mesh(p BindGroupProvider) bool {
	return p != nil && p.VertexCapacity() > 0 && p.IndexCapacity() > 0 && p.IndexCount() > 0
}
