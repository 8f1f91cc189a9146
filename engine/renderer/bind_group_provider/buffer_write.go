package bind_group_provider

// BufferWrite describes one pending upload into a provider-owned buffer: the
// marshaled bytes land at Offset in the buffer bound at Binding. The scene
// batches a frame's uniform writes (tile transform, per-layer colors) into a
// slice and submits them through the renderer in a single call.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
