package gpu

// BufferDescriptor describes a buffer to allocate.
type BufferDescriptor struct {
	Label            string
	Size             int
	Usage            Usage
	MappedAtCreation bool
}

// Device allocates GPU buffers. Implementations wrap a real graphics device;
// MemoryDevice backs buffers with host memory.
type Device interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
}

// Buffer is a device buffer with an optional host mapping.
type Buffer interface {
	// Size returns the allocated size in bytes.
	Size() int
	// MappedRange returns the writable host view of a mapped buffer.
	MappedRange() ([]byte, error)
	// Unmap releases the host view and hands the buffer to the device.
	Unmap() error
}

// Destroyer is implemented by buffers that can release device memory early.
// Build destroys a buffer it created when writing into it fails.
type Destroyer interface {
	Destroy()
}
