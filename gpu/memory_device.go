package gpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arloliu/tensorbuf/errs"
)

// MemoryDevice is a Device backed by host memory. It is safe for concurrent use.
type MemoryDevice struct {
	created   atomic.Int64
	allocated atomic.Int64
}

var _ Device = (*MemoryDevice)(nil)

// NewMemoryDevice creates an empty host-memory device.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{}
}

// CreateBuffer allocates a zeroed buffer of desc.Size bytes.
func (d *MemoryDevice) CreateBuffer(desc BufferDescriptor) (Buffer, error) {
	if desc.Size < 0 {
		return nil, fmt.Errorf("%w: buffer %q size %d", errs.ErrOutOfRange, desc.Label, desc.Size)
	}

	d.created.Add(1)
	d.allocated.Add(int64(desc.Size))

	return &MemoryBuffer{
		device: d,
		label:  desc.Label,
		usage:  desc.Usage,
		data:   make([]byte, desc.Size),
		mapped: desc.MappedAtCreation,
	}, nil
}

// BuffersCreated returns the number of buffers allocated so far.
func (d *MemoryDevice) BuffersCreated() int64 {
	return d.created.Load()
}

// BytesAllocated returns the total size of live buffers.
func (d *MemoryDevice) BytesAllocated() int64 {
	return d.allocated.Load()
}

// MemoryBuffer is a Buffer created by MemoryDevice.
type MemoryBuffer struct {
	device *MemoryDevice
	label  string
	usage  Usage

	mu        sync.Mutex
	data      []byte
	mapped    bool
	destroyed bool
}

var (
	_ Buffer    = (*MemoryBuffer)(nil)
	_ Destroyer = (*MemoryBuffer)(nil)
)

func (b *MemoryBuffer) Label() string {
	return b.label
}

func (b *MemoryBuffer) Usage() Usage {
	return b.usage
}

func (b *MemoryBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}

// Map maps the buffer for writing. It fails with ErrBufferMapped while a
// previous mapping is outstanding.
func (b *MemoryBuffer) Map() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return fmt.Errorf("%w: buffer %q was destroyed", errs.ErrBufferUnmapped, b.label)
	}
	if b.mapped {
		return fmt.Errorf("%w: buffer %q", errs.ErrBufferMapped, b.label)
	}
	b.mapped = true

	return nil
}

func (b *MemoryBuffer) MappedRange() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.mapped {
		return nil, fmt.Errorf("%w: buffer %q", errs.ErrBufferUnmapped, b.label)
	}

	return b.data, nil
}

func (b *MemoryBuffer) Unmap() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.mapped {
		return fmt.Errorf("%w: buffer %q", errs.ErrBufferUnmapped, b.label)
	}
	b.mapped = false

	return nil
}

// Contents returns a copy of the buffer as the device sees it. It fails while
// the buffer is mapped.
func (b *MemoryBuffer) Contents() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mapped {
		return nil, fmt.Errorf("%w: buffer %q", errs.ErrBufferMapped, b.label)
	}

	out := make([]byte, len(b.data))
	copy(out, b.data)

	return out, nil
}

// Destroy releases the buffer memory. Further mapping fails.
func (b *MemoryBuffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.device.allocated.Add(-int64(len(b.data)))
	b.data = nil
	b.mapped = false
	b.destroyed = true
}
