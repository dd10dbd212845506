package alloc

import (
	"errors"
	"sync"
	"sync/atomic"
)

var ErrExhausted = errors.New("allocation budget exhausted")

// Allocator hands out request body buffers of an exact size. Every buffer received from
// Alloc must be released via Free exactly once.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// Heap allocates straight from the Go heap. Free is a no-op, leaving the memory to the GC.
type Heap struct{}

func (Heap) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (Heap) Free([]byte) {}

// Budget limits the total amount of memory simultaneously held by the buffers it allocated.
// It is safe for concurrent use.
type Budget struct {
	mu       sync.Mutex
	parent   Allocator
	limit    int
	inUse    int
	inFlight atomic.Int64
}

// NewBudget returns an allocator refusing to hold more than limit bytes. A nil parent
// defaults to Heap.
func NewBudget(limit int, parent Allocator) *Budget {
	if parent == nil {
		parent = Heap{}
	}

	return &Budget{
		parent: parent,
		limit:  limit,
	}
}

func (b *Budget) Alloc(n int) ([]byte, error) {
	b.mu.Lock()
	if b.inUse+n > b.limit {
		b.mu.Unlock()
		return nil, ErrExhausted
	}

	b.inUse += n
	b.mu.Unlock()

	buff, err := b.parent.Alloc(n)
	if err != nil {
		b.mu.Lock()
		b.inUse -= n
		b.mu.Unlock()

		return nil, err
	}

	b.inFlight.Add(1)

	return buff, nil
}

func (b *Budget) Free(buff []byte) {
	if buff == nil {
		return
	}

	b.mu.Lock()
	b.inUse -= len(buff)
	b.mu.Unlock()
	b.inFlight.Add(-1)
	b.parent.Free(buff)
}

// InUse returns the number of bytes currently held.
func (b *Budget) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inUse
}

// Outstanding returns the number of buffers allocated but not yet freed.
func (b *Budget) Outstanding() int {
	return int(b.inFlight.Load())
}
