package buffer

// Buffer is a fixed-capacity byte sequence. Its memory is allocated once and never grows, so
// whatever is read into it is bounded by maxSize. Data is written into the free tail directly
// (see Spare and Extend), which lets a reader fill it without intermediate copies.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, maxSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Spare returns the unused tail of the buffer. Bytes written into it become a part of the
// buffer only after a corresponding call to Extend.
func (b *Buffer) Spare() []byte {
	return b.memory[len(b.memory):b.maxSize]
}

// Extend marks n more bytes of the spare tail as occupied. n is clamped to the spare room.
func (b *Buffer) Extend(n int) {
	if free := b.maxSize - len(b.memory); n > free {
		n = free
	}

	b.memory = b.memory[:len(b.memory)+n]
}

// Bytes returns everything written so far. The slice is valid until the next Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

func (b *Buffer) Cap() int {
	return b.maxSize
}

// Full reports whether no spare room is left.
func (b *Buffer) Full() bool {
	return len(b.memory) == b.maxSize
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
