// Package store keeps the latest uploaded frame.
package store

import (
	"sync"

	"github.com/indigo-web/framecast/http/status"
)

// Frame is a single slot of a fixed capacity. The slot memory is allocated once and reused
// by every replacement, readers always get their own copy.
type Frame struct {
	mu   sync.RWMutex
	slot []byte
	size int
}

func New(capacity int) *Frame {
	return &Frame{
		slot: make([]byte, capacity),
	}
}

// Replace overrides the current frame with a copy of data. Empty frames and frames exceeding
// the capacity are rejected and leave the current frame untouched.
func (f *Frame) Replace(data []byte) error {
	if len(data) == 0 {
		return status.ErrEmptyFrame
	}

	if len(data) > len(f.slot) {
		return status.ErrFrameTooLarge
	}

	f.mu.Lock()
	f.size = copy(f.slot, data)
	f.mu.Unlock()

	return nil
}

// Read returns a copy of the current frame, or nil if nothing was uploaded yet.
func (f *Frame) Read() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.size == 0 {
		return nil
	}

	frame := make([]byte, f.size)
	copy(frame, f.slot[:f.size])

	return frame
}

// Len returns the size of the current frame.
func (f *Frame) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.size
}

// Cap returns the capacity of the slot.
func (f *Frame) Cap() int {
	return len(f.slot)
}
