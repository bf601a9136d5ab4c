// Package session implements the live sign-detection session: the frame
// loop, debounce state machine, action dispatch and the accumulated text
// buffer.
package session

import (
	"strings"
	"sync"
)

// TextBuffer is the assembled message. The detection worker is its only
// writer; snapshots may be taken from any goroutine.
type TextBuffer struct {
	mu    sync.RWMutex
	chars []string
}

// NewTextBuffer returns an empty buffer.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{}
}

// Append adds one character to the end of the buffer.
func (b *TextBuffer) Append(char string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chars = append(b.chars, char)
}

// Pop removes the last character. Popping an empty buffer is a no-op.
func (b *TextBuffer) Pop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.chars) > 0 {
		b.chars = b.chars[:len(b.chars)-1]
	}
}

// Clear empties the buffer.
func (b *TextBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chars = b.chars[:0]
}

// String returns the buffer contents as a single string snapshot.
func (b *TextBuffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.chars, "")
}

// Len returns the number of characters in the buffer.
func (b *TextBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chars)
}
