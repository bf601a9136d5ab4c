package session

import "sync"

// FrameSlot is a single-slot overwrite buffer holding the most recent
// annotated frame as encoded JPEG. The detection worker overwrites it every
// frame; preview consumers read it at their own rate and simply miss frames
// they are too slow for. There is no queue and no backpressure.
type FrameSlot struct {
	mu   sync.RWMutex
	jpeg []byte
	seq  uint64
}

// NewFrameSlot returns an empty slot.
func NewFrameSlot() *FrameSlot {
	return &FrameSlot{}
}

// Store replaces the slot contents. The bytes are copied, so the caller may
// reuse its encode buffer.
func (s *FrameSlot) Store(jpeg []byte) {
	buf := make([]byte, len(jpeg))
	copy(buf, jpeg)

	s.mu.Lock()
	s.jpeg = buf
	s.seq++
	s.mu.Unlock()
}

// Latest returns the most recent frame and its sequence number. ok is false
// before the first frame arrives. Callers must not modify the returned
// slice.
func (s *FrameSlot) Latest() (jpeg []byte, seq uint64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.jpeg == nil {
		return nil, 0, false
	}
	return s.jpeg, s.seq, true
}

// Reset drops the stored frame, returning the slot to its empty state.
func (s *FrameSlot) Reset() {
	s.mu.Lock()
	s.jpeg = nil
	s.mu.Unlock()
}
