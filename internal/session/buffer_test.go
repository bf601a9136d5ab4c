package session

import "testing"

func TestTextBuffer(t *testing.T) {
	buf := NewTextBuffer()

	if got := buf.String(); got != "" {
		t.Errorf("new buffer = %q, want empty", got)
	}

	buf.Append("H")
	buf.Append("I")
	if got := buf.String(); got != "HI" {
		t.Errorf("buffer = %q, want HI", got)
	}
	if got := buf.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	buf.Pop()
	if got := buf.String(); got != "H" {
		t.Errorf("buffer after Pop = %q, want H", got)
	}

	buf.Clear()
	if got := buf.String(); got != "" {
		t.Errorf("buffer after Clear = %q, want empty", got)
	}
}

func TestTextBuffer_PopEmpty(t *testing.T) {
	buf := NewTextBuffer()

	// Popping an empty buffer is a no-op, not an error
	buf.Pop()

	if got := buf.String(); got != "" {
		t.Errorf("buffer = %q, want empty", got)
	}
}
