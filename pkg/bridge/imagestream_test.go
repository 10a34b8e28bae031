package bridge

import "testing"

func TestNewImageStreamEmpty(t *testing.T) {
	s := NewImageStream(nil)
	defer s.Close()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.stream() == nil {
		t.Error("stream() should be valid before Close")
	}
}

func TestNewImageStreamNoEagerValidation(t *testing.T) {
	// Bogus paths must not fail at construction.
	s := NewImageStream([]string{"nope-1.jpg", "nope-2.jpg", "nope-3.jpg"})
	defer s.Close()

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestImageStreamCloseIdempotent(t *testing.T) {
	s := NewImageStream([]string{"a.jpg"})

	s.Close()
	if s.stream() != nil {
		t.Error("stream() should be nil after Close")
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", s.Len())
	}

	// Releasing again must be a no-op.
	s.Close()
}
