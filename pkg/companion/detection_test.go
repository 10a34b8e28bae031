package companion

import (
	"errors"
	"os"
	"testing"
)

func TestNewObjectDetectionEmptyPath(t *testing.T) {
	_, err := NewObjectDetection("")
	if !errors.Is(err, InvalidCompanionConfig) {
		t.Errorf("error = %v, want InvalidCompanionConfig", err)
	}
}

func TestNewObjectDetectionMissingModel(t *testing.T) {
	_, err := NewObjectDetection("does/not/exist.xml")
	if !errors.Is(err, InvalidCompanionConfig) {
		t.Errorf("error = %v, want InvalidCompanionConfig", err)
	}
}

// TestObjectDetectionCascade runs the cascade when a model is available.
// Set COMPANION_CASCADE to a haarcascade XML to enable it.
func TestObjectDetectionCascade(t *testing.T) {
	cascade := os.Getenv("COMPANION_CASCADE")
	if cascade == "" {
		t.Skip("COMPANION_CASCADE not set, skipping cascade test")
	}

	d, err := NewObjectDetection(cascade)
	if err != nil {
		t.Fatalf("NewObjectDetection: %v", err)
	}
	defer d.Close()

	dir := t.TempDir()
	path := writePatternJPEG(t, dir, "frame.jpg", 320, 240)

	s := NewImageStream([]string{path})
	defer s.Close()

	frame, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	defer frame.Close()

	// A random pattern contains no faces; the point is that Detect runs
	// cleanly against a real cascade.
	if _, err := d.Detect(frame); err != nil {
		t.Errorf("Detect: %v", err)
	}
}
