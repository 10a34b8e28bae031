package bridge

import (
	"context"
	"errors"
	"testing"
)

func TestConfigurationNilHandles(t *testing.T) {
	t.Run("nil model", func(t *testing.T) {
		c := NewConfiguration()
		if err := c.AddModel(nil); !errors.Is(err, ModelNotAdded) {
			t.Errorf("AddModel(nil) = %v, want ModelNotAdded", err)
		}
	})

	t.Run("nil feature matching", func(t *testing.T) {
		c := NewConfiguration()
		if err := c.SetFeatureMatching(nil); !errors.Is(err, RecognitionNotFound) {
			t.Errorf("SetFeatureMatching(nil) = %v, want RecognitionNotFound", err)
		}
	})

	t.Run("nil object detection", func(t *testing.T) {
		c := NewConfiguration()
		if err := c.SetObjectDetection(nil); !errors.Is(err, ObjectDetectionNotFound) {
			t.Errorf("SetObjectDetection(nil) = %v, want ObjectDetectionNotFound", err)
		}
	})

	t.Run("nil image source", func(t *testing.T) {
		c := NewConfiguration()
		if err := c.SetImageSource(nil); !errors.Is(err, VideoSrcNotSet) {
			t.Errorf("SetImageSource(nil) = %v, want VideoSrcNotSet", err)
		}
	})

	t.Run("closed image source", func(t *testing.T) {
		c := NewConfiguration()
		s := NewImageStream([]string{"a.jpg"})
		s.Close()
		if err := c.SetImageSource(s); !errors.Is(err, VideoSrcNotSet) {
			t.Errorf("SetImageSource(closed) = %v, want VideoSrcNotSet", err)
		}
	})

	t.Run("empty video source", func(t *testing.T) {
		c := NewConfiguration()
		if err := c.SetVideoSource(""); !errors.Is(err, VideoSrcNotSet) {
			t.Errorf("SetVideoSource(\"\") = %v, want VideoSrcNotSet", err)
		}
	})
}

func TestConfigurationClosed(t *testing.T) {
	c := NewConfiguration()
	c.Close()

	if err := c.AddModel(nil); !errors.Is(err, ConfigOrRecognitionNotFound) {
		t.Errorf("AddModel on closed config = %v, want ConfigOrRecognitionNotFound", err)
	}
	if err := c.SetImageSource(NewImageStream(nil)); !errors.Is(err, ConfigOrRecognitionNotFound) {
		t.Errorf("SetImageSource on closed config = %v, want ConfigOrRecognitionNotFound", err)
	}
	if err := c.Run(context.Background(), func([]Result) {}); !errors.Is(err, ConfigOrRecognitionNotFound) {
		t.Errorf("Run on closed config = %v, want ConfigOrRecognitionNotFound", err)
	}

	// Closing again must be a no-op.
	c.Close()
}

func TestConfigurationRunNilHandler(t *testing.T) {
	c := NewConfiguration()
	if err := c.Run(context.Background(), nil); !errors.Is(err, NoHandlerSet) {
		t.Errorf("Run(nil handler) = %v, want NoHandlerSet", err)
	}
}

func TestConfigurationRunWithoutSource(t *testing.T) {
	c := NewConfiguration()

	err := c.Run(context.Background(), func([]Result) {})
	if !errors.Is(err, VideoSrcNotSet) {
		t.Errorf("Run without source = %v, want VideoSrcNotSet", err)
	}
}

func TestConfigurationRunEmptyStream(t *testing.T) {
	matching, err := NewFeatureMatching("", "")
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer matching.Close()

	model, err := NewModel(1, "model.jpg")
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	s := NewImageStream(nil)
	defer s.Close()

	c := NewConfiguration()
	if err := c.SetImageSource(s); err != nil {
		t.Fatalf("SetImageSource: %v", err)
	}
	if err := c.SetFeatureMatching(matching); err != nil {
		t.Fatalf("SetFeatureMatching: %v", err)
	}
	if err := c.AddModel(model); err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	var calls int
	if err := c.Run(context.Background(), func([]Result) { calls++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 0 {
		t.Errorf("handler called %d times on an empty stream, want 0", calls)
	}
}

func TestConfigurationRunTranslatesEngineErrors(t *testing.T) {
	matching, err := NewFeatureMatching("", "")
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer matching.Close()

	model, err := NewModel(1, "model.jpg")
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	// A stream over a missing file fails on first read; the engine error
	// must surface as the mirrored boundary code.
	s := NewImageStream([]string{"does/not/exist.jpg"})
	defer s.Close()

	c := NewConfiguration()
	if err := c.SetImageSource(s); err != nil {
		t.Fatalf("SetImageSource: %v", err)
	}
	if err := c.SetFeatureMatching(matching); err != nil {
		t.Fatalf("SetFeatureMatching: %v", err)
	}
	if err := c.AddModel(model); err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	err = c.Run(context.Background(), func([]Result) {})
	if !errors.Is(err, ImageNotFound) {
		t.Errorf("Run = %v, want ImageNotFound", err)
	}
}

func TestConfigurationRunUnconstructedMatcher(t *testing.T) {
	// A closed processor handle must be rejected before the run starts.
	matching, err := NewFeatureMatching("", "")
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	matching.Close()

	c := NewConfiguration()
	if err := c.SetFeatureMatching(matching); !errors.Is(err, RecognitionNotFound) {
		t.Errorf("SetFeatureMatching(closed) = %v, want RecognitionNotFound", err)
	}
}
