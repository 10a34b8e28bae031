package companion

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestDefaultMatchingConfig(t *testing.T) {
	cfg := DefaultMatchingConfig()
	if cfg.Detector != DetectorORB {
		t.Errorf("Detector = %q, want ORB", cfg.Detector)
	}
	if cfg.Matcher != MatcherBruteForce {
		t.Errorf("Matcher = %q, want BF", cfg.Matcher)
	}
	if cfg.Ratio <= 0 || cfg.Ratio >= 1 {
		t.Errorf("Ratio = %v, want a value in (0, 1)", cfg.Ratio)
	}
	if cfg.MinMatches <= 0 {
		t.Errorf("MinMatches = %d, want > 0", cfg.MinMatches)
	}
}

func TestNewFeatureMatchingUnknownDetector(t *testing.T) {
	cfg := DefaultMatchingConfig()
	cfg.Detector = "SURF"

	_, err := NewFeatureMatching(cfg)
	if !errors.Is(err, FeatureDetectorNotFound) {
		t.Errorf("error = %v, want FeatureDetectorNotFound", err)
	}
}

func TestNewFeatureMatchingUnknownMatcher(t *testing.T) {
	cfg := DefaultMatchingConfig()
	cfg.Matcher = "LSH"

	_, err := NewFeatureMatching(cfg)
	if !errors.Is(err, DescriptorMatcherNotFound) {
		t.Errorf("error = %v, want DescriptorMatcherNotFound", err)
	}
}

func TestMatchFindsModelInFrame(t *testing.T) {
	dir := t.TempDir()
	path := writePatternJPEG(t, dir, "model.jpg", 320, 240)

	f, err := NewFeatureMatching(DefaultMatchingConfig())
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer f.Close()

	model := NewFeatureModel(7, path)

	frame := gocv.IMRead(path, gocv.IMReadColor)
	if frame.Empty() {
		t.Fatal("failed to read test frame")
	}
	defer frame.Close()

	res, err := f.Match(frame, model)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res == nil {
		t.Fatal("model not found in an identical frame")
	}
	if res.ModelID != 7 {
		t.Errorf("ModelID = %d, want 7", res.ModelID)
	}
	if res.Matches < DefaultMatchingConfig().MinMatches {
		t.Errorf("Matches = %d, want >= %d", res.Matches, DefaultMatchingConfig().MinMatches)
	}
	if res.Location.Empty() {
		t.Error("result has an empty bounding rectangle")
	}
}

func TestMatchEmptyFrame(t *testing.T) {
	dir := t.TempDir()
	path := writePatternJPEG(t, dir, "model.jpg", 64, 64)

	f, err := NewFeatureMatching(DefaultMatchingConfig())
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer f.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	_, err = f.Match(empty, NewFeatureModel(1, path))
	if !errors.Is(err, ImageNotFound) {
		t.Errorf("error = %v, want ImageNotFound", err)
	}
}

func TestMatchMissingModelImage(t *testing.T) {
	dir := t.TempDir()
	framePath := writePatternJPEG(t, dir, "frame.jpg", 64, 64)

	f, err := NewFeatureMatching(DefaultMatchingConfig())
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer f.Close()

	frame := gocv.IMRead(framePath, gocv.IMReadColor)
	defer frame.Close()

	_, err = f.Match(frame, NewFeatureModel(1, "does/not/exist.jpg"))
	if !errors.Is(err, ImageNotFound) {
		t.Errorf("error = %v, want ImageNotFound", err)
	}
}

func TestModelFeatureCacheEviction(t *testing.T) {
	dir := t.TempDir()
	first := writePatternJPEG(t, dir, "first.jpg", 320, 240)
	second := writePatternJPEG(t, dir, "second.jpg", 240, 320)

	cfg := DefaultMatchingConfig()
	cfg.CacheSize = 1

	f, err := NewFeatureMatching(cfg)
	if err != nil {
		t.Fatalf("NewFeatureMatching: %v", err)
	}
	defer f.Close()

	frame := gocv.IMRead(first, gocv.IMReadColor)
	if frame.Empty() {
		t.Fatal("failed to read test frame")
	}
	defer frame.Close()

	if _, err := f.Match(frame, NewFeatureModel(1, first)); err != nil {
		t.Fatalf("Match(first): %v", err)
	}
	evicted, ok := f.cache.Get(first)
	if !ok {
		t.Fatal("model features not cached after the first match")
	}

	// Matching a second model fills the single-slot cache and evicts
	// the first model's features.
	if _, err := f.Match(frame, NewFeatureModel(2, second)); err != nil {
		t.Fatalf("Match(second): %v", err)
	}
	if f.cache.Contains(first) {
		t.Error("evicted model still present in the cache")
	}
	if !evicted.descriptors.Closed() {
		t.Error("eviction left the descriptor matrix open")
	}

	// The evicted model's features are recomputed on demand.
	res, err := f.Match(frame, NewFeatureModel(1, first))
	if err != nil {
		t.Fatalf("Match(first) after eviction: %v", err)
	}
	if res == nil {
		t.Fatal("model not found after its features were evicted")
	}
	if !f.cache.Contains(first) {
		t.Error("recomputed features not cached")
	}
}
