package companion

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// writePatternJPEG writes a deterministic, feature-rich test image. The
// random rectangles give the feature detectors plenty of corners to work
// with.
func writePatternJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 60; i++ {
		x := rng.Intn(w)
		y := rng.Intn(h)
		rw := 4 + rng.Intn(w/4)
		rh := 4 + rng.Intn(h/4)
		c := color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255}
		draw.Draw(img, image.Rect(x, y, x+rw, y+rh), &image.Uniform{c}, image.Point{}, draw.Src)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}
