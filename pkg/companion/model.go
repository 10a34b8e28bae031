package companion

import "gocv.io/x/gocv"

// FeatureModel describes one object to search for: a caller-chosen ID and
// the path of the model image. The image is decoded and its features are
// computed by the processor on first use, not at construction.
type FeatureModel struct {
	id   int
	path string
}

// NewFeatureModel creates a model for the image at the given path.
func NewFeatureModel(id int, path string) *FeatureModel {
	return &FeatureModel{id: id, path: path}
}

// ID returns the caller-chosen model ID.
func (m *FeatureModel) ID() int {
	return m.id
}

// Path returns the model image path.
func (m *FeatureModel) Path() string {
	return m.path
}

// loadImage decodes the model image in grayscale. The caller owns the
// returned Mat.
func (m *FeatureModel) loadImage() (gocv.Mat, error) {
	img := gocv.IMRead(m.path, gocv.IMReadGrayScale)
	if img.Empty() {
		img.Close()
		return gocv.Mat{}, ImageNotFound
	}
	return img, nil
}
