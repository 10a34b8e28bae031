package companion

import (
	"image"

	"gocv.io/x/gocv"
)

// ObjectDetection runs a cascade classifier over frames.
//
// An ObjectDetection is not safe for concurrent use.
type ObjectDetection struct {
	classifier gocv.CascadeClassifier
	loaded     bool
}

// NewObjectDetection loads a cascade classifier from the given model
// file. A path that cannot be loaded yields InvalidCompanionConfig.
func NewObjectDetection(modelPath string) (*ObjectDetection, error) {
	if modelPath == "" {
		return nil, InvalidCompanionConfig
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(modelPath) {
		classifier.Close()
		return nil, InvalidCompanionConfig
	}
	return &ObjectDetection{classifier: classifier, loaded: true}, nil
}

// Detect returns the regions matched by the cascade in the given frame.
func (d *ObjectDetection) Detect(frame gocv.Mat) ([]image.Rectangle, error) {
	if frame.Empty() {
		return nil, ImageNotFound
	}
	return d.classifier.DetectMultiScale(frame), nil
}

// Close releases the classifier.
func (d *ObjectDetection) Close() {
	if d.loaded {
		d.classifier.Close()
		d.loaded = false
	}
}
