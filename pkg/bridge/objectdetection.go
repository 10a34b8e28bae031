package bridge

import "github.com/libcompanion/companion-go/pkg/companion"

// ObjectDetection owns one engine cascade detection processor.
type ObjectDetection struct {
	obj *companion.ObjectDetection
}

// NewObjectDetection loads a cascade classifier model. An empty path
// yields ModelPathNotSet; a model that cannot be loaded surfaces as
// InvalidCompanionConfig.
func NewObjectDetection(modelPath string) (*ObjectDetection, error) {
	if modelPath == "" {
		return nil, ModelPathNotSet
	}

	obj, err := companion.NewObjectDetection(modelPath)
	if err != nil {
		return nil, TranslateErr(err)
	}
	return &ObjectDetection{obj: obj}, nil
}

// Close releases the owned engine processor exactly once; further calls
// are no-ops.
func (d *ObjectDetection) Close() {
	if d.obj != nil {
		d.obj.Close()
		d.obj = nil
	}
}

// detection hands the owned engine object to cooperating wrappers. It
// returns nil after Close.
func (d *ObjectDetection) detection() *companion.ObjectDetection {
	if d == nil {
		return nil
	}
	return d.obj
}
