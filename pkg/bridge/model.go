package bridge

import "github.com/libcompanion/companion-go/pkg/companion"

// Model owns one engine feature model: a caller-chosen ID and the path
// of the model image.
type Model struct {
	obj *companion.FeatureModel
}

// NewModel creates a model for the image at the given path. An empty
// path yields ModelPathNotSet. The image itself is not read until the
// model is first matched.
func NewModel(id int, path string) (*Model, error) {
	if path == "" {
		return nil, ModelPathNotSet
	}
	return &Model{obj: companion.NewFeatureModel(id, path)}, nil
}

// ID returns the caller-chosen model ID.
func (m *Model) ID() int {
	if m.obj == nil {
		return 0
	}
	return m.obj.ID()
}

// Path returns the model image path.
func (m *Model) Path() string {
	if m.obj == nil {
		return ""
	}
	return m.obj.Path()
}

// model hands the owned engine object to cooperating wrappers.
func (m *Model) model() *companion.FeatureModel {
	if m == nil {
		return nil
	}
	return m.obj
}
