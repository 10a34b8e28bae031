package bridge

import "github.com/libcompanion/companion-go/pkg/companion"

// ImageStream owns one engine image stream built from an ordered list of
// image paths. Construction performs no validation; images that cannot
// be decoded surface as ErrorCode values when the stream is consumed by
// a run.
type ImageStream struct {
	obj *companion.ImageStream
}

// NewImageStream builds a stream wrapper over the given paths,
// preserving their order. An empty list is valid.
func NewImageStream(paths []string) *ImageStream {
	return &ImageStream{obj: companion.NewImageStream(paths)}
}

// Len returns the number of images in the stream.
func (s *ImageStream) Len() int {
	if s.obj == nil {
		return 0
	}
	return s.obj.Len()
}

// Close releases the owned engine stream. The release happens exactly
// once; further calls are no-ops.
func (s *ImageStream) Close() {
	if s.obj != nil {
		s.obj.Close()
		s.obj = nil
	}
}

// stream hands the owned engine object, upcast to the base Stream
// interface, to cooperating wrappers in this package. It returns nil
// after Close.
func (s *ImageStream) stream() companion.Stream {
	if s.obj == nil {
		return nil
	}
	return s.obj
}
