package companion

import "gocv.io/x/gocv"

// ImageStream is a Stream backed by an ordered list of image paths.
// Construction performs no validation; a missing or undecodable file
// surfaces as ImageNotFound when that frame is read.
type ImageStream struct {
	paths  []string
	pos    int
	closed bool
}

// NewImageStream builds a stream over the given image paths, preserving
// their order. The slice is copied. An empty list yields an immediately
// exhausted stream.
func NewImageStream(paths []string) *ImageStream {
	p := make([]string, len(paths))
	copy(p, paths)
	return &ImageStream{paths: p}
}

// Next decodes and returns the next image in the list.
func (s *ImageStream) Next() (gocv.Mat, error) {
	if s.closed || s.pos >= len(s.paths) {
		return gocv.Mat{}, ErrExhausted
	}
	path := s.paths[s.pos]
	s.pos++

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return gocv.Mat{}, ImageNotFound
	}
	return img, nil
}

// Done reports whether all paths have been consumed.
func (s *ImageStream) Done() bool {
	return s.closed || s.pos >= len(s.paths)
}

// Len returns the number of paths backing the stream.
func (s *ImageStream) Len() int {
	return len(s.paths)
}

// Close marks the stream exhausted. Decoded frames are owned by the
// caller, so there is no native memory to release here.
func (s *ImageStream) Close() {
	s.closed = true
}
