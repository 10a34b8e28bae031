package companion

import "gocv.io/x/gocv"

// VideoStream is a Stream backed by a gocv.VideoCapture: a video file,
// a stream URL or a capture device.
type VideoStream struct {
	capture *gocv.VideoCapture
	done    bool
}

// NewVideoStream opens a video file or stream URL. An empty source yields
// VideoSrcNotSet, a source that cannot be opened InvalidVideoSrc.
func NewVideoStream(src string) (*VideoStream, error) {
	if src == "" {
		return nil, VideoSrcNotSet
	}
	vc, err := gocv.OpenVideoCapture(src)
	if err != nil {
		return nil, InvalidVideoSrc
	}
	return &VideoStream{capture: vc}, nil
}

// NewDeviceStream opens a capture device by index.
func NewDeviceStream(device int) (*VideoStream, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, InvalidVideoSrc
	}
	return &VideoStream{capture: vc}, nil
}

// Next reads the next frame from the capture. The stream is exhausted
// once the capture stops delivering frames.
func (s *VideoStream) Next() (gocv.Mat, error) {
	if s.done || s.capture == nil {
		return gocv.Mat{}, ErrExhausted
	}

	frame := gocv.NewMat()
	if ok := s.capture.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		s.done = true
		return gocv.Mat{}, ErrExhausted
	}
	return frame, nil
}

// Done reports whether the capture has stopped delivering frames.
func (s *VideoStream) Done() bool {
	return s.done
}

// Close releases the underlying capture.
func (s *VideoStream) Close() {
	if s.capture != nil {
		s.capture.Close()
		s.capture = nil
	}
	s.done = true
}
