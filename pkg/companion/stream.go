package companion

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrExhausted is returned by Next once a stream has delivered all of its
// frames.
var ErrExhausted = errors.New("companion: stream exhausted")

// Stream is a source of frames for a processing run. Implementations hand
// ownership of each returned Mat to the caller, who must Close it.
type Stream interface {
	// Next returns the next frame. It returns ErrExhausted after the last
	// frame and ImageNotFound when a frame cannot be decoded.
	Next() (gocv.Mat, error)

	// Done reports whether all frames have been delivered.
	Done() bool

	// Close releases any native resources held by the stream.
	Close()
}
