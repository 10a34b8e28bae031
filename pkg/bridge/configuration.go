package bridge

import (
	"context"
	"errors"

	"gocv.io/x/gocv"

	"github.com/libcompanion/companion-go/pkg/companion"
)

// Result mirrors one engine recognition in boundary-safe terms: plain
// integers and floats, no engine types. ModelID is -1 for cascade
// detections.
type Result struct {
	ModelID int     `json:"model_id"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Score   float64 `json:"score"`
}

// ResultHandler receives the results of each processed frame.
type ResultHandler func(results []Result)

// Configuration assembles a boundary-side processing run from wrapper
// objects. All failures are ErrorCode values.
type Configuration struct {
	obj *companion.Configuration
}

// NewConfiguration returns an empty configuration.
func NewConfiguration() *Configuration {
	return &Configuration{obj: companion.NewConfiguration()}
}

// AddModel registers a model to search for. A missing model handle
// yields ModelNotAdded.
func (c *Configuration) AddModel(m *Model) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}
	if m.model() == nil {
		return ModelNotAdded
	}
	c.obj.AddModel(m.model())
	return nil
}

// SetImageSource uses the given image stream as the frame source. A
// missing or closed stream yields VideoSrcNotSet.
func (c *Configuration) SetImageSource(s *ImageStream) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}
	if s == nil || s.stream() == nil {
		return VideoSrcNotSet
	}
	c.obj.SetSource(s.stream())
	return nil
}

// SetVideoSource opens a video file or stream URL as the frame source.
// An empty source yields VideoSrcNotSet, one that cannot be opened
// InvalidVideoSrc.
func (c *Configuration) SetVideoSource(src string) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}

	vs, err := companion.NewVideoStream(src)
	if err != nil {
		return TranslateErr(err)
	}
	c.obj.SetSource(vs)
	return nil
}

// SetFeatureMatching sets the feature matching processor. A missing or
// closed handle yields RecognitionNotFound.
func (c *Configuration) SetFeatureMatching(f *FeatureMatching) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}
	if f.matching() == nil {
		return RecognitionNotFound
	}
	c.obj.SetFeatureMatching(f.matching())
	return nil
}

// SetObjectDetection sets the cascade detection processor. A missing or
// closed handle yields ObjectDetectionNotFound.
func (c *Configuration) SetObjectDetection(d *ObjectDetection) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}
	if d.detection() == nil {
		return ObjectDetectionNotFound
	}
	c.obj.SetObjectDetection(d.detection())
	return nil
}

// Run processes the configured source until it is exhausted or ctx is
// cancelled, delivering per-frame results to the handler. Engine
// failures come back as ErrorCode values; context cancellation is
// passed through unchanged.
func (c *Configuration) Run(ctx context.Context, handler ResultHandler) error {
	if c.obj == nil {
		return ConfigOrRecognitionNotFound
	}
	if handler == nil {
		return NoHandlerSet
	}

	c.obj.SetHandler(func(_ gocv.Mat, results []companion.Result) {
		out := make([]Result, 0, len(results))
		for _, r := range results {
			out = append(out, Result{
				ModelID: r.ModelID,
				X:       r.Location.Min.X,
				Y:       r.Location.Min.Y,
				Width:   r.Location.Dx(),
				Height:  r.Location.Dy(),
				Score:   r.Score,
			})
		}
		handler(out)
	})

	if err := c.obj.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return TranslateErr(err)
	}
	return nil
}

// Close releases the configuration. It does not close the wrappers that
// were set on it; the caller owns those.
func (c *Configuration) Close() {
	c.obj = nil
}
