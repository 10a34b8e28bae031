package companion

import (
	"context"
	"errors"

	"gocv.io/x/gocv"
)

// ResultHandler receives the results of one processed frame together
// with the frame itself. The frame is only valid for the duration of the
// call; handlers that need it longer must clone it.
type ResultHandler func(frame gocv.Mat, results []Result)

// Configuration assembles a processing run: one frame source, the models
// to search for and the processors to apply to each frame.
//
// A Configuration drives a single synchronous run; it is not safe for
// concurrent use.
type Configuration struct {
	source    Stream
	models    []*FeatureModel
	matching  *FeatureMatching
	detection *ObjectDetection
	handler   ResultHandler
	frames    int
}

// NewConfiguration returns an empty configuration.
func NewConfiguration() *Configuration {
	return &Configuration{}
}

// SetSource sets the frame source for the run.
func (c *Configuration) SetSource(s Stream) {
	c.source = s
}

// AddModel registers a model to search for.
func (c *Configuration) AddModel(m *FeatureModel) {
	c.models = append(c.models, m)
}

// Models returns the registered models.
func (c *Configuration) Models() []*FeatureModel {
	return c.models
}

// SetFeatureMatching sets the feature matching processor.
func (c *Configuration) SetFeatureMatching(f *FeatureMatching) {
	c.matching = f
}

// SetObjectDetection sets the cascade detection processor.
func (c *Configuration) SetObjectDetection(d *ObjectDetection) {
	c.detection = d
}

// SetHandler sets the per-frame result callback.
func (c *Configuration) SetHandler(h ResultHandler) {
	c.handler = h
}

// Frames returns the number of frames processed so far.
func (c *Configuration) Frames() int {
	return c.frames
}

// Run validates the configuration and processes the source until it is
// exhausted or ctx is cancelled. Validation failures and frame errors
// are returned as engine Codes; Run never recovers locally.
func (c *Configuration) Run(ctx context.Context) error {
	if c.source == nil {
		return VideoSrcNotSet
	}
	if c.matching == nil && c.detection == nil {
		return NoImageProcessingAlgoSet
	}
	if c.handler == nil {
		return NoHandlerSet
	}
	if c.matching != nil && len(c.models) == 0 {
		return InvalidCompanionConfig
	}

	for !c.source.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := c.source.Next()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				return nil
			}
			return err
		}

		results, err := c.process(frame)
		if err != nil {
			frame.Close()
			return err
		}

		c.frames++
		c.handler(frame, results)
		frame.Close()
	}
	return nil
}

// process applies the configured processors to one frame.
func (c *Configuration) process(frame gocv.Mat) ([]Result, error) {
	var results []Result

	if c.matching != nil {
		for _, model := range c.models {
			res, err := c.matching.Match(frame, model)
			if err != nil {
				return nil, err
			}
			if res != nil {
				results = append(results, *res)
			}
		}
	}

	if c.detection != nil {
		rects, err := c.detection.Detect(frame)
		if err != nil {
			return nil, err
		}
		for _, r := range rects {
			results = append(results, Result{ModelID: -1, Location: r, Score: 1})
		}
	}

	return results, nil
}
