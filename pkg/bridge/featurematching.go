package bridge

import "github.com/libcompanion/companion-go/pkg/companion"

// FeatureMatching owns one engine feature matching processor.
type FeatureMatching struct {
	obj *companion.FeatureMatching
}

// NewFeatureMatching builds a processor from detector and matcher names
// (see the engine's Detector* and Matcher* constants). Empty names fall
// back to the engine defaults; unsupported names surface as
// FeatureDetectorNotFound or DescriptorMatcherNotFound.
func NewFeatureMatching(detector, matcher string) (*FeatureMatching, error) {
	cfg := companion.DefaultMatchingConfig()
	if detector != "" {
		cfg.Detector = detector
	}
	if matcher != "" {
		cfg.Matcher = matcher
	}

	obj, err := companion.NewFeatureMatching(cfg)
	if err != nil {
		return nil, TranslateErr(err)
	}
	return &FeatureMatching{obj: obj}, nil
}

// Close releases the owned engine processor exactly once; further calls
// are no-ops.
func (f *FeatureMatching) Close() {
	if f.obj != nil {
		f.obj.Close()
		f.obj = nil
	}
}

// matching hands the owned engine object to cooperating wrappers. It
// returns nil after Close.
func (f *FeatureMatching) matching() *companion.FeatureMatching {
	if f == nil {
		return nil
	}
	return f.obj
}
