package companion

import (
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"gocv.io/x/gocv"
)

// Feature detector names accepted by NewFeatureMatching.
const (
	DetectorORB   = "ORB"
	DetectorBRISK = "BRISK"
	DetectorAKAZE = "AKAZE"
	DetectorKAZE  = "KAZE"
)

// Descriptor matcher names accepted by NewFeatureMatching.
const (
	MatcherBruteForce = "BF"
	MatcherFLANN      = "FLANN"
)

// MatchingConfig tunes the feature matching processor.
type MatchingConfig struct {
	Detector   string  // ORB, BRISK, AKAZE or KAZE
	Matcher    string  // BF or FLANN
	Ratio      float64 // Lowe ratio threshold (default 0.75)
	MinMatches int     // Minimum good matches to report a result (default 10)
	CacheSize  int     // Cached model feature sets (default 16)
}

// DefaultMatchingConfig returns the defaults used by the commands.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		Detector:   DetectorORB,
		Matcher:    MatcherBruteForce,
		Ratio:      0.75,
		MinMatches: 10,
		CacheSize:  16,
	}
}

// featureDetector is the subset of the gocv detector API used here.
// ORB, BRISK, AKAZE and KAZE all provide it.
type featureDetector interface {
	DetectAndCompute(src gocv.Mat, mask gocv.Mat) ([]gocv.KeyPoint, gocv.Mat)
	Close() error
}

// descriptorMatcher is the subset of the gocv matcher API used here.
type descriptorMatcher interface {
	KnnMatch(query, train gocv.Mat, k int) [][]gocv.DMatch
	Close() error
}

// modelFeatures holds the precomputed keypoints and descriptors of one
// model image. The descriptor matrix is native memory and is released by
// the cache eviction hook.
type modelFeatures struct {
	keypoints   []gocv.KeyPoint
	descriptors gocv.Mat
}

// Result is one recognition produced by a processor. ModelID is -1 for
// cascade detections, which are not tied to a feature model.
type Result struct {
	ModelID  int
	Location image.Rectangle
	Score    float64
	Matches  int
}

// FeatureMatching searches model images in frames using feature detection
// plus descriptor matching with a Lowe ratio test. Model features are
// computed once per model image and kept in an LRU cache whose eviction
// hook releases the native descriptor matrices.
//
// A FeatureMatching is not safe for concurrent use.
type FeatureMatching struct {
	cfg      MatchingConfig
	detector featureDetector
	matcher  descriptorMatcher
	mask     gocv.Mat
	cache    *lru.Cache[string, *modelFeatures]
}

// NewFeatureMatching builds a processor for the given configuration.
// Unknown detector names yield FeatureDetectorNotFound and unknown
// matcher names DescriptorMatcherNotFound.
func NewFeatureMatching(cfg MatchingConfig) (*FeatureMatching, error) {
	if cfg.Ratio <= 0 {
		cfg.Ratio = 0.75
	}
	if cfg.MinMatches <= 0 {
		cfg.MinMatches = 10
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 16
	}

	var detector featureDetector
	switch cfg.Detector {
	case DetectorORB:
		orb := gocv.NewORB()
		detector = &orb
	case DetectorBRISK:
		brisk := gocv.NewBRISK()
		detector = &brisk
	case DetectorAKAZE:
		akaze := gocv.NewAKAZE()
		detector = &akaze
	case DetectorKAZE:
		kaze := gocv.NewKAZE()
		detector = &kaze
	default:
		return nil, FeatureDetectorNotFound
	}

	var matcher descriptorMatcher
	switch cfg.Matcher {
	case MatcherBruteForce:
		bf := gocv.NewBFMatcherWithParams(normFor(cfg.Detector), false)
		matcher = &bf
	case MatcherFLANN:
		fl := gocv.NewFlannBasedMatcher()
		matcher = &fl
	default:
		detector.Close()
		return nil, DescriptorMatcherNotFound
	}

	cache, err := lru.NewWithEvict(cfg.CacheSize, func(_ string, f *modelFeatures) {
		f.descriptors.Close()
	})
	if err != nil {
		matcher.Close()
		detector.Close()
		return nil, InvalidCompanionConfig
	}

	return &FeatureMatching{
		cfg:      cfg,
		detector: detector,
		matcher:  matcher,
		mask:     gocv.NewMat(),
		cache:    cache,
	}, nil
}

// normFor picks the distance norm matching the detector's descriptors:
// Hamming for the binary descriptors, L2 for KAZE's float descriptors.
func normFor(detector string) gocv.NormType {
	if detector == DetectorKAZE {
		return gocv.NormL2
	}
	return gocv.NormHamming
}

// Match searches one model in the given frame. It returns nil without an
// error when the model is not present with enough confidence.
func (f *FeatureMatching) Match(frame gocv.Mat, model *FeatureModel) (*Result, error) {
	if frame.Empty() {
		return nil, ImageNotFound
	}

	mf, err := f.features(model)
	if err != nil {
		return nil, err
	}
	if mf.descriptors.Empty() {
		return nil, nil
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	sceneKP, sceneDesc := f.detector.DetectAndCompute(gray, f.mask)
	defer sceneDesc.Close()
	if sceneDesc.Empty() {
		return nil, nil
	}

	matches := f.matcher.KnnMatch(mf.descriptors, sceneDesc, 2)

	// Lowe ratio test.
	var good []gocv.DMatch
	for _, pair := range matches {
		if len(pair) < 2 {
			continue
		}
		if pair[0].Distance < f.cfg.Ratio*pair[1].Distance {
			good = append(good, pair[0])
		}
	}
	if len(good) < f.cfg.MinMatches {
		return nil, nil
	}

	// Bounding rectangle over the matched scene keypoints.
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, m := range good {
		kp := sceneKP[m.TrainIdx]
		minX = math.Min(minX, kp.X)
		minY = math.Min(minY, kp.Y)
		maxX = math.Max(maxX, kp.X)
		maxY = math.Max(maxY, kp.Y)
	}

	score := float64(len(good)) / float64(len(mf.keypoints))
	if score > 1 {
		score = 1
	}

	return &Result{
		ModelID:  model.ID(),
		Location: image.Rect(int(minX), int(minY), int(maxX), int(maxY)),
		Score:    score,
		Matches:  len(good),
	}, nil
}

// features returns the cached feature set for a model, computing it on
// first use.
func (f *FeatureMatching) features(model *FeatureModel) (*modelFeatures, error) {
	if mf, ok := f.cache.Get(model.Path()); ok {
		return mf, nil
	}

	img, err := model.loadImage()
	if err != nil {
		return nil, err
	}
	defer img.Close()

	kp, desc := f.detector.DetectAndCompute(img, f.mask)
	mf := &modelFeatures{keypoints: kp, descriptors: desc}
	f.cache.Add(model.Path(), mf)
	return mf, nil
}

// Close releases the detector, the matcher and all cached model features.
func (f *FeatureMatching) Close() {
	f.cache.Purge()
	f.matcher.Close()
	f.detector.Close()
	f.mask.Close()
}
