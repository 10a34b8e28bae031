// Package companion is the processing engine of companion-go. It composes
// OpenCV primitives (via gocv) into an image recognition pipeline:
//
//   - Stream implementations deliver frames from an ordered image list
//     (ImageStream) or a video source (VideoStream).
//   - FeatureMatching searches FeatureModel images in frames using a
//     feature detector plus a descriptor matcher.
//   - ObjectDetection runs a cascade classifier over frames.
//   - Configuration ties a source, models and processors together and
//     drives the frame loop, handing results to a callback.
//
// Failures are reported as Code values, a closed set of engine error
// codes with a fixed message table (see GetError). The engine never
// recovers from an error itself; every error is terminal for the
// operation that produced it.
//
// Host-facing applications should not consume this package directly but
// go through pkg/bridge, which wraps engine objects in sealed types with
// enumerated status errors.
package companion
