package bridge

import (
	"errors"

	"github.com/libcompanion/companion-go/pkg/companion"
)

// ErrorCode enumerates every status the boundary can raise. The codes
// from ImageNotFound through NoHandlerSet mirror the engine error set
// one to one; the codes from ModelNotAdded on describe invalid wrapper
// state. ErrorCode implements error.
type ErrorCode int

const (
	// UnknownError is the fallback for anything without a mapping.
	UnknownError ErrorCode = iota

	ImageNotFound
	DimensionError
	TemplateDimensionError
	FeatureDetectorNotFound
	DescriptorExtractorNotFound
	DescriptorMatcherNotFound
	WrongModelType
	InvalidCompanionConfig
	VideoSrcNotSet
	InvalidVideoSrc
	NoImageProcessingAlgoSet
	NoHandlerSet

	// ModelNotAdded reports a model that could not be added to a
	// configuration.
	ModelNotAdded

	// RecognitionNotFound reports a missing feature matching handle.
	RecognitionNotFound

	// ConfigOrRecognitionNotFound reports a missing configuration or
	// feature matching handle.
	ConfigOrRecognitionNotFound

	// ObjectDetectionNotFound reports a missing object detection handle.
	ObjectDetectionNotFound

	// ModelPathNotSet reports a model constructed without an image path.
	ModelPathNotSet
)

// fromEngine is the single source of truth for the engine mapping;
// toEngine is derived from it at init so the two directions cannot
// drift apart.
var fromEngine = map[companion.Code]ErrorCode{
	companion.ImageNotFound:               ImageNotFound,
	companion.DimensionError:              DimensionError,
	companion.TemplateDimensionError:      TemplateDimensionError,
	companion.FeatureDetectorNotFound:     FeatureDetectorNotFound,
	companion.DescriptorExtractorNotFound: DescriptorExtractorNotFound,
	companion.DescriptorMatcherNotFound:   DescriptorMatcherNotFound,
	companion.WrongModelType:              WrongModelType,
	companion.InvalidCompanionConfig:      InvalidCompanionConfig,
	companion.VideoSrcNotSet:              VideoSrcNotSet,
	companion.InvalidVideoSrc:             InvalidVideoSrc,
	companion.NoImageProcessingAlgoSet:    NoImageProcessingAlgoSet,
	companion.NoHandlerSet:                NoHandlerSet,
}

var toEngine = make(map[ErrorCode]companion.Code, len(fromEngine))

func init() {
	for ec, bc := range fromEngine {
		toEngine[bc] = ec
	}
}

// Translate converts an engine error code to its boundary ErrorCode.
// Codes without a mapping come back as UnknownError; Translate always
// returns a valid value.
func Translate(code companion.Code) ErrorCode {
	if bc, ok := fromEngine[code]; ok {
		return bc
	}
	return UnknownError
}

// TranslateErr converts any error produced by the engine into an
// ErrorCode. Errors that do not carry an engine code come back as
// UnknownError.
func TranslateErr(err error) ErrorCode {
	var code companion.Code
	if errors.As(err, &code) {
		return Translate(code)
	}
	return UnknownError
}

// Message returns the fixed human-readable message for a code. Codes
// that mirror an engine code reuse the engine's own message table;
// wrapper-local codes carry literal messages of their own. Anything
// else yields "Unknown Error". Message has no failure path.
func (c ErrorCode) Message() string {
	if ec, ok := toEngine[c]; ok {
		return companion.GetError(ec)
	}

	switch c {
	case ModelNotAdded:
		return "Could not add model to configuration."
	case RecognitionNotFound:
		return "The feature matching handle is not set."
	case ConfigOrRecognitionNotFound:
		return "The configuration or feature matching handle is not set."
	case ObjectDetectionNotFound:
		return "The object detection handle is not set."
	case ModelPathNotSet:
		return "The model image path is not set."
	default:
		return "Unknown Error"
	}
}

// Error implements the error interface, so a failed boundary call can
// return its ErrorCode directly as the enumerated status.
func (c ErrorCode) Error() string {
	return c.Message()
}
