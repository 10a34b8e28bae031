package companion

// Code is an engine error code. It implements error directly, so engine
// functions return a Code as their error value and callers can match on
// it with errors.As or a plain comparison.
type Code int

// The engine error set. The numeric values are part of the engine
// contract and must not be reordered.
const (
	// ImageNotFound reports an image that could not be read or decoded.
	ImageNotFound Code = iota

	// DimensionError reports images with unequal dimensions.
	DimensionError

	// TemplateDimensionError reports a template with wrong dimensions.
	TemplateDimensionError

	// FeatureDetectorNotFound reports an unsupported feature detector name.
	FeatureDetectorNotFound

	// DescriptorExtractorNotFound reports an unsupported descriptor
	// extractor name.
	DescriptorExtractorNotFound

	// DescriptorMatcherNotFound reports an unsupported descriptor matcher
	// name.
	DescriptorMatcherNotFound

	// WrongModelType reports a model type the processor cannot search for.
	WrongModelType

	// InvalidCompanionConfig reports a configuration that cannot run.
	InvalidCompanionConfig

	// VideoSrcNotSet reports a run without a frame source.
	VideoSrcNotSet

	// InvalidVideoSrc reports a video source that could not be opened.
	InvalidVideoSrc

	// NoImageProcessingAlgoSet reports a run without any processor.
	NoImageProcessingAlgoSet

	// NoHandlerSet reports a run without a result callback.
	NoHandlerSet
)

var errorMessages = map[Code]string{
	ImageNotFound:               "Could not find or decode image.",
	DimensionError:              "Dimensions from given images are unequal.",
	TemplateDimensionError:      "Dimensions from template are wrong.",
	FeatureDetectorNotFound:     "Given feature detector is not supported.",
	DescriptorExtractorNotFound: "Given descriptor extractor is not supported.",
	DescriptorMatcherNotFound:   "Given descriptor matcher is not supported.",
	WrongModelType:              "Given model type is not supported for an image recognition search.",
	InvalidCompanionConfig:      "Given configuration is invalid.",
	VideoSrcNotSet:              "Given video source is not set.",
	InvalidVideoSrc:             "Given video source is invalid.",
	NoImageProcessingAlgoSet:    "No image processing algorithm is used.",
	NoHandlerSet:                "No callback handler is set.",
}

// GetError returns the fixed message for an engine code. Codes outside
// the defined set yield a generic message; GetError never fails.
func GetError(code Code) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error."
}

// Error implements the error interface.
func (c Code) Error() string {
	return GetError(c)
}

// Codes returns the full engine error set in declaration order.
func Codes() []Code {
	codes := make([]Code, 0, len(errorMessages))
	for c := ImageNotFound; c <= NoHandlerSet; c++ {
		codes = append(codes, c)
	}
	return codes
}
