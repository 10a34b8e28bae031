// Package bridge is the host-facing surface of companion-go. It wraps
// the processing engine (pkg/companion) in small sealed types that are
// safe to hand across an application boundary:
//
//   - Every failure is an ErrorCode, a closed enumeration with a fixed
//     message table. ErrorCode implements error, so a failed call returns
//     the status itself and the caller looks up the message separately
//     with Message.
//   - Wrapper types never re-export engine interfaces or types. The
//     engine's Stream hierarchy in particular is not mirrored here; a
//     wrapper such as ImageStream exposes only construction and Close,
//     and hands its engine object to cooperating wrappers through an
//     unexported accessor.
//   - Each wrapper exclusively owns its engine object. Close releases it
//     exactly once and further calls are no-ops; using a wrapper after
//     Close yields a wrapper-state ErrorCode rather than touching freed
//     native memory.
//
// The engine's own error codes map one to one onto the mirrored range of
// ErrorCode via Translate. The wrapper-local codes (ModelNotAdded,
// RecognitionNotFound, ConfigOrRecognitionNotFound,
// ObjectDetectionNotFound, ModelPathNotSet) describe invalid wrapper
// state the engine has no concept of.
package bridge
