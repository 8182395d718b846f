package input

import "errors"

var (
	// ErrCaptureUnsupported indicates the platform has no exclusive pointer capture.
	ErrCaptureUnsupported = errors.New("exclusive capture not supported")

	// ErrCaptureRejected indicates the platform refused a capture request.
	ErrCaptureRejected = errors.New("exclusive capture rejected")

	// ErrClosed indicates the tracker has been closed.
	ErrClosed = errors.New("tracker closed")
)
