package render

import "fmt"

// FrameError wraps a frame-acquisition or rendering failure with the index
// of the source frame that caused it. Batch animation is all-or-nothing:
// once a FrameError surfaces, no partial result is returned.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("render: frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
