package event

import "errors"

// ErrStopPropagation stops event propagation without being an error: when a
// listener returns it, later listeners do not run but Dispatch returns nil.
var ErrStopPropagation = errors.New("stop propagation")
