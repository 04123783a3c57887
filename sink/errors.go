package sink

import "errors"

// ErrWriteFailed wraps any storage fault while appending a row. The
// failed event is dropped; the pipeline logs and continues.
var ErrWriteFailed = errors.New("sink: write failed")
