package transcript

import "errors"

var ErrTranscript = errors.New("transcript store error")
