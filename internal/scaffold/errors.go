package scaffold

import "errors"

// ErrAborted reports that the user cancelled the session, usually Ctrl+C.
var ErrAborted = errors.New("scaffold: aborted")
