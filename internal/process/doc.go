// Package process terminates the headless browser together with the helper
// processes it spawns (renderer, GPU, zygote), which a plain kill of the
// main PID would leave behind.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid process id")
