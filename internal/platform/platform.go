// Package platform holds the operating-system glue: console handling at
// startup, opening URLs, and embedding the preview window into the Windows
// screen saver panel.
package platform

import "errors"

// Preview window size used when the parent size cannot be queried.
const (
	PreviewWidth  = 320
	PreviewHeight = 240
)

// ErrUnsupported is returned by operations with no implementation on the
// running platform.
var ErrUnsupported = errors.New("platform: not supported on this system")
