package scanner

import "errors"

// ErrImageLoad wraps screenshot decode failures. It is the only error class
// that aborts a scan; everything else degrades into Report.Errors.
var ErrImageLoad = errors.New("image load failed")

// noTemplatesNote is reported when a scan runs against an empty template
// library. The scan still succeeds with an empty item list.
const noTemplatesNote = "no templates configured"
