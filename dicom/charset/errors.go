package charset

import "errors"

// ErrUnknownTerm indicates a Specific Character Set (0008,0005) defined term
// has no known mapping to a text encoding.
var ErrUnknownTerm = errors.New("unknown specific character set term")
