package poker

import "errors"

// ErrParse reports malformed card or range strings: unknown ranks or
// suits, truncated input, or duplicate cards.
var ErrParse = errors.New("parse error")

// ErrInvariant reports corrupted precomputed tables or an internal
// logic bug. It is never recoverable by the caller.
var ErrInvariant = errors.New("invariant violation")
