package enum

import "errors"

// ErrConfig reports an inconsistent query: too many players, a board
// size the game does not allow, or an unsupported mode for a variant.
var ErrConfig = errors.New("configuration error")

// ErrCardOverlap reports pockets, board, or dead cards that share a
// card.
var ErrCardOverlap = errors.New("card sets overlap")
