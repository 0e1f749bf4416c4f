package board

import "errors"

// ErrInvalidPosition is the InvalidPosition error kind:
// corrupt persisted or malformed FEN state. Callers treat it as
// fatal — refuse to start rather than guess at a legal position.
var ErrInvalidPosition = errors.New("board: invalid position")
