package triplewhale

import "errors"

var ErrInvalidInput = errors.New("triplewhale: invalid input")
