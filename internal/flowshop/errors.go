package flowshop

import "errors"

// ErrInvalidInput помечает все ошибки некорректных входных данных.
var ErrInvalidInput = errors.New("invalid input")
