package types

import (
	"errors"
	"fmt"
)

// Store operation errors.
var (
	ErrValidation      = errors.New("invalid book")
	ErrNotFound        = errors.New("book not found")
	ErrStorage         = errors.New("storage failure")
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrUnknownField    = errors.New("unknown field")
)

// Validation details. Both wrap ErrValidation.
var (
	ErrEmptyTitle  = fmt.Errorf("%w: title must not be empty", ErrValidation)
	ErrEmptyAuthor = fmt.Errorf("%w: author must not be empty", ErrValidation)
)

// Catalogue lifecycle errors.
var (
	ErrDetached        = errors.New("catalogue is detached")
	ErrAlreadyAttached = errors.New("catalogue is already attached")
)
