package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrMissingFields     = fmt.Errorf("%w: please fill in all required fields", ErrValidation)
	ErrPasswordMismatch  = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrUnknownDeviceType = fmt.Errorf("%w: unknown device type", ErrValidation)

	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDataAccess marks connection and query failures; the underlying
	// database error stays in the chain so its message reaches the user.
	ErrDataAccess = errors.New("data access error")
	ErrIO         = errors.New("i/o error")

	// ErrUnsupportedText is returned when a document line holds a character
	// the report font cannot show.
	ErrUnsupportedText = errors.New("text not supported by the document font")
)

func dataAccessError(err error) error {
	return fmt.Errorf("%w: %w", ErrDataAccess, err)
}

func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
