package qcatail

import (
	"errors"

	"github.com/hashicorp/errwrap"
)

// Error kinds reported by the codec and the patcher
var (
	ErrTooSmall      = errors.New("buffer is smaller than the uImage header")
	ErrImageTooSmall = errors.New("too small uImage size")
	ErrVersionFormat = errors.New("version doesn't match supported 6-digits format")
	ErrHeaderCRC     = errors.New("header CRC mismatch")
)

// eMsg wraps err with a description of what was being done.
func eMsg(err error, msg string) error {
	return errwrap.Wrap(errors.New(msg), err)
}

// GetErrors returns the wrapped errors from one error.
func GetErrors(err error) []string {
	if err != nil {
		if w, ok := err.(errwrap.Wrapper); ok {
			wrapped := w.WrappedErrors()
			return []string{wrapped[0].Error(), wrapped[1].Error()}
		}

		return []string{err.Error()}
	}

	return []string{}
}
