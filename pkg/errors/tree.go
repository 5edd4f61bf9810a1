package errors

import (
	"errors"

	"github.com/matzehuels/arbor/pkg/tree"
)

var treeCodes = []struct {
	sentinel error
	code     Code
}{
	{tree.ErrIndexOutOfRange, ErrCodeIndexOutOfRange},
	{tree.ErrNotComparable, ErrCodeNotComparable},
	{tree.ErrCrossTree, ErrCodeCrossTree},
	{tree.ErrNotInTree, ErrCodeNotInTree},
	{tree.ErrInvalidMutation, ErrCodeInvalidMutation},
	{tree.ErrInvalidLimit, ErrCodeInvalidInput},
	{tree.ErrNotChild, ErrCodeInvalidMutation},
	{tree.ErrNilNode, ErrCodeInvalidInput},
}

// FromTree classifies an error returned by pkg/tree. The result keeps err as
// its cause and uses err's text as the message. Errors that already carry a
// code are returned unchanged; errors that are not tree errors become
// ErrCodeInternal. A nil err gives nil.
func FromTree(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	for _, tc := range treeCodes {
		if errors.Is(err, tc.sentinel) {
			return &Error{Code: tc.code, Message: err.Error(), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}
