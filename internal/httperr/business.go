package httperr

import "errors"

type BusinessError struct {
	Code string
	Meta map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessMeta attaches structured detail (e.g. hours remaining on
// a cancellation window violation) so callers can render a precise
// message.
func ErrBusinessMeta(code string, meta map[string]any) error {
	return BusinessError{Code: code, Meta: meta}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
