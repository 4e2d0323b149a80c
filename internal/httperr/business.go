package httperr

import "errors"

// BusinessError is an expected, recoverable outcome identified by a stable code.
// Base optionally names the broader category the code belongs to, so callers may
// match either the precise code or its category.
type BusinessError struct {
	Code string
	Base string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessOf builds a code that specializes base.
func ErrBusinessOf(base, code string) error {
	return BusinessError{Code: code, Base: base}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code || (be.Base != "" && be.Base == code)
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for infrastructure errors.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
