// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines multiple errors into one:
//
//   - If all errors are nil, it returns nil.
//
//   - If there is one non-nil error, it is returned.
//
//   - Otherwise, the return value is an error whose Error methods contain all
//     the messages of all non-nil arguments.
//
// If the input contains any error returned by Multi, such errors are flattened.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			if multi, ok := err.(multiError); ok {
				nonNil = append(nonNil, multi...)
			} else {
				nonNil = append(nonNil, err)
			}
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

// Errors returns the errors combined in err by Multi. If err was not returned
// by Multi, it returns a one-element slice, or nil if err is nil.
func Errors(err error) []error {
	if multi, ok := err.(multiError); ok {
		return multi
	}
	if err == nil {
		return nil
	}
	return []error{err}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Is reports whether any of the combined errors matches target. It is used by
// errors.Is.
func (me multiError) Is(target error) bool {
	for _, e := range me {
		if e == target {
			return true
		}
		if is, ok := e.(interface{ Is(error) bool }); ok && is.Is(target) {
			return true
		}
	}
	return false
}
