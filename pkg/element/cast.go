package element

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is returned by As when the element is not of the requested type.
var ErrTypeMismatch = errors.New("type mismatch")

// Is reports whether e is a T. It never fails.
func Is[T Element](e Element) bool {
	_, ok := e.(T)
	return ok
}

// As returns e as a T, or ErrTypeMismatch.
func As[T Element](e Element) (T, error) {
	t, ok := e.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, describe(e), reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}

func describe(e Element) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%T)", e.Kind().Name, e)
}
