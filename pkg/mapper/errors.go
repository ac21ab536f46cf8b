package mapper

import "fmt"

// FieldError reports the field that made a mapping fail. It unwraps to the
// underlying error, which in turn wraps one of the types.Err* kinds.
type FieldError struct {
	Kind     string
	Field    string
	Category Category
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q (%s): %v", e.Kind, e.Field, e.Category, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
