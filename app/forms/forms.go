package forms

// FieldErrors maps a form field name to a user-facing message. A nil or
// empty map means the submission is valid.
type FieldErrors map[string]string

// Has reports whether the field carries an error
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for the field, or empty string
func (e FieldErrors) Get(field string) string {
	return e[field]
}

// Empty reports whether the submission passed validation
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}
