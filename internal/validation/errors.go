// Package validation collects field-level constraint violations for
// server-rendered forms. Rules report into an explicit Errors value; no rule
// failure is ever expressed as a panic or an HTTP error directly.
package validation

// FieldError is one (field, message) pair shown next to a form input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full violation set for a single submission. An empty set
// means the request proceeds; a non-empty set means reject-and-re-render.
type Errors []FieldError

// Add appends a violation.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Merge appends every violation from other. Ordering within the combined set
// carries no meaning; all violations are reported together.
func (e *Errors) Merge(other Errors) {
	*e = append(*e, other...)
}

// HasErrors reports whether any rule was violated.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// ByField returns the messages recorded for a single field.
func (e Errors) ByField(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}
