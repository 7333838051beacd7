package server

// ValidationIssue is a single field-level failure from a Schema's Parse.
type ValidationIssue struct {
	Path    string `msgpack:"path" json:"path"`
	Message string `msgpack:"message" json:"message"`
}

// Schema is the pluggable validation contract: Parse either returns the
// (possibly coerced) value, or fails carrying a list of issues. Which
// library backs an implementation is a wiring choice left to the caller
// — see package validate for the go-playground/validator-backed one
// Tango ships.
type Schema interface {
	Parse(args map[string]any) (any, error)
}

// ValidationError is the error a Schema.Parse returns on failure. The
// dispatcher recognizes this type to produce a 422 response.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	return e.Issues[0].Path + ": " + e.Issues[0].Message
}
