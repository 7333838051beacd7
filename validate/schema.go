// Package validate adapts github.com/go-playground/validator/v10 to the
// server.Schema contract: a Parse(x) function that returns x or fails
// with a list of issues.
package validate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tango/server"
)

// StructSchema validates parsed args against T's `validate` struct tags.
// Since args arrive as map[string]any and validator/v10 validates
// concrete struct values, the bridge is a JSON round-trip: marshal the
// map, unmarshal into a fresh T, then validate. encoding/json already
// does exactly this coercion (numbers, nested objects, slices) for the
// map[string]any shapes arg parsing produces.
type StructSchema[T any] struct {
	validate *validator.Validate
}

// NewStructSchema builds a schema bound to T, backed by a fresh validator
// instance configured to report the struct's JSON tag name (falling back to
// the field name) in issue paths, so issues read the way the wire-level
// argument names do rather than Go's exported-field casing.
func NewStructSchema[T any]() *StructSchema[T] {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &StructSchema[T]{validate: v}
}

// Parse implements server.Schema: coerce args into a T, then validate it.
// A coercion failure (a value of the wrong type for its field, a
// wrong-shaped nested value; keys with no matching field are ignored)
// becomes a single-issue ValidationError rather than a 500, since it is
// still "the caller sent bad args", the same category a failed schema
// parse falls into.
func (s *StructSchema[T]) Parse(args map[string]any) (any, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, &server.ValidationError{Issues: []server.ValidationIssue{
			{Path: "", Message: "args not representable as JSON: " + err.Error()},
		}}
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &server.ValidationError{Issues: []server.ValidationIssue{
			{Path: "", Message: "args do not match expected shape: " + err.Error()},
		}}
	}

	if err := s.validate.Struct(value); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, &server.ValidationError{Issues: []server.ValidationIssue{{Path: "", Message: err.Error()}}}
		}
		issues := make([]server.ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, server.ValidationIssue{
				Path:    fe.Field(),
				Message: fe.Tag(),
			})
		}
		return nil, &server.ValidationError{Issues: issues}
	}

	out := make(map[string]any)
	roundTrip, err := json.Marshal(value)
	if err != nil {
		return nil, &server.ValidationError{Issues: []server.ValidationIssue{{Path: "", Message: err.Error()}}}
	}
	if err := json.Unmarshal(roundTrip, &out); err != nil {
		return nil, &server.ValidationError{Issues: []server.ValidationIssue{{Path: "", Message: err.Error()}}}
	}
	return out, nil
}
