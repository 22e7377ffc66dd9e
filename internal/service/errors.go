package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound   = errors.New("error not found")
	ErrBadRequest = errors.New("error bad request")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError is a client error tied to an entity. Key is a short
// machine readable reason such as "idexists" or "tickerexists".
type ValidationError struct {
	Entity string
	Key    string
	Fields []FieldError
}

func NewValidationError(entity, key string, fields ...FieldError) *ValidationError {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &ValidationError{Entity: entity, Key: key, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Entity, e.Key)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Entity, e.Key, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}
