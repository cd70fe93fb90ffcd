package services

import (
	"errors"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/validation"
)

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

func validate(req interface{}) error {
	if fields := validation.Struct(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// parseID converts a request identifier, reporting a malformed one against
// its JSON field.
func parseID(field, raw string) (docstore.ID, error) {
	id, err := docstore.ParseID(raw)
	if err != nil {
		return docstore.ID{}, &ValidationError{Fields: map[string]string{field: "must be a valid id"}}
	}
	return id, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, docstore.ErrNotFound)
}
