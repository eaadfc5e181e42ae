// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package validation provides struct validation using go-playground/validator v10.
//
// Validation is run explicitly by handlers before any delegation to the
// recommendation engine; nothing relies on implicit framework coercion.
//
//	req := models.RecommendationRequest{Movie: "star wars", NumRec: 10}
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // err.Detail() is safe to surface to the caller
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance; thread-safe, caches struct metadata.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// RequestError is a collection of field validation errors for one request.
type RequestError struct {
	fields []FieldError
}

// Fields returns the individual field errors.
func (e *RequestError) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface with a combined message.
func (e *RequestError) Error() string {
	return e.Detail()
}

// Detail returns a human-readable summary suitable for API error bodies.
func (e *RequestError) Detail() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.fields))
	for i, fe := range e.fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// Details returns structured per-field information for API error bodies.
func (e *RequestError) Details() map[string]interface{} {
	if len(e.fields) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(e.fields))
	for _, fe := range e.fields {
		out[fe.Field] = fe.Message
	}
	return out
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestError if it fails.
func ValidateStruct(s interface{}) *RequestError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Unexpected error type (e.g. nil pointer passed in) - wrap it
		return &RequestError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &RequestError{fields: fields}
}

// translate converts a validator.FieldError to a human-readable message.
func translate(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
