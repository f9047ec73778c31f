package handler

import (
	"strings"

	dErrors "rcgate/pkg/domain-errors"
)

// maxValueLen bounds raw input; a formatted birth number is 11 characters.
const maxValueLen = 64

// ParseRequest is the HTTP request body for POST /birth-numbers/parse.
type ParseRequest struct {
	Value     *string `json:"value"`
	Separator string  `json:"separator,omitempty"`
}

// Normalize trims surrounding whitespace from the value.
func (r *ParseRequest) Normalize() {
	if r == nil || r.Value == nil {
		return
	}
	v := strings.TrimSpace(*r.Value)
	r.Value = &v
}

// Validate checks presence and size. Birth number rules are the service's job.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ParseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Value == nil {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	if len(*r.Value) > maxValueLen {
		return dErrors.New(dErrors.CodeValidation, "value must be at most 64 characters")
	}
	return nil
}

// BatchRequest is the HTTP request body for POST /birth-numbers/batch.
type BatchRequest struct {
	Values []string `json:"values"`
}

// Normalize trims each value.
func (r *BatchRequest) Normalize() {
	if r == nil {
		return
	}
	for i, v := range r.Values {
		r.Values[i] = strings.TrimSpace(v)
	}
}

// Validate checks per-value size. Batch limits are enforced by the service.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Values == nil {
		return dErrors.New(dErrors.CodeValidation, "values is required")
	}
	for _, v := range r.Values {
		if len(v) > maxValueLen {
			return dErrors.New(dErrors.CodeValidation, "each value must be at most 64 characters")
		}
	}
	return nil
}
