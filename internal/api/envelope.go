package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the response envelope shape changes.
const envelopeVersion = 1

type envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body in a versioned envelope.
// Success bodies land under "data"; APIError bodies land under "error".
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &envelope{V: envelopeVersion, Success: false, Error: apiErr}, nil
	}
	return &envelope{V: envelopeVersion, Success: true, Data: v}, nil
}
