// Package restapi implements the HTTP surface of the proxy, including envelopes, handlers and middleware.
package restapi

import "encoding/json"

// Status messages used in response envelopes.
const (
	MessageSuccess    = "Success"
	MessageBadRequest = "Bad Request"
)

// StatusBody is the status part of every response envelope.
type StatusBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse wraps the provider's JSON payload.
type SuccessResponse struct {
	Status StatusBody      `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// ErrorResponse is the single envelope used for every error; it never carries data.
type ErrorResponse struct {
	Status StatusBody `json:"status"`
}

// requestBody holds the top-level keys of a POST body. Absent keys are absent from the map.
type requestBody map[string]json.RawMessage

// field returns the raw value for key, or nil if the key is absent.
func (b requestBody) field(key string) json.RawMessage {
	v, ok := b[key]
	if !ok {
		return nil
	}
	if v == nil {
		return json.RawMessage("null")
	}
	return v
}
