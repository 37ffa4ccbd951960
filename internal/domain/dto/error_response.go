package dto

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
//
// The message is exposed under "error" so clients can read `body.error`
// regardless of which layer produced the failure.
type ErrorResponse struct {
	Message      string    `json:"error" example:"ticker not found"`
	ErrorDetails string    `json:"details,omitempty" example:"GET http://fundamentus.com.br/proventos.php?papel=XXXX3: status 404"`
	Timestamp    time.Time `json:"timestamp" example:"2024-09-01T12:00:00Z"`
}

// Error implements the error interface so the response can be passed around as an error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// The inner error, when present, is exposed as details.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
