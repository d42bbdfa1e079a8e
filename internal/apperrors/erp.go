package apperrors

import "fmt"

// ERPError is returned for non-success Fortnox responses. It keeps the raw
// response body and the serialized outgoing request so a failed call can be
// reproduced from the logs alone. Not retried by this service.
type ERPError struct {
	Endpoint     string
	StatusCode   int
	ResponseBody []byte
	RequestBody  []byte
}

func (e *ERPError) Error() string {
	return fmt.Sprintf("fortnox %s returned %d: %s", e.Endpoint, e.StatusCode, e.ResponseBody)
}

func (e *ERPError) Code() string {
	return ErrERPRequestFailed
}

func (e *ERPError) Unwrap() error {
	return nil
}
