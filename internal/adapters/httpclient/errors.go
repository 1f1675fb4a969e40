package httpclient

import "fmt"

// DefaultErrorMessage is used when a failed response carries no message.
const DefaultErrorMessage = "Request failed"

// APIError is returned for responses with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) String() string {
	return fmt.Sprintf("hostel api: status %d: %s", e.Status, e.Message)
}
