package customerrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	ErrInvalidJSON      = errors.New("invalid JSON body")
	ErrBodyTooLarge     = errors.New("request entity too large")
	ErrStoreClosed      = errors.New("store closed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// CommonError is the JSON body of framework-level 4xx responses.
type CommonError struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Details string `json:"detail"`
}

// ServerError is the gateway's 500 envelope.
type ServerError struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}

// WriteError writes a CommonError with the given status. customDetail
// overrides the default detail when non-empty.
func WriteError(w http.ResponseWriter, status int, customDetail string) {
	title, defaultDetail := statusText(status)

	detail := defaultDetail
	if customDetail != "" {
		detail = customDetail
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(CommonError{
		Title:   title,
		Status:  status,
		Details: detail,
	})
}

// WriteServerError writes the 500 envelope for requestID and err.
func WriteServerError(w http.ResponseWriter, requestID string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(ServerError{
		Error:     "Internal Server Error",
		RequestID: requestID,
		Message:   err.Error(),
	})
}

// StatusFor maps a body decoding error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusText(status int) (title, detail string) {
	switch status {
	case http.StatusBadRequest:
		return "Validation Error", "The request could not be understood or was missing required parameters"
	case http.StatusNotFound:
		return "Not Found", "The requested resource could not be found"
	case http.StatusMethodNotAllowed:
		return "Method Not Allowed", "The requested method is not supported for this resource"
	case http.StatusRequestEntityTooLarge:
		return "Payload Too Large", "The request body exceeds the configured limit"
	default:
		return http.StatusText(status), "An error occurred while processing the request"
	}
}
