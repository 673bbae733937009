package response

import (
	"encoding/json"
	"net/http"

	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/logger"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type Data[T any] struct {
	Status string `json:"status"`
	Data   *T     `json:"data,omitempty"`
}

type Message struct {
	Status  string  `json:"status"`
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Status: statusForCode(code), Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Status: statusForCode(code), Data: &jsonPayload})
}

// WithError sends a response with an error message. Server-side failures are
// redacted: the real error goes to the log, the client gets a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg = constant.ResponseErrorInternal
	}

	response(writer, code, Message{Status: failure.GetStatus(err), Message: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func statusForCode(code int) string {
	switch {
	case code < http.StatusBadRequest:
		return StatusSuccess
	case code < http.StatusInternalServerError:
		return StatusFail
	default:
		return StatusError
	}
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
