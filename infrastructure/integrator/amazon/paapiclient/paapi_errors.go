package paapiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// RequestError normaliza qualquer falha de transporte ou do provedor em um
// único tipo na fronteira da chamada de rede. Retryable distingue falhas de
// lote (rede, throttling, 5xx) de rejeições definitivas da requisição.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Retryable  bool
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("PA-API %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("PA-API %s: %s", e.Code, e.Message)
}

// errorBody é o envelope de erro da PA-API para falhas de requisição
type errorBody struct {
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// normalizeTransportError converte erros do http.Client em RequestError
func normalizeTransportError(err error) *RequestError {
	code := "TRANSPORT_ERROR"

	if errors.Is(err, context.DeadlineExceeded) {
		code = "TIMEOUT"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		code = "TIMEOUT"
	}

	return &RequestError{
		Code:      code,
		Message:   err.Error(),
		Retryable: true,
	}
}

// normalizeResponseError converte uma resposta HTTP de falha em RequestError.
// Throttling (429) e erros de servidor (5xx) são retryable; os demais são
// rejeições definitivas da requisição.
func normalizeResponseError(statusCode int, body []byte) *RequestError {
	code := "REQUEST_FAILED"
	message := http.StatusText(statusCode)

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Errors) > 0 {
			code = parsed.Errors[0].Code
			message = parsed.Errors[0].Message
		} else if parsed.Type != "" {
			code = parsed.Type
			message = parsed.Message
		}
	}

	retryable := statusCode == http.StatusTooManyRequests || statusCode >= 500
	if statusCode == http.StatusTooManyRequests && code == "REQUEST_FAILED" {
		code = "TooManyRequests"
	}

	return &RequestError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Retryable:  retryable,
	}
}
