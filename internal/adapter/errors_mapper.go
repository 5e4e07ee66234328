package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// envelope is the response body shared by every bypass service action.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// mapTransportError classifies an error returned before any response arrived.
func mapTransportError(op string, err error) error {
	kind := ErrExternalUnavailable

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrExternalTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrExternalTimeout
	}

	return &ExternalServiceError{Kind: kind, Op: op, Err: err}
}

// mapResponse validates the envelope of resp and decodes its data into out
// (when out is non-nil).
func mapResponse(op string, resp *resty.Response, out any) error {
	status := resp.StatusCode()
	body := resp.Body()

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		e := &ExternalServiceError{Kind: ErrExternalRejected, Op: op, HTTPStatus: status}
		if decodeErr == nil {
			e.Message, e.Code = env.Message, env.Code
		}
		if e.Message == "" {
			e.Message = strings.TrimSpace(string(body))
		}
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}

	if decodeErr != nil || env.Success == nil {
		return &ExternalServiceError{Kind: ErrExternalMalformed, Op: op, HTTPStatus: status, Err: decodeErr}
	}

	if !*env.Success {
		return &ExternalServiceError{
			Kind:       ErrExternalRejected,
			Op:         op,
			Message:    env.Message,
			Code:       env.Code,
			HTTPStatus: status,
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ExternalServiceError{Kind: ErrExternalMalformed, Op: op, HTTPStatus: status, Err: err}
	}

	return nil
}
