package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalService matches every failure of the bypass service.
	ErrExternalService = errors.New("external service error")

	ErrExternalTimeout     = errors.New("external service timeout")
	ErrExternalRejected    = errors.New("external service rejected the request")
	ErrExternalMalformed   = errors.New("external service returned a malformed response")
	ErrExternalUnavailable = errors.New("external service unavailable")

	ErrSettingsNotConfigured = errors.New("external api settings are not configured")
	ErrPartialUpdate         = errors.New("uid update partially applied")
)

// ExternalServiceError describes a failed call to the bypass service.
// Kind is one of the ErrExternal* sentinels; Message, Code and HTTPStatus are
// whatever the remote side reported and may be empty.
type ExternalServiceError struct {
	Kind       error
	Op         string
	Message    string
	Code       string
	HTTPStatus int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		fmt.Fprintf(&b, " (%s)", e.Op)
	}
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, ": http %d", e.HTTPStatus)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}

	return b.String()
}

func (e *ExternalServiceError) Unwrap() []error {
	errs := []error{e.Kind, ErrExternalService}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// PartialUpdateError is returned by UpdateUID when the old UID was removed
// remotely but the new one could not be provisioned.
type PartialUpdateError struct {
	OldUID string
	NewUID string
	Cause  error
}

func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("%s: %q was removed but %q was not created: %v",
		ErrPartialUpdate, e.OldUID, e.NewUID, e.Cause)
}

func (e *PartialUpdateError) Unwrap() []error {
	return []error{ErrPartialUpdate, e.Cause}
}
