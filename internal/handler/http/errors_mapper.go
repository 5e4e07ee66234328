package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/adapter"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
)

// errorStatus binds an error family to its HTTP status and machine code.
type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatuses is checked in order. A partial rename also unwraps to the
// external failure that caused it, so it has to come before the external
// kinds; the specific external kinds come before their family.
var errorStatuses = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest, "validation_error"},
	{ErrInvalidPathID, http.StatusBadRequest, "validation_error"},
	{ErrInvalidQuery, http.StatusBadRequest, "validation_error"},
	{ErrNoSession, http.StatusUnauthorized, "unauthorized"},
	{ErrNoAPIKey, http.StatusUnauthorized, "unauthorized"},
	{ErrNoActor, http.StatusUnauthorized, "unauthorized"},

	{service.ErrPartialRename, http.StatusBadGateway, "partial_rename"},
	{service.ErrPersistence, http.StatusInternalServerError, "persistence_error"},

	{adapter.ErrSettingsNotConfigured, http.StatusNotFound, "settings_not_found"},
	{adapter.ErrExternalTimeout, http.StatusGatewayTimeout, "external_timeout"},
	{adapter.ErrExternalRejected, http.StatusBadGateway, "external_rejected"},
	{adapter.ErrExternalMalformed, http.StatusBadGateway, "external_malformed"},
	{adapter.ErrExternalUnavailable, http.StatusBadGateway, "external_unavailable"},
	{adapter.ErrExternalService, http.StatusBadGateway, "external_error"},

	{service.ErrValidation, http.StatusBadRequest, "validation_error"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{service.ErrForbidden, http.StatusForbidden, "forbidden"},
	{service.ErrInsufficientCredits, http.StatusPaymentRequired, "insufficient_credits"},
	{service.ErrSettingsNotFound, http.StatusNotFound, "settings_not_found"},
	{service.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrUIDAlreadyExists, http.StatusConflict, "uid_exists"},
	{service.ErrUsernameTaken, http.StatusConflict, "username_taken"},
}

func classifyError(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

// externalDetails is what the bypass service reported about a failure.
type externalDetails struct {
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

// renameDetails describes a rename that left the old UID removed remotely.
type renameDetails struct {
	UIDID    int64  `json:"uid_id"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

type errorResponse struct {
	Error    string           `json:"error"`
	Code     string           `json:"code"`
	External *externalDetails `json:"external,omitempty"`
	Rename   *renameDetails   `json:"partial_rename,omitempty"`
}

func newErrorResponse(err error) (errorResponse, int) {
	status, code := classifyError(err)

	resp := errorResponse{Error: err.Error(), Code: code}
	if status == http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	}

	var extErr *adapter.ExternalServiceError
	if errors.As(err, &extErr) {
		resp.External = &externalDetails{
			Message:    extErr.Message,
			Code:       extErr.Code,
			HTTPStatus: extErr.HTTPStatus,
		}
	}

	var renameErr *service.PartialRenameError
	if errors.As(err, &renameErr) {
		resp.Rename = &renameDetails{
			UIDID:    renameErr.UIDID,
			OldValue: renameErr.OldValue,
			NewValue: renameErr.NewValue,
		}
	}

	return resp, status
}

// writeError logs err and writes it as the JSON error body of the dashboard
// API. Internal failures are reported without their message.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	resp, status := newErrorResponse(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Str("code", resp.Code).Msg("request failed")

	utils.WriteJSON(w, resp, status)
}
