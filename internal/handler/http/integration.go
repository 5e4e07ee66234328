package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

// integrationRequest returns the actor and key scope stored by withAPIKey.
func integrationRequest(r *http.Request) (models.Actor, models.APIKeyScope, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return models.Actor{}, models.APIKeyScope{}, err
	}
	scope, ok := utils.APIKeyScopeFromContext(r.Context())
	if !ok {
		return models.Actor{}, models.APIKeyScope{}, ErrNoActor
	}
	return actor, scope, nil
}

func writeIntegration(w http.ResponseWriter, message string, data any, status int) {
	utils.WriteJSON(w, models.IntegrationEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	}, status)
}

// writeIntegrationError writes err in the integration envelope. The status
// code and the machine code are the same as on the dashboard API.
func writeIntegrationError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	resp, status := newErrorResponse(err)

	logger.FromRequest(r).Warn().Err(err).Str("func", funcName).Int("status", status).Str("code", resp.Code).Msg("integration request failed")

	env := models.IntegrationEnvelope{
		Success: false,
		Message: resp.Error,
		Code:    resp.Code,
	}
	if resp.External != nil {
		env.Data = map[string]any{"external": resp.External}
	}
	utils.WriteJSON(w, env, status)
}

func (h *Handler) integrationAddUID(w http.ResponseWriter, r *http.Request) {
	var req models.IntegrationAddUIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeIntegrationError(w, r, "*Handler.integrationAddUID", err)
		return
	}

	h.integrationCreate(w, r, req)
}

// integrationAddUIDFree is add_uid with the plan forced to the free one;
// any plan_id in the body is ignored.
func (h *Handler) integrationAddUIDFree(w http.ResponseWriter, r *http.Request) {
	var req models.IntegrationAddUIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeIntegrationError(w, r, "*Handler.integrationAddUIDFree", err)
		return
	}
	req.PlanID = models.PlanFree

	h.integrationCreate(w, r, req)
}

func (h *Handler) integrationCreate(w http.ResponseWriter, r *http.Request, req models.IntegrationAddUIDRequest) {
	actor, scope, err := integrationRequest(r)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationCreate", err)
		return
	}

	resp, err := h.services.UIDService.CreateWithPlan(r.Context(), actor, scope, req)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationCreate", err)
		return
	}

	writeIntegration(w, fmt.Sprintf("UID %s created", resp.UID.Value), resp, http.StatusCreated)
}

func (h *Handler) integrationRemoveUID(w http.ResponseWriter, r *http.Request) {
	actor, scope, err := integrationRequest(r)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRemoveUID", err)
		return
	}

	var req models.IntegrationRemoveUIDRequest
	if err = decodeJSON(r, &req); err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRemoveUID", err)
		return
	}

	if err = h.services.UIDService.DeleteForAPIKey(r.Context(), actor, scope, req.UID); err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRemoveUID", err)
		return
	}

	writeIntegration(w, fmt.Sprintf("UID %s removed", req.UID), nil, http.StatusOK)
}

func (h *Handler) integrationRenewUID(w http.ResponseWriter, r *http.Request) {
	actor, scope, err := integrationRequest(r)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRenewUID", err)
		return
	}

	var req models.IntegrationRenewUIDRequest
	if err = decodeJSON(r, &req); err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRenewUID", err)
		return
	}

	result, err := h.services.UIDService.Renew(r.Context(), actor, scope, req.UID, req.Days)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationRenewUID", err)
		return
	}

	writeIntegration(w, fmt.Sprintf("UID %s renewed for %d days", req.UID, req.Days), result, http.StatusOK)
}

// integrationListUIDs serves ?page=&per_page=&status=. Paging defaults are
// applied by the service.
func (h *Handler) integrationListUIDs(w http.ResponseWriter, r *http.Request) {
	_, scope, err := integrationRequest(r)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationListUIDs", err)
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationListUIDs", err)
		return
	}
	perPage, err := queryInt(r, "per_page")
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationListUIDs", err)
		return
	}

	status := models.UIDStatus(r.URL.Query().Get("status"))
	result, err := h.services.UIDService.ListForAPIKey(r.Context(), scope, page, perPage, status)
	if err != nil {
		writeIntegrationError(w, r, "*Handler.integrationListUIDs", err)
		return
	}
	result.Items = nonNil(result.Items)

	writeIntegration(w, "", result, http.StatusOK)
}
