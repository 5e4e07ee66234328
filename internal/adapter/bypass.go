package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

const (
	apiKeyHeader = "X-API-Key"

	actionAddUID     = "add_uid"
	actionAddUIDFree = "add_uid_free"
	actionRemoveUID  = "remove_uid"
	actionRenewUID   = "renew_uid"
	actionListUIDs   = "list_uids"
)

type bypassClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewBypassClient constructs the HTTP implementation of [BypassClient] for the
// given settings. Every call is bounded by timeout.
//
// Returns an error if the base URL cannot be parsed or the API key is empty.
func NewBypassClient(settings models.ExternalAPISettings, timeout time.Duration, logger *logger.Logger) (BypassClient, error) {
	baseURL, err := normalizeBaseURL(settings.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %w", ErrSettingsNotConfigured, err)
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, fmt.Errorf("%w: empty api key", ErrSettingsNotConfigured)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader(apiKeyHeader, settings.APIKey)

	return &bypassClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

type addUIDBody struct {
	UID           string `json:"uid"`
	PlanID        string `json:"plan_id"`
	DurationHours int    `json:"duration_hours"`
	Region        string `json:"region,omitempty"`
}

type addUIDFreeBody struct {
	UID    string `json:"uid"`
	Region string `json:"region,omitempty"`
}

type removeUIDBody struct {
	UID string `json:"uid"`
}

type renewUIDBody struct {
	UID  string `json:"uid"`
	Days int    `json:"days"`
}

// CreateUID implements [BypassClient]. It POSTs to /api/add_uid.
func (b *bypassClient) CreateUID(ctx context.Context, uid string, plan models.Plan, region string) (models.ExternalUIDRecord, error) {
	record := models.ExternalUIDRecord{UID: uid, PlanID: plan.ID, Region: region, Status: "active"}

	err := b.post(ctx, actionAddUID, addUIDBody{
		UID:           uid,
		PlanID:        plan.ID,
		DurationHours: plan.Duration,
		Region:        region,
	}, &record)

	return record, err
}

// CreateUIDFree implements [BypassClient]. It POSTs to /api/add_uid_free.
func (b *bypassClient) CreateUIDFree(ctx context.Context, uid string, region string) (models.ExternalUIDRecord, error) {
	record := models.ExternalUIDRecord{UID: uid, PlanID: models.PlanFree, Region: region, Status: "active"}

	err := b.post(ctx, actionAddUIDFree, addUIDFreeBody{UID: uid, Region: region}, &record)

	return record, err
}

// DeleteUID implements [BypassClient]. It POSTs to /api/remove_uid.
func (b *bypassClient) DeleteUID(ctx context.Context, uid string) (models.ExternalDeleteResult, error) {
	result := models.ExternalDeleteResult{UID: uid, Deleted: true}

	err := b.post(ctx, actionRemoveUID, removeUIDBody{UID: uid}, &result)

	return result, err
}

// RenewUID implements [BypassClient]. It POSTs to /api/renew_uid.
func (b *bypassClient) RenewUID(ctx context.Context, uid string, days int) (models.ExternalRenewResult, error) {
	result := models.ExternalRenewResult{UID: uid}

	err := b.post(ctx, actionRenewUID, renewUIDBody{UID: uid, Days: days}, &result)

	return result, err
}

// ListUIDs implements [BypassClient]. It GETs /api/list_uids.
func (b *bypassClient) ListUIDs(ctx context.Context, page, perPage int, status string) (models.ExternalUIDPage, error) {
	result := models.ExternalUIDPage{Page: page, PerPage: perPage}

	req := b.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("per_page", strconv.Itoa(perPage))
	if status != "" {
		req.SetQueryParam("status", status)
	}

	start := time.Now()
	resp, err := req.Get("/api/" + actionListUIDs)
	if err != nil {
		err = mapTransportError(actionListUIDs, err)
		b.logCall(ctx, actionListUIDs, 0, start, err)
		return result, err
	}

	err = mapResponse(actionListUIDs, resp, &result)
	b.logCall(ctx, actionListUIDs, resp.StatusCode(), start, err)

	return result, err
}

// UpdateUID implements [BypassClient] as remove_uid followed by add_uid_free.
func (b *bypassClient) UpdateUID(ctx context.Context, oldUID, newUID, region string) (models.ExternalUIDRecord, error) {
	if _, err := b.DeleteUID(ctx, oldUID); err != nil {
		return models.ExternalUIDRecord{}, err
	}

	record, err := b.CreateUIDFree(ctx, newUID, region)
	if err != nil {
		return models.ExternalUIDRecord{}, &PartialUpdateError{OldUID: oldUID, NewUID: newUID, Cause: err}
	}

	return record, nil
}

func (b *bypassClient) post(ctx context.Context, action string, body, out any) error {
	start := time.Now()

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("/api/" + action)
	if err != nil {
		err = mapTransportError(action, err)
		b.logCall(ctx, action, 0, start, err)
		return err
	}

	err = mapResponse(action, resp, out)
	b.logCall(ctx, action, resp.StatusCode(), start, err)

	return err
}

func (b *bypassClient) logCall(ctx context.Context, action string, status int, start time.Time, err error) {
	log := logger.FromContextOr(ctx, b.logger)

	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}

	event.
		Str("func", "bypassClient."+action).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("bypass service call")
}
