// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/adapter"
	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/lock"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/internal/validators"
	"github.com/MKhiriev/go-uid-panel/models"
)

const (
	externalListPerPage = 100

	defaultAPIListPerPage = 20
	maxAPIListPerPage     = 100

	// localCommitTimeout bounds the ledger commit that follows a successful
	// bypass call.
	localCommitTimeout = 10 * time.Second
)

// uidService is the concrete implementation of UIDService.
//
// Lifecycle operations follow one protocol: validate and authorize locally,
// take the keyed locks of every resource involved, call the bypass service,
// and only after it succeeded commit the ledger changes (record, credits and
// activity entry) in a single transaction. A failure of that transaction is
// an ErrPersistence and is logged for reconciliation.
type uidService struct {
	tx       store.Transactor
	users    store.UserRepository
	uids     store.UIDRepository
	activity store.ActivityRepository

	clients adapter.ClientFactory
	locks   *lock.Keyed

	validator validators.Validator

	// defaultRegion is sent when a request carries no region.
	defaultRegion string

	// listMaxPages bounds the external listing walk of ListAll.
	listMaxPages int

	now func() time.Time

	logger *logger.Logger
}

// NewUIDService constructs a UIDService over the ledger repositories and the
// bypass client factory. locks is shared with every other service that
// mutates credits, so credit changes for one user never interleave.
func NewUIDService(storages *store.Storages, clients adapter.ClientFactory, locks *lock.Keyed, cfg config.StructuredConfig, logger *logger.Logger) UIDService {
	return &uidService{
		tx:            storages.Transactor,
		users:         storages.UserRepository,
		uids:          storages.UIDRepository,
		activity:      storages.ActivityRepository,
		clients:       clients,
		locks:         locks,
		validator:     validators.NewRequestValidator(),
		defaultRegion: cfg.App.DefaultRegion,
		listMaxPages:  cfg.Adapter.ListMaxPages,
		now:           time.Now,
		logger:        logger,
	}
}

// commitContext is the context of the ledger commit after the bypass
// service accepted a change. It keeps the request's values (logger, trace
// id) but not its cancellation: a client disconnect or the request timeout
// must not stop the ledger from recording what already happened remotely.
func commitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), localCommitTimeout)
}

// ── lock keys ──

func userLockKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }

func uidLockKey(id int64) string { return "uid:" + strconv.FormatInt(id, 10) }

func uidValueLockKey(value string) string { return "uidval:" + value }

func apiKeyLockKey(id int64) string { return "apikey:" + strconv.FormatInt(id, 10) }

// ── create ──

// creation describes one UID purchase after request validation.
type creation struct {
	userID   int64
	value    string
	region   string
	plan     models.Plan
	apiKeyID *int64
}

// Create buys a UID for req.UserID at the tier price of req.Duration.
func (s *uidService) Create(ctx context.Context, actor models.Actor, req models.CreateUIDRequest) (models.CreateUIDResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.CreateUIDResponse{}, validationError(err)
	}

	plan, err := PlanByDuration(req.Duration)
	if err != nil {
		return models.CreateUIDResponse{}, err
	}

	if !actor.CanActFor(req.UserID) {
		return models.CreateUIDResponse{}, ErrForbidden
	}

	unlock, err := s.locks.Lock(ctx, userLockKey(req.UserID), uidValueLockKey(req.UIDValue))
	if err != nil {
		return models.CreateUIDResponse{}, err
	}
	defer unlock()

	return s.create(ctx, actor, creation{
		userID: req.UserID,
		value:  req.UIDValue,
		region: s.region(req.Region),
		plan:   plan,
	})
}

// CreateWithPlan buys a UID through an integration API key. The free plan is
// accepted here and provisions a one-day UID without a charge.
func (s *uidService) CreateWithPlan(ctx context.Context, actor models.Actor, scope models.APIKeyScope, req models.IntegrationAddUIDRequest) (models.CreateUIDResponse, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.CreateUIDResponse{}, validationError(err)
	}

	plan, err := PlanByID(req.PlanID)
	if err != nil {
		return models.CreateUIDResponse{}, err
	}

	if !scope.AllowsPlan(plan.ID) {
		return models.CreateUIDResponse{}, ErrPlanNotAllowed
	}
	if !actor.CanActFor(scope.UserID) {
		return models.CreateUIDResponse{}, ErrForbidden
	}

	unlock, err := s.locks.Lock(ctx, userLockKey(scope.UserID), uidValueLockKey(req.UID), apiKeyLockKey(scope.KeyID))
	if err != nil {
		return models.CreateUIDResponse{}, err
	}
	defer unlock()

	if scope.MaxUIDs != nil {
		count, err := s.uids.CountUIDRecordsByAPIKey(ctx, scope.KeyID)
		if err != nil {
			return models.CreateUIDResponse{}, mapStoreError(err)
		}
		if count >= *scope.MaxUIDs {
			return models.CreateUIDResponse{}, ErrUIDLimitReached
		}
	}

	keyID := scope.KeyID
	return s.create(ctx, actor, creation{
		userID:   scope.UserID,
		value:    req.UID,
		region:   s.region(req.Region),
		plan:     plan,
		apiKeyID: &keyID,
	})
}

// create runs the purchase protocol. The caller holds the user and value locks.
func (s *uidService) create(ctx context.Context, actor models.Actor, c creation) (models.CreateUIDResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, c.userID)
	if err != nil {
		return models.CreateUIDResponse{}, mapStoreError(err)
	}
	if user.Credits.LessThan(c.plan.Price) {
		return models.CreateUIDResponse{}, ErrInsufficientCredits
	}

	if err = s.ensureValueFree(ctx, c.value, 0); err != nil {
		return models.CreateUIDResponse{}, err
	}

	client, err := s.client(ctx)
	if err != nil {
		return models.CreateUIDResponse{}, err
	}

	if c.plan.Free {
		_, err = client.CreateUIDFree(ctx, c.value, c.region)
	} else {
		_, err = client.CreateUID(ctx, c.value, c.plan, c.region)
	}
	if err != nil {
		log.Err(err).Str("func", "*uidService.create").Str("uid", c.value).Msg("external uid creation failed")
		return models.CreateUIDResponse{}, fmt.Errorf("creating uid %q: %w", c.value, err)
	}

	now := s.now()
	record := models.UIDRecord{
		UserID:    c.userID,
		APIKeyID:  c.apiKeyID,
		Value:     c.value,
		Region:    c.region,
		Duration:  c.plan.Duration,
		Cost:      c.plan.Price,
		Status:    models.UIDStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(c.plan.Duration) * time.Hour),
	}
	balance := user.Credits
	details := fmt.Sprintf("Created UID %s for user %d (plan %s, %dh, cost %s)",
		c.value, c.userID, c.plan.ID, c.plan.Duration, c.plan.Price.StringFixed(2))

	commitCtx, cancel := commitContext(ctx)
	defer cancel()

	err = s.tx.RunInTx(commitCtx, func(ctx context.Context) error {
		created, err := s.uids.CreateUIDRecord(ctx, record)
		if err != nil {
			return err
		}
		record = created

		if !c.plan.Price.IsZero() {
			balance, err = s.users.AdjustUserCredits(ctx, c.userID, c.plan.Price.Neg())
			if err != nil {
				return err
			}
		}

		_, err = s.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionCreateUID,
			Details: details,
		})
		return err
	})
	if err != nil {
		return models.CreateUIDResponse{}, s.persistenceFailure(ctx, "create_uid", c.userID, c.value, err)
	}

	return models.CreateUIDResponse{UID: record, Balance: balance}, nil
}

// ── update value ──

// UpdateValue renames a UID. The bypass service has no rename primitive, so
// the old value is deleted and the new one provisioned for free; no credits
// move and the duration is kept.
func (s *uidService) UpdateValue(ctx context.Context, actor models.Actor, uidID int64, newValue string) (models.UIDRecord, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, models.UpdateUIDValueRequest{NewUIDValue: newValue}); err != nil {
		return models.UIDRecord{}, validationError(err)
	}

	unlock, err := s.locks.Lock(ctx, uidLockKey(uidID), uidValueLockKey(newValue))
	if err != nil {
		return models.UIDRecord{}, err
	}
	defer unlock()

	record, err := s.authorizedRecord(ctx, actor, uidID)
	if err != nil {
		return models.UIDRecord{}, err
	}
	if record.Status == models.UIDStatusDeleted {
		return models.UIDRecord{}, ErrUIDDeleted
	}
	if record.Value == newValue {
		return models.UIDRecord{}, ErrSameUIDValue
	}
	if err = s.ensureValueFree(ctx, newValue, record.ID); err != nil {
		return models.UIDRecord{}, err
	}

	client, err := s.client(ctx)
	if err != nil {
		return models.UIDRecord{}, err
	}

	if _, err = client.UpdateUID(ctx, record.Value, newValue, record.Region); err != nil {
		var partial *adapter.PartialUpdateError
		if errors.As(err, &partial) {
			log.Error().Err(err).
				Str("func", "*uidService.UpdateValue").
				Int64("uid_id", record.ID).
				Str("old_uid", record.Value).
				Str("new_uid", newValue).
				Msg("uid removed externally but replacement was not created")
			return models.UIDRecord{}, &PartialRenameError{
				UIDID:    record.ID,
				OldValue: record.Value,
				NewValue: newValue,
				Cause:    partial.Cause,
			}
		}
		log.Err(err).Str("func", "*uidService.UpdateValue").Int64("uid_id", record.ID).Msg("external uid rename failed")
		return models.UIDRecord{}, fmt.Errorf("renaming uid %q: %w", record.Value, err)
	}

	oldValue := record.Value
	commitCtx, cancel := commitContext(ctx)
	defer cancel()

	err = s.tx.RunInTx(commitCtx, func(ctx context.Context) error {
		updated, err := s.uids.SetUIDValue(ctx, record.ID, newValue)
		if err != nil {
			return err
		}
		record = updated

		_, err = s.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionUpdateUIDValue,
			Details: fmt.Sprintf("Changed UID value from %s to %s", oldValue, newValue),
		})
		return err
	})
	if err != nil {
		return models.UIDRecord{}, s.persistenceFailure(ctx, "update_uid_value", record.UserID, newValue, err)
	}

	return record.WithEffectiveStatus(s.now()), nil
}

// ── delete ──

// Delete removes a UID at the bypass service and then from the ledger. When
// the external call fails the local record is kept.
func (s *uidService) Delete(ctx context.Context, actor models.Actor, uidID int64) error {
	unlock, err := s.locks.Lock(ctx, uidLockKey(uidID))
	if err != nil {
		return err
	}
	defer unlock()

	record, err := s.authorizedRecord(ctx, actor, uidID)
	if err != nil {
		return err
	}

	return s.delete(ctx, actor, record)
}

// DeleteForAPIKey removes a UID by value. Only UIDs created through the
// same key are visible to it.
func (s *uidService) DeleteForAPIKey(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string) error {
	if err := s.validator.Validate(ctx, models.IntegrationRemoveUIDRequest{UID: uidValue}); err != nil {
		return validationError(err)
	}

	record, err := s.scopedRecord(ctx, scope, uidValue)
	if err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, uidLockKey(record.ID))
	if err != nil {
		return err
	}
	defer unlock()

	// re-read under the lock, a concurrent rename may have won
	record, err = s.authorizedRecord(ctx, actor, record.ID)
	if err != nil {
		return err
	}
	if record.Value != uidValue {
		return ErrUIDNotFound
	}

	return s.delete(ctx, actor, record)
}

func (s *uidService) delete(ctx context.Context, actor models.Actor, record models.UIDRecord) error {
	log := logger.FromContext(ctx)

	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	if _, err = client.DeleteUID(ctx, record.Value); err != nil {
		log.Err(err).Str("func", "*uidService.delete").Int64("uid_id", record.ID).Msg("external uid removal failed")
		return fmt.Errorf("deleting uid %q: %w", record.Value, err)
	}

	commitCtx, cancel := commitContext(ctx)
	defer cancel()

	err = s.tx.RunInTx(commitCtx, func(ctx context.Context) error {
		if err := s.uids.DeleteUIDRecord(ctx, record.ID); err != nil {
			return err
		}

		_, err := s.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionDeleteUID,
			Details: fmt.Sprintf("Deleted UID %s of user %d", record.Value, record.UserID),
		})
		return err
	})
	if err != nil {
		return s.persistenceFailure(ctx, "delete_uid", record.UserID, record.Value, err)
	}

	return nil
}

// ── status ──

// UpdateStatus is local bookkeeping only: neither the bypass service nor the
// balance is touched. A deleted record cannot leave that state, and a record
// only enters it through Delete, which removes the UID remotely first.
func (s *uidService) UpdateStatus(ctx context.Context, actor models.Actor, uidID int64, status models.UIDStatus) (models.UIDRecord, error) {
	if err := s.validator.Validate(ctx, models.UpdateUIDStatusRequest{Status: status}); err != nil {
		return models.UIDRecord{}, validationError(err)
	}

	unlock, err := s.locks.Lock(ctx, uidLockKey(uidID))
	if err != nil {
		return models.UIDRecord{}, err
	}
	defer unlock()

	record, err := s.authorizedRecord(ctx, actor, uidID)
	if err != nil {
		return models.UIDRecord{}, err
	}
	if record.Status == models.UIDStatusDeleted {
		return models.UIDRecord{}, ErrUIDDeleted
	}

	oldStatus := record.EffectiveStatus(s.now())
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated, err := s.uids.SetUIDStatus(ctx, record.ID, status)
		if err != nil {
			return err
		}
		record = updated

		_, err = s.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionUpdateUID,
			Details: fmt.Sprintf("Changed status of UID %s from %s to %s", record.Value, oldStatus, status),
		})
		return err
	})
	if err != nil {
		return models.UIDRecord{}, mapStoreError(err)
	}

	return record.WithEffectiveStatus(s.now()), nil
}

// ── renew ──

// Renew extends a UID of the key's scope by days. The bypass service is
// renewed first; locally the expiry moves by days*24h from its previous
// value, the duration grows by the same amount and an expired record becomes
// active again. Renewal is not charged.
func (s *uidService) Renew(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string, days int) (models.RenewResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, models.IntegrationRenewUIDRequest{UID: uidValue, Days: days}); err != nil {
		return models.RenewResult{}, validationError(err)
	}

	record, err := s.scopedRecord(ctx, scope, uidValue)
	if err != nil {
		return models.RenewResult{}, err
	}

	unlock, err := s.locks.Lock(ctx, uidLockKey(record.ID))
	if err != nil {
		return models.RenewResult{}, err
	}
	defer unlock()

	record, err = s.authorizedRecord(ctx, actor, record.ID)
	if err != nil {
		return models.RenewResult{}, err
	}
	if record.Value != uidValue {
		return models.RenewResult{}, ErrUIDNotFound
	}
	if record.Status == models.UIDStatusDeleted {
		return models.RenewResult{}, ErrUIDDeleted
	}

	client, err := s.client(ctx)
	if err != nil {
		return models.RenewResult{}, err
	}
	if _, err = client.RenewUID(ctx, record.Value, days); err != nil {
		log.Err(err).Str("func", "*uidService.Renew").Int64("uid_id", record.ID).Msg("external uid renewal failed")
		return models.RenewResult{}, fmt.Errorf("renewing uid %q: %w", record.Value, err)
	}

	hours := days * 24
	oldExpiresAt := record.ExpiresAt
	newExpiresAt := oldExpiresAt.Add(time.Duration(hours) * time.Hour)
	details := fmt.Sprintf("Renewed UID %s by %d days: expiry %s -> %s",
		record.Value, days, oldExpiresAt.UTC().Format(time.RFC3339), newExpiresAt.UTC().Format(time.RFC3339))

	commitCtx, cancel := commitContext(ctx)
	defer cancel()

	err = s.tx.RunInTx(commitCtx, func(ctx context.Context) error {
		updated, err := s.uids.ExtendUIDExpiry(ctx, record.ID, newExpiresAt, hours, models.UIDStatusActive)
		if err != nil {
			return err
		}
		record = updated

		_, err = s.activity.AppendActivity(ctx, models.ActivityEntry{
			UserID:  actor.ID,
			Action:  models.ActionRenewUID,
			Details: details,
		})
		return err
	})
	if err != nil {
		return models.RenewResult{}, s.persistenceFailure(ctx, "renew_uid", record.UserID, record.Value, err)
	}

	return models.RenewResult{
		UID:          record.WithEffectiveStatus(s.now()),
		OldExpiresAt: oldExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ── listing ──

func (s *uidService) ListForUser(ctx context.Context, actor models.Actor, userID int64) ([]models.UIDRecord, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, mapStoreError(err)
	}

	records, err := s.uids.ListUIDRecords(ctx, models.UIDFilter{UserID: userID})
	if err != nil {
		return nil, mapStoreError(err)
	}

	now := s.now()
	for i := range records {
		records[i] = records[i].WithEffectiveStatus(now)
	}

	return records, nil
}

// ListAll merges the ledger with the external listing. Entries are keyed by
// UID value and a local record always wins over an external one. When the
// external listing fails the local records are still returned and the
// failure is reported in ExternalError.
func (s *uidService) ListAll(ctx context.Context, actor models.Actor) (models.AllUIDsResponse, error) {
	if !actor.IsOwner() {
		return models.AllUIDsResponse{}, ErrForbidden
	}

	local, err := s.uids.ListUIDRecords(ctx, models.UIDFilter{})
	if err != nil {
		return models.AllUIDsResponse{}, mapStoreError(err)
	}

	now := s.now()
	seen := make(map[string]struct{}, len(local))
	listing := make([]models.UIDListing, 0, len(local))
	for _, r := range local {
		seen[r.Value] = struct{}{}
		listing = append(listing, models.UIDListing{UIDRecord: r.WithEffectiveStatus(now), Source: "local"})
	}

	external, err := s.listExternal(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*uidService.ListAll").Msg("external listing failed, showing local records only")
		return models.AllUIDsResponse{UIDs: listing, ExternalError: err.Error()}, nil
	}

	for _, e := range external {
		if _, ok := seen[e.UID]; ok {
			continue
		}
		seen[e.UID] = struct{}{}
		listing = append(listing, models.UIDListing{
			UIDRecord: models.UIDRecord{
				Value:     e.UID,
				Region:    e.Region,
				Status:    models.UIDStatus(e.Status),
				ExpiresAt: e.ExpiresAt,
			},
			Source: "external",
		})
	}

	return models.AllUIDsResponse{UIDs: listing}, nil
}

func (s *uidService) listExternal(ctx context.Context) ([]models.ExternalUIDRecord, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	var items []models.ExternalUIDRecord
	for page := 1; page <= max(s.listMaxPages, 1); page++ {
		res, err := client.ListUIDs(ctx, page, externalListPerPage, "")
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)

		if len(res.Items) < externalListPerPage || (res.Total > 0 && len(items) >= res.Total) {
			break
		}
	}

	return items, nil
}

// ListForAPIKey pages through the UIDs created with the key. status filters
// on the effective status, so an active record past its expiry is listed as
// expired.
func (s *uidService) ListForAPIKey(ctx context.Context, scope models.APIKeyScope, page, perPage int, status models.UIDStatus) (models.IntegrationUIDPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultAPIListPerPage
	}
	perPage = min(perPage, maxAPIListPerPage)
	if status != "" && !status.Valid() {
		return models.IntegrationUIDPage{}, validationError(validators.ErrInvalidStatus)
	}

	records, err := s.uids.ListUIDRecords(ctx, models.UIDFilter{APIKeyID: scope.KeyID})
	if err != nil {
		return models.IntegrationUIDPage{}, mapStoreError(err)
	}

	now := s.now()
	filtered := make([]models.UIDRecord, 0, len(records))
	for _, r := range records {
		r = r.WithEffectiveStatus(now)
		if status == "" || r.Status == status {
			filtered = append(filtered, r)
		}
	}

	result := models.IntegrationUIDPage{Items: []models.UIDRecord{}, Page: page, PerPage: perPage, Total: len(filtered)}
	if from := (page - 1) * perPage; from < len(filtered) {
		result.Items = filtered[from:min(from+perPage, len(filtered))]
	}

	return result, nil
}

// ── helpers ──

func (s *uidService) region(region string) string {
	if region == "" {
		return s.defaultRegion
	}
	return region
}

func (s *uidService) client(ctx context.Context) (adapter.BypassClient, error) {
	client, err := s.clients.NewClient(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrSettingsNotConfigured) {
			return nil, fmt.Errorf("%w: %w", ErrSettingsNotFound, err)
		}
		return nil, err
	}
	return client, nil
}

// authorizedRecord loads a record the actor may act on.
func (s *uidService) authorizedRecord(ctx context.Context, actor models.Actor, uidID int64) (models.UIDRecord, error) {
	record, err := s.uids.GetUIDRecord(ctx, uidID)
	if err != nil {
		return models.UIDRecord{}, mapStoreError(err)
	}
	if !actor.CanActFor(record.UserID) {
		return models.UIDRecord{}, ErrForbidden
	}
	return record, nil
}

// scopedRecord finds the live record holding value among the UIDs of the key.
func (s *uidService) scopedRecord(ctx context.Context, scope models.APIKeyScope, value string) (models.UIDRecord, error) {
	record, err := s.uids.FindActiveUIDByValue(ctx, value)
	if err != nil {
		return models.UIDRecord{}, mapStoreError(err)
	}
	if record.APIKeyID == nil || *record.APIKeyID != scope.KeyID {
		return models.UIDRecord{}, ErrUIDNotFound
	}
	return record, nil
}

// ensureValueFree fails when a live record other than exceptID holds value.
func (s *uidService) ensureValueFree(ctx context.Context, value string, exceptID int64) error {
	holder, err := s.uids.FindActiveUIDByValue(ctx, value)
	switch {
	case errors.Is(err, store.ErrUIDNotFound):
		return nil
	case err != nil:
		return mapStoreError(err)
	case holder.ID != exceptID:
		return ErrUIDAlreadyExists
	}
	return nil
}

// persistenceFailure logs a ledger write that failed after the bypass
// service already applied op and returns the matching ErrPersistence.
func (s *uidService) persistenceFailure(ctx context.Context, op string, userID int64, uid string, err error) error {
	logger.FromContext(ctx).ReconciliationRequired(op).
		Err(err).
		Int64("user_id", userID).
		Str("uid", uid).
		Msg("ledger write failed after external success")

	return fmt.Errorf("%w: %s %q: %w", ErrPersistence, op, uid, err)
}

