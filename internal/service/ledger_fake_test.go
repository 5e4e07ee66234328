package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/store"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/shopspring/decimal"
)

// ─────────────────────────────────────────────
// In-memory ledger implementing every store interface
// ─────────────────────────────────────────────

type fakeTxKey struct{}

// fakeLedger keeps the ledger in maps. RunInTx snapshots the state and
// restores it when fn fails, so rollback behaves like the real store.
// fail injects an error into the named method.
type fakeLedger struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users    map[int64]models.User
	uids     map[int64]models.UIDRecord
	activity []models.ActivityEntry
	settings *models.ExternalAPISettings
	keys     map[int64]models.APIKey
	nextID   int64

	archived   [][]models.ActivityEntry
	archiveErr error

	fail map[string]error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		users:  make(map[int64]models.User),
		uids:   make(map[int64]models.UIDRecord),
		keys:   make(map[int64]models.APIKey),
		nextID: 100,
		fail:   make(map[string]error),
	}
}

func (l *fakeLedger) storages() *store.Storages {
	return &store.Storages{
		Transactor:         l,
		UserRepository:     l,
		UIDRepository:      l,
		ActivityRepository: l,
		SettingsRepository: l,
		APIKeyRepository:   l,
		ActivityArchive:    l,
	}
}

// ── seeding and inspection ──

func (l *fakeLedger) addUser(id int64, credits string, owner bool) models.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	u := models.User{
		ID:        id,
		Username:  "user" + strconv.FormatInt(id, 10),
		Credits:   decimal.RequireFromString(credits),
		IsOwner:   owner,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	l.users[id] = u
	return u
}

func (l *fakeLedger) addUID(r models.UIDRecord) models.UIDRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r.ID == 0 {
		l.nextID++
		r.ID = l.nextID
	}
	l.uids[r.ID] = r
	return r
}

func (l *fakeLedger) balance(id int64) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.users[id].Credits
}

func (l *fakeLedger) uid(id int64) (models.UIDRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.uids[id]
	return r, ok
}

func (l *fakeLedger) uidCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.uids)
}

func (l *fakeLedger) entries() []models.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.activity)
}

func (l *fakeLedger) failure(method string) error {
	return l.fail[method]
}

// ── store.Transactor ──

func (l *fakeLedger) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	// database/sql does not begin a transaction on a finished context
	if err := ctx.Err(); err != nil {
		return err
	}

	l.txMu.Lock()
	defer l.txMu.Unlock()

	l.mu.Lock()
	users, uids, keys := maps.Clone(l.users), maps.Clone(l.uids), maps.Clone(l.keys)
	activity, nextID := slices.Clone(l.activity), l.nextID
	l.mu.Unlock()

	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		l.mu.Lock()
		l.users, l.uids, l.keys, l.activity, l.nextID = users, uids, keys, activity, nextID
		l.mu.Unlock()
		return err
	}
	return nil
}

// ── store.UserRepository ──

func (l *fakeLedger) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("CreateUser"); err != nil {
		return models.User{}, err
	}

	for _, u := range l.users {
		if u.Username == user.Username {
			return models.User{}, store.ErrUsernameTaken
		}
	}
	l.nextID++
	user.ID = l.nextID
	user.CreatedAt = time.Now()
	l.users[user.ID] = user
	return user, nil
}

func (l *fakeLedger) GetUser(ctx context.Context, id int64) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetUser"); err != nil {
		return models.User{}, err
	}

	u, ok := l.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (l *fakeLedger) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, u := range l.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (l *fakeLedger) ListUsers(ctx context.Context) ([]models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := slices.Collect(maps.Values(l.users))
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (l *fakeLedger) AdjustUserCredits(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("AdjustUserCredits"); err != nil {
		return decimal.Decimal{}, err
	}

	u, ok := l.users[userID]
	if !ok {
		return decimal.Decimal{}, store.ErrUserNotFound
	}
	next := u.Credits.Add(delta)
	if next.IsNegative() {
		return decimal.Decimal{}, store.ErrInsufficientCredits
	}
	u.Credits = next
	l.users[userID] = u
	return next, nil
}

func (l *fakeLedger) SetUserActive(ctx context.Context, userID int64, active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.IsActive = active
	l.users[userID] = u
	return nil
}

func (l *fakeLedger) DeleteUser(ctx context.Context, userID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[userID]; !ok {
		return store.ErrUserNotFound
	}
	delete(l.users, userID)
	maps.DeleteFunc(l.uids, func(_ int64, r models.UIDRecord) bool { return r.UserID == userID })
	maps.DeleteFunc(l.keys, func(_ int64, k models.APIKey) bool { return k.UserID == userID })
	l.activity = slices.DeleteFunc(l.activity, func(e models.ActivityEntry) bool { return e.UserID == userID })
	return nil
}

// ── store.UIDRepository ──

func (l *fakeLedger) CreateUIDRecord(ctx context.Context, record models.UIDRecord) (models.UIDRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("CreateUIDRecord"); err != nil {
		return models.UIDRecord{}, err
	}

	if _, ok := l.users[record.UserID]; !ok {
		return models.UIDRecord{}, store.ErrUserNotFound
	}
	for _, r := range l.uids {
		if r.Value == record.Value && r.Status != models.UIDStatusDeleted {
			return models.UIDRecord{}, store.ErrUIDValueTaken
		}
	}
	l.nextID++
	record.ID = l.nextID
	l.uids[record.ID] = record
	return record, nil
}

func (l *fakeLedger) GetUIDRecord(ctx context.Context, id int64) (models.UIDRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.uids[id]
	if !ok {
		return models.UIDRecord{}, store.ErrUIDNotFound
	}
	return r, nil
}

func (l *fakeLedger) FindActiveUIDByValue(ctx context.Context, value string) (models.UIDRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.uids {
		if r.Value == value && r.Status != models.UIDStatusDeleted {
			return r, nil
		}
	}
	return models.UIDRecord{}, store.ErrUIDNotFound
}

func (l *fakeLedger) ListUIDRecords(ctx context.Context, filter models.UIDFilter) ([]models.UIDRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("ListUIDRecords"); err != nil {
		return nil, err
	}

	var out []models.UIDRecord
	for _, r := range l.uids {
		if filter.UserID != 0 && r.UserID != filter.UserID {
			continue
		}
		if filter.APIKeyID != 0 && (r.APIKeyID == nil || *r.APIKeyID != filter.APIKeyID) {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (l *fakeLedger) CountUIDRecordsByAPIKey(ctx context.Context, apiKeyID int64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, r := range l.uids {
		if r.APIKeyID != nil && *r.APIKeyID == apiKeyID && r.Status != models.UIDStatusDeleted {
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) SetUIDStatus(ctx context.Context, id int64, status models.UIDStatus) (models.UIDRecord, error) {
	return l.updateUID("SetUIDStatus", id, func(r *models.UIDRecord) { r.Status = status })
}

func (l *fakeLedger) SetUIDValue(ctx context.Context, id int64, value string) (models.UIDRecord, error) {
	return l.updateUID("SetUIDValue", id, func(r *models.UIDRecord) { r.Value = value })
}

func (l *fakeLedger) ExtendUIDExpiry(ctx context.Context, id int64, expiresAt time.Time, hours int, status models.UIDStatus) (models.UIDRecord, error) {
	return l.updateUID("ExtendUIDExpiry", id, func(r *models.UIDRecord) {
		r.ExpiresAt = expiresAt
		r.Duration += hours
		r.Status = status
	})
}

func (l *fakeLedger) updateUID(method string, id int64, apply func(r *models.UIDRecord)) (models.UIDRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure(method); err != nil {
		return models.UIDRecord{}, err
	}

	r, ok := l.uids[id]
	if !ok {
		return models.UIDRecord{}, store.ErrUIDNotFound
	}
	apply(&r)
	l.uids[id] = r
	return r, nil
}

func (l *fakeLedger) DeleteUIDRecord(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("DeleteUIDRecord"); err != nil {
		return err
	}

	if _, ok := l.uids[id]; !ok {
		return store.ErrUIDNotFound
	}
	delete(l.uids, id)
	return nil
}

// ── store.ActivityRepository ──

func (l *fakeLedger) AppendActivity(ctx context.Context, entry models.ActivityEntry) (models.ActivityEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("AppendActivity"); err != nil {
		return models.ActivityEntry{}, err
	}

	l.nextID++
	entry.ID = l.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	l.activity = append(l.activity, entry)
	return entry, nil
}

func (l *fakeLedger) ListActivity(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.ActivityEntry
	for i := len(l.activity) - 1; i >= 0; i-- {
		e := l.activity[i]
		if filter.UserID != 0 && e.UserID != filter.UserID {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && uint64(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (l *fakeLedger) ActivityOlderThan(ctx context.Context, cutoff time.Time) ([]models.ActivityEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.ActivityEntry
	for _, e := range l.activity {
		if e.CreatedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *fakeLedger) PurgeActivityOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.activity)
	l.activity = slices.DeleteFunc(l.activity, func(e models.ActivityEntry) bool { return e.CreatedAt.Before(cutoff) })
	return int64(before - len(l.activity)), nil
}

// ── store.SettingsRepository ──

func (l *fakeLedger) GetSettings(ctx context.Context) (models.ExternalAPISettings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.settings == nil {
		return models.ExternalAPISettings{}, store.ErrSettingsNotFound
	}
	return *l.settings, nil
}

func (l *fakeLedger) SaveSettings(ctx context.Context, settings models.ExternalAPISettings) (models.ExternalAPISettings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings.UpdatedAt = time.Now()
	l.settings = &settings
	return settings, nil
}

// ── store.APIKeyRepository ──

func (l *fakeLedger) CreateAPIKey(ctx context.Context, key models.APIKey) (models.APIKey, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[key.UserID]; !ok {
		return models.APIKey{}, store.ErrUserNotFound
	}
	l.nextID++
	key.ID = l.nextID
	key.CreatedAt = time.Now()
	l.keys[key.ID] = key
	return key, nil
}

func (l *fakeLedger) FindAPIKeyByHash(ctx context.Context, hash string) (models.APIKey, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, k := range l.keys {
		if k.KeyHash == hash {
			return k, nil
		}
	}
	return models.APIKey{}, store.ErrAPIKeyNotFound
}

func (l *fakeLedger) ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.APIKey
	for _, k := range l.keys {
		if userID == 0 || k.UserID == userID {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *fakeLedger) DeleteAPIKey(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.keys[id]; !ok {
		return store.ErrAPIKeyNotFound
	}
	delete(l.keys, id)
	return nil
}

func (l *fakeLedger) TouchAPIKey(ctx context.Context, id int64, usedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.keys[id]
	if !ok {
		return store.ErrAPIKeyNotFound
	}
	k.LastUsedAt = &usedAt
	l.keys[id] = k
	return nil
}

// ── store.ActivityArchive ──

func (l *fakeLedger) Archive(ctx context.Context, entries []models.ActivityEntry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.archiveErr != nil {
		return "", l.archiveErr
	}
	if len(entries) == 0 {
		return "", nil
	}
	l.archived = append(l.archived, slices.Clone(entries))
	return "activity/test.jsonl", nil
}
