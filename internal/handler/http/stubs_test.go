package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service stubs
// ─────────────────────────────────────────────
//
// Each stub embeds its interface so that only the methods a test sets need
// to be implemented; calling any other method panics.

var (
	testOwner = models.Actor{ID: 1, Role: models.RoleOwner}
	testUser  = models.Actor{ID: 2, Role: models.RoleUser}
)

// sessionAuth accepts the cookie values "owner" and "user" and rejects
// anything else. Cookie "suspended" resolves to a suspended account.
type sessionAuth struct {
	service.AuthService
	login func(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
}

func (s *sessionAuth) ParseSession(_ context.Context, token string) (models.Token, error) {
	switch token {
	case "owner":
		return models.Token{UserID: testOwner.ID, SignedString: token}, nil
	case "user":
		return models.Token{UserID: testUser.ID, SignedString: token}, nil
	case "suspended":
		return models.Token{UserID: 9, SignedString: token}, nil
	}
	return models.Token{}, service.ErrInvalidSession
}

func (s *sessionAuth) ResolveActor(_ context.Context, token models.Token) (models.Actor, models.User, error) {
	switch token.UserID {
	case testOwner.ID:
		return testOwner, models.User{ID: testOwner.ID, IsOwner: true, IsActive: true}, nil
	case testUser.ID:
		return testUser, models.User{ID: testUser.ID, IsActive: true}, nil
	}
	return models.Actor{}, models.User{}, service.ErrUserSuspended
}

func (s *sessionAuth) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	return s.login(ctx, req)
}

type stubUIDService struct {
	service.UIDService
	create         func(ctx context.Context, actor models.Actor, req models.CreateUIDRequest) (models.CreateUIDResponse, error)
	createWithPlan func(ctx context.Context, actor models.Actor, scope models.APIKeyScope, req models.IntegrationAddUIDRequest) (models.CreateUIDResponse, error)
	updateValue    func(ctx context.Context, actor models.Actor, uidID int64, newValue string) (models.UIDRecord, error)
	updateStatus   func(ctx context.Context, actor models.Actor, uidID int64, status models.UIDStatus) (models.UIDRecord, error)
	delete         func(ctx context.Context, actor models.Actor, uidID int64) error
	deleteForKey   func(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string) error
	renew          func(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string, days int) (models.RenewResult, error)
	listForUser    func(ctx context.Context, actor models.Actor, userID int64) ([]models.UIDRecord, error)
	listAll        func(ctx context.Context, actor models.Actor) (models.AllUIDsResponse, error)
	listForKey     func(ctx context.Context, scope models.APIKeyScope, page, perPage int, status models.UIDStatus) (models.IntegrationUIDPage, error)
}

func (s *stubUIDService) Create(ctx context.Context, actor models.Actor, req models.CreateUIDRequest) (models.CreateUIDResponse, error) {
	return s.create(ctx, actor, req)
}

func (s *stubUIDService) CreateWithPlan(ctx context.Context, actor models.Actor, scope models.APIKeyScope, req models.IntegrationAddUIDRequest) (models.CreateUIDResponse, error) {
	return s.createWithPlan(ctx, actor, scope, req)
}

func (s *stubUIDService) UpdateValue(ctx context.Context, actor models.Actor, uidID int64, newValue string) (models.UIDRecord, error) {
	return s.updateValue(ctx, actor, uidID, newValue)
}

func (s *stubUIDService) UpdateStatus(ctx context.Context, actor models.Actor, uidID int64, status models.UIDStatus) (models.UIDRecord, error) {
	return s.updateStatus(ctx, actor, uidID, status)
}

func (s *stubUIDService) Delete(ctx context.Context, actor models.Actor, uidID int64) error {
	return s.delete(ctx, actor, uidID)
}

func (s *stubUIDService) DeleteForAPIKey(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string) error {
	return s.deleteForKey(ctx, actor, scope, uidValue)
}

func (s *stubUIDService) Renew(ctx context.Context, actor models.Actor, scope models.APIKeyScope, uidValue string, days int) (models.RenewResult, error) {
	return s.renew(ctx, actor, scope, uidValue, days)
}

func (s *stubUIDService) ListForUser(ctx context.Context, actor models.Actor, userID int64) ([]models.UIDRecord, error) {
	return s.listForUser(ctx, actor, userID)
}

func (s *stubUIDService) ListAll(ctx context.Context, actor models.Actor) (models.AllUIDsResponse, error) {
	return s.listAll(ctx, actor)
}

func (s *stubUIDService) ListForAPIKey(ctx context.Context, scope models.APIKeyScope, page, perPage int, status models.UIDStatus) (models.IntegrationUIDPage, error) {
	return s.listForKey(ctx, scope, page, perPage, status)
}

type stubUserService struct {
	service.UserService
	create        func(ctx context.Context, actor models.Actor, req models.CreateUserRequest) (models.User, error)
	list          func(ctx context.Context, actor models.Actor) ([]models.User, error)
	get           func(ctx context.Context, actor models.Actor, userID int64) (models.User, error)
	adjustCredits func(ctx context.Context, actor models.Actor, userID int64, req models.AdjustCreditsRequest) (models.User, error)
	setActive     func(ctx context.Context, actor models.Actor, userID int64, active bool) (models.User, error)
	delete        func(ctx context.Context, actor models.Actor, userID int64) error
}

func (s *stubUserService) Create(ctx context.Context, actor models.Actor, req models.CreateUserRequest) (models.User, error) {
	return s.create(ctx, actor, req)
}

func (s *stubUserService) List(ctx context.Context, actor models.Actor) ([]models.User, error) {
	return s.list(ctx, actor)
}

func (s *stubUserService) Get(ctx context.Context, actor models.Actor, userID int64) (models.User, error) {
	return s.get(ctx, actor, userID)
}

func (s *stubUserService) AdjustCredits(ctx context.Context, actor models.Actor, userID int64, req models.AdjustCreditsRequest) (models.User, error) {
	return s.adjustCredits(ctx, actor, userID, req)
}

func (s *stubUserService) SetActive(ctx context.Context, actor models.Actor, userID int64, active bool) (models.User, error) {
	return s.setActive(ctx, actor, userID, active)
}

func (s *stubUserService) Delete(ctx context.Context, actor models.Actor, userID int64) error {
	return s.delete(ctx, actor, userID)
}

type stubActivityService struct {
	service.ActivityService
	list    func(ctx context.Context, actor models.Actor, limit int) ([]models.ActivityEntry, error)
	cleanup func(ctx context.Context, actor models.Actor, daysOld int) (models.CleanupActivityResponse, error)
}

func (s *stubActivityService) List(ctx context.Context, actor models.Actor, limit int) ([]models.ActivityEntry, error) {
	return s.list(ctx, actor, limit)
}

func (s *stubActivityService) Cleanup(ctx context.Context, actor models.Actor, daysOld int) (models.CleanupActivityResponse, error) {
	return s.cleanup(ctx, actor, daysOld)
}

type stubSettingsService struct {
	service.SettingsService
	get  func(ctx context.Context, actor models.Actor) (models.ExternalAPISettings, error)
	save func(ctx context.Context, actor models.Actor, req models.SaveSettingsRequest) (models.ExternalAPISettings, error)
}

func (s *stubSettingsService) Get(ctx context.Context, actor models.Actor) (models.ExternalAPISettings, error) {
	return s.get(ctx, actor)
}

func (s *stubSettingsService) Save(ctx context.Context, actor models.Actor, req models.SaveSettingsRequest) (models.ExternalAPISettings, error) {
	return s.save(ctx, actor, req)
}

// stubAPIKeyService authenticates the key "gup_valid" as testUser with
// key id 7 and rejects everything else.
type stubAPIKeyService struct {
	service.APIKeyService
	create func(ctx context.Context, actor models.Actor, req models.CreateAPIKeyRequest) (models.CreatedAPIKey, error)
	list   func(ctx context.Context, actor models.Actor) ([]models.APIKey, error)
	delete func(ctx context.Context, actor models.Actor, keyID int64) error
}

var testScope = models.APIKeyScope{KeyID: 7, UserID: testUser.ID}

func (s *stubAPIKeyService) Authenticate(_ context.Context, plaintext string) (models.APIKeyScope, models.Actor, error) {
	if plaintext != "gup_valid" {
		return models.APIKeyScope{}, models.Actor{}, service.ErrInvalidAPIKey
	}
	return testScope, testUser, nil
}

func (s *stubAPIKeyService) Create(ctx context.Context, actor models.Actor, req models.CreateAPIKeyRequest) (models.CreatedAPIKey, error) {
	return s.create(ctx, actor, req)
}

func (s *stubAPIKeyService) List(ctx context.Context, actor models.Actor) ([]models.APIKey, error) {
	return s.list(ctx, actor)
}

func (s *stubAPIKeyService) Delete(ctx context.Context, actor models.Actor, keyID int64) error {
	return s.delete(ctx, actor, keyID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testConfig = config.StructuredConfig{
	App:    config.App{SessionDuration: time.Hour},
	Server: config.Server{SecureCookies: true},
}

var testBuildInfo = models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc123")

// newTestHandler fills every unset service with an empty stub so that the
// session and API key middlewares always work.
func newTestHandler(svcs *service.Services) *Handler {
	if svcs.AuthService == nil {
		svcs.AuthService = &sessionAuth{}
	}
	if svcs.APIKeyService == nil {
		svcs.APIKeyService = &stubAPIKeyService{}
	}
	if svcs.UIDService == nil {
		svcs.UIDService = &stubUIDService{}
	}
	if svcs.UserService == nil {
		svcs.UserService = &stubUserService{}
	}
	if svcs.ActivityService == nil {
		svcs.ActivityService = &stubActivityService{}
	}
	if svcs.SettingsService == nil {
		svcs.SettingsService = &stubSettingsService{}
	}
	return NewHandler(svcs, testConfig, testBuildInfo, logger.Nop())
}

// serve runs one request through the full router. session is the cookie
// value ("owner", "user", ...) or empty for none.
func serve(t *testing.T, h *Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// serveAPI runs one integration request with the given X-API-Key.
func serveAPI(t *testing.T, h *Handler, method, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if apiKey != "" {
		req.Header.Set(apiKeyHeader, apiKey)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
