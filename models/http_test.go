package models

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snakeCaseKey = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// TestRequestBodies_SnakeCaseKeys verifies that every request body uses the
// same key casing as the responses.
func TestRequestBodies_SnakeCaseKeys(t *testing.T) {
	bodies := []any{
		LoginRequest{},
		CreateUserRequest{},
		AdjustCreditsRequest{},
		SetUserActiveRequest{},
		CreateUIDRequest{},
		UpdateUIDStatusRequest{},
		UpdateUIDValueRequest{},
		CleanupActivityRequest{},
		SaveSettingsRequest{},
		CreateAPIKeyRequest{},
		IntegrationAddUIDRequest{},
		IntegrationRemoveUIDRequest{},
		IntegrationRenewUIDRequest{},
	}

	for _, body := range bodies {
		typ := reflect.TypeOf(body)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			key, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if key == "-" {
				continue
			}
			assert.Regexp(t, snakeCaseKey, key, "%s.%s", typ.Name(), field.Name)
		}
	}
}

func TestCreateUIDRequest_Decode(t *testing.T) {
	var req CreateUIDRequest
	err := json.Unmarshal([]byte(`{"user_id":2,"uid_value":"ABC123","duration":72,"region":"eu"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, CreateUIDRequest{UserID: 2, UIDValue: "ABC123", Duration: 72, Region: "eu"}, req)
}
