package store

import (
	"time"

	"github.com/MKhiriev/go-uid-panel/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with PostgreSQL ($n) placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, password_hash, credits, is_owner, is_active, created_at`

	createUser = `INSERT INTO users (username, password_hash, credits, is_owner, is_active)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY id;`

	adjustUserCredits = `UPDATE users
    SET credits = credits + $2
    WHERE id = $1 AND credits + $2 >= 0
    RETURNING credits;`

	userExists = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`

	setUserActive = `UPDATE users SET is_active = $2 WHERE id = $1;`

	deleteUser = `DELETE FROM users WHERE id = $1;`
)

const (
	uidColumns = `id, user_id, api_key_id, uid_value, region, duration, cost, status, created_at, expires_at`

	createUIDRecord = `INSERT INTO uid_records (user_id, api_key_id, uid_value, region, duration, cost, status, expires_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + uidColumns + `;`

	getUIDRecord = `SELECT ` + uidColumns + `
    FROM uid_records
    WHERE id = $1;`

	findActiveUIDByValue = `SELECT ` + uidColumns + `
    FROM uid_records
    WHERE uid_value = $1 AND status <> 'deleted';`

	countUIDRecordsByAPIKey = `SELECT count(*)
    FROM uid_records
    WHERE api_key_id = $1 AND status <> 'deleted';`

	setUIDStatus = `UPDATE uid_records
    SET status = $2
    WHERE id = $1
    RETURNING ` + uidColumns + `;`

	setUIDValue = `UPDATE uid_records
    SET uid_value = $2
    WHERE id = $1
    RETURNING ` + uidColumns + `;`

	extendUIDExpiry = `UPDATE uid_records
    SET expires_at = $2, duration = duration + $3, status = $4
    WHERE id = $1
    RETURNING ` + uidColumns + `;`

	deleteUIDRecord = `DELETE FROM uid_records WHERE id = $1;`
)

const (
	activityColumns = `id, user_id, action, details, created_at`

	appendActivity = `INSERT INTO activity_log (user_id, action, details)
    VALUES ($1, $2, $3)
    RETURNING ` + activityColumns + `;`

	purgeActivityOlderThan = `DELETE FROM activity_log WHERE created_at < $1;`
)

const (
	getSettings = `SELECT base_url, api_key, updated_at
    FROM settings
    WHERE id = 1;`

	saveSettings = `INSERT INTO settings (id, base_url, api_key, updated_at)
    VALUES (1, $1, $2, now())
    ON CONFLICT (id) DO UPDATE
    SET base_url = EXCLUDED.base_url, api_key = EXCLUDED.api_key, updated_at = EXCLUDED.updated_at
    RETURNING base_url, api_key, updated_at;`
)

const (
	apiKeyColumns = `id, user_id, name, key_prefix, key_hash, max_uids, allowed_plans, is_active, created_at, last_used_at`

	createAPIKey = `INSERT INTO api_keys (user_id, name, key_prefix, key_hash, max_uids, allowed_plans, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + apiKeyColumns + `;`

	findAPIKeyByHash = `SELECT ` + apiKeyColumns + `
    FROM api_keys
    WHERE key_hash = $1;`

	deleteAPIKey = `DELETE FROM api_keys WHERE id = $1;`

	touchAPIKey = `UPDATE api_keys SET last_used_at = $2 WHERE id = $1;`
)

// buildListUIDRecordsQuery builds the UID listing query. Zero-valued filter
// fields are left out of the WHERE clause.
func buildListUIDRecordsQuery(filter models.UIDFilter) (string, []any, error) {
	query := psql.
		Select(uidColumns).
		From(models.UIDRecord{}.TableName()).
		OrderBy("created_at DESC", "id DESC")

	if filter.UserID != 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.APIKeyID != 0 {
		query = query.Where(sq.Eq{"api_key_id": filter.APIKeyID})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return query.ToSql()
}

// buildListActivityQuery returns the newest entries first, optionally for a
// single user.
func buildListActivityQuery(filter models.ActivityFilter) (string, []any, error) {
	query := psql.
		Select(activityColumns).
		From(models.ActivityEntry{}.TableName()).
		OrderBy("created_at DESC", "id DESC")

	if filter.UserID != 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}

func buildActivityOlderThanQuery(cutoff time.Time) (string, []any, error) {
	return psql.
		Select(activityColumns).
		From(models.ActivityEntry{}.TableName()).
		Where(sq.Lt{"created_at": cutoff}).
		OrderBy("created_at", "id").
		ToSql()
}

func buildListAPIKeysQuery(userID int64) (string, []any, error) {
	query := psql.
		Select(apiKeyColumns).
		From(models.APIKey{}.TableName()).
		OrderBy("id")

	if userID != 0 {
		query = query.Where(sq.Eq{"user_id": userID})
	}

	return query.ToSql()
}
