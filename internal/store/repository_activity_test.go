package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activityRowColumns = []string{"id", "user_id", "action", "details", "created_at"}

func newTestActivityRepo(t *testing.T) (*activityRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &activityRepository{db: db, logger: db.logger}, mock
}

func TestAppendActivity_Success(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectQuery("INSERT INTO activity_log").
		WithArgs(int64(1), "create_uid", "Created UID ABC123").
		WillReturnRows(sqlmock.NewRows(activityRowColumns).AddRow(1, 1, "create_uid", "Created UID ABC123", time.Now()))

	entry, err := repo.AppendActivity(context.Background(), models.ActivityEntry{
		UserID:  1,
		Action:  models.ActionCreateUID,
		Details: "Created UID ABC123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionCreateUID, entry.Action)
	assert.Equal(t, int64(1), entry.ID)
}

func TestAppendActivity_UnknownUser(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectQuery("INSERT INTO activity_log").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.AppendActivity(context.Background(), models.ActivityEntry{UserID: 99, Action: models.ActionLogin})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListActivity_ForUserWithLimit(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM activity_log WHERE user_id = \\$1 ORDER BY created_at DESC, id DESC LIMIT 50").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(activityRowColumns).
			AddRow(2, 3, "delete_uid", "", time.Now()).
			AddRow(1, 3, "login", "", time.Now().Add(-time.Minute)))

	entries, err := repo.ListActivity(context.Background(), models.ActivityFilter{UserID: 3, Limit: 50})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionDeleteUID, entries[0].Action)
}

// TestActivityOlderThanAndPurge_ShareCutoff verifies that the archive read
// and the purge use the same strict "created_at < cutoff" bound.
func TestActivityOlderThanAndPurge_ShareCutoff(t *testing.T) {
	repo, mock := newTestActivityRepo(t)
	cutoff := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM activity_log WHERE created_at < \\$1").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows(activityRowColumns).AddRow(1, 1, "login", "", cutoff.Add(-time.Hour)))
	mock.ExpectExec("DELETE FROM activity_log WHERE created_at < \\$1").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entries, err := repo.ActivityOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	deleted, err := repo.PurgeActivityOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
