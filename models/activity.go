package models

import "time"

// ActivityAction is the enumerated tag of an audit entry.
type ActivityAction string

const (
	ActionLogin           ActivityAction = "login"
	ActionCreateUID       ActivityAction = "create_uid"
	ActionUpdateUID       ActivityAction = "update_uid"
	ActionUpdateUIDValue  ActivityAction = "update_uid_value"
	ActionDeleteUID       ActivityAction = "delete_uid"
	ActionCreditAdd       ActivityAction = "credit_add"
	ActionCreditDeduct    ActivityAction = "credit_deduct"
	ActionUserCreated     ActivityAction = "user_created"
	ActionRenewUID        ActivityAction = "renew_uid"
	ActionActivityCleanup ActivityAction = "activity_cleanup"
)

// ActivityEntry is an immutable audit record.
type ActivityEntry struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Action    ActivityAction `json:"action"`
	Details   string         `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the ActivityEntry model.
func (a ActivityEntry) TableName() string {
	return "activity_log"
}

// ActivityFilter narrows activity listings. UserID zero means every user.
type ActivityFilter struct {
	UserID int64
	Limit  uint64
}
