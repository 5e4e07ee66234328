package models

// Actor is the resolved caller of a request. It is produced once per request
// by the authorization middleware and passed explicitly to every service
// call instead of being read from ambient session state.
type Actor struct {
	ID   int64
	Role Role
}

// IsOwner reports whether the actor holds the owner role.
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// CanActFor reports whether the actor may read or mutate resources that
// belong to userID.
func (a Actor) CanActFor(userID int64) bool {
	return a.IsOwner() || a.ID == userID
}

// APIKeyScope describes the limits of an integration API key. UIDs created
// through a key are tagged with KeyID and only those UIDs are visible to it.
type APIKeyScope struct {
	KeyID  int64
	UserID int64

	// MaxUIDs caps the number of non-deleted UIDs the key may hold.
	// nil means unlimited.
	MaxUIDs *int

	// AllowedPlans is a plan ID whitelist. Empty means every plan.
	AllowedPlans []string
}

// AllowsPlan reports whether planID passes the key's whitelist.
func (s APIKeyScope) AllowsPlan(planID string) bool {
	if len(s.AllowedPlans) == 0 {
		return true
	}
	for _, p := range s.AllowedPlans {
		if p == planID {
			return true
		}
	}
	return false
}
