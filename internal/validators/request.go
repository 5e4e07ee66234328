package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-uid-panel/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID       = "user_id"
	FieldUIDValue     = "uid_value"
	FieldDuration     = "duration"
	FieldRegion       = "region"
	FieldStatus       = "status"
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldCredits      = "credits"
	FieldAmount       = "amount"
	FieldOperation    = "operation"
	FieldDaysOld      = "days_old"
	FieldBaseURL      = "base_url"
	FieldAPIKey       = "api_key"
	FieldName         = "name"
	FieldMaxUIDs      = "max_uids"
	FieldAllowedPlans = "allowed_plans"
	FieldPlanID       = "plan_id"
	FieldDays         = "days"
	FieldCredentials  = "credentials"
)

// RequestValidator implements [Validator] for the request bodies accepted by
// the dashboard and integration APIs. Both value and pointer forms of every
// request are accepted.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. When fields is empty the
// default field set of that request is checked. The first failing rule is
// returned.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateUIDRequest:
		return v.check(fields, []string{FieldUserID, FieldUIDValue, FieldDuration, FieldRegion}, func(f string) error {
			return createUIDRule(value, f)
		})
	case *models.CreateUIDRequest:
		return v.Validate(ctx, *value, fields...)

	case models.UpdateUIDValueRequest:
		return v.check(fields, []string{FieldUIDValue}, func(f string) error {
			if f != FieldUIDValue {
				return ErrUnknownField
			}
			return UIDValue(value.NewUIDValue)
		})
	case *models.UpdateUIDValueRequest:
		return v.Validate(ctx, *value, fields...)

	case models.UpdateUIDStatusRequest:
		return v.check(fields, []string{FieldStatus}, func(f string) error {
			if f != FieldStatus {
				return ErrUnknownField
			}
			if !value.Status.Valid() {
				return ErrInvalidStatus
			}
			if value.Status == models.UIDStatusDeleted {
				return ErrDeleteViaStatus
			}
			return nil
		})
	case *models.UpdateUIDStatusRequest:
		return v.Validate(ctx, *value, fields...)

	case models.LoginRequest:
		return v.check(fields, []string{FieldCredentials}, func(f string) error {
			if f != FieldCredentials {
				return ErrUnknownField
			}
			if value.Username == "" || value.Password == "" {
				return ErrEmptyCredentials
			}
			return nil
		})
	case *models.LoginRequest:
		return v.Validate(ctx, *value, fields...)

	case models.CreateUserRequest:
		return v.check(fields, []string{FieldUsername, FieldPassword, FieldCredits}, func(f string) error {
			return createUserRule(value, f)
		})
	case *models.CreateUserRequest:
		return v.Validate(ctx, *value, fields...)

	case models.AdjustCreditsRequest:
		return v.check(fields, []string{FieldAmount, FieldOperation}, func(f string) error {
			switch f {
			case FieldAmount:
				return Amount(value.Amount)
			case FieldOperation:
				if value.Operation != models.CreditOperationAdd && value.Operation != models.CreditOperationDeduct {
					return ErrInvalidOperation
				}
				return nil
			}
			return ErrUnknownField
		})
	case *models.AdjustCreditsRequest:
		return v.Validate(ctx, *value, fields...)

	case models.CleanupActivityRequest:
		return v.check(fields, []string{FieldDaysOld}, func(f string) error {
			if f != FieldDaysOld {
				return ErrUnknownField
			}
			if value.DaysOld < 1 {
				return ErrInvalidDaysOld
			}
			return nil
		})
	case *models.CleanupActivityRequest:
		return v.Validate(ctx, *value, fields...)

	case models.SaveSettingsRequest:
		return v.check(fields, []string{FieldBaseURL, FieldAPIKey}, func(f string) error {
			switch f {
			case FieldBaseURL:
				return BaseURL(value.BaseURL)
			case FieldAPIKey:
				if value.APIKey == "" {
					return ErrEmptyAPIKey
				}
				return nil
			}
			return ErrUnknownField
		})
	case *models.SaveSettingsRequest:
		return v.Validate(ctx, *value, fields...)

	case models.CreateAPIKeyRequest:
		return v.check(fields, []string{FieldUserID, FieldName, FieldMaxUIDs, FieldAllowedPlans}, func(f string) error {
			return createAPIKeyRule(value, f)
		})
	case *models.CreateAPIKeyRequest:
		return v.Validate(ctx, *value, fields...)

	case models.IntegrationAddUIDRequest:
		return v.check(fields, []string{FieldUIDValue, FieldPlanID, FieldRegion}, func(f string) error {
			switch f {
			case FieldUIDValue:
				return UIDValue(value.UID)
			case FieldPlanID:
				if value.PlanID == "" {
					return ErrEmptyPlanID
				}
				return nil
			case FieldRegion:
				return Region(value.Region)
			}
			return ErrUnknownField
		})
	case *models.IntegrationAddUIDRequest:
		return v.Validate(ctx, *value, fields...)

	case models.IntegrationRemoveUIDRequest:
		return v.check(fields, []string{FieldUIDValue}, func(f string) error {
			if f != FieldUIDValue {
				return ErrUnknownField
			}
			return UIDValue(value.UID)
		})
	case *models.IntegrationRemoveUIDRequest:
		return v.Validate(ctx, *value, fields...)

	case models.IntegrationRenewUIDRequest:
		return v.check(fields, []string{FieldUIDValue, FieldDays}, func(f string) error {
			switch f {
			case FieldUIDValue:
				return UIDValue(value.UID)
			case FieldDays:
				return RenewDays(value.Days)
			}
			return ErrUnknownField
		})
	case *models.IntegrationRenewUIDRequest:
		return v.Validate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// check runs rule for every requested field, falling back to defaults.
func (v *RequestValidator) check(fields, defaults []string, rule func(field string) error) error {
	if len(fields) == 0 {
		fields = defaults
	}

	for _, f := range fields {
		if err := rule(f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	return nil
}

func createUIDRule(req models.CreateUIDRequest, field string) error {
	switch field {
	case FieldUserID:
		if req.UserID <= 0 {
			return ErrInvalidUserID
		}
	case FieldUIDValue:
		return UIDValue(req.UIDValue)
	case FieldDuration:
		if req.Duration <= 0 {
			return ErrInvalidDuration
		}
	case FieldRegion:
		return Region(req.Region)
	default:
		return ErrUnknownField
	}
	return nil
}

func createUserRule(req models.CreateUserRequest, field string) error {
	switch field {
	case FieldUsername:
		return Username(req.Username)
	case FieldPassword:
		return Password(req.Password)
	case FieldCredits:
		if req.Credits.IsNegative() || !req.Credits.Equal(req.Credits.Round(2)) {
			return ErrNegativeCredits
		}
	default:
		return ErrUnknownField
	}
	return nil
}

func createAPIKeyRule(req models.CreateAPIKeyRequest, field string) error {
	switch field {
	case FieldUserID:
		if req.UserID <= 0 {
			return ErrInvalidUserID
		}
	case FieldName:
		if req.Name == "" {
			return ErrEmptyName
		}
	case FieldMaxUIDs:
		if req.MaxUIDs != nil && *req.MaxUIDs < 0 {
			return ErrInvalidMaxUIDs
		}
	case FieldAllowedPlans:
		for _, plan := range req.AllowedPlans {
			if plan == "" {
				return ErrEmptyPlanID
			}
		}
	default:
		return ErrUnknownField
	}
	return nil
}
