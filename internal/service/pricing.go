package service

import (
	"slices"

	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/shopspring/decimal"
)

// plans is the fixed tier table. Prices are never taken from a request.
var plans = []models.Plan{
	{ID: "1d", Duration: 24, Price: decimal.RequireFromString("0.50")},
	{ID: "3d", Duration: 72, Price: decimal.RequireFromString("1.30")},
	{ID: "7d", Duration: 168, Price: decimal.RequireFromString("2.33")},
	{ID: "14d", Duration: 336, Price: decimal.RequireFromString("4.20")},
	{ID: "30d", Duration: 720, Price: decimal.RequireFromString("8.00")},
}

// freePlan is only reachable by plan id, never by duration.
var freePlan = models.Plan{ID: models.PlanFree, Duration: 24, Price: decimal.Zero, Free: true}

// Plans returns the purchasable tiers ordered by duration.
func Plans() []models.Plan {
	return slices.Clone(plans)
}

// PlanByDuration looks up the purchasable tier with exactly hours duration.
func PlanByDuration(hours int) (models.Plan, error) {
	for _, p := range plans {
		if p.Duration == hours {
			return p, nil
		}
	}
	return models.Plan{}, ErrInvalidDuration
}

// PlanByID looks up a tier, including the free plan, by its identifier.
func PlanByID(id string) (models.Plan, error) {
	if id == models.PlanFree {
		return freePlan, nil
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Plan{}, ErrInvalidPlan
}
