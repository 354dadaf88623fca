package models

import "time"

// Schedule states for a maintenance unit. Awaiting and invalid are sentinel
// results, not errors; they must stay distinguishable when counting.
const (
	ScheduleStateScheduled = "scheduled"
	ScheduleStateAwaiting  = "awaiting_scheduling"
	ScheduleStateInvalid   = "invalid_date"
)

// MaintenanceUnit is an air-conditioning unit tracked by the maintenance
// sub-domain. LastService holds the date exactly as entered (dd/mm/yyyy);
// parsing happens in the scheduler so bad entries surface as a state
// instead of being lost.
type MaintenanceUnit struct {
	ID          int64     `json:"id" db:"id"`
	Tag         string    `json:"tag" db:"tag" binding:"required"`
	Site        string    `json:"site" db:"site" binding:"required"`
	Brand       *string   `json:"brand,omitempty" db:"brand"`
	Model       *string   `json:"model,omitempty" db:"model"`
	CapacityBTU *int      `json:"capacity_btu,omitempty" db:"capacity_btu"`
	LastService *string   `json:"last_service,omitempty" db:"last_service"`
	Technician  *string   `json:"technician,omitempty" db:"technician"`
	Supervisor  *string   `json:"supervisor,omitempty" db:"supervisor"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MaintenanceSchedule is the derived schedule for one unit. NextDue is only
// set when State is scheduled; NextDueText carries the dd/mm/yyyy rendering.
type MaintenanceSchedule struct {
	UnitID      int64      `json:"unit_id"`
	Tag         string     `json:"tag"`
	Site        string     `json:"site"`
	State       string     `json:"state"`
	LastService *string    `json:"last_service,omitempty"`
	NextDue     *time.Time `json:"-"`
	NextDueText string     `json:"next_due,omitempty"`
	Overdue     bool       `json:"overdue"`
}

// MaintenanceOverview is the schedule for every unit plus per-state counts.
type MaintenanceOverview struct {
	Schedules     []MaintenanceSchedule `json:"schedules"`
	TotalUnits    int                   `json:"total_units"`
	ScheduledCnt  int                   `json:"scheduled_count"`
	AwaitingCnt   int                   `json:"awaiting_count"`
	InvalidCnt    int                   `json:"invalid_count"`
	OverdueCnt    int                   `json:"overdue_count"`
}

// MaintenanceFilters defines the available filters for querying units.
type MaintenanceFilters struct {
	Site     *string `form:"site"`
	Brand    *string `form:"brand"`
	Search   *string `form:"search"` // matches tag or model
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
