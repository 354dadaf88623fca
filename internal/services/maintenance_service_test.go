package services

import (
	"testing"
	"time"

	"estoque_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func testUnit(id int64, tag string, lastService *string) models.MaintenanceUnit {
	return models.MaintenanceUnit{ID: id, Tag: tag, Site: "Matriz", LastService: lastService}
}

func TestScheduleMaintenance(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastService *string
		interval    int
		wantState   string
		wantNextDue string
		wantOverdue bool
	}{
		{
			name:        "180 days after january first",
			lastService: strPtr("01/01/2025"),
			interval:    180,
			wantState:   models.ScheduleStateScheduled,
			wantNextDue: "30/06/2025",
			wantOverdue: false,
		},
		{
			name:        "already past due",
			lastService: strPtr("01/06/2024"),
			interval:    180,
			wantState:   models.ScheduleStateScheduled,
			wantNextDue: "28/11/2024",
			wantOverdue: true,
		},
		{
			name:        "due exactly today is not overdue",
			lastService: strPtr("16/09/2024"),
			interval:    180,
			wantState:   models.ScheduleStateScheduled,
			wantNextDue: "15/03/2025",
			wantOverdue: false,
		},
		{
			name:        "no last service awaits scheduling",
			lastService: nil,
			interval:    180,
			wantState:   models.ScheduleStateAwaiting,
		},
		{
			name:        "blank last service awaits scheduling",
			lastService: strPtr("   "),
			interval:    180,
			wantState:   models.ScheduleStateAwaiting,
		},
		{
			name:        "unparseable date is invalid, not awaiting",
			lastService: strPtr("sem registro"),
			interval:    180,
			wantState:   models.ScheduleStateInvalid,
		},
		{
			name:        "iso format is not accepted",
			lastService: strPtr("2025-01-01"),
			interval:    180,
			wantState:   models.ScheduleStateInvalid,
		},
		{
			name:        "custom interval",
			lastService: strPtr("01/01/2025"),
			interval:    90,
			wantState:   models.ScheduleStateScheduled,
			wantNextDue: "01/04/2025",
			wantOverdue: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := ScheduleMaintenance(testUnit(1, "AC-01", tt.lastService), now, tt.interval)

			assert.Equal(t, tt.wantState, schedule.State)
			assert.Equal(t, tt.wantOverdue, schedule.Overdue)
			if tt.wantState == models.ScheduleStateScheduled {
				require.NotNil(t, schedule.NextDue)
				assert.Equal(t, tt.wantNextDue, schedule.NextDueText)
			} else {
				assert.Nil(t, schedule.NextDue)
				assert.Empty(t, schedule.NextDueText)
				assert.False(t, schedule.Overdue, "sentinel states are never overdue")
			}
		})
	}
}

func TestBuildMaintenanceOverview(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	units := []models.MaintenanceUnit{
		testUnit(1, "AC-01", strPtr("01/01/2025")), // scheduled
		testUnit(2, "AC-02", strPtr("01/06/2024")), // scheduled, overdue
		testUnit(3, "AC-03", nil),                  // awaiting
		testUnit(4, "AC-04", strPtr("n/a")),        // invalid
	}

	overview := BuildMaintenanceOverview(units, now, 180)

	assert.Equal(t, 4, overview.TotalUnits)
	assert.Equal(t, 2, overview.ScheduledCnt)
	assert.Equal(t, 1, overview.AwaitingCnt)
	assert.Equal(t, 1, overview.InvalidCnt)
	assert.Equal(t, 1, overview.OverdueCnt)

	// Input order is preserved.
	require.Len(t, overview.Schedules, 4)
	for i, want := range []string{"AC-01", "AC-02", "AC-03", "AC-04"} {
		assert.Equal(t, want, overview.Schedules[i].Tag)
	}
}
