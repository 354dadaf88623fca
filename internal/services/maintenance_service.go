package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"
	"estoque_backend/pkg/utils"
)

// DefaultMaintenanceIntervalDays is the service interval applied when the
// maintenance_interval_days setting is absent.
const DefaultMaintenanceIntervalDays = 180

// ScheduleMaintenance computes the derived schedule for one unit against an
// injected "now". No last-service date means the unit is awaiting scheduling;
// a present but unparseable date is reported as invalid. Neither sentinel is
// ever overdue, and they stay distinct so overdue counts cannot absorb bad
// data entry. Date arithmetic is calendar days, not durations.
func ScheduleMaintenance(unit models.MaintenanceUnit, now time.Time, intervalDays int) models.MaintenanceSchedule {
	schedule := models.MaintenanceSchedule{
		UnitID:      unit.ID,
		Tag:         unit.Tag,
		Site:        unit.Site,
		LastService: unit.LastService,
	}

	if unit.LastService == nil || strings.TrimSpace(*unit.LastService) == "" {
		schedule.State = models.ScheduleStateAwaiting
		return schedule
	}

	lastService, err := utils.ParseBRDate(*unit.LastService)
	if err != nil {
		schedule.State = models.ScheduleStateInvalid
		return schedule
	}

	nextDue := utils.AddDays(lastService, intervalDays)
	schedule.State = models.ScheduleStateScheduled
	schedule.NextDue = &nextDue
	schedule.NextDueText = utils.FormatBRDate(nextDue)
	schedule.Overdue = nextDue.Before(utils.DateOnly(now))
	return schedule
}

// BuildMaintenanceOverview schedules every unit in the snapshot and tallies
// the states. Input order is preserved.
func BuildMaintenanceOverview(units []models.MaintenanceUnit, now time.Time, intervalDays int) models.MaintenanceOverview {
	overview := models.MaintenanceOverview{
		Schedules:  make([]models.MaintenanceSchedule, 0, len(units)),
		TotalUnits: len(units),
	}
	for _, unit := range units {
		schedule := ScheduleMaintenance(unit, now, intervalDays)
		overview.Schedules = append(overview.Schedules, schedule)
		switch schedule.State {
		case models.ScheduleStateScheduled:
			overview.ScheduledCnt++
		case models.ScheduleStateAwaiting:
			overview.AwaitingCnt++
		case models.ScheduleStateInvalid:
			overview.InvalidCnt++
		}
		if schedule.Overdue {
			overview.OverdueCnt++
		}
	}
	return overview
}

// --- DTOs ---

// RegisterServiceRequest records the outcome of a maintenance visit.
type RegisterServiceRequest struct {
	ServiceDate string  `json:"service_date" binding:"required"` // dd/mm/yyyy
	Technician  *string `json:"technician"`
	Supervisor  *string `json:"supervisor"`
	Notes       *string `json:"notes"`
}

// --- MaintenanceService Interface ---
type MaintenanceService interface {
	CreateUnit(unit *models.MaintenanceUnit) (*models.MaintenanceUnit, error)
	GetUnitByID(id int64) (*models.MaintenanceUnit, error)
	GetUnits(filters models.MaintenanceFilters) ([]models.MaintenanceUnit, int, error)
	UpdateUnit(unit *models.MaintenanceUnit) (*models.MaintenanceUnit, error)
	DeleteUnit(id int64) error
	RegisterService(id int64, req RegisterServiceRequest) (*models.MaintenanceUnit, error)
	Overview(now time.Time) (*models.MaintenanceOverview, error)
	IntervalDays() int
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepository
	settingRepo     repositories.SettingRepository
	db              *sql.DB
}

// NewMaintenanceService creates a new instance of MaintenanceService.
func NewMaintenanceService(mr repositories.MaintenanceRepository, sr repositories.SettingRepository, db *sql.DB) MaintenanceService {
	return &maintenanceService{maintenanceRepo: mr, settingRepo: sr, db: db}
}

func (s *maintenanceService) CreateUnit(unit *models.MaintenanceUnit) (*models.MaintenanceUnit, error) {
	if strings.TrimSpace(unit.Tag) == "" {
		return nil, fmt.Errorf("%w: unit tag cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(unit.Site) == "" {
		return nil, fmt.Errorf("%w: unit site cannot be empty", ErrValidation)
	}
	// A unit may legitimately be registered with a blank or even malformed
	// last-service date; the scheduler reports those as sentinel states.
	id, err := s.maintenanceRepo.CreateUnit(s.db, unit)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: tag '%s' already registered", ErrConflict, unit.Tag)
		}
		return nil, fmt.Errorf("failed to create maintenance unit: %w", err)
	}
	return s.maintenanceRepo.GetUnitByID(id)
}

func (s *maintenanceService) GetUnitByID(id int64) (*models.MaintenanceUnit, error) {
	unit, err := s.maintenanceRepo.GetUnitByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get maintenance unit: %w", err)
	}
	return unit, nil
}

func (s *maintenanceService) GetUnits(filters models.MaintenanceFilters) ([]models.MaintenanceUnit, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	units, totalCount, err := s.maintenanceRepo.GetUnits(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get maintenance units: %w", err)
	}
	return units, totalCount, nil
}

func (s *maintenanceService) UpdateUnit(unit *models.MaintenanceUnit) (*models.MaintenanceUnit, error) {
	if strings.TrimSpace(unit.Tag) == "" {
		return nil, fmt.Errorf("%w: unit tag cannot be empty", ErrValidation)
	}
	err := s.maintenanceRepo.UpdateUnit(s.db, unit)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: tag '%s' already registered", ErrConflict, unit.Tag)
		}
		return nil, fmt.Errorf("failed to update maintenance unit: %w", err)
	}
	return s.maintenanceRepo.GetUnitByID(unit.ID)
}

func (s *maintenanceService) DeleteUnit(id int64) error {
	err := s.maintenanceRepo.DeleteUnit(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete maintenance unit: %w", err)
	}
	return nil
}

// RegisterService validates the visit date strictly: unlike unit creation,
// a registration is active data entry and a bad date here is a user mistake,
// not legacy data.
func (s *maintenanceService) RegisterService(id int64, req RegisterServiceRequest) (*models.MaintenanceUnit, error) {
	if _, err := utils.ParseBRDate(req.ServiceDate); err != nil {
		return nil, fmt.Errorf("%w: service date must be dd/mm/yyyy, got %q", ErrValidation, req.ServiceDate)
	}
	err := s.maintenanceRepo.RegisterService(s.db, id, strings.TrimSpace(req.ServiceDate), req.Technician, req.Supervisor, req.Notes)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to register service: %w", err)
	}
	return s.maintenanceRepo.GetUnitByID(id)
}

func (s *maintenanceService) Overview(now time.Time) (*models.MaintenanceOverview, error) {
	units, err := s.maintenanceRepo.GetAllUnits()
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance snapshot: %w", err)
	}
	overview := BuildMaintenanceOverview(units, now, s.IntervalDays())
	return &overview, nil
}

func (s *maintenanceService) IntervalDays() int {
	return settingInt(s.settingRepo, models.SettingMaintenanceIntervalDays, DefaultMaintenanceIntervalDays)
}
