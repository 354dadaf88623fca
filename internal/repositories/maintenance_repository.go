package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"estoque_backend/internal/models"

	"github.com/lib/pq"
)

// MaintenanceRepository defines the interface for maintenance-unit database operations.
type MaintenanceRepository interface {
	CreateUnit(executor SQLExecutor, unit *models.MaintenanceUnit) (int64, error)
	GetUnitByID(id int64) (*models.MaintenanceUnit, error)
	GetUnitByTag(tag string) (*models.MaintenanceUnit, error)
	GetUnits(filters models.MaintenanceFilters) ([]models.MaintenanceUnit, int, error)
	GetAllUnits() ([]models.MaintenanceUnit, error) // Full snapshot for the scheduler
	UpdateUnit(executor SQLExecutor, unit *models.MaintenanceUnit) error
	RegisterService(executor SQLExecutor, id int64, lastService string, technician, supervisor, notes *string) error
	DeleteUnit(executor SQLExecutor, id int64) error
}

type maintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository.
func NewMaintenanceRepository(db *sql.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const unitColumns = `id, tag, site, brand, model, capacity_btu, last_service,
	          technician, supervisor, notes, created_at, updated_at`

func scanUnit(row interface{ Scan(...interface{}) error }, u *models.MaintenanceUnit) error {
	var capacity sql.NullInt64
	err := row.Scan(
		&u.ID, &u.Tag, &u.Site, &u.Brand, &u.Model, &capacity, &u.LastService,
		&u.Technician, &u.Supervisor, &u.Notes, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		u.CapacityBTU = &c
	}
	return nil
}

func (r *maintenanceRepository) CreateUnit(executor SQLExecutor, unit *models.MaintenanceUnit) (int64, error) {
	query := `INSERT INTO maintenance_units
	          (tag, site, brand, model, capacity_btu, last_service, technician, supervisor, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		unit.Tag, unit.Site, unit.Brand, unit.Model, nullInt(unit.CapacityBTU),
		unit.LastService, unit.Technician, unit.Supervisor, unit.Notes,
		currentTime, currentTime,
	).Scan(&unit.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: maintenance unit tag '%s' already exists", ErrDuplicateKey, unit.Tag)
		}
		return 0, fmt.Errorf("%w: creating maintenance unit: %v", ErrDatabaseError, err)
	}
	return unit.ID, nil
}

func (r *maintenanceRepository) GetUnitByID(id int64) (*models.MaintenanceUnit, error) {
	unit := &models.MaintenanceUnit{}
	query := `SELECT ` + unitColumns + ` FROM maintenance_units WHERE id = $1`
	if err := scanUnit(r.db.QueryRow(query, id), unit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting maintenance unit by ID %d: %v", ErrDatabaseError, id, err)
	}
	return unit, nil
}

func (r *maintenanceRepository) GetUnitByTag(tag string) (*models.MaintenanceUnit, error) {
	unit := &models.MaintenanceUnit{}
	query := `SELECT ` + unitColumns + ` FROM maintenance_units WHERE tag = $1`
	if err := scanUnit(r.db.QueryRow(query, tag), unit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting maintenance unit by tag %s: %v", ErrDatabaseError, tag, err)
	}
	return unit, nil
}

func (r *maintenanceRepository) GetUnits(filters models.MaintenanceFilters) ([]models.MaintenanceUnit, int, error) {
	units := []models.MaintenanceUnit{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + unitColumns + `, COUNT(*) OVER() AS total_count FROM maintenance_units`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Site != nil && *filters.Site != "" {
		conditions = append(conditions, fmt.Sprintf("site = $%d", argCount))
		args = append(args, *filters.Site)
		argCount++
	}
	if filters.Brand != nil && *filters.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argCount))
		args = append(args, *filters.Brand)
		argCount++
	}
	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(tag ILIKE $%d OR model ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY tag")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting maintenance units: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var unit models.MaintenanceUnit
		var capacity sql.NullInt64
		if err := rows.Scan(
			&unit.ID, &unit.Tag, &unit.Site, &unit.Brand, &unit.Model, &capacity,
			&unit.LastService, &unit.Technician, &unit.Supervisor, &unit.Notes,
			&unit.CreatedAt, &unit.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning maintenance unit: %v", ErrDatabaseError, err)
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			unit.CapacityBTU = &c
		}
		units = append(units, unit)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating maintenance units: %v", ErrDatabaseError, err)
	}
	return units, totalCount, nil
}

// GetAllUnits loads all units in stable tag order for the scheduler overview.
func (r *maintenanceRepository) GetAllUnits() ([]models.MaintenanceUnit, error) {
	units := []models.MaintenanceUnit{}
	query := `SELECT ` + unitColumns + ` FROM maintenance_units ORDER BY tag`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: loading maintenance unit snapshot: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var unit models.MaintenanceUnit
		if err := scanUnit(rows, &unit); err != nil {
			return nil, fmt.Errorf("%w: scanning maintenance unit snapshot: %v", ErrDatabaseError, err)
		}
		units = append(units, unit)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating maintenance unit snapshot: %v", ErrDatabaseError, err)
	}
	return units, nil
}

func (r *maintenanceRepository) UpdateUnit(executor SQLExecutor, unit *models.MaintenanceUnit) error {
	query := `UPDATE maintenance_units SET
	          tag = $1, site = $2, brand = $3, model = $4, capacity_btu = $5,
	          last_service = $6, technician = $7, supervisor = $8, notes = $9, updated_at = $10
	          WHERE id = $11`
	result, err := executor.Exec(query,
		unit.Tag, unit.Site, unit.Brand, unit.Model, nullInt(unit.CapacityBTU),
		unit.LastService, unit.Technician, unit.Supervisor, unit.Notes,
		time.Now(), unit.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: maintenance unit tag '%s' already exists", ErrDuplicateKey, unit.Tag)
		}
		return fmt.Errorf("%w: updating maintenance unit ID %d: %v", ErrDatabaseError, unit.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RegisterService writes the outcome of a maintenance visit. The schedule
// itself is always derived, so only the source fields change.
func (r *maintenanceRepository) RegisterService(executor SQLExecutor, id int64, lastService string, technician, supervisor, notes *string) error {
	query := `UPDATE maintenance_units SET
	          last_service = $1, technician = $2, supervisor = $3, notes = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query, lastService, technician, supervisor, notes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: registering service for unit %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *maintenanceRepository) DeleteUnit(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM maintenance_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting maintenance unit ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
