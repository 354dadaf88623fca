package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estoque_backend/internal/models"
)

// SettingRepository defines the interface for application-setting database operations.
type SettingRepository interface {
	GetAll() ([]models.ApplicationSetting, error)
	GetByKey(key string) (*models.ApplicationSetting, error)
	Upsert(executor SQLExecutor, setting *models.ApplicationSetting) error
	DeleteByKey(executor SQLExecutor, key string) error
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() ([]models.ApplicationSetting, error) {
	settings := []models.ApplicationSetting{}
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings ORDER BY setting_key`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting application settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ApplicationSetting
		if err := rows.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning application setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating application settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingRepository) GetByKey(key string) (*models.ApplicationSetting, error) {
	s := &models.ApplicationSetting{}
	query := `SELECT id, setting_key, setting_value, description, created_at, updated_at
	          FROM application_settings WHERE setting_key = $1`
	err := r.db.QueryRow(query, key).Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting application setting %s: %v", ErrDatabaseError, key, err)
	}
	return s, nil
}

func (r *settingRepository) Upsert(executor SQLExecutor, setting *models.ApplicationSetting) error {
	query := `INSERT INTO application_settings (setting_key, setting_value, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at, updated_at`
	now := time.Now()
	err := executor.QueryRow(query, setting.SettingKey, setting.SettingValue, setting.Description, now, now).
		Scan(&setting.ID, &setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: upserting application setting %s: %v", ErrDatabaseError, setting.SettingKey, err)
	}
	return nil
}

func (r *settingRepository) DeleteByKey(executor SQLExecutor, key string) error {
	result, err := executor.Exec(`DELETE FROM application_settings WHERE setting_key = $1`, key)
	if err != nil {
		return fmt.Errorf("%w: deleting application setting %s: %v", ErrDatabaseError, key, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
