package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const sensorColumns = `id, home_id, name, type, unit, is_active, last_reading_at, created_at`

func (d *Database) GetSensorByID(ctx context.Context, id uuid.UUID) (*model.Sensor, error) {
	q := `SELECT ` + sensorColumns + ` FROM sensors WHERE id = $1`
	sensor, err := scanSensor(d.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sensor: %w", err)
	}
	return sensor, nil
}

func (d *Database) GetAllSensors(ctx context.Context) ([]model.Sensor, error) {
	q := `SELECT ` + sensorColumns + ` FROM sensors ORDER BY created_at DESC`
	rows, err := d.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get sensors: %w", err)
	}
	defer rows.Close()
	return scanSensors(rows)
}

func (d *Database) GetSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error) {
	q := `SELECT ` + sensorColumns + ` FROM sensors WHERE home_id = $1 ORDER BY created_at`
	rows, err := d.QueryContext(ctx, q, homeID)
	if err != nil {
		return nil, fmt.Errorf("get sensors by home: %w", err)
	}
	defer rows.Close()
	return scanSensors(rows)
}

func (d *Database) GetActiveSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error) {
	q := `SELECT ` + sensorColumns + ` FROM sensors WHERE home_id = $1 AND is_active = TRUE ORDER BY created_at`
	rows, err := d.QueryContext(ctx, q, homeID)
	if err != nil {
		return nil, fmt.Errorf("get active sensors by home: %w", err)
	}
	defer rows.Close()
	return scanSensors(rows)
}

func (d *Database) CreateSensor(ctx context.Context, sensor *model.Sensor) (*model.Sensor, error) {
	const q = `
	INSERT INTO sensors (id, home_id, name, type, unit, is_active, last_reading_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + sensorColumns

	sensor.ID = uuid.New()
	sensor.CreatedAt = time.Now().UTC()

	created, err := scanSensor(d.QueryRowContext(ctx, q, sensor.ID, sensor.HomeID, sensor.Name,
		string(sensor.Type), string(sensor.Unit), sensor.IsActive, sensor.LastReadingAt, sensor.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create sensor: %w", err)
	}
	return created, nil
}

func (d *Database) UpdateSensor(ctx context.Context, id uuid.UUID, sensor *model.Sensor) (bool, error) {
	const q = `
	UPDATE sensors
	SET name = $2, type = $3, unit = $4, is_active = $5
	WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id, sensor.Name, string(sensor.Type), string(sensor.Unit), sensor.IsActive)
	if err != nil {
		return false, fmt.Errorf("update sensor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update sensor: %w", err)
	}
	return affected > 0, nil
}

func (d *Database) DeleteSensor(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM sensors WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("delete sensor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete sensor: %w", err)
	}
	return affected > 0, nil
}

// UpdateSensorLastReading touches last_reading_at after a successful ingestion.
func (d *Database) UpdateSensorLastReading(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `UPDATE sensors SET last_reading_at = $2 WHERE id = $1`
	if _, err := d.ExecContext(ctx, q, id, at); err != nil {
		return fmt.Errorf("update sensor last reading: %w", err)
	}
	return nil
}

func scanSensor(s rowScanner) (*model.Sensor, error) {
	var sensor model.Sensor
	var sensorType, unit string
	if err := s.Scan(&sensor.ID, &sensor.HomeID, &sensor.Name, &sensorType, &unit,
		&sensor.IsActive, &sensor.LastReadingAt, &sensor.CreatedAt); err != nil {
		return nil, err
	}
	sensor.Type = model.SensorType(sensorType)
	sensor.Unit = model.Unit(unit)
	return &sensor, nil
}

func scanSensors(rows *sql.Rows) ([]model.Sensor, error) {
	var sensors []model.Sensor
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sensor: %w", err)
		}
		sensors = append(sensors, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensors: %w", err)
	}
	return sensors, nil
}
