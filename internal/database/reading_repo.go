package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const readingColumns = `id, sensor_id, value, timestamp, triggered_alert`

// CreateReading persists a new reading, assigning identity and timestamp.
// Readings are immutable after this point.
func (d *Database) CreateReading(ctx context.Context, reading *model.SensorReading) (*model.SensorReading, error) {
	const q = `
	INSERT INTO sensor_readings (id, sensor_id, value, timestamp, triggered_alert)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + readingColumns

	reading.ID = uuid.New()
	reading.Timestamp = time.Now().UTC()

	created, err := scanReading(d.QueryRowContext(ctx, q, reading.ID, reading.SensorID,
		reading.Value, reading.Timestamp, reading.TriggeredAlert))
	if err != nil {
		return nil, fmt.Errorf("create reading: %w", err)
	}
	return created, nil
}

func (d *Database) GetReadingByID(ctx context.Context, id uuid.UUID) (*model.SensorReading, error) {
	q := `SELECT ` + readingColumns + ` FROM sensor_readings WHERE id = $1`
	reading, err := scanReading(d.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reading: %w", err)
	}
	return reading, nil
}

func (d *Database) GetReadingsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.SensorReading, error) {
	q := `SELECT ` + readingColumns + ` FROM sensor_readings WHERE sensor_id = $1 ORDER BY timestamp DESC`
	args := []any{sensorID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := d.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get readings by sensor: %w", err)
	}
	defer rows.Close()

	var readings []model.SensorReading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return readings, nil
}

func (d *Database) GetLatestReadingBySensorID(ctx context.Context, sensorID uuid.UUID) (*model.SensorReading, error) {
	q := `SELECT ` + readingColumns + ` FROM sensor_readings WHERE sensor_id = $1 ORDER BY timestamp DESC LIMIT 1`
	reading, err := scanReading(d.QueryRowContext(ctx, q, sensorID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest reading: %w", err)
	}
	return reading, nil
}

func scanReading(s rowScanner) (*model.SensorReading, error) {
	var r model.SensorReading
	if err := s.Scan(&r.ID, &r.SensorID, &r.Value, &r.Timestamp, &r.TriggeredAlert); err != nil {
		return nil, err
	}
	return &r, nil
}
