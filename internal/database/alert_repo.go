package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const alertColumns = `id, alert_rule_id, sensor_reading_id, sensor_id, value, threshold,
	severity, message, triggered_at, is_acknowledged, acknowledged_at`

// CreateAlert persists a new alert, assigning identity and trigger timestamp.
func (d *Database) CreateAlert(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	const q = `
	INSERT INTO alerts (id, alert_rule_id, sensor_reading_id, sensor_id, value, threshold,
	                    severity, message, triggered_at, is_acknowledged, acknowledged_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + alertColumns

	alert.ID = uuid.New()
	alert.TriggeredAt = time.Now().UTC()

	row := d.QueryRowContext(ctx, q, alert.ID, alert.AlertRuleID, alert.SensorReadingID,
		alert.SensorID, alert.Value, alert.Threshold, string(alert.Severity), alert.Message,
		alert.TriggeredAt, alert.IsAcknowledged, alert.AcknowledgedAt)

	created, err := scanAlertRow(row)
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return created, nil
}

func (d *Database) GetAlertByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	q := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	row := d.QueryRowContext(ctx, q, id)
	alert, err := scanAlertRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return alert, nil
}

func (d *Database) GetAlertsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.Alert, error) {
	q := `SELECT ` + alertColumns + ` FROM alerts WHERE sensor_id = $1 ORDER BY triggered_at DESC`
	args := []any{sensorID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := d.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get alerts by sensor: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// GetAlertsByHomeID joins through sensor ownership.
func (d *Database) GetAlertsByHomeID(ctx context.Context, homeID uuid.UUID, limit int) ([]model.Alert, error) {
	q := `
	SELECT a.id, a.alert_rule_id, a.sensor_reading_id, a.sensor_id, a.value, a.threshold,
	       a.severity, a.message, a.triggered_at, a.is_acknowledged, a.acknowledged_at
	FROM alerts a
	INNER JOIN sensors s ON a.sensor_id = s.id
	WHERE s.home_id = $1
	ORDER BY a.triggered_at DESC`
	args := []any{homeID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := d.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get alerts by home: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// GetUnacknowledgedAlerts returns pending alerts, optionally scoped to a home.
func (d *Database) GetUnacknowledgedAlerts(ctx context.Context, homeID *uuid.UUID) ([]model.Alert, error) {
	var rows *sql.Rows
	var err error
	if homeID != nil {
		const q = `
		SELECT a.id, a.alert_rule_id, a.sensor_reading_id, a.sensor_id, a.value, a.threshold,
		       a.severity, a.message, a.triggered_at, a.is_acknowledged, a.acknowledged_at
		FROM alerts a
		INNER JOIN sensors s ON a.sensor_id = s.id
		WHERE a.is_acknowledged = FALSE AND s.home_id = $1
		ORDER BY a.triggered_at DESC`
		rows, err = d.QueryContext(ctx, q, *homeID)
	} else {
		q := `SELECT ` + alertColumns + ` FROM alerts WHERE is_acknowledged = FALSE ORDER BY triggered_at DESC`
		rows, err = d.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, fmt.Errorf("get unacknowledged alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func (d *Database) CountUnacknowledgedByHomeID(ctx context.Context, homeID uuid.UUID) (int, error) {
	const q = `
	SELECT COUNT(*)
	FROM alerts a
	INNER JOIN sensors s ON a.sensor_id = s.id
	WHERE a.is_acknowledged = FALSE AND s.home_id = $1`
	var count int
	if err := d.QueryRowContext(ctx, q, homeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unacknowledged alerts: %w", err)
	}
	return count, nil
}

// AcknowledgeAlert sets the acknowledged flag and timestamp. Returns false when
// the id does not exist. No existing-state check is performed, so a second call
// refreshes the timestamp and still returns true.
func (d *Database) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
	UPDATE alerts
	SET is_acknowledged = TRUE,
	    acknowledged_at = $2
	WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(s rowScanner) (*model.Alert, error) {
	var a model.Alert
	var severity string
	if err := s.Scan(&a.ID, &a.AlertRuleID, &a.SensorReadingID, &a.SensorID, &a.Value,
		&a.Threshold, &severity, &a.Message, &a.TriggeredAt, &a.IsAcknowledged, &a.AcknowledgedAt); err != nil {
		return nil, err
	}
	a.Severity = model.Severity(severity)
	return &a, nil
}

func scanAlertRow(row *sql.Row) (*model.Alert, error) {
	return scanAlert(row)
}

func scanAlerts(rows *sql.Rows) ([]model.Alert, error) {
	var alerts []model.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}
