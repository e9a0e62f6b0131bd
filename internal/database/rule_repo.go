package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

const ruleColumns = `id, sensor_id, name, condition, threshold, severity, message, is_active, created_at`

// GetActiveRulesBySensorID returns active rules only; inactive rules never
// reach the evaluator.
func (d *Database) GetActiveRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error) {
	q := `SELECT ` + ruleColumns + ` FROM alert_rules WHERE sensor_id = $1 AND is_active = TRUE ORDER BY created_at`
	rows, err := d.QueryContext(ctx, q, sensorID)
	if err != nil {
		return nil, fmt.Errorf("get active rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

func (d *Database) GetRuleByID(ctx context.Context, id uuid.UUID) (*model.AlertRule, error) {
	q := `SELECT ` + ruleColumns + ` FROM alert_rules WHERE id = $1`
	rule, err := scanRule(d.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return rule, nil
}

func (d *Database) GetAllRules(ctx context.Context) ([]model.AlertRule, error) {
	q := `SELECT ` + ruleColumns + ` FROM alert_rules ORDER BY created_at DESC`
	rows, err := d.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

func (d *Database) GetRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error) {
	q := `SELECT ` + ruleColumns + ` FROM alert_rules WHERE sensor_id = $1 ORDER BY created_at`
	rows, err := d.QueryContext(ctx, q, sensorID)
	if err != nil {
		return nil, fmt.Errorf("get rules by sensor: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

func (d *Database) CreateRule(ctx context.Context, rule *model.AlertRule) (*model.AlertRule, error) {
	const q = `
	INSERT INTO alert_rules (id, sensor_id, name, condition, threshold, severity, message, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + ruleColumns

	rule.ID = uuid.New()
	rule.CreatedAt = time.Now().UTC()

	created, err := scanRule(d.QueryRowContext(ctx, q, rule.ID, rule.SensorID, rule.Name,
		string(rule.Condition), rule.Threshold, string(rule.Severity), rule.Message,
		rule.IsActive, rule.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}
	return created, nil
}

func (d *Database) UpdateRule(ctx context.Context, id uuid.UUID, rule *model.AlertRule) (bool, error) {
	const q = `
	UPDATE alert_rules
	SET name = $2, condition = $3, threshold = $4, severity = $5, message = $6, is_active = $7
	WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id, rule.Name, string(rule.Condition), rule.Threshold,
		string(rule.Severity), rule.Message, rule.IsActive)
	if err != nil {
		return false, fmt.Errorf("update rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update rule: %w", err)
	}
	return affected > 0, nil
}

func (d *Database) DeleteRule(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM alert_rules WHERE id = $1`
	res, err := d.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("delete rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rule: %w", err)
	}
	return affected > 0, nil
}

func scanRule(s rowScanner) (*model.AlertRule, error) {
	var r model.AlertRule
	var condition, severity string
	if err := s.Scan(&r.ID, &r.SensorID, &r.Name, &condition, &r.Threshold,
		&severity, &r.Message, &r.IsActive, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Condition = model.Condition(condition)
	r.Severity = model.Severity(severity)
	return &r, nil
}

func scanRules(rows *sql.Rows) ([]model.AlertRule, error) {
	var rules []model.AlertRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}
