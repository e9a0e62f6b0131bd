package alerting

import (
	"context"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

// RuleStore abstracts alert-rule persistence. The PostgreSQL implementation
// lives in internal/database; tests use in-memory fakes.
type RuleStore interface {
	GetActiveRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error)
	GetRuleByID(ctx context.Context, id uuid.UUID) (*model.AlertRule, error)
	GetAllRules(ctx context.Context) ([]model.AlertRule, error)
	GetRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error)
	CreateRule(ctx context.Context, rule *model.AlertRule) (*model.AlertRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, rule *model.AlertRule) (bool, error)
	DeleteRule(ctx context.Context, id uuid.UUID) (bool, error)
}

// AlertStore abstracts triggered-alert persistence.
type AlertStore interface {
	CreateAlert(ctx context.Context, alert *model.Alert) (*model.Alert, error)
	GetAlertByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	GetAlertsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.Alert, error)
	GetAlertsByHomeID(ctx context.Context, homeID uuid.UUID, limit int) ([]model.Alert, error)
	GetUnacknowledgedAlerts(ctx context.Context, homeID *uuid.UUID) ([]model.Alert, error)
	CountUnacknowledgedByHomeID(ctx context.Context, homeID uuid.UUID) (int, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID) (bool, error)
}

// SensorGetter is the slice of the sensor store the rule service needs for
// existence checks.
type SensorGetter interface {
	GetSensorByID(ctx context.Context, id uuid.UUID) (*model.Sensor, error)
}
