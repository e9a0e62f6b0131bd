package alerting

import (
	"context"
	"fmt"

	"github.com/casahub/smarthomes/internal/metrics"
	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service runs the alert-evaluation pipeline and serves alert queries.
type Service struct {
	rules  RuleStore
	alerts AlertStore
}

func NewService(rules RuleStore, alerts AlertStore) *Service {
	return &Service{rules: rules, alerts: alerts}
}

// CheckAndCreateAlerts is the ingestion hook, invoked once per persisted
// reading. It fetches the active rules for the reading's sensor, evaluates
// each independently, and materializes one alert per violated rule with the
// rule's threshold, severity and message snapshotted in.
//
// A rule-fetch failure aborts the whole cycle. A failed alert create aborts
// the remaining rules for this reading and returns the alerts created so far
// alongside the error; there is no retry and no debounce across readings.
func (s *Service) CheckAndCreateAlerts(ctx context.Context, reading *model.SensorReading) ([]model.Alert, error) {
	rules, err := s.rules.GetActiveRulesBySensorID(ctx, reading.SensorID)
	if err != nil {
		return nil, fmt.Errorf("fetch active rules for sensor %s: %w", reading.SensorID, err)
	}

	var triggered []model.Alert
	for _, rule := range rules {
		if !Evaluate(reading.Value, rule.Condition, rule.Threshold) {
			continue
		}

		alert := &model.Alert{
			AlertRuleID:     rule.ID,
			SensorReadingID: reading.ID,
			SensorID:        reading.SensorID,
			Value:           reading.Value,
			Threshold:       rule.Threshold,
			Severity:        rule.Severity,
			Message:         rule.Message,
			IsAcknowledged:  false,
		}

		created, err := s.alerts.CreateAlert(ctx, alert)
		if err != nil {
			return triggered, fmt.Errorf("create alert for rule %s: %w", rule.ID, err)
		}
		metrics.AlertsTriggeredTotal.WithLabelValues(string(created.Severity)).Inc()
		log.Info().
			Str("sensor", reading.SensorID.String()).
			Str("rule", rule.ID.String()).
			Str("severity", string(created.Severity)).
			Str("value", reading.Value.String()).
			Str("threshold", rule.Threshold.String()).
			Msg("alert triggered")
		triggered = append(triggered, *created)
	}

	return triggered, nil
}

func (s *Service) GetAlertByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	return s.alerts.GetAlertByID(ctx, id)
}

func (s *Service) GetAlertsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.Alert, error) {
	return s.alerts.GetAlertsBySensorID(ctx, sensorID, limit)
}

func (s *Service) GetAlertsByHomeID(ctx context.Context, homeID uuid.UUID, limit int) ([]model.Alert, error) {
	return s.alerts.GetAlertsByHomeID(ctx, homeID, limit)
}

func (s *Service) GetUnacknowledgedAlerts(ctx context.Context, homeID *uuid.UUID) ([]model.Alert, error) {
	return s.alerts.GetUnacknowledgedAlerts(ctx, homeID)
}

func (s *Service) CountUnacknowledgedByHomeID(ctx context.Context, homeID uuid.UUID) (int, error) {
	return s.alerts.CountUnacknowledgedByHomeID(ctx, homeID)
}

// AcknowledgeAlert marks an alert as seen. Returns false when the id is
// unknown. Acknowledgment is one-directional; there is no unacknowledge.
func (s *Service) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.alerts.AcknowledgeAlert(ctx, id)
}
