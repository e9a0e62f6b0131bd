package alerting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

type memRuleStore struct {
	rules    map[uuid.UUID]*model.AlertRule
	fetchErr error
}

func newMemRuleStore() *memRuleStore {
	return &memRuleStore{rules: map[uuid.UUID]*model.AlertRule{}}
}

func (m *memRuleStore) add(rule model.AlertRule) model.AlertRule {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	m.rules[rule.ID] = &rule
	return rule
}

func (m *memRuleStore) GetActiveRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var out []model.AlertRule
	for _, r := range m.rules {
		if r.SensorID == sensorID && r.IsActive {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRuleStore) GetRuleByID(ctx context.Context, id uuid.UUID) (*model.AlertRule, error) {
	r, ok := m.rules[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRuleStore) GetAllRules(ctx context.Context) ([]model.AlertRule, error) {
	var out []model.AlertRule
	for _, r := range m.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memRuleStore) GetRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error) {
	var out []model.AlertRule
	for _, r := range m.rules {
		if r.SensorID == sensorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRuleStore) CreateRule(ctx context.Context, rule *model.AlertRule) (*model.AlertRule, error) {
	created := m.add(*rule)
	return &created, nil
}

func (m *memRuleStore) UpdateRule(ctx context.Context, id uuid.UUID, rule *model.AlertRule) (bool, error) {
	if _, ok := m.rules[id]; !ok {
		return false, nil
	}
	cp := *rule
	cp.ID = id
	m.rules[id] = &cp
	return true, nil
}

func (m *memRuleStore) DeleteRule(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.rules[id]; !ok {
		return false, nil
	}
	delete(m.rules, id)
	return true, nil
}

type memAlertStore struct {
	alerts    map[uuid.UUID]*model.Alert
	createErr error
	creates   int
}

func newMemAlertStore() *memAlertStore {
	return &memAlertStore{alerts: map[uuid.UUID]*model.Alert{}}
}

func (m *memAlertStore) CreateAlert(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *alert
	cp.ID = uuid.New()
	cp.TriggeredAt = time.Now().UTC()
	m.alerts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memAlertStore) GetAlertByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	a, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAlertStore) GetAlertsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.Alert, error) {
	var out []model.Alert
	for _, a := range m.alerts {
		if a.SensorID == sensorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAlertStore) GetAlertsByHomeID(ctx context.Context, homeID uuid.UUID, limit int) ([]model.Alert, error) {
	return nil, nil
}

func (m *memAlertStore) GetUnacknowledgedAlerts(ctx context.Context, homeID *uuid.UUID) ([]model.Alert, error) {
	var out []model.Alert
	for _, a := range m.alerts {
		if !a.IsAcknowledged {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAlertStore) CountUnacknowledgedByHomeID(ctx context.Context, homeID uuid.UUID) (int, error) {
	return 0, nil
}

func (m *memAlertStore) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (bool, error) {
	a, ok := m.alerts[id]
	if !ok {
		return false, nil
	}
	now := time.Now().UTC()
	a.IsAcknowledged = true
	a.AcknowledgedAt = &now
	return true, nil
}

func testReading(sensorID uuid.UUID, value string) *model.SensorReading {
	return &model.SensorReading{
		ID:        uuid.New(),
		SensorID:  sensorID,
		Value:     dec(value),
		Timestamp: time.Now().UTC(),
	}
}

func TestCheckAndCreateAlertsTriggersViolatedRuleOnly(t *testing.T) {
	rules := newMemRuleStore()
	alerts := newMemAlertStore()
	svc := NewService(rules, alerts)
	sensorID := uuid.New()

	hot := rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "too hot",
		Condition: model.ConditionGreaterThan,
		Threshold: dec("30"),
		Severity:  model.SeverityWarning,
		Message:   "temperature above 30",
		IsActive:  true,
	})
	rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "too cold",
		Condition: model.ConditionLessThan,
		Threshold: dec("5"),
		Severity:  model.SeverityCritical,
		Message:   "temperature below 5",
		IsActive:  true,
	})

	reading := testReading(sensorID, "35")
	triggered, err := svc.CheckAndCreateAlerts(context.Background(), reading)
	if err != nil {
		t.Fatalf("CheckAndCreateAlerts: %v", err)
	}
	if len(triggered) != 1 {
		t.Fatalf("triggered %d alerts, want 1", len(triggered))
	}

	alert := triggered[0]
	if alert.AlertRuleID != hot.ID {
		t.Errorf("alert rule id = %s, want %s", alert.AlertRuleID, hot.ID)
	}
	if alert.SensorReadingID != reading.ID {
		t.Errorf("alert reading id = %s, want %s", alert.SensorReadingID, reading.ID)
	}
	if !alert.Value.Equal(dec("35")) || !alert.Threshold.Equal(dec("30")) {
		t.Errorf("snapshot value/threshold = %s/%s, want 35/30", alert.Value, alert.Threshold)
	}
	if alert.Severity != model.SeverityWarning || alert.Message != "temperature above 30" {
		t.Errorf("snapshot severity/message = %s/%q", alert.Severity, alert.Message)
	}
	if alert.IsAcknowledged || alert.AcknowledgedAt != nil {
		t.Error("new alert must start unacknowledged")
	}
	if alert.TriggeredAt.IsZero() {
		t.Error("TriggeredAt not set")
	}
}

func TestCheckAndCreateAlertsNoRules(t *testing.T) {
	svc := NewService(newMemRuleStore(), newMemAlertStore())

	triggered, err := svc.CheckAndCreateAlerts(context.Background(), testReading(uuid.New(), "100"))
	if err != nil {
		t.Fatalf("CheckAndCreateAlerts: %v", err)
	}
	if len(triggered) != 0 {
		t.Fatalf("triggered %d alerts, want 0", len(triggered))
	}
}

func TestCheckAndCreateAlertsSkipsInactiveRules(t *testing.T) {
	rules := newMemRuleStore()
	alerts := newMemAlertStore()
	svc := NewService(rules, alerts)
	sensorID := uuid.New()

	rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "disabled",
		Condition: model.ConditionGreaterThan,
		Threshold: dec("0"),
		Severity:  model.SeverityInfo,
		Message:   "always firing if enabled",
		IsActive:  false,
	})

	triggered, err := svc.CheckAndCreateAlerts(context.Background(), testReading(sensorID, "50"))
	if err != nil {
		t.Fatalf("CheckAndCreateAlerts: %v", err)
	}
	if len(triggered) != 0 {
		t.Fatalf("inactive rule triggered %d alerts", len(triggered))
	}
	if alerts.creates != 0 {
		t.Fatalf("store saw %d creates, want 0", alerts.creates)
	}
}

func TestCheckAndCreateAlertsRuleFetchFailure(t *testing.T) {
	rules := newMemRuleStore()
	rules.fetchErr = errors.New("db down")
	svc := NewService(rules, newMemAlertStore())

	triggered, err := svc.CheckAndCreateAlerts(context.Background(), testReading(uuid.New(), "50"))
	if err == nil {
		t.Fatal("expected error when rule fetch fails")
	}
	if triggered != nil {
		t.Fatalf("got %d alerts on fetch failure, want none", len(triggered))
	}
}

func TestCheckAndCreateAlertsAbortsOnCreateFailure(t *testing.T) {
	rules := newMemRuleStore()
	alerts := newMemAlertStore()
	alerts.createErr = errors.New("insert failed")
	svc := NewService(rules, alerts)
	sensorID := uuid.New()

	rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "a",
		Condition: model.ConditionGreaterThan,
		Threshold: dec("1"),
		Severity:  model.SeverityWarning,
		Message:   "m",
		IsActive:  true,
	})
	rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "b",
		Condition: model.ConditionGreaterThan,
		Threshold: dec("2"),
		Severity:  model.SeverityWarning,
		Message:   "m",
		IsActive:  true,
	})

	_, err := svc.CheckAndCreateAlerts(context.Background(), testReading(sensorID, "10"))
	if err == nil {
		t.Fatal("expected error when alert create fails")
	}
	if alerts.creates != 1 {
		t.Fatalf("store saw %d creates, want 1 (remaining rules aborted)", alerts.creates)
	}
}

func TestAcknowledgeAlert(t *testing.T) {
	rules := newMemRuleStore()
	alerts := newMemAlertStore()
	svc := NewService(rules, alerts)
	sensorID := uuid.New()

	rules.add(model.AlertRule{
		SensorID:  sensorID,
		Name:      "r",
		Condition: model.ConditionGreaterThanOrEqual,
		Threshold: dec("1"),
		Severity:  model.SeverityInfo,
		Message:   "m",
		IsActive:  true,
	})
	triggered, err := svc.CheckAndCreateAlerts(context.Background(), testReading(sensorID, "1"))
	if err != nil || len(triggered) != 1 {
		t.Fatalf("setup: triggered=%d err=%v", len(triggered), err)
	}
	id := triggered[0].ID

	ok, err := svc.AcknowledgeAlert(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("AcknowledgeAlert = %v, %v", ok, err)
	}

	acked, err := svc.GetAlertByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAlertByID: %v", err)
	}
	if !acked.IsAcknowledged || acked.AcknowledgedAt == nil {
		t.Fatal("alert not marked acknowledged")
	}
	if acked.AcknowledgedAt.Before(acked.TriggeredAt) {
		t.Error("AcknowledgedAt precedes TriggeredAt")
	}

	// re-acknowledging is not an error and still reports success
	ok, err = svc.AcknowledgeAlert(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("re-acknowledge = %v, %v", ok, err)
	}

	ok, err = svc.AcknowledgeAlert(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("AcknowledgeAlert unknown id: %v", err)
	}
	if ok {
		t.Fatal("acknowledging an unknown alert must report false")
	}
}
