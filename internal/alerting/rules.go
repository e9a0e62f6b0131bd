package alerting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRule indicates a rule request failed validation.
	ErrInvalidRule = errors.New("invalid alert rule")
	// ErrSensorNotFound indicates the referenced sensor does not exist.
	ErrSensorNotFound = errors.New("sensor not found")
)

const (
	maxRuleNameLen    = 200
	maxRuleMessageLen = 500
)

var (
	minThreshold = decimal.NewFromInt(-1000)
	maxThreshold = decimal.NewFromInt(1_000_000)
)

// RuleService owns the alert-rule management CRUD. Evaluation reads rules
// through the same store but lives in Service.
type RuleService struct {
	rules   RuleStore
	sensors SensorGetter
}

func NewRuleService(rules RuleStore, sensors SensorGetter) *RuleService {
	return &RuleService{rules: rules, sensors: sensors}
}

func (s *RuleService) GetRuleByID(ctx context.Context, id uuid.UUID) (*model.AlertRule, error) {
	return s.rules.GetRuleByID(ctx, id)
}

func (s *RuleService) GetAllRules(ctx context.Context) ([]model.AlertRule, error) {
	return s.rules.GetAllRules(ctx)
}

func (s *RuleService) GetRulesBySensorID(ctx context.Context, sensorID uuid.UUID) ([]model.AlertRule, error) {
	return s.rules.GetRulesBySensorID(ctx, sensorID)
}

// CreateRule validates and persists a new rule. New rules start active.
func (s *RuleService) CreateRule(ctx context.Context, req *model.CreateAlertRuleRequest) (*model.AlertRule, error) {
	sensor, err := s.sensors.GetSensorByID(ctx, req.SensorID)
	if err != nil {
		return nil, err
	}
	if sensor == nil {
		return nil, fmt.Errorf("%w: %s", ErrSensorNotFound, req.SensorID)
	}

	if err := validateRuleCreate(req); err != nil {
		return nil, err
	}

	rule := &model.AlertRule{
		SensorID:  req.SensorID,
		Name:      strings.TrimSpace(req.Name),
		Condition: req.Condition,
		Threshold: req.Threshold,
		Severity:  req.Severity,
		Message:   strings.TrimSpace(req.Message),
		IsActive:  true,
	}

	return s.rules.CreateRule(ctx, rule)
}

// UpdateRule applies the provided fields to an existing rule. Returns false
// when the rule does not exist.
func (s *RuleService) UpdateRule(ctx context.Context, id uuid.UUID, req *model.UpdateAlertRuleRequest) (bool, error) {
	existing, err := s.rules.GetRuleByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := validateRuleUpdate(req); err != nil {
		return false, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Condition != nil {
		existing.Condition = *req.Condition
	}
	if req.Threshold != nil {
		existing.Threshold = *req.Threshold
	}
	if req.Severity != nil {
		existing.Severity = *req.Severity
	}
	if req.Message != nil && strings.TrimSpace(*req.Message) != "" {
		existing.Message = strings.TrimSpace(*req.Message)
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	return s.rules.UpdateRule(ctx, id, existing)
}

func (s *RuleService) DeleteRule(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.rules.GetRuleByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return s.rules.DeleteRule(ctx, id)
}

func validateRuleCreate(req *model.CreateAlertRuleRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if len(req.Name) > maxRuleNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRule, maxRuleNameLen)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidRule)
	}
	if len(req.Message) > maxRuleMessageLen {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidRule, maxRuleMessageLen)
	}
	if !req.Condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidRule, req.Condition)
	}
	if !req.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidRule, req.Severity)
	}
	if err := validateThreshold(req.Threshold); err != nil {
		return err
	}
	return nil
}

func validateRuleUpdate(req *model.UpdateAlertRuleRequest) error {
	if req.Name != nil && len(*req.Name) > maxRuleNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRule, maxRuleNameLen)
	}
	if req.Message != nil && len(*req.Message) > maxRuleMessageLen {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidRule, maxRuleMessageLen)
	}
	if req.Condition != nil && !req.Condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidRule, *req.Condition)
	}
	if req.Severity != nil && !req.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidRule, *req.Severity)
	}
	if req.Threshold != nil {
		if err := validateThreshold(*req.Threshold); err != nil {
			return err
		}
	}
	return nil
}

func validateThreshold(threshold decimal.Decimal) error {
	if threshold.LessThan(minThreshold) || threshold.GreaterThan(maxThreshold) {
		return fmt.Errorf("%w: threshold %s outside [%s, %s]", ErrInvalidRule,
			threshold, minThreshold, maxThreshold)
	}
	return nil
}
