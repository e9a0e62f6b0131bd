package sensor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSensor indicates a sensor request failed validation.
	ErrInvalidSensor = errors.New("invalid sensor")
	// ErrHomeNotFound indicates the referenced home does not exist.
	ErrHomeNotFound = errors.New("home not found")
)

// SensorStore abstracts sensor persistence.
type SensorStore interface {
	GetSensorByID(ctx context.Context, id uuid.UUID) (*model.Sensor, error)
	GetAllSensors(ctx context.Context) ([]model.Sensor, error)
	GetSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error)
	GetActiveSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error)
	CreateSensor(ctx context.Context, sensor *model.Sensor) (*model.Sensor, error)
	UpdateSensor(ctx context.Context, id uuid.UUID, sensor *model.Sensor) (bool, error)
	DeleteSensor(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateSensorLastReading(ctx context.Context, id uuid.UUID, at time.Time) error
}

// HomeGetter is the slice of the home store needed for existence checks.
type HomeGetter interface {
	GetHomeByID(ctx context.Context, id uuid.UUID) (*model.Home, error)
}

// Service owns sensor management.
type Service struct {
	sensors SensorStore
	homes   HomeGetter
}

func NewService(sensors SensorStore, homes HomeGetter) *Service {
	return &Service{sensors: sensors, homes: homes}
}

func (s *Service) GetSensorByID(ctx context.Context, id uuid.UUID) (*model.Sensor, error) {
	return s.sensors.GetSensorByID(ctx, id)
}

func (s *Service) GetAllSensors(ctx context.Context) ([]model.Sensor, error) {
	return s.sensors.GetAllSensors(ctx)
}

func (s *Service) GetSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error) {
	return s.sensors.GetSensorsByHomeID(ctx, homeID)
}

func (s *Service) GetActiveSensorsByHomeID(ctx context.Context, homeID uuid.UUID) ([]model.Sensor, error) {
	return s.sensors.GetActiveSensorsByHomeID(ctx, homeID)
}

// CreateSensor validates and persists a new sensor. New sensors start active.
func (s *Service) CreateSensor(ctx context.Context, req *model.CreateSensorRequest) (*model.Sensor, error) {
	home, err := s.homes.GetHomeByID(ctx, req.HomeID)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, fmt.Errorf("%w: %s", ErrHomeNotFound, req.HomeID)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSensor)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown sensor type %q", ErrInvalidSensor, req.Type)
	}
	if !req.Unit.Valid() {
		return nil, fmt.Errorf("%w: unknown unit %q", ErrInvalidSensor, req.Unit)
	}

	sensor := &model.Sensor{
		HomeID:   req.HomeID,
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Unit:     req.Unit,
		IsActive: true,
	}

	return s.sensors.CreateSensor(ctx, sensor)
}

// UpdateSensor applies the provided fields. Returns false when the sensor does
// not exist.
func (s *Service) UpdateSensor(ctx context.Context, id uuid.UUID, req *model.UpdateSensorRequest) (bool, error) {
	existing, err := s.sensors.GetSensorByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return false, fmt.Errorf("%w: unknown sensor type %q", ErrInvalidSensor, *req.Type)
		}
		existing.Type = *req.Type
	}
	if req.Unit != nil {
		if !req.Unit.Valid() {
			return false, fmt.Errorf("%w: unknown unit %q", ErrInvalidSensor, *req.Unit)
		}
		existing.Unit = *req.Unit
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	return s.sensors.UpdateSensor(ctx, id, existing)
}

func (s *Service) DeleteSensor(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.sensors.GetSensorByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return s.sensors.DeleteSensor(ctx, id)
}
