package sensor

import (
	"context"
	"errors"
	"fmt"

	"github.com/casahub/smarthomes/internal/metrics"
	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	// ErrSensorNotFound indicates the referenced sensor does not exist.
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrSensorInactive indicates the sensor exists but does not accept readings.
	ErrSensorInactive = errors.New("sensor is inactive")
	// ErrInvalidReading indicates the value failed plausibility checks.
	ErrInvalidReading = errors.New("invalid reading value")
)

// Plausibility bounds. The lower bound is absolute zero; the upper bound is an
// arbitrary sanity ceiling shared with the rule threshold range.
var (
	minReadingValue = decimal.RequireFromString("-273.15")
	maxReadingValue = decimal.NewFromInt(1_000_000)
)

// ReadingStore abstracts reading persistence.
type ReadingStore interface {
	CreateReading(ctx context.Context, reading *model.SensorReading) (*model.SensorReading, error)
	GetReadingByID(ctx context.Context, id uuid.UUID) (*model.SensorReading, error)
	GetReadingsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.SensorReading, error)
	GetLatestReadingBySensorID(ctx context.Context, sensorID uuid.UUID) (*model.SensorReading, error)
}

// AlertChecker is the alerting pipeline entry point invoked after a reading is
// committed.
type AlertChecker interface {
	CheckAndCreateAlerts(ctx context.Context, reading *model.SensorReading) ([]model.Alert, error)
}

// ReadingService owns reading ingestion and history queries.
type ReadingService struct {
	readings ReadingStore
	sensors  SensorStore
	alerts   AlertChecker
}

func NewReadingService(readings ReadingStore, sensors SensorStore, alerts AlertChecker) *ReadingService {
	return &ReadingService{readings: readings, sensors: sensors, alerts: alerts}
}

func (s *ReadingService) GetReadingByID(ctx context.Context, id uuid.UUID) (*model.SensorReading, error) {
	return s.readings.GetReadingByID(ctx, id)
}

func (s *ReadingService) GetReadingsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.SensorReading, error) {
	return s.readings.GetReadingsBySensorID(ctx, sensorID, limit)
}

func (s *ReadingService) GetLatestReading(ctx context.Context, sensorID uuid.UUID) (*model.SensorReading, error) {
	return s.readings.GetLatestReadingBySensorID(ctx, sensorID)
}

// CreateReading validates the target sensor and value, persists the reading,
// touches the sensor's last-reading timestamp, and runs the alert check.
//
// The reading is committed before the alert check runs. If the check fails the
// reading stays recorded and the failure is logged and counted; the caller
// still gets the created reading. Alerts missed this way are not retried.
func (s *ReadingService) CreateReading(ctx context.Context, req *model.CreateReadingRequest) (*model.SensorReading, error) {
	sensor, err := s.sensors.GetSensorByID(ctx, req.SensorID)
	if err != nil {
		return nil, err
	}
	if sensor == nil {
		metrics.ReadingsIngestedTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrSensorNotFound, req.SensorID)
	}
	if !sensor.IsActive {
		metrics.ReadingsIngestedTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrSensorInactive, sensor.Name)
	}

	if req.Value.LessThan(minReadingValue) {
		metrics.ReadingsIngestedTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s is physically implausible", ErrInvalidReading, req.Value)
	}
	if req.Value.GreaterThan(maxReadingValue) {
		metrics.ReadingsIngestedTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s exceeds maximum", ErrInvalidReading, req.Value)
	}

	reading := &model.SensorReading{
		SensorID: req.SensorID,
		Value:    req.Value,
	}

	created, err := s.readings.CreateReading(ctx, reading)
	if err != nil {
		metrics.ReadingsIngestedTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.ReadingsIngestedTotal.WithLabelValues("accepted").Inc()

	if err := s.sensors.UpdateSensorLastReading(ctx, created.SensorID, created.Timestamp); err != nil {
		log.Error().Err(err).Str("sensor", created.SensorID.String()).Msg("failed to update sensor last reading")
	}

	if _, err := s.alerts.CheckAndCreateAlerts(ctx, created); err != nil {
		metrics.AlertCheckFailuresTotal.Inc()
		log.Warn().Err(err).
			Str("sensor", created.SensorID.String()).
			Str("reading", created.ID.String()).
			Msg("alert check failed; reading is committed, alerts for it may be missed")
	}

	return created, nil
}
