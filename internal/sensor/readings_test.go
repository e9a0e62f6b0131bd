package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memReadingStore struct {
	readings  map[uuid.UUID]*model.SensorReading
	createErr error
}

func newMemReadingStore() *memReadingStore {
	return &memReadingStore{readings: map[uuid.UUID]*model.SensorReading{}}
}

func (m *memReadingStore) CreateReading(ctx context.Context, reading *model.SensorReading) (*model.SensorReading, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *reading
	cp.ID = uuid.New()
	cp.Timestamp = time.Now().UTC()
	m.readings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memReadingStore) GetReadingByID(ctx context.Context, id uuid.UUID) (*model.SensorReading, error) {
	r, ok := m.readings[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memReadingStore) GetReadingsBySensorID(ctx context.Context, sensorID uuid.UUID, limit int) ([]model.SensorReading, error) {
	var out []model.SensorReading
	for _, r := range m.readings {
		if r.SensorID == sensorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReadingStore) GetLatestReadingBySensorID(ctx context.Context, sensorID uuid.UUID) (*model.SensorReading, error) {
	var latest *model.SensorReading
	for _, r := range m.readings {
		if r.SensorID != sensorID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

type fakeAlertChecker struct {
	calls    []*model.SensorReading
	checkErr error
}

func (f *fakeAlertChecker) CheckAndCreateAlerts(ctx context.Context, reading *model.SensorReading) ([]model.Alert, error) {
	f.calls = append(f.calls, reading)
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return nil, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateReading(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "temp", Type: model.SensorTypeTemperature, Unit: model.UnitCelsius, IsActive: true})
	checker := &fakeAlertChecker{}
	svc := NewReadingService(newMemReadingStore(), sensors, checker)

	created, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{
		SensorID: s.ID,
		Value:    dec("21.5"),
	})
	if err != nil {
		t.Fatalf("CreateReading: %v", err)
	}
	if created.ID == uuid.Nil || created.Timestamp.IsZero() {
		t.Error("id/timestamp not assigned")
	}
	if !created.Value.Equal(dec("21.5")) {
		t.Errorf("value = %s, want 21.5", created.Value)
	}

	if len(checker.calls) != 1 || checker.calls[0].ID != created.ID {
		t.Fatal("alert check not invoked with the committed reading")
	}
	if got, ok := sensors.lastTouch[s.ID]; !ok || !got.Equal(created.Timestamp) {
		t.Error("sensor last-reading timestamp not updated")
	}
}

func TestCreateReadingUnknownSensor(t *testing.T) {
	checker := &fakeAlertChecker{}
	svc := NewReadingService(newMemReadingStore(), newMemSensorStore(), checker)

	_, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{
		SensorID: uuid.New(),
		Value:    dec("1"),
	})
	if !errors.Is(err, ErrSensorNotFound) {
		t.Fatalf("err = %v, want ErrSensorNotFound", err)
	}
	if len(checker.calls) != 0 {
		t.Fatal("alert check must not run for rejected readings")
	}
}

func TestCreateReadingInactiveSensor(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "broken", Type: model.SensorTypeHumidity, Unit: model.UnitPercent, IsActive: false})
	svc := NewReadingService(newMemReadingStore(), sensors, &fakeAlertChecker{})

	_, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{
		SensorID: s.ID,
		Value:    dec("50"),
	})
	if !errors.Is(err, ErrSensorInactive) {
		t.Fatalf("err = %v, want ErrSensorInactive", err)
	}
}

func TestCreateReadingValueBounds(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "temp", Type: model.SensorTypeTemperature, Unit: model.UnitCelsius, IsActive: true})
	svc := NewReadingService(newMemReadingStore(), sensors, &fakeAlertChecker{})

	for _, v := range []string{"-273.16", "1000000.01"} {
		_, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{SensorID: s.ID, Value: dec(v)})
		if !errors.Is(err, ErrInvalidReading) {
			t.Errorf("value %s: err = %v, want ErrInvalidReading", v, err)
		}
	}

	// bounds are inclusive
	for _, v := range []string{"-273.15", "1000000"} {
		if _, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{SensorID: s.ID, Value: dec(v)}); err != nil {
			t.Errorf("value %s rejected: %v", v, err)
		}
	}
}

func TestCreateReadingSurvivesAlertCheckFailure(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "temp", Type: model.SensorTypeTemperature, Unit: model.UnitCelsius, IsActive: true})
	store := newMemReadingStore()
	checker := &fakeAlertChecker{checkErr: errors.New("alerting down")}
	svc := NewReadingService(store, sensors, checker)

	created, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{
		SensorID: s.ID,
		Value:    dec("99"),
	})
	if err != nil {
		t.Fatalf("CreateReading must succeed despite alert check failure, got %v", err)
	}
	if got, _ := store.GetReadingByID(context.Background(), created.ID); got == nil {
		t.Fatal("reading not committed")
	}
}

func TestCreateReadingSurvivesLastReadingTouchFailure(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "temp", Type: model.SensorTypeTemperature, Unit: model.UnitCelsius, IsActive: true})
	sensors.touchErr = errors.New("update failed")
	checker := &fakeAlertChecker{}
	svc := NewReadingService(newMemReadingStore(), sensors, checker)

	if _, err := svc.CreateReading(context.Background(), &model.CreateReadingRequest{SensorID: s.ID, Value: dec("1")}); err != nil {
		t.Fatalf("CreateReading must succeed despite touch failure, got %v", err)
	}
	if len(checker.calls) != 1 {
		t.Fatal("alert check skipped after touch failure")
	}
}

func TestGetLatestReading(t *testing.T) {
	sensors := newMemSensorStore()
	s := sensors.add(model.Sensor{Name: "temp", Type: model.SensorTypeTemperature, Unit: model.UnitCelsius, IsActive: true})
	store := newMemReadingStore()
	svc := NewReadingService(store, sensors, &fakeAlertChecker{})

	got, err := svc.GetLatestReading(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("GetLatestReading: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for sensor with no readings")
	}

	first, _ := svc.CreateReading(context.Background(), &model.CreateReadingRequest{SensorID: s.ID, Value: dec("1")})
	store.readings[first.ID].Timestamp = time.Now().UTC().Add(-time.Hour)
	second, _ := svc.CreateReading(context.Background(), &model.CreateReadingRequest{SensorID: s.ID, Value: dec("2")})

	got, err = svc.GetLatestReading(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("GetLatestReading: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("latest = %+v, want the most recent reading", got)
	}
}
