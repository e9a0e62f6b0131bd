package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder. Email is the login key.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Home is a managed dwelling owned by a user. Coordinates feed the weather lookup.
type Home struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	Address   string          `json:"address" db:"address"`
	Latitude  decimal.Decimal `json:"latitude" db:"latitude"`
	Longitude decimal.Decimal `json:"longitude" db:"longitude"`
	Area      decimal.Decimal `json:"area" db:"area"` // square meters
	Status    HomeStatus      `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Sensor is an IoT device installed in a home.
type Sensor struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	HomeID        uuid.UUID  `json:"homeId" db:"home_id"`
	Name          string     `json:"name" db:"name"`
	Type          SensorType `json:"type" db:"type"`
	Unit          Unit       `json:"unit" db:"unit"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	LastReadingAt *time.Time `json:"lastReadingAt,omitempty" db:"last_reading_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// SensorReading is a single measurement, immutable once created.
// TriggeredAlert exists in the schema but is never written by any code path.
type SensorReading struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	SensorID       uuid.UUID       `json:"sensorId" db:"sensor_id"`
	Value          decimal.Decimal `json:"value" db:"value"`
	Timestamp      time.Time       `json:"timestamp" db:"timestamp"`
	TriggeredAlert bool            `json:"triggeredAlert" db:"triggered_alert"`
}

// AlertRule attaches a condition and threshold to one sensor. Only active rules
// participate in evaluation.
type AlertRule struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	SensorID  uuid.UUID       `json:"sensorId" db:"sensor_id"`
	Name      string          `json:"name" db:"name"`
	Condition Condition       `json:"condition" db:"condition"`
	Threshold decimal.Decimal `json:"threshold" db:"threshold"`
	Severity  Severity        `json:"severity" db:"severity"`
	Message   string          `json:"message" db:"message"`
	IsActive  bool            `json:"isActive" db:"is_active"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Alert records one rule violation at one point in time. Threshold, severity
// and message are copied from the rule at trigger time so later rule edits do
// not rewrite history.
type Alert struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	AlertRuleID     uuid.UUID       `json:"alertRuleId" db:"alert_rule_id"`
	SensorReadingID uuid.UUID       `json:"sensorReadingId" db:"sensor_reading_id"`
	SensorID        uuid.UUID       `json:"sensorId" db:"sensor_id"`
	Value           decimal.Decimal `json:"value" db:"value"`
	Threshold       decimal.Decimal `json:"threshold" db:"threshold"`
	Severity        Severity        `json:"severity" db:"severity"`
	Message         string          `json:"message" db:"message"`
	TriggeredAt     time.Time       `json:"triggeredAt" db:"triggered_at"`
	IsAcknowledged  bool            `json:"isAcknowledged" db:"is_acknowledged"`
	AcknowledgedAt  *time.Time      `json:"acknowledgedAt,omitempty" db:"acknowledged_at"`
}

// Weather is the compact current-conditions view attached to a home.
type Weather struct {
	Temperature decimal.Decimal `json:"temperature"`
	FeelsLike   decimal.Decimal `json:"feelsLike"`
	Humidity    int             `json:"humidity"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	WindSpeed   decimal.Decimal `json:"windSpeed"`
	City        string          `json:"city"`
}

// HomeWithWeather pairs a home with its current weather. Weather is nil when
// the upstream provider is unavailable.
type HomeWithWeather struct {
	Home    Home     `json:"home"`
	Weather *Weather `json:"weather,omitempty"`
}
