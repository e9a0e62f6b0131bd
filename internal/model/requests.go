package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    uuid.UUID `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
}

type CreateHomeRequest struct {
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
	Area      decimal.Decimal `json:"area"`
}

// UpdateHomeRequest carries partial updates; nil fields are left untouched.
type UpdateHomeRequest struct {
	Name      *string          `json:"name,omitempty"`
	Address   *string          `json:"address,omitempty"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
	Area      *decimal.Decimal `json:"area,omitempty"`
	Status    *HomeStatus      `json:"status,omitempty"`
}

type CreateSensorRequest struct {
	HomeID uuid.UUID  `json:"homeId"`
	Name   string     `json:"name"`
	Type   SensorType `json:"type"`
	Unit   Unit       `json:"unit"`
}

type UpdateSensorRequest struct {
	Name     *string     `json:"name,omitempty"`
	Type     *SensorType `json:"type,omitempty"`
	Unit     *Unit       `json:"unit,omitempty"`
	IsActive *bool       `json:"isActive,omitempty"`
}

type CreateReadingRequest struct {
	SensorID uuid.UUID       `json:"sensorId"`
	Value    decimal.Decimal `json:"value"`
}

type CreateAlertRuleRequest struct {
	SensorID  uuid.UUID       `json:"sensorId"`
	Name      string          `json:"name"`
	Condition Condition       `json:"condition"`
	Threshold decimal.Decimal `json:"threshold"`
	Severity  Severity        `json:"severity"`
	Message   string          `json:"message"`
}

type UpdateAlertRuleRequest struct {
	Name      *string          `json:"name,omitempty"`
	Condition *Condition       `json:"condition,omitempty"`
	Threshold *decimal.Decimal `json:"threshold,omitempty"`
	Severity  *Severity        `json:"severity,omitempty"`
	Message   *string          `json:"message,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}
