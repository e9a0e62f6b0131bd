package model

// Condition is the comparator applied between a reading value and a rule threshold.
type Condition string

const (
	ConditionEquals             Condition = "equals"
	ConditionGreaterThan        Condition = "greater_than"
	ConditionLessThan           Condition = "less_than"
	ConditionGreaterThanOrEqual Condition = "greater_than_or_equal"
	ConditionLessThanOrEqual    Condition = "less_than_or_equal"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionEquals, ConditionGreaterThan, ConditionLessThan,
		ConditionGreaterThanOrEqual, ConditionLessThanOrEqual:
		return true
	}
	return false
}

// Severity classifies a rule (and the alerts it produces), ordered low to high.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// Rank returns the ordering of a severity; unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// HomeStatus is the lifecycle state of a home.
type HomeStatus string

const (
	HomeStatusActive      HomeStatus = "active"
	HomeStatusInactive    HomeStatus = "inactive"
	HomeStatusMaintenance HomeStatus = "maintenance"
)

func (h HomeStatus) Valid() bool {
	switch h {
	case HomeStatusActive, HomeStatusInactive, HomeStatusMaintenance:
		return true
	}
	return false
}

// SensorType identifies what a sensor measures.
type SensorType string

const (
	SensorTypeUnknown           SensorType = "unknown"
	SensorTypeTemperature       SensorType = "temperature"
	SensorTypeHumidity          SensorType = "humidity"
	SensorTypeEnergyConsumption SensorType = "energy_consumption"
	SensorTypeMotion            SensorType = "motion"
	SensorTypeLight             SensorType = "light"
	SensorTypeAirQuality        SensorType = "air_quality"
)

func (t SensorType) Valid() bool {
	switch t {
	case SensorTypeUnknown, SensorTypeTemperature, SensorTypeHumidity,
		SensorTypeEnergyConsumption, SensorTypeMotion, SensorTypeLight, SensorTypeAirQuality:
		return true
	}
	return false
}

// Unit is the measurement unit reported by a sensor.
type Unit string

const (
	UnitUnknown Unit = "unknown"
	UnitCelsius Unit = "celsius"
	UnitPercent Unit = "percent"
	UnitKWh     Unit = "kwh"
	UnitBoolean Unit = "boolean"
	UnitLux     Unit = "lux"
	UnitAQI     Unit = "aqi"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitUnknown, UnitCelsius, UnitPercent, UnitKWh, UnitBoolean, UnitLux, UnitAQI:
		return true
	}
	return false
}
