package alerting

import (
	"github.com/casahub/smarthomes/internal/model"
	"github.com/shopspring/decimal"
)

// Evaluate reports whether value violates the rule condition against threshold.
// Comparison is exact fixed-point decimal comparison; ConditionEquals means
// exact equality, not approximate.
//
// A condition outside the defined set returns false. That is a deliberate
// fail-safe: malformed rule data must never raise an alert.
func Evaluate(value decimal.Decimal, condition model.Condition, threshold decimal.Decimal) bool {
	switch condition {
	case model.ConditionEquals:
		return value.Equal(threshold)
	case model.ConditionGreaterThan:
		return value.GreaterThan(threshold)
	case model.ConditionLessThan:
		return value.LessThan(threshold)
	case model.ConditionGreaterThanOrEqual:
		return value.GreaterThanOrEqual(threshold)
	case model.ConditionLessThanOrEqual:
		return value.LessThanOrEqual(threshold)
	default:
		return false
	}
}
