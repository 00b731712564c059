package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// evaluateOperator applies an operator to the resolved field value and the
// expected value from the rule. found reports whether the field path resolved
// at all (exists is the only operator that distinguishes a missing field from
// a null one). Operand problems are returned as errors so the evaluator can
// log them; the node still evaluates false.
func evaluateOperator(op Operator, actual any, found bool, expected any) (bool, error) {
	switch op {
	case OperatorEqual:
		return evaluateEqual(actual, expected), nil

	case OperatorNotEqual:
		return !evaluateEqual(actual, expected), nil

	case OperatorGreaterThan:
		actualNum, expectedNum, err := toNumeric(actual, expected)
		if err != nil {
			return false, err
		}
		return actualNum > expectedNum, nil

	case OperatorLessThan:
		actualNum, expectedNum, err := toNumeric(actual, expected)
		if err != nil {
			return false, err
		}
		return actualNum < expectedNum, nil

	case OperatorGreaterEqual:
		actualNum, expectedNum, err := toNumeric(actual, expected)
		if err != nil {
			return false, err
		}
		return actualNum >= expectedNum, nil

	case OperatorLessEqual:
		actualNum, expectedNum, err := toNumeric(actual, expected)
		if err != nil {
			return false, err
		}
		return actualNum <= expectedNum, nil

	case OperatorIn:
		return evaluateIn(actual, expected)

	case OperatorNotIn:
		in, err := evaluateIn(actual, expected)
		return !in && err == nil, err

	case OperatorContains:
		return evaluateContains(actual, expected)

	case OperatorExists:
		// Truthy expected: field must be defined and non-null.
		// Falsy expected: field must be missing or null.
		defined := found && actual != nil
		if isTruthy(expected) {
			return defined, nil
		}
		return !defined, nil

	case OperatorRegex:
		return evaluateRegex(actual, expected)

	default:
		return false, fmt.Errorf("unknown operator: %q", op)
	}
}

// evaluateEqual compares two values, coercing numerics so an int fact matches
// a float rule value (rule trees arrive via JSON, where all numbers decode as
// float64).
func evaluateEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	actualNum, actualOK := convertToFloat64(actual)
	expectedNum, expectedOK := convertToFloat64(expected)
	if actualOK && expectedOK {
		return actualNum == expectedNum
	}
	if actualOK != expectedOK {
		return false
	}

	return reflect.DeepEqual(actual, expected)
}

// evaluateIn checks membership of actual in the expected slice.
func evaluateIn(actual, expected any) (bool, error) {
	expectedVal := reflect.ValueOf(expected)
	if !expectedVal.IsValid() || (expectedVal.Kind() != reflect.Slice && expectedVal.Kind() != reflect.Array) {
		return false, fmt.Errorf("in operator requires an array for expected, got %T", expected)
	}

	for i := 0; i < expectedVal.Len(); i++ {
		if evaluateEqual(actual, expectedVal.Index(i).Interface()) {
			return true, nil
		}
	}

	return false, nil
}

// evaluateContains performs a substring test. Both operands must be strings.
func evaluateContains(actual, expected any) (bool, error) {
	actualStr, ok := actual.(string)
	if !ok {
		return false, fmt.Errorf("contains operator requires a string field value, got %T", actual)
	}
	expectedStr, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("contains operator requires a string expected value, got %T", expected)
	}

	return strings.Contains(actualStr, expectedStr), nil
}

// evaluateRegex compiles the expected pattern and tests the actual value.
// Invalid patterns and non-string operands evaluate false rather than
// aborting the rule tree.
func evaluateRegex(actual, expected any) (bool, error) {
	actualStr, ok := actual.(string)
	if !ok {
		return false, fmt.Errorf("regex operator requires a string field value, got %T", actual)
	}
	pattern, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("regex operator requires a string pattern, got %T", expected)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	return re.MatchString(actualStr), nil
}

// isTruthy applies JSON-ish truthiness: nil, false, numeric zero, and the
// empty string are falsy; everything else is truthy.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	default:
		if num, ok := convertToFloat64(v); ok {
			return num != 0
		}
		return true
	}
}

// toNumeric converts both operands to float64 for ordered comparison.
func toNumeric(actual, expected any) (float64, float64, error) {
	actualNum, ok := convertToFloat64(actual)
	if !ok {
		return 0, 0, fmt.Errorf("cannot compare non-numeric field value %T", actual)
	}

	expectedNum, ok := convertToFloat64(expected)
	if !ok {
		return 0, 0, fmt.Errorf("cannot compare against non-numeric expected value %T", expected)
	}

	return actualNum, expectedNum, nil
}

// convertToFloat64 converts any numeric type to float64.
func convertToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
