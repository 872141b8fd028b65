package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"filingdesk/internal/model"
)

// PredicateFunc is a caller-supplied check for custom validation rules.
// Returning false fails the rule with its configured message.
type PredicateFunc func(value interface{}) bool

// EvaluateVisibility reports whether every rule holds against the answer
// set. An empty rule list always passes. Rules are ANDed; there is no OR/NOT
// composition. An unrecognized operator passes rather than hiding content:
// a typo in an authored schema should not make a legal intake question
// disappear.
func EvaluateVisibility(rules []model.VisibilityRule, answers model.AnswerSet) bool {
	for _, rule := range rules {
		if !evaluateRule(rule, answers[rule.Field]) {
			return false
		}
	}
	return true
}

func evaluateRule(rule model.VisibilityRule, value interface{}) bool {
	switch rule.Operator {
	case model.OpEquals:
		return valuesEqual(value, rule.Value)
	case model.OpNotEquals:
		return !valuesEqual(value, rule.Value)
	case model.OpContains:
		return contains(value, rule.Value)
	case model.OpGreaterThan:
		a, aok := toNumber(value)
		b, bok := toNumber(rule.Value)
		return aok && bok && a > b
	case model.OpLessThan:
		a, aok := toNumber(value)
		b, bok := toNumber(rule.Value)
		return aok && bok && a < b
	case model.OpIsEmpty:
		return isEmptyValue(value)
	case model.OpIsNotEmpty:
		return !isEmptyValue(value)
	default:
		return true
	}
}

// EvaluateValidation runs one rule against a question's value. It returns
// the rule's message on failure and "" on pass.
func EvaluateValidation(rule model.ValidationRule, value interface{}, q model.Question, predicates map[string]PredicateFunc) string {
	switch rule.Kind {
	case model.ValidationRequired:
		if q.Required && isEmptyValue(value) {
			return rule.Message
		}
	case model.ValidationMin:
		if isEmptyValue(value) {
			return ""
		}
		n, ok := toNumber(value)
		bound, bok := toNumber(rule.Value)
		if !ok || (bok && n < bound) {
			return rule.Message
		}
	case model.ValidationMax:
		if isEmptyValue(value) {
			return ""
		}
		n, ok := toNumber(value)
		bound, bok := toNumber(rule.Value)
		if !ok || (bok && n > bound) {
			return rule.Message
		}
	case model.ValidationPattern:
		if isEmptyValue(value) {
			return ""
		}
		src, _ := rule.Value.(string)
		re, err := regexp.Compile(src)
		if err != nil {
			// Authored-data error; degrade to pass rather than block the user
			return ""
		}
		if !re.MatchString(Stringify(value)) {
			return rule.Message
		}
	case model.ValidationEmail:
		if isEmptyValue(value) {
			return ""
		}
		if !looksLikeEmail(Stringify(value)) {
			return rule.Message
		}
	case model.ValidationDate:
		if isEmptyValue(value) {
			return ""
		}
		if !parsesAsDate(Stringify(value)) {
			return rule.Message
		}
	case model.ValidationCustom:
		name, _ := rule.Value.(string)
		fn, ok := predicates[name]
		if !ok {
			return ""
		}
		if !fn(value) {
			return rule.Message
		}
	}
	return ""
}

// isEmptyValue defines "empty": nil, empty string, or empty slice.
// Zero and false are values the user chose, not absence.
func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// valuesEqual is type-sensitive equality with one concession: two values
// that both coerce to the same number compare equal, so a numeric answer
// matches a numeric rule literal regardless of how either was encoded.
func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		return an == bn
	}
	if aok != bok {
		return false
	}
	return Stringify(a) == Stringify(b)
}

func contains(value, needle interface{}) bool {
	want := Stringify(needle)
	switch val := value.(type) {
	case []string:
		for _, item := range val {
			if item == want {
				return true
			}
		}
		return false
	case []interface{}:
		for _, item := range val {
			if Stringify(item) == want {
				return true
			}
		}
		return false
	case nil:
		return false
	default:
		return strings.Contains(Stringify(value), want)
	}
}

// toNumber coerces a value to float64. Booleans and non-numeric strings do
// not coerce; NaN never counts as a number.
func toNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val)
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Stringify renders an answer value the way it would appear on a document
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ", ")
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// looksLikeEmail is a structural check: one @ with something on both sides
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	return at < len(s)-1
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

func parsesAsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
