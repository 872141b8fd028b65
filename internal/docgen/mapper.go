package docgen

import (
	"strings"
	"time"

	"filingdesk/internal/engine"
	"filingdesk/internal/model"
)

// MappedFields is the output field name -> value map handed to the filler
type MappedFields map[string]interface{}

// TransformFunc rewrites a source value before it reaches the template
type TransformFunc func(value interface{}) interface{}

// transforms are the named value transforms mapping tables may reference.
// Tables are authored data, so transforms are looked up by name; an unknown
// name passes the value through untouched.
var transforms = map[string]TransformFunc{
	"uppercase": func(v interface{}) interface{} {
		return strings.ToUpper(engine.Stringify(v))
	},
	"lowercase": func(v interface{}) interface{} {
		return strings.ToLower(engine.Stringify(v))
	},
	// ISO date -> MM/DD/YYYY, the format court forms expect
	"date_us": func(v interface{}) interface{} {
		t, err := time.Parse("2006-01-02", engine.Stringify(v))
		if err != nil {
			return engine.Stringify(v)
		}
		return t.Format("01/02/2006")
	},
	// yes-ish answers -> true, for checkbox-kind template fields
	"to_bool": func(v interface{}) interface{} {
		if b, ok := v.(bool); ok {
			return b
		}
		switch strings.ToLower(engine.Stringify(v)) {
		case "yes", "true", "1":
			return true
		default:
			return false
		}
	},
	"yes_no": func(v interface{}) interface{} {
		if b, ok := v.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
		switch strings.ToLower(engine.Stringify(v)) {
		case "yes", "true", "1":
			return "Yes"
		default:
			return "No"
		}
	},
}

// RegisterTransform installs a named transform for use by mapping tables
func RegisterTransform(name string, fn TransformFunc) {
	transforms[name] = fn
}

// MapAnswersToFields converts an answer set into the named fields of one
// document, in table order. A present source value is transformed (when a
// transform is configured) and emitted; an absent one falls back to the
// entry's default. Required entries with neither are recorded as warnings
// and the output key is omitted; the mapping itself never fails. Identical
// inputs always produce an identical map and warning list.
func MapAnswersToFields(answers model.AnswerSet, table *model.MappingTable) (MappedFields, []string) {
	fields := MappedFields{}
	warnings := []string{}

	for _, entry := range table.Fields {
		value, present := answers[entry.SourceField]
		if present && value == nil {
			present = false
		}
		if present {
			if fn, ok := transforms[entry.Transform]; ok && entry.Transform != "" {
				value = fn(value)
			}
			fields[entry.OutputField] = value
			continue
		}
		if entry.Default != nil {
			fields[entry.OutputField] = entry.Default
			continue
		}
		if entry.Required {
			warnings = append(warnings, entry.OutputField)
		}
	}
	return fields, warnings
}

// ValidateMapping is a pure presence check, run before attempting a fill so
// callers can reject with a precise list of unmet fields instead of
// discovering them mid-pipeline. It is independent of transforms.
func ValidateMapping(answers model.AnswerSet, table *model.MappingTable) model.MappingValidation {
	missing := []string{}
	for _, entry := range table.Fields {
		if !entry.Required {
			continue
		}
		if value, ok := answers[entry.SourceField]; !ok || value == nil {
			if entry.Default == nil {
				missing = append(missing, entry.OutputField)
			}
		}
	}
	return model.MappingValidation{Valid: len(missing) == 0, MissingRequired: missing}
}
