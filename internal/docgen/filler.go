package docgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"filingdesk/internal/engine"
	"filingdesk/internal/model"
)

// Fill writes the mapped values into the template's named fields and
// serializes the result. Filling is best effort: an unknown field name, an
// unsupported field kind, or a value a field cannot accept produces a report
// entry and never aborts the remaining fields. A legal document missing one
// field is far more useful than no document at all. The only fatal outcome
// is a serialization failure.
//
// The template is modified in place; callers hand in a fresh parse per fill.
func Fill(tpl *model.FormTemplate, fields MappedFields) ([]byte, model.FillReport, error) {
	report := model.FillReport{}

	// Deterministic fill order regardless of map iteration
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		report = append(report, fillField(tpl, name, fields[name]))
	}

	out, err := json.Marshal(tpl)
	if err != nil {
		return nil, report, fmt.Errorf("serialize template %s: %w", tpl.ID, err)
	}
	return out, report, nil
}

func fillField(tpl *model.FormTemplate, name string, value interface{}) model.FieldOutcome {
	idx := tpl.FieldByName(name)
	if idx < 0 {
		return model.FieldOutcome{Field: name, Status: model.FillSkippedUnknown, Detail: "no such field on template"}
	}
	field := &tpl.Fields[idx]

	switch field.Kind {
	case model.FieldText:
		field.Value = engine.Stringify(value)
	case model.FieldCheckbox:
		field.Checked = truthy(value)
	case model.FieldRadio:
		want := engine.Stringify(value)
		if !hasOption(field.Options, want) {
			return model.FieldOutcome{
				Field:  name,
				Status: model.FillFailed,
				Detail: fmt.Sprintf("value %q not in option set", want),
			}
		}
		field.Selected = want
	case model.FieldOptionGroup:
		want := engine.Stringify(value)
		if !hasOption(field.Options, want) {
			return model.FieldOutcome{
				Field:  name,
				Status: model.FillFailed,
				Detail: fmt.Sprintf("value %q not in group %s", want, field.Group),
			}
		}
		field.Selected = want
	default:
		return model.FieldOutcome{
			Field:  name,
			Status: model.FillSkippedUnsupported,
			Detail: fmt.Sprintf("unsupported field kind %q", field.Kind),
		}
	}
	return model.FieldOutcome{Field: name, Status: model.FillFilled}
}

func hasOption(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}

// truthy decides checkbox state: false for nil, false, zero, and the empty
// string; everything else checks the box
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return strings.TrimSpace(val) != ""
	case []string:
		return len(val) > 0
	default:
		return true
	}
}

// ParseTemplate decodes template bytes. The identifier is included in load
// errors so a corrupt template can be traced back to its source.
func ParseTemplate(id string, data []byte) (*model.FormTemplate, error) {
	var tpl model.FormTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", id, err)
	}
	if tpl.ID == "" {
		tpl.ID = id
	}
	return &tpl, nil
}
