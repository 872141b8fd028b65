package model

import "time"

// FieldKind defines what a template field accepts
type FieldKind string

const (
	FieldText        FieldKind = "text"         // stringified value
	FieldCheckbox    FieldKind = "checkbox"     // checked on truthy value
	FieldRadio       FieldKind = "radio"        // single choice from the field's option set
	FieldOptionGroup FieldKind = "option_group" // single choice within a named group of options
)

// TemplateField is one named, fillable field on a form template
type TemplateField struct {
	Name    string    `json:"name"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"` // radio / option_group
	Group   string    `json:"group,omitempty"`   // option_group only
	Label   string    `json:"label,omitempty"`

	// Filled state, written by the filler
	Value    string `json:"value,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
	Selected string `json:"selected,omitempty"`
}

// FormTemplate is a pre-structured document template with named fields
type FormTemplate struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Fields []TemplateField `json:"fields"`
}

// FieldByName returns the index of the named field, or -1 if absent
func (t *FormTemplate) FieldByName(name string) int {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// TemplateHandle identifies a template: inline bytes, or a path resolvable
// by the template store. Bytes win when both are set.
type TemplateHandle struct {
	ID    string `json:"id"`
	Bytes []byte `json:"-"`
	Path  string `json:"path,omitempty"`
}

// FillStatus classifies the outcome of filling one field
type FillStatus string

const (
	FillFilled             FillStatus = "filled"
	FillSkippedUnknown     FillStatus = "skipped_unknown_field"
	FillSkippedUnsupported FillStatus = "skipped_unsupported_kind"
	FillFailed             FillStatus = "failed"
)

// FieldOutcome is the per-field result of a fill pass
type FieldOutcome struct {
	Field  string     `json:"field"`
	Status FillStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// FillReport aggregates per-field outcomes so callers and tests can assert
// on them directly instead of scraping logs
type FillReport []FieldOutcome

// Failures returns the outcomes that did not result in a filled field
func (r FillReport) Failures() []FieldOutcome {
	var out []FieldOutcome
	for _, o := range r {
		if o.Status != FillFilled {
			out = append(out, o)
		}
	}
	return out
}

// GeneratedDocument is a filled document persisted for download
type GeneratedDocument struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	SessionID  string     `json:"sessionId" bson:"sessionId"`
	UserID     string     `json:"userId" bson:"userId"`
	DocType    string     `json:"docType" bson:"docType"`
	TemplateID string     `json:"templateId" bson:"templateId"`
	Bytes      []byte     `json:"-" bson:"bytes"`
	Report     FillReport `json:"report" bson:"report"`
	Warnings   []string   `json:"warnings,omitempty" bson:"warnings,omitempty"` // required source fields that were absent
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
