package model

import "time"

// InputKind defines the input type of a question
type InputKind string

const (
	InputText         InputKind = "text"
	InputNumber       InputKind = "number"
	InputDate         InputKind = "date"
	InputSingleChoice InputKind = "single_choice"
	InputMultiChoice  InputKind = "multi_choice"
	InputYesNo        InputKind = "yes_no"
)

// VisibilityOperator defines how a visibility rule compares the target field
type VisibilityOperator string

const (
	OpEquals      VisibilityOperator = "equals"
	OpNotEquals   VisibilityOperator = "not_equals"
	OpContains    VisibilityOperator = "contains"
	OpGreaterThan VisibilityOperator = "greater_than"
	OpLessThan    VisibilityOperator = "less_than"
	OpIsEmpty     VisibilityOperator = "is_empty"
	OpIsNotEmpty  VisibilityOperator = "is_not_empty"
)

// ValidationKind defines the type of a validation rule
type ValidationKind string

const (
	ValidationRequired ValidationKind = "required"
	ValidationMin      ValidationKind = "min"
	ValidationMax      ValidationKind = "max"
	ValidationPattern  ValidationKind = "pattern"
	ValidationEmail    ValidationKind = "email"
	ValidationDate     ValidationKind = "date"
	ValidationCustom   ValidationKind = "custom"
)

// VisibilityRule is a single condition against the current answer set.
// A section or question carrying several rules is visible iff all of them
// hold (AND semantics; no OR/NOT composition).
type VisibilityRule struct {
	Field    string             `json:"field" bson:"field" yaml:"field"`
	Operator VisibilityOperator `json:"operator" bson:"operator" yaml:"operator"`
	Value    interface{}        `json:"value,omitempty" bson:"value,omitempty" yaml:"value,omitempty"`
}

// ValidationRule is a per-question constraint evaluated against the
// question's current value. Value carries the rule parameter (numeric bound,
// regex source, predicate name). Message is what the end user sees.
type ValidationRule struct {
	Kind    ValidationKind `json:"kind" bson:"kind" yaml:"kind"`
	Value   interface{}    `json:"value,omitempty" bson:"value,omitempty" yaml:"value,omitempty"`
	Message string         `json:"message" bson:"message" yaml:"message"`
}

// Option is one selectable choice for choice-kind questions
type Option struct {
	Value string `json:"value" bson:"value" yaml:"value"`
	Label string `json:"label" bson:"label" yaml:"label"`
}

// Question is a single question template within a section
type Question struct {
	ID         string           `json:"id" bson:"id" yaml:"id"`
	Field      string           `json:"field" bson:"field" yaml:"field"` // answer-set key the value is stored under
	Prompt     string           `json:"prompt" bson:"prompt" yaml:"prompt"`
	Kind       InputKind        `json:"kind" bson:"kind" yaml:"kind"`
	Required   bool             `json:"required" bson:"required" yaml:"required"`
	HelpText   string           `json:"helpText,omitempty" bson:"helpText,omitempty" yaml:"helpText,omitempty"` // static guidance shown next to the input
	Options    []Option         `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
	Validation []ValidationRule `json:"validation,omitempty" bson:"validation,omitempty" yaml:"validation,omitempty"`
	VisibleIf  []VisibilityRule `json:"visibleIf,omitempty" bson:"visibleIf,omitempty" yaml:"visibleIf,omitempty"`
}

// Section groups questions; the section is visible iff all its rules pass
type Section struct {
	ID        string           `json:"id" bson:"id" yaml:"id"`
	Title     string           `json:"title" bson:"title" yaml:"title"`
	Questions []Question       `json:"questions" bson:"questions" yaml:"questions"`
	VisibleIf []VisibilityRule `json:"visibleIf,omitempty" bson:"visibleIf,omitempty" yaml:"visibleIf,omitempty"`
}

// Questionnaire is the authored, read-only schema for one form type.
// Authored once (seeded from YAML), never mutated at runtime.
type Questionnaire struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FormType  string    `json:"formType" bson:"formType" yaml:"formType"` // e.g. "divorce_intake"
	Name      string    `json:"name" bson:"name" yaml:"name"`
	Version   int       `json:"version" bson:"version" yaml:"version"`
	Sections  []Section `json:"sections" bson:"sections" yaml:"sections"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SectionByID returns the section with the given id, or nil if absent
func (q *Questionnaire) SectionByID(id string) *Section {
	for i := range q.Sections {
		if q.Sections[i].ID == id {
			return &q.Sections[i]
		}
	}
	return nil
}
