package model

import "time"

// FieldMapping maps one answer-set key onto one named template field.
// Transform names a registered value transform applied when the source value
// is present. Default is used when the source value is absent. Required
// entries with no value and no default are reported as missing, never fatal.
type FieldMapping struct {
	OutputField string      `json:"outputField" bson:"outputField" yaml:"outputField"`
	SourceField string      `json:"sourceField" bson:"sourceField" yaml:"sourceField"`
	Transform   string      `json:"transform,omitempty" bson:"transform,omitempty" yaml:"transform,omitempty"`
	Default     interface{} `json:"default,omitempty" bson:"default,omitempty" yaml:"default,omitempty"`
	Required    bool        `json:"required" bson:"required" yaml:"required"`
}

// MappingTable is the authored, read-only mapping for one document type
type MappingTable struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	DocType    string         `json:"docType" bson:"docType" yaml:"docType"` // e.g. "divorce_petition"
	Name       string         `json:"name" bson:"name" yaml:"name"`
	TemplateID string         `json:"templateId" bson:"templateId" yaml:"templateId"` // resolved by the template store
	Fields     []FieldMapping `json:"fields" bson:"fields" yaml:"fields"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// MappingValidation reports which required output fields cannot be produced
// from the current answer set
type MappingValidation struct {
	Valid           bool     `json:"valid"`
	MissingRequired []string `json:"missingRequired"` // output field names
}
