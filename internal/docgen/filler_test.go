package docgen

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/model"
)

func petitionTemplate() *model.FormTemplate {
	return &model.FormTemplate{
		ID:    "divorce_petition",
		Title: "Petition for Dissolution of Marriage",
		Fields: []model.TemplateField{
			{Name: "PetitionerName", Kind: model.FieldText},
			{Name: "RespondentName", Kind: model.FieldText},
			{Name: "HasMinorChildren", Kind: model.FieldCheckbox},
			{Name: "FilingType", Kind: model.FieldRadio, Options: []string{"uncontested", "contested"}},
			{Name: "SupportRequested", Kind: model.FieldOptionGroup, Group: "support", Options: []string{"spousal", "child", "none"}},
			{Name: "Exhibit", Kind: "signature"},
		},
	}
}

func outcomeFor(report model.FillReport, field string) (model.FieldOutcome, bool) {
	for _, o := range report {
		if o.Field == field {
			return o, true
		}
	}
	return model.FieldOutcome{}, false
}

func TestFillAllKinds(t *testing.T) {
	fields := MappedFields{
		"PetitionerName":   "JORDAN SMITH",
		"HasMinorChildren": true,
		"FilingType":       "uncontested",
		"SupportRequested": "child",
	}

	data, report, err := Fill(petitionTemplate(), fields)
	require.NoError(t, err)
	require.Len(t, report, 4)
	for _, o := range report {
		assert.Equal(t, model.FillFilled, o.Status, o.Field)
	}

	var filled model.FormTemplate
	require.NoError(t, json.Unmarshal(data, &filled))
	assert.Equal(t, "JORDAN SMITH", filled.Fields[filled.FieldByName("PetitionerName")].Value)
	assert.True(t, filled.Fields[filled.FieldByName("HasMinorChildren")].Checked)
	assert.Equal(t, "uncontested", filled.Fields[filled.FieldByName("FilingType")].Selected)
	assert.Equal(t, "child", filled.Fields[filled.FieldByName("SupportRequested")].Selected)
}

func TestFillUnknownFieldDoesNotAbort(t *testing.T) {
	fields := MappedFields{
		"PetitionerName": "JORDAN SMITH",
		"NoSuchField":    "anything",
		"RespondentName": "ALEX SMITH",
	}

	data, report, err := Fill(petitionTemplate(), fields)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	unknown, ok := outcomeFor(report, "NoSuchField")
	require.True(t, ok)
	assert.Equal(t, model.FillSkippedUnknown, unknown.Status)

	// Every other matching field still filled
	var filled model.FormTemplate
	require.NoError(t, json.Unmarshal(data, &filled))
	assert.Equal(t, "JORDAN SMITH", filled.Fields[filled.FieldByName("PetitionerName")].Value)
	assert.Equal(t, "ALEX SMITH", filled.Fields[filled.FieldByName("RespondentName")].Value)
}

func TestFillValueOutsideOptionSetFailsThatFieldOnly(t *testing.T) {
	fields := MappedFields{
		"FilingType":     "annulment",
		"PetitionerName": "JORDAN SMITH",
	}

	_, report, err := Fill(petitionTemplate(), fields)
	require.NoError(t, err)

	failed, ok := outcomeFor(report, "FilingType")
	require.True(t, ok)
	assert.Equal(t, model.FillFailed, failed.Status)
	assert.Contains(t, failed.Detail, "annulment")

	filledName, ok := outcomeFor(report, "PetitionerName")
	require.True(t, ok)
	assert.Equal(t, model.FillFilled, filledName.Status)
}

func TestFillUnsupportedKindSkipped(t *testing.T) {
	fields := MappedFields{"Exhibit": "scrawl"}

	_, report, err := Fill(petitionTemplate(), fields)
	require.NoError(t, err)

	outcome, ok := outcomeFor(report, "Exhibit")
	require.True(t, ok)
	assert.Equal(t, model.FillSkippedUnsupported, outcome.Status)
}

func TestFillCheckboxTruthiness(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"non-empty string", "yes", true},
		{"empty string", "", false},
		{"zero", float64(0), false},
		{"non-zero", float64(1), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := petitionTemplate()
			data, _, err := Fill(tpl, MappedFields{"HasMinorChildren": tt.value})
			require.NoError(t, err)

			var filled model.FormTemplate
			require.NoError(t, json.Unmarshal(data, &filled))
			assert.Equal(t, tt.want, filled.Fields[filled.FieldByName("HasMinorChildren")].Checked)
		})
	}
}

func TestFillReportFailures(t *testing.T) {
	fields := MappedFields{
		"PetitionerName": "JORDAN SMITH",
		"NoSuchField":    "x",
	}
	_, report, err := Fill(petitionTemplate(), fields)
	require.NoError(t, err)

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "NoSuchField", failures[0].Field)
}

func TestParseTemplate(t *testing.T) {
	data := []byte(`{"title":"Test Form","fields":[{"name":"A","kind":"text"}]}`)
	tpl, err := ParseTemplate("test_form", data)
	require.NoError(t, err)
	assert.Equal(t, "test_form", tpl.ID) // falls back to the handle id
	require.Len(t, tpl.Fields, 1)

	_, err = ParseTemplate("broken", []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
