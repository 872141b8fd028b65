package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/model"
)

func intakeSchema() *model.Questionnaire {
	return &model.Questionnaire{
		FormType: "divorce_intake",
		Name:     "Divorce Filing Intake",
		Sections: []model.Section{
			{
				ID:    "children",
				Title: "Children",
				Questions: []model.Question{
					{
						ID: "q_has_children", Field: "hasChildren", Kind: model.InputYesNo, Required: true,
						Validation: []model.ValidationRule{
							{Kind: model.ValidationRequired, Message: "answer required"},
						},
					},
					{
						ID: "q_number_of_children", Field: "numberOfChildren", Kind: model.InputNumber, Required: true,
						VisibleIf: []model.VisibilityRule{
							{Field: "hasChildren", Operator: model.OpEquals, Value: "yes"},
						},
						Validation: []model.ValidationRule{
							{Kind: model.ValidationRequired, Message: "count required"},
							{Kind: model.ValidationMin, Value: float64(1), Message: "at least one"},
						},
					},
				},
			},
		},
	}
}

func TestVisibleSectionsDeclaredOrderWithoutRules(t *testing.T) {
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{ID: "a", Questions: []model.Question{{ID: "qa", Field: "fa"}}},
			{ID: "b", Questions: []model.Question{{ID: "qb", Field: "fb"}}},
			{ID: "c", Questions: []model.Question{{ID: "qc", Field: "fc"}}},
		},
	}
	eng := New(schema, nil)

	sections := eng.VisibleSections()
	require.Len(t, sections, 3)
	assert.Equal(t, "a", sections[0].ID)
	assert.Equal(t, "b", sections[1].ID)
	assert.Equal(t, "c", sections[2].ID)

	questions := eng.VisibleQuestions("b")
	require.Len(t, questions, 1)
	assert.Equal(t, "qb", questions[0].ID)
}

func TestVisibleQuestionsUnknownSection(t *testing.T) {
	eng := New(intakeSchema(), nil)
	assert.Empty(t, eng.VisibleQuestions("no_such_section"))
}

func TestSectionVisibilityRules(t *testing.T) {
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{ID: "always", Questions: []model.Question{{ID: "q1", Field: "f1"}}},
			{
				ID: "contested_only",
				VisibleIf: []model.VisibilityRule{
					{Field: "filingType", Operator: model.OpEquals, Value: "contested"},
				},
				Questions: []model.Question{{ID: "q2", Field: "f2"}},
			},
		},
	}

	eng := New(schema, model.AnswerSet{"filingType": "uncontested"})
	sections := eng.VisibleSections()
	require.Len(t, sections, 1)
	assert.Equal(t, "always", sections[0].ID)

	eng.UpdateResponses(model.AnswerSet{"filingType": "contested"})
	assert.Len(t, eng.VisibleSections(), 2)
}

func TestValidateQuestionCollectsAllFailures(t *testing.T) {
	q := model.Question{
		ID: "q", Field: "zip", Required: true,
		Validation: []model.ValidationRule{
			{Kind: model.ValidationPattern, Value: `^\d{5}$`, Message: "five digits"},
			{Kind: model.ValidationMin, Value: float64(10000), Message: "numeric zip"},
		},
	}
	eng := New(&model.Questionnaire{}, nil)

	result := eng.ValidateQuestion(q, "abc")
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"five digits", "numeric zip"}, result.Errors)
}

func TestValidateAllSkipsHiddenQuestions(t *testing.T) {
	// numberOfChildren holds a stale invalid value but is hidden once
	// hasChildren flips to "no"
	answers := model.AnswerSet{"hasChildren": "yes", "numberOfChildren": float64(0)}
	eng := New(intakeSchema(), answers)

	result := eng.ValidateAll()
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "q_number_of_children")

	eng.UpdateResponses(model.AnswerSet{"hasChildren": "no"})
	result = eng.ValidateAll()
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	// The stale value is still in the answer set; merge never deletes
	assert.Equal(t, float64(0), eng.Answers()["numberOfChildren"])
}

func TestProgressEndToEnd(t *testing.T) {
	eng := New(intakeSchema(), model.AnswerSet{"hasChildren": "no"})

	questions := eng.VisibleQuestions("children")
	require.Len(t, questions, 1)
	assert.Equal(t, "q_has_children", questions[0].ID)

	assert.True(t, eng.ValidateAll().Valid)

	progress := eng.Progress()
	assert.Equal(t, 1, progress.TotalSections)
	assert.Equal(t, []int{0}, progress.CompletedSections)
	assert.Equal(t, []string{"q_has_children"}, progress.AnsweredQuestions)
	assert.Equal(t, 100, progress.Percentage)
}

func TestProgressZeroVisibleSections(t *testing.T) {
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{
				ID: "hidden",
				VisibleIf: []model.VisibilityRule{
					{Field: "never", Operator: model.OpEquals, Value: "set"},
				},
				Questions: []model.Question{{ID: "q", Field: "f", Required: true}},
			},
		},
	}
	progress := New(schema, nil).Progress()
	assert.Equal(t, 0, progress.TotalSections)
	assert.Equal(t, 0, progress.Percentage)
}

func TestProgressPercentageBounds(t *testing.T) {
	eng := New(intakeSchema(), nil)
	progress := eng.Progress()
	assert.GreaterOrEqual(t, progress.Percentage, 0)
	assert.LessOrEqual(t, progress.Percentage, 100)
	assert.Equal(t, 0, progress.Percentage)

	// Half complete rounds to the nearest integer
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{ID: "a", Questions: []model.Question{{ID: "qa", Field: "fa", Required: true}}},
			{ID: "b", Questions: []model.Question{{ID: "qb", Field: "fb", Required: true}}},
			{ID: "c", Questions: []model.Question{{ID: "qc", Field: "fc", Required: true}}},
		},
	}
	progress = New(schema, model.AnswerSet{"fa": "done"}).Progress()
	assert.Equal(t, 33, progress.Percentage)
}

func TestProgressCompletionIsNonEmptinessNotValidity(t *testing.T) {
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{
				ID: "dates",
				Questions: []model.Question{
					{
						ID: "q_date", Field: "marriageDate", Required: true,
						Validation: []model.ValidationRule{
							{Kind: model.ValidationDate, Message: "bad date"},
						},
					},
				},
			},
		},
	}
	eng := New(schema, model.AnswerSet{"marriageDate": "not a date"})

	// Complete by the progress definition, invalid by full validation
	assert.Equal(t, 100, eng.Progress().Percentage)
	assert.False(t, eng.ValidateAll().Valid)
}

func TestProgressSectionWithoutRequiredQuestionsNeverCompletes(t *testing.T) {
	schema := &model.Questionnaire{
		Sections: []model.Section{
			{ID: "optional", Questions: []model.Question{{ID: "q", Field: "f"}}},
		},
	}
	progress := New(schema, model.AnswerSet{"f": "answered"}).Progress()
	assert.Equal(t, 1, progress.TotalSections)
	assert.Empty(t, progress.CompletedSections)
	assert.Equal(t, 0, progress.Percentage)
	assert.Equal(t, []string{"q"}, progress.AnsweredQuestions)
}

func TestProgressExcludesHiddenRequiredQuestions(t *testing.T) {
	// Required numberOfChildren is hidden when hasChildren is "no", so it
	// must not block completion; its stale value must not count as answered
	answers := model.AnswerSet{"hasChildren": "no", "numberOfChildren": float64(2)}
	progress := New(intakeSchema(), answers).Progress()

	assert.Equal(t, []int{0}, progress.CompletedSections)
	assert.Equal(t, []string{"q_has_children"}, progress.AnsweredQuestions)
	assert.Equal(t, 100, progress.Percentage)
}

func TestUpdateResponsesShallowMerge(t *testing.T) {
	eng := New(intakeSchema(), model.AnswerSet{"hasChildren": "yes"})
	eng.UpdateResponses(model.AnswerSet{"numberOfChildren": float64(2)})
	eng.UpdateResponses(model.AnswerSet{"hasChildren": "no"})

	assert.Equal(t, "no", eng.Answers()["hasChildren"])
	assert.Equal(t, float64(2), eng.Answers()["numberOfChildren"])
}
