package engine

import (
	"math"

	"filingdesk/internal/model"
)

// Engine evaluates one questionnaire schema against one answer set. The
// schema is read-only; the answer set belongs to exactly one session for the
// engine's lifetime. Callers needing multi-writer safety serialize updates
// outside the engine.
type Engine struct {
	schema     *model.Questionnaire
	answers    model.AnswerSet
	predicates map[string]PredicateFunc
}

// New creates an engine over a schema and an answer set. A nil answer set is
// treated as empty.
func New(schema *model.Questionnaire, answers model.AnswerSet) *Engine {
	if answers == nil {
		answers = model.AnswerSet{}
	}
	return &Engine{
		schema:     schema,
		answers:    answers,
		predicates: map[string]PredicateFunc{},
	}
}

// RegisterPredicate installs a named predicate for custom validation rules
func (e *Engine) RegisterPredicate(name string, fn PredicateFunc) {
	e.predicates[name] = fn
}

// Answers returns the engine's current answer set
func (e *Engine) Answers() model.AnswerSet {
	return e.answers
}

// UpdateResponses shallow-merges partial answers into the answer set.
// Existing keys are never removed.
func (e *Engine) UpdateResponses(partial model.AnswerSet) {
	e.answers.Merge(partial)
}

// VisibleSections returns the sections whose visibility rules pass, in
// declared order
func (e *Engine) VisibleSections() []model.Section {
	visible := []model.Section{}
	for _, section := range e.schema.Sections {
		if EvaluateVisibility(section.VisibleIf, e.answers) {
			visible = append(visible, section)
		}
	}
	return visible
}

// VisibleQuestions returns the visible questions of one section, in declared
// order. An unknown section id yields an empty list: schemas are authored
// data and a dangling reference should degrade, not error.
func (e *Engine) VisibleQuestions(sectionID string) []model.Question {
	section := e.schema.SectionByID(sectionID)
	if section == nil {
		return []model.Question{}
	}
	visible := []model.Question{}
	for _, q := range section.Questions {
		if EvaluateVisibility(q.VisibleIf, e.answers) {
			visible = append(visible, q)
		}
	}
	return visible
}

// ValidateQuestion runs every validation rule against a candidate value in
// declared order, collecting all failures rather than stopping at the first
func (e *Engine) ValidateQuestion(q model.Question, value interface{}) model.QuestionValidation {
	errs := []string{}
	for _, rule := range q.Validation {
		if msg := EvaluateValidation(rule, value, q, e.predicates); msg != "" {
			errs = append(errs, msg)
		}
	}
	return model.QuestionValidation{Valid: len(errs) == 0, Errors: errs}
}

// ValidateAll validates every visible question's current answer. Hidden
// questions are never validated, even when they hold stale values from a
// previously visible state.
func (e *Engine) ValidateAll() model.ValidationResult {
	result := model.ValidationResult{Valid: true, Errors: map[string][]string{}}
	for _, section := range e.VisibleSections() {
		for _, q := range e.VisibleQuestions(section.ID) {
			qv := e.ValidateQuestion(q, e.answers[q.Field])
			if !qv.Valid {
				result.Valid = false
				result.Errors[q.ID] = qv.Errors
			}
		}
	}
	return result
}

// Progress computes completion over the visible sections. A section is
// completed iff it has at least one required visible question and every one
// of them holds a non-empty value. Values hidden questions left behind are
// excluded from both answered and required accounting.
func (e *Engine) Progress() model.Progress {
	sections := e.VisibleSections()
	progress := model.Progress{
		TotalSections:     len(sections),
		CompletedSections: []int{},
		AnsweredQuestions: []string{},
	}

	for i, section := range sections {
		requiredCount := 0
		requiredAnswered := 0
		for _, q := range e.VisibleQuestions(section.ID) {
			answered := !isEmptyValue(e.answers[q.Field])
			if answered {
				progress.AnsweredQuestions = append(progress.AnsweredQuestions, q.ID)
			}
			if q.Required {
				requiredCount++
				if answered {
					requiredAnswered++
				}
			}
		}
		if requiredCount > 0 && requiredAnswered == requiredCount {
			progress.CompletedSections = append(progress.CompletedSections, i)
		}
	}

	if len(sections) > 0 {
		progress.Percentage = int(math.Round(float64(len(progress.CompletedSections)) / float64(len(sections)) * 100))
	}
	return progress
}
