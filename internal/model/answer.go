package model

import "time"

// AnswerSet maps question field names to raw answer values. Values are
// strings, numbers, booleans, or string slices depending on input kind.
type AnswerSet map[string]interface{}

// Merge shallow-merges partial answers into the set. New keys overwrite old;
// existing keys are never removed.
func (a AnswerSet) Merge(partial AnswerSet) {
	for k, v := range partial {
		a[k] = v
	}
}

// Clone returns a shallow copy of the answer set
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SessionStatus tracks the lifecycle of a form session
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// FormSession is one user's in-progress answer set for one form type.
// CurrentSection and Status are bookkeeping for the surrounding dashboard;
// the engine itself never interprets them.
type FormSession struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	UserID         string        `json:"userId" bson:"userId"`
	FormType       string        `json:"formType" bson:"formType"`
	Answers        AnswerSet     `json:"answers" bson:"answers"`
	CurrentSection string        `json:"currentSection,omitempty" bson:"currentSection,omitempty"`
	Status         SessionStatus `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// QuestionValidation is the outcome of validating one question's value
type QuestionValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidationResult is the outcome of validating every visible question
type ValidationResult struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"` // question id -> messages
}

// Progress summarizes questionnaire completion. A section counts as
// completed iff it has at least one required visible question and every
// required visible question holds a non-empty value. Completion is a
// non-emptiness check, not full validation: a filled-but-invalid answer
// still counts toward the percentage.
type Progress struct {
	TotalSections     int      `json:"totalSections"`
	CompletedSections []int    `json:"completedSections"` // indices into the visible section list
	AnsweredQuestions []string `json:"answeredQuestions"` // visible question ids with non-empty values
	Percentage        int      `json:"percentage"`
}
