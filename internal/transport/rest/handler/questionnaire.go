package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"filingdesk/internal/service"
)

// QuestionnaireHandler serves authored questionnaire schemas
type QuestionnaireHandler struct {
	questionnaireSvc *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireSvc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireSvc: questionnaireSvc}
}

// Get handles GET /v1/questionnaires/{formType}
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	formType := mux.Vars(r)["formType"]

	schema, err := h.questionnaireSvc.GetSchema(r.Context(), formType)
	if err != nil {
		if errors.Is(err, service.ErrQuestionnaireNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schema)
}
