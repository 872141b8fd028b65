package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"filingdesk/internal/model"
	"filingdesk/internal/service"
)

// SessionHandler handles form session endpoints
type SessionHandler struct {
	questionnaireSvc *service.QuestionnaireService
	tokenSvc         *service.TokenService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(questionnaireSvc *service.QuestionnaireService, tokenSvc *service.TokenService) *SessionHandler {
	return &SessionHandler{
		questionnaireSvc: questionnaireSvc,
		tokenSvc:         tokenSvc,
	}
}

// StartSessionRequest is the request body for starting a session
type StartSessionRequest struct {
	UserID   string `json:"userId"`
	FormType string `json:"formType"`
}

// UpdateResponsesRequest is the request body for merging partial answers
type UpdateResponsesRequest struct {
	Answers        model.AnswerSet `json:"answers"`
	CurrentSection string          `json:"currentSection,omitempty"`
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.FormType == "" {
		writeError(w, http.StatusBadRequest, "userId and formType are required")
		return
	}

	session, err := h.questionnaireSvc.StartSession(r.Context(), req.UserID, req.FormType)
	if err != nil {
		if errors.Is(err, service.ErrQuestionnaireNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.tokenSvc.Issue(session.ID, session.UserID, session.FormType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	writeJSON(w, http.StatusCreated, model.StartSessionResponse{
		Session: session,
		Token:   token,
	})
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	state, err := h.questionnaireSvc.GetState(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateResponses handles PATCH /v1/sessions/{sessionId}/responses
func (h *SessionHandler) UpdateResponses(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateResponsesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 && req.CurrentSection == "" {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	state, err := h.questionnaireSvc.UpdateResponses(r.Context(), sessionID, req.Answers, req.CurrentSection)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionNotOpen):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Validate handles GET /v1/sessions/{sessionId}/validation
func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.questionnaireSvc.Validate(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Progress handles GET /v1/sessions/{sessionId}/progress
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	progress, err := h.questionnaireSvc.Progress(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Complete handles POST /v1/sessions/{sessionId}/complete
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, validation, err := h.questionnaireSvc.Complete(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionNotOpen):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSessionInvalid):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":      err.Error(),
				"validation": validation,
			})
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session":    session,
		"validation": validation,
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
