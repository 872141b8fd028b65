package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"filingdesk/internal/model"
	"filingdesk/internal/service"
)

// ComparisonHandler handles financial disclosure endpoints
type ComparisonHandler struct {
	comparisonSvc *service.ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisonSvc *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonSvc: comparisonSvc}
}

// SaveDisclosureRequest is the request body for storing a disclosure
type SaveDisclosureRequest struct {
	Income    []model.LineItem `json:"income"`
	Expenses  []model.LineItem `json:"expenses"`
	Assets    []model.LineItem `json:"assets"`
	Debts     []model.LineItem `json:"debts"`
	SessionID string           `json:"sessionId,omitempty"` // dashboard channel to notify
}

// SaveDisclosure handles PUT /v1/financial/{userId}
func (h *ComparisonHandler) SaveDisclosure(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req SaveDisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	set := &model.FinancialAnswerSet{
		UserID:   userID,
		Income:   req.Income,
		Expenses: req.Expenses,
		Assets:   req.Assets,
		Debts:    req.Debts,
	}
	if err := h.comparisonSvc.SaveDisclosure(r.Context(), set, req.SessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
}

// Compare handles GET /v1/financial/{userId}/comparison?spouse={spouseId}
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	spouseID := r.URL.Query().Get("spouse")
	if spouseID == "" {
		writeError(w, http.StatusBadRequest, "spouse query param is required")
		return
	}

	result, err := h.comparisonSvc.Compare(r.Context(), userID, spouseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
