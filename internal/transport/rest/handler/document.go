package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"filingdesk/internal/service"
)

// DocumentHandler handles document generation and download endpoints
type DocumentHandler struct {
	documentSvc *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentSvc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// Generate handles POST /v1/sessions/{sessionId}/documents/{docType}
func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	docType := vars["docType"]

	doc, err := h.documentSvc.Generate(r.Context(), sessionID, docType)
	if err != nil {
		var missing *service.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":         "missing required fields",
				"missingFields": missing.Fields,
			})
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrMappingNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionNotComplete):
			writeError(w, http.StatusConflict, err.Error())
		default:
			// Template load/serialize failures land here: the one hard
			// failure of the pipeline
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// List handles GET /v1/sessions/{sessionId}/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	docs, err := h.documentSvc.ListBySession(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// Get handles GET /v1/documents/{documentId}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	doc, err := h.documentSvc.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Download handles GET /v1/documents/{documentId}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	doc, err := h.documentSvc.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.DocType+`.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Bytes)
}
