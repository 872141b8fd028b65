package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"filingdesk/internal/docgen"
	"filingdesk/internal/model"
	"filingdesk/internal/repository"
	"filingdesk/internal/storage"
)

var (
	ErrMappingNotFound    = errors.New("no mapping table for document type")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrSessionNotComplete = errors.New("session must be completed before generating documents")
)

// MissingFieldsError reports the required mapping entries the answer set
// cannot satisfy, so the caller can surface a precise list instead of a
// template-filling failure.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// DocumentService runs the mapping + fill pipeline and persists the result
type DocumentService struct {
	mappingRepo  repository.MappingRepo
	documentRepo repository.DocumentRepo
	sessionRepo  repository.SessionRepo
	templates    *storage.TemplateStore
	broadcaster  Broadcaster
}

// NewDocumentService creates a new document service
func NewDocumentService(
	mappingRepo repository.MappingRepo,
	documentRepo repository.DocumentRepo,
	sessionRepo repository.SessionRepo,
	templates *storage.TemplateStore,
) *DocumentService {
	return &DocumentService{
		mappingRepo:  mappingRepo,
		documentRepo: documentRepo,
		sessionRepo:  sessionRepo,
		templates:    templates,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *DocumentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Generate maps a completed session's answers into the named fields of the
// document type's template, fills it best-effort, and persists the result.
// Unmet required mappings abort before any filling with a MissingFieldsError;
// per-field fill problems end up in the report, not in the error.
func (s *DocumentService) Generate(ctx context.Context, sessionID, docType string) (*model.GeneratedDocument, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != model.SessionCompleted {
		return nil, ErrSessionNotComplete
	}

	table, err := s.mappingRepo.GetByDocType(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("load mapping table %s: %w", docType, err)
	}
	if table == nil {
		return nil, ErrMappingNotFound
	}

	if v := docgen.ValidateMapping(session.Answers, table); !v.Valid {
		return nil, &MissingFieldsError{Fields: v.MissingRequired}
	}

	fields, warnings := docgen.MapAnswersToFields(session.Answers, table)

	tpl, err := s.templates.Resolve(model.TemplateHandle{ID: table.TemplateID})
	if err != nil {
		return nil, err
	}

	data, report, err := docgen.Fill(tpl, fields)
	if err != nil {
		return nil, err
	}

	doc := &model.GeneratedDocument{
		ID:         uuid.New().String(),
		SessionID:  session.ID,
		UserID:     session.UserID,
		DocType:    docType,
		TemplateID: table.TemplateID,
		Bytes:      data,
		Report:     report,
		Warnings:   warnings,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(session.ID, "document_ready", map[string]interface{}{
			"sessionId":  session.ID,
			"documentId": doc.ID,
			"docType":    docType,
			"warnings":   warnings,
		})
	}
	return doc, nil
}

// GetDocument returns a generated document by id
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*model.GeneratedDocument, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// ListBySession returns the documents generated for a session, newest first
func (s *DocumentService) ListBySession(ctx context.Context, sessionID string) ([]*model.GeneratedDocument, error) {
	return s.documentRepo.GetBySessionID(ctx, sessionID)
}
