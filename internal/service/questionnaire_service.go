package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"filingdesk/internal/cache"
	"filingdesk/internal/engine"
	"filingdesk/internal/model"
	"filingdesk/internal/repository"
)

var (
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionNotOpen        = errors.New("session is not in progress")
	ErrSessionInvalid        = errors.New("session answers failed validation")
)

// SessionState is the engine-derived view of a session returned after reads
// and updates: what is visible right now, and how far along the filer is.
type SessionState struct {
	Session         *model.FormSession `json:"session"`
	VisibleSections []model.Section    `json:"visibleSections"`
	Progress        model.Progress     `json:"progress"`
}

// QuestionnaireService owns the session lifecycle: starting/resuming
// sessions, merging responses, and answering visibility/validation/progress
// queries through a per-call engine instance.
type QuestionnaireService struct {
	questionnaireRepo repository.QuestionnaireRepo
	sessionRepo       repository.SessionRepo
	sessionCache      cache.SessionCache
	progressCache     cache.ProgressCache
	broadcaster       Broadcaster
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(
	questionnaireRepo repository.QuestionnaireRepo,
	sessionRepo repository.SessionRepo,
	sessionCache cache.SessionCache,
	progressCache cache.ProgressCache,
) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaireRepo: questionnaireRepo,
		sessionRepo:       sessionRepo,
		sessionCache:      sessionCache,
		progressCache:     progressCache,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QuestionnaireService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetSchema returns the authored questionnaire for a form type
func (s *QuestionnaireService) GetSchema(ctx context.Context, formType string) (*model.Questionnaire, error) {
	schema, err := s.questionnaireRepo.GetByFormType(ctx, formType)
	if err != nil {
		return nil, fmt.Errorf("load questionnaire %s: %w", formType, err)
	}
	if schema == nil {
		return nil, ErrQuestionnaireNotFound
	}
	return schema, nil
}

// StartSession creates a session for (user, form type), or resumes the
// user's existing in-progress session for that form
func (s *QuestionnaireService) StartSession(ctx context.Context, userID, formType string) (*model.FormSession, error) {
	if _, err := s.GetSchema(ctx, formType); err != nil {
		return nil, err
	}

	existing, err := s.sessionRepo.GetByUserAndForm(ctx, userID, formType)
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	session := &model.FormSession{
		ID:       uuid.New().String(),
		UserID:   userID,
		FormType: formType,
		Answers:  model.AnswerSet{},
		Status:   model.SessionInProgress,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("Warning: failed to cache session %s: %v", session.ID, err)
	}
	return session, nil
}

// GetSession loads a session, cache first
func (s *QuestionnaireService) GetSession(ctx context.Context, sessionID string) (*model.FormSession, error) {
	session, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: session cache read failed for %s: %v", sessionID, err)
	}
	if session == nil {
		session, err = s.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetState returns the current engine-derived state of a session
func (s *QuestionnaireService) GetState(ctx context.Context, sessionID string) (*SessionState, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SessionState{
		Session:         session,
		VisibleSections: eng.VisibleSections(),
		Progress:        eng.Progress(),
	}, nil
}

// UpdateResponses shallow-merges partial answers into a session and returns
// the refreshed state. currentSection is dashboard bookkeeping; empty leaves
// it unchanged.
func (s *QuestionnaireService) UpdateResponses(ctx context.Context, sessionID string, partial model.AnswerSet, currentSection string) (*SessionState, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, ErrSessionNotOpen
	}

	eng, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}
	eng.UpdateResponses(partial)
	if currentSection != "" {
		session.CurrentSection = currentSection
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("Warning: failed to cache session %s: %v", session.ID, err)
	}

	progress := eng.Progress()
	if err := s.progressCache.Set(ctx, session.ID, &progress); err != nil {
		log.Printf("Warning: failed to cache progress for %s: %v", session.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(session.ID, "progress_update", map[string]interface{}{
			"sessionId": session.ID,
			"progress":  progress,
		})
	}

	return &SessionState{
		Session:         session,
		VisibleSections: eng.VisibleSections(),
		Progress:        progress,
	}, nil
}

// Validate runs full validation over the session's visible questions
func (s *QuestionnaireService) Validate(ctx context.Context, sessionID string) (*model.ValidationResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}
	result := eng.ValidateAll()
	return &result, nil
}

// Complete marks a session completed. Completion requires full validation to
// pass: progress alone measures non-emptiness and can read 100% while an
// answer is still invalid.
func (s *QuestionnaireService) Complete(ctx context.Context, sessionID string) (*model.FormSession, *model.ValidationResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, nil, ErrSessionNotOpen
	}

	eng, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	result := eng.ValidateAll()
	if !result.Valid {
		return nil, &result, ErrSessionInvalid
	}

	session.Status = model.SessionCompleted
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}
	if err := s.sessionCache.Delete(ctx, session.ID); err != nil {
		log.Printf("Warning: failed to evict session %s: %v", session.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(session.ID, "session_completed", map[string]interface{}{
			"sessionId": session.ID,
			"formType":  session.FormType,
		})
	}
	return session, &result, nil
}

// Progress returns the cached progress snapshot when present, recomputing
// on a miss
func (s *QuestionnaireService) Progress(ctx context.Context, sessionID string) (*model.Progress, error) {
	cached, err := s.progressCache.Get(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: progress cache read failed for %s: %v", sessionID, err)
	}
	if cached != nil {
		return cached, nil
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng, err := s.engineFor(ctx, session)
	if err != nil {
		return nil, err
	}
	progress := eng.Progress()
	return &progress, nil
}

func (s *QuestionnaireService) engineFor(ctx context.Context, session *model.FormSession) (*engine.Engine, error) {
	schema, err := s.GetSchema(ctx, session.FormType)
	if err != nil {
		return nil, err
	}
	if session.Answers == nil {
		session.Answers = model.AnswerSet{}
	}
	return engine.New(schema, session.Answers), nil
}
