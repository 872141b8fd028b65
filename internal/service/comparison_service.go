package service

import (
	"context"
	"fmt"

	"filingdesk/internal/compare"
	"filingdesk/internal/model"
	"filingdesk/internal/repository"
)

// ComparisonService stores financial disclosures and compares two parties'
// disclosures on demand. Discrepancies are derived state: recomputed each
// call, never persisted.
type ComparisonService struct {
	financialRepo repository.FinancialRepo
	broadcaster   Broadcaster
}

// NewComparisonService creates a new comparison service
func NewComparisonService(financialRepo repository.FinancialRepo) *ComparisonService {
	return &ComparisonService{
		financialRepo: financialRepo,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ComparisonService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SaveDisclosure stores one party's financial disclosure. sessionID, when
// non-empty, identifies the dashboard channel to notify that comparison
// results are stale.
func (s *ComparisonService) SaveDisclosure(ctx context.Context, set *model.FinancialAnswerSet, sessionID string) error {
	if err := s.financialRepo.Upsert(ctx, set); err != nil {
		return fmt.Errorf("save disclosure for %s: %w", set.UserID, err)
	}
	if s.broadcaster != nil && sessionID != "" {
		s.broadcaster.BroadcastToWatchers(sessionID, "discrepancy_update", map[string]interface{}{
			"userId": set.UserID,
		})
	}
	return nil
}

// Compare loads both parties' disclosures and returns totals plus flagged
// discrepancies. A missing disclosure on either side compares as empty
// lists and zero totals, never as an error.
func (s *ComparisonService) Compare(ctx context.Context, userID, spouseID string) (*model.ComparisonResult, error) {
	userSet, err := s.financialRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load disclosure for %s: %w", userID, err)
	}
	spouseSet, err := s.financialRepo.GetByUserID(ctx, spouseID)
	if err != nil {
		return nil, fmt.Errorf("load disclosure for %s: %w", spouseID, err)
	}

	if userSet == nil {
		userSet = &model.FinancialAnswerSet{UserID: userID}
	}
	if spouseSet == nil {
		spouseSet = &model.FinancialAnswerSet{UserID: spouseID}
	}

	return &model.ComparisonResult{
		UserTotals:    compare.ComputeTotals(*userSet),
		SpouseTotals:  compare.ComputeTotals(*spouseSet),
		Discrepancies: compare.DetectDiscrepancies(*userSet, *spouseSet),
	}, nil
}
