package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// ReconciliationUseCase checks cached stock card balances against their history.
type ReconciliationUseCase struct {
	cardRepo     StockCardRepository
	lineItemRepo LineItemRepository
	clock        Clock
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	cardRepo StockCardRepository,
	lineItemRepo LineItemRepository,
	clock Clock,
) *ReconciliationUseCase {
	if clock == nil {
		clock = SystemClock{}
	}

	return &ReconciliationUseCase{
		cardRepo:     cardRepo,
		lineItemRepo: lineItemRepo,
		clock:        clock,
	}
}

// SnapshotMismatch is a line item whose stored before/after balances, or
// physical count reason, differ from a replay of the history preceding it.
type SnapshotMismatch struct {
	LineItemID                    string
	Sequence                      int64
	RecordedPreviousStockOnHand   int
	RecordedStockOnHand           int
	CalculatedPreviousStockOnHand int
	CalculatedStockOnHand         int
	RecordedReasonID              string
	CalculatedReasonID            string
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	StockCardID           string
	RecordedStockOnHand   int
	CalculatedStockOnHand int
	Difference            int
	LineItemCount         int
	SnapshotMismatches    []SnapshotMismatch
	IsReconciled          bool
	LastChecked           time.Time
}

// ReconcileCard replays a card's full history from zero and compares the
// outcome with the cached balance and with every stored line item snapshot.
func (uc *ReconciliationUseCase) ReconcileCard(ctx context.Context, stockCardID string) (*ReconciliationResult, error) {
	card, err := uc.cardRepo.GetByID(ctx, stockCardID)
	if err != nil {
		return nil, err
	}

	items, err := uc.lineItemRepo.ListAllByStockCard(ctx, stockCardID)
	if err != nil {
		return nil, err
	}

	replay, err := domain.Replay(items, 0, domain.NegativeStockAllow)
	if err != nil {
		return nil, fmt.Errorf("replay stock card %s: %w", stockCardID, err)
	}

	result := &ReconciliationResult{
		StockCardID:           stockCardID,
		RecordedStockOnHand:   card.StockOnHand,
		CalculatedStockOnHand: replay.StockOnHand,
		Difference:            card.StockOnHand - replay.StockOnHand,
		LineItemCount:         len(items),
		SnapshotMismatches:    make([]SnapshotMismatch, 0),
		LastChecked:           uc.clock.Now(),
	}

	for i, step := range replay.Steps {
		item := items[i]
		recordedReason, calculatedReason := reasonID(item.Reason), reasonID(step.Reason)
		if item.PreviousStockOnHand == step.PreviousStockOnHand &&
			item.StockOnHand == step.StockOnHand &&
			recordedReason == calculatedReason {
			continue
		}

		result.SnapshotMismatches = append(result.SnapshotMismatches, SnapshotMismatch{
			LineItemID:                    item.ID,
			Sequence:                      item.Sequence,
			RecordedPreviousStockOnHand:   item.PreviousStockOnHand,
			RecordedStockOnHand:           item.StockOnHand,
			CalculatedPreviousStockOnHand: step.PreviousStockOnHand,
			CalculatedStockOnHand:         step.StockOnHand,
			RecordedReasonID:              recordedReason,
			CalculatedReasonID:            calculatedReason,
		})
	}

	result.IsReconciled = result.Difference == 0 && len(result.SnapshotMismatches) == 0

	return result, nil
}

// ReconcileAllCards reconciles every stock card, page by page.
func (uc *ReconciliationUseCase) ReconcileAllCards(ctx context.Context) ([]*ReconciliationResult, error) {
	results := make([]*ReconciliationResult, 0)

	for offset := 0; ; offset += maxPageSize {
		cards, err := uc.cardRepo.List(ctx, maxPageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, card := range cards {
			result, err := uc.ReconcileCard(ctx, card.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile stock card %s: %w", card.ID, err)
			}
			results = append(results, result)
		}

		if len(cards) < maxPageSize {
			return results, nil
		}
	}
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalCards      int
	ReconciledCards int
	Discrepancies   []*ReconciliationResult
	CheckedAt       time.Time
}

// GenerateReconciliationReport reconciles all cards and collects the ones that disagree.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllCards(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalCards:    len(results),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     uc.clock.Now(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledCards++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}

func reasonID(r *domain.Reason) string {
	if r == nil {
		return ""
	}
	return r.ID
}
