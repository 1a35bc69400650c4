package dto

import (
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// StockCardResponse represents a stock card in API responses.
type StockCardResponse struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facility_id"`
	ProgramID   string    `json:"program_id"`
	OrderableID string    `json:"orderable_id"`
	StockOnHand int       `json:"stock_on_hand"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockCardFromDomain converts domain stock card to response.
func StockCardFromDomain(c *domain.StockCard) *StockCardResponse {
	return &StockCardResponse{
		ID:          c.ID,
		FacilityID:  c.FacilityID,
		ProgramID:   c.ProgramID,
		OrderableID: c.OrderableID,
		StockOnHand: c.StockOnHand,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// StockCardsFromDomain converts domain stock cards to responses.
func StockCardsFromDomain(cards []*domain.StockCard) []*StockCardResponse {
	result := make([]*StockCardResponse, len(cards))
	for i, c := range cards {
		result[i] = StockCardFromDomain(c)
	}
	return result
}

// ReasonResponse represents a reason in API responses.
type ReasonResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Type              string    `json:"type"`
	Category          string    `json:"category"`
	IsFreeTextAllowed bool      `json:"is_free_text_allowed"`
	CreatedAt         time.Time `json:"created_at"`
}

// ReasonFromDomain converts domain reason to response. A nil reason stays nil.
func ReasonFromDomain(r *domain.Reason) *ReasonResponse {
	if r == nil {
		return nil
	}
	return &ReasonResponse{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		Type:              string(r.Type),
		Category:          string(r.Category),
		IsFreeTextAllowed: r.IsFreeTextAllowed,
		CreatedAt:         r.CreatedAt,
	}
}

// ReasonsFromDomain converts domain reasons to responses.
func ReasonsFromDomain(reasons []*domain.Reason) []*ReasonResponse {
	result := make([]*ReasonResponse, len(reasons))
	for i, r := range reasons {
		result[i] = ReasonFromDomain(r)
	}
	return result
}

// NodeResponse represents a node in API responses.
type NodeResponse struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	IsRefDataFacility bool      `json:"is_ref_data_facility"`
	CreatedAt         time.Time `json:"created_at"`
}

// NodeFromDomain converts domain node to response. A nil node stays nil.
func NodeFromDomain(n *domain.Node) *NodeResponse {
	if n == nil {
		return nil
	}
	return &NodeResponse{
		ID:                n.ID,
		Code:              n.Code,
		Name:              n.Name,
		IsRefDataFacility: n.IsRefDataFacility,
		CreatedAt:         n.CreatedAt,
	}
}

// NodesFromDomain converts domain nodes to responses.
func NodesFromDomain(nodes []*domain.Node) []*NodeResponse {
	result := make([]*NodeResponse, len(nodes))
	for i, n := range nodes {
		result[i] = NodeFromDomain(n)
	}
	return result
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID                  string          `json:"id"`
	StockCardID         string          `json:"stock_card_id"`
	OriginEventID       string          `json:"origin_event_id"`
	Sequence            int64           `json:"sequence"`
	Kind                string          `json:"kind"`
	Quantity            int             `json:"quantity"`
	Reason              *ReasonResponse `json:"reason,omitempty"`
	Source              *NodeResponse   `json:"source,omitempty"`
	Destination         *NodeResponse   `json:"destination,omitempty"`
	SourceFreeText      string          `json:"source_free_text,omitempty"`
	DestinationFreeText string          `json:"destination_free_text,omitempty"`
	DocumentNumber      string          `json:"document_number,omitempty"`
	ReasonFreeText      string          `json:"reason_free_text,omitempty"`
	Signature           string          `json:"signature,omitempty"`
	OccurredDate        time.Time       `json:"occurred_date"`
	NoticedDate         time.Time       `json:"noticed_date"`
	RecordedDate        time.Time       `json:"recorded_date"`
	UserID              string          `json:"user_id"`
	PreviousStockOnHand int             `json:"previous_stock_on_hand"`
	StockOnHand         int             `json:"stock_on_hand"`
}

// LineItemFromDomain converts domain line item to response.
func LineItemFromDomain(li *domain.LineItem) *LineItemResponse {
	return &LineItemResponse{
		ID:                  li.ID,
		StockCardID:         li.StockCardID,
		OriginEventID:       li.OriginEventID,
		Sequence:            li.Sequence,
		Kind:                li.Kind.String(),
		Quantity:            li.Quantity,
		Reason:              ReasonFromDomain(li.Reason),
		Source:              NodeFromDomain(li.Source),
		Destination:         NodeFromDomain(li.Destination),
		SourceFreeText:      li.SourceFreeText,
		DestinationFreeText: li.DestinationFreeText,
		DocumentNumber:      li.DocumentNumber,
		ReasonFreeText:      li.ReasonFreeText,
		Signature:           li.Signature,
		OccurredDate:        li.OccurredDate,
		NoticedDate:         li.NoticedDate,
		RecordedDate:        li.RecordedDate,
		UserID:              li.UserID,
		PreviousStockOnHand: li.PreviousStockOnHand,
		StockOnHand:         li.StockOnHand,
	}
}

// LineItemsFromDomain converts domain line items to responses.
func LineItemsFromDomain(items []*domain.LineItem) []*LineItemResponse {
	result := make([]*LineItemResponse, len(items))
	for i, li := range items {
		result[i] = LineItemFromDomain(li)
	}
	return result
}

// RecordMovementResponse is returned after a stock event is committed.
type RecordMovementResponse struct {
	StockCardID string              `json:"stock_card_id"`
	StockOnHand int                 `json:"stock_on_hand"`
	LineItems   []*LineItemResponse `json:"line_items"`
}

// RecordMovementFromResult converts a use case result to response.
func RecordMovementFromResult(stockCardID string, res *usecase.RecordMovementResult) *RecordMovementResponse {
	return &RecordMovementResponse{
		StockCardID: stockCardID,
		StockOnHand: res.StockOnHand,
		LineItems:   LineItemsFromDomain(res.LineItems),
	}
}

// StockOnHandResponse is the balance of a card as of a date.
type StockOnHandResponse struct {
	StockCardID string    `json:"stock_card_id"`
	At          time.Time `json:"at"`
	StockOnHand int       `json:"stock_on_hand"`
	LineItems   int       `json:"line_items"`
}

// StockOnHandFromDomain converts a historical balance to response.
func StockOnHandFromDomain(s *usecase.StockOnHandAt) *StockOnHandResponse {
	return &StockOnHandResponse{
		StockCardID: s.StockCardID,
		At:          s.At,
		StockOnHand: s.StockOnHand,
		LineItems:   s.LineItems,
	}
}

// SnapshotMismatchResponse is a line item whose stored balances or physical
// count reason disagree with replay.
type SnapshotMismatchResponse struct {
	LineItemID                    string `json:"line_item_id"`
	Sequence                      int64  `json:"sequence"`
	RecordedPreviousStockOnHand   int    `json:"recorded_previous_stock_on_hand"`
	RecordedStockOnHand           int    `json:"recorded_stock_on_hand"`
	CalculatedPreviousStockOnHand int    `json:"calculated_previous_stock_on_hand"`
	CalculatedStockOnHand         int    `json:"calculated_stock_on_hand"`
	RecordedReasonID              string `json:"recorded_reason_id,omitempty"`
	CalculatedReasonID            string `json:"calculated_reason_id,omitempty"`
}

// ReconciliationResponse is the outcome of reconciling one card.
type ReconciliationResponse struct {
	StockCardID           string                     `json:"stock_card_id"`
	RecordedStockOnHand   int                        `json:"recorded_stock_on_hand"`
	CalculatedStockOnHand int                        `json:"calculated_stock_on_hand"`
	Difference            int                        `json:"difference"`
	LineItemCount         int                        `json:"line_item_count"`
	SnapshotMismatches    []SnapshotMismatchResponse `json:"snapshot_mismatches"`
	IsReconciled          bool                       `json:"is_reconciled"`
	LastChecked           time.Time                  `json:"last_checked"`
}

// ReconciliationFromResult converts a reconciliation result to response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	mismatches := make([]SnapshotMismatchResponse, len(r.SnapshotMismatches))
	for i, m := range r.SnapshotMismatches {
		mismatches[i] = SnapshotMismatchResponse(m)
	}

	return &ReconciliationResponse{
		StockCardID:           r.StockCardID,
		RecordedStockOnHand:   r.RecordedStockOnHand,
		CalculatedStockOnHand: r.CalculatedStockOnHand,
		Difference:            r.Difference,
		LineItemCount:         r.LineItemCount,
		SnapshotMismatches:    mismatches,
		IsReconciled:          r.IsReconciled,
		LastChecked:           r.LastChecked,
	}
}

// ReconciliationReportResponse summarizes reconciliation across all cards.
type ReconciliationReportResponse struct {
	TotalCards      int                       `json:"total_cards"`
	ReconciledCards int                       `json:"reconciled_cards"`
	Discrepancies   []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt       time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromDomain converts a report to response.
func ReconciliationReportFromDomain(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromResult(d)
	}

	return &ReconciliationReportResponse{
		TotalCards:      r.TotalCards,
		ReconciledCards: r.ReconciledCards,
		Discrepancies:   discrepancies,
		CheckedAt:       r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
