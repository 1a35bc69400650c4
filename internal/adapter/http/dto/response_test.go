package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

func TestLineItemFromDomain_PhysicalCountOmitsReferences(t *testing.T) {
	item := &domain.LineItem{
		ID:           "li-1",
		StockCardID:  "card-1",
		Sequence:     1,
		Kind:         domain.KindPhysicalCount,
		Quantity:     15,
		OccurredDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StockOnHand:  15,
	}

	raw, err := json.Marshal(LineItemFromDomain(item))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(raw)
	if !strings.Contains(body, `"kind":"PHYSICAL_COUNT"`) {
		t.Fatalf("expected kind in body: %s", body)
	}
	for _, field := range []string{`"reason"`, `"source"`, `"destination"`} {
		if strings.Contains(body, field) {
			t.Fatalf("expected %s to be omitted: %s", field, body)
		}
	}
}

func TestLineItemFromDomain_CarriesReferences(t *testing.T) {
	item := &domain.LineItem{
		Kind:        domain.KindDebit,
		Reason:      &domain.Reason{ID: "r-1", Type: domain.ReasonTypeDebit},
		Destination: &domain.Node{ID: "n-1", Code: "CL"},
	}

	got := LineItemFromDomain(item)

	if got.Reason == nil || got.Reason.Type != "DEBIT" {
		t.Fatalf("expected reason, got %+v", got.Reason)
	}
	if got.Destination == nil || got.Destination.Code != "CL" || got.Source != nil {
		t.Fatalf("unexpected nodes %+v %+v", got.Source, got.Destination)
	}
}

func TestReconciliationReportFromDomain(t *testing.T) {
	report := &usecase.ReconciliationReport{
		TotalCards:      2,
		ReconciledCards: 1,
		Discrepancies: []*usecase.ReconciliationResult{{
			StockCardID: "card-2",
			Difference:  3,
			SnapshotMismatches: []usecase.SnapshotMismatch{{
				LineItemID:            "li-9",
				RecordedStockOnHand:   10,
				CalculatedStockOnHand: 7,
				RecordedReasonID:      "r-1",
				CalculatedReasonID:    "r-2",
			}},
		}},
	}

	got := ReconciliationReportFromDomain(report)

	if got.TotalCards != 2 || len(got.Discrepancies) != 1 {
		t.Fatalf("unexpected report %+v", got)
	}
	d := got.Discrepancies[0]
	if d.Difference != 3 || len(d.SnapshotMismatches) != 1 || d.SnapshotMismatches[0].CalculatedStockOnHand != 7 {
		t.Fatalf("unexpected discrepancy %+v", d)
	}
	if m := d.SnapshotMismatches[0]; m.RecordedReasonID != "r-1" || m.CalculatedReasonID != "r-2" {
		t.Fatalf("unexpected mismatch reasons %+v", m)
	}
}
