package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
	"github.com/iho/stockledger/tests/testutil"
)

func TestStockEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	day := func(n int) time.Time {
		return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
	}

	t.Run("count, receipt and issue update the cached balance", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockAllow)

		card := testDB.CreateTestStockCard(ctx, "ord-1")
		warehouse := testDB.CreateTestNode(ctx, "WH")
		clinic := testDB.CreateTestNode(ctx, "CL")
		issue := testDB.CreateTestReason(ctx, "Transfer Out", domain.ReasonTypeDebit)

		requests := []usecase.MovementRequest{
			{Quantity: qty(20), OccurredDate: day(1)},
			{Quantity: qty(5), SourceID: warehouse.ID, OccurredDate: day(2)},
			{Quantity: qty(8), ReasonID: issue.ID, DestinationID: clinic.ID, OccurredDate: day(3)},
		}

		var last *usecase.RecordMovementResult
		for _, req := range requests {
			res, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
				StockCardID: card.ID,
				ActorID:     actorID,
				Request:     req,
			})
			if err != nil {
				t.Fatalf("record movement: %v", err)
			}
			last = res
		}

		if last.StockOnHand != 17 {
			t.Fatalf("expected stock on hand 17, got %d", last.StockOnHand)
		}

		stored, err := s.cards.GetByID(ctx, card.ID)
		if err != nil {
			t.Fatalf("get stock card: %v", err)
		}
		if stored.StockOnHand != 17 || stored.Version != 3 {
			t.Fatalf("expected balance 17 at version 3, got %d at %d", stored.StockOnHand, stored.Version)
		}

		items, err := s.lineItems.ListAllByStockCard(ctx, card.ID)
		if err != nil {
			t.Fatalf("list line items: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 line items, got %d", len(items))
		}
		for i, item := range items {
			if item.Sequence != int64(i+1) {
				t.Errorf("expected sequence %d, got %d", i+1, item.Sequence)
			}
		}
		if items[1].Kind != domain.KindCredit || items[2].Kind != domain.KindDebit {
			t.Errorf("unexpected kinds %s, %s", items[1].Kind, items[2].Kind)
		}
		if items[2].Destination == nil || items[2].Destination.ID != clinic.ID {
			t.Errorf("expected destination %s to be hydrated", clinic.ID)
		}
	})

	t.Run("stock on hand at a date ignores later movements", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockAllow)

		card := testDB.CreateTestStockCard(ctx, "ord-2")
		warehouse := testDB.CreateTestNode(ctx, "WH")

		for i, q := range []int{10, 4, 6} {
			req := usecase.MovementRequest{Quantity: qty(q), SourceID: warehouse.ID, OccurredDate: day(i + 1)}
			if _, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{StockCardID: card.ID, ActorID: actorID, Request: req}); err != nil {
				t.Fatalf("record movement: %v", err)
			}
		}

		soh, err := s.stock.GetStockOnHandAt(ctx, card.ID, day(2))
		if err != nil {
			t.Fatalf("stock on hand at: %v", err)
		}
		if soh.StockOnHand != 14 || soh.LineItems != 2 {
			t.Fatalf("expected 14 from 2 line items, got %d from %d", soh.StockOnHand, soh.LineItems)
		}
	})

	t.Run("reject policy leaves card untouched", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockReject)

		card := testDB.CreateTestStockCard(ctx, "ord-3")
		clinic := testDB.CreateTestNode(ctx, "CL")

		_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
			StockCardID: card.ID,
			ActorID:     actorID,
			Request:     usecase.MovementRequest{Quantity: qty(3), DestinationID: clinic.ID, OccurredDate: day(1)},
		})
		if !errors.Is(err, domain.ErrNegativeStockOnHand) {
			t.Fatalf("expected negative stock error, got %v", err)
		}

		items, err := s.lineItems.ListAllByStockCard(ctx, card.ID)
		if err != nil {
			t.Fatalf("list line items: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no line items, got %d", len(items))
		}

		events, err := s.outbox.GetUnpublished(ctx, 10)
		if err != nil {
			t.Fatalf("get unpublished: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("expected no outbox events, got %d", len(events))
		}
	})

	t.Run("unknown reason is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockAllow)

		card := testDB.CreateTestStockCard(ctx, "ord-4")

		_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
			StockCardID: card.ID,
			ActorID:     actorID,
			Request:     usecase.MovementRequest{Quantity: qty(1), ReasonID: testutil.GenerateID(), OccurredDate: day(1)},
		})
		if !errors.Is(err, domain.ErrReasonNotFound) {
			t.Fatalf("expected reason not found, got %v", err)
		}
	})

	t.Run("unknown stock card is not found", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockAllow)

		_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
			StockCardID: testutil.GenerateID(),
			ActorID:     actorID,
			Request:     usecase.MovementRequest{Quantity: qty(1), OccurredDate: day(1)},
		})
		if !errors.Is(err, domain.ErrStockCardNotFound) {
			t.Fatalf("expected stock card not found, got %v", err)
		}
	})
}
