package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
	"github.com/iho/stockledger/tests/testutil"
)

func TestConcurrentMovements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	occurred := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("50 concurrent receipts on one card keep a gapless sequence", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockAllow)

		card := testDB.CreateTestStockCard(ctx, "ord-1")
		warehouse := testDB.CreateTestNode(ctx, "WH")

		const workers = 50

		var (
			wg       sync.WaitGroup
			failures atomic.Int32
		)

		wg.Add(workers)
		for range workers {
			go func() {
				defer wg.Done()

				_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
					StockCardID: card.ID,
					ActorID:     actorID,
					Request:     usecase.MovementRequest{Quantity: qty(2), SourceID: warehouse.ID, OccurredDate: occurred},
				})
				if err != nil {
					failures.Add(1)
				}
			}()
		}
		wg.Wait()

		if failures.Load() != 0 {
			t.Fatalf("expected all receipts to succeed, %d failed", failures.Load())
		}

		stored, err := s.cards.GetByID(ctx, card.ID)
		if err != nil {
			t.Fatalf("get stock card: %v", err)
		}
		if stored.StockOnHand != 2*workers {
			t.Fatalf("expected stock on hand %d, got %d", 2*workers, stored.StockOnHand)
		}

		items, err := s.lineItems.ListAllByStockCard(ctx, card.ID)
		if err != nil {
			t.Fatalf("list line items: %v", err)
		}
		for i, item := range items {
			if item.Sequence != int64(i+1) {
				t.Fatalf("expected sequence %d at position %d, got %d", i+1, i, item.Sequence)
			}
		}

		result, err := s.recon.ReconcileCard(ctx, card.ID)
		if err != nil {
			t.Fatalf("reconcile: %v", err)
		}
		if !result.IsReconciled {
			t.Fatalf("expected card to reconcile, got difference %d and %d snapshot mismatches",
				result.Difference, len(result.SnapshotMismatches))
		}
	})

	t.Run("concurrent issues under reject policy never go negative", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		s := newStack(testDB.Pool, domain.NegativeStockReject)

		card := testDB.CreateTestStockCard(ctx, "ord-2")
		clinic := testDB.CreateTestNode(ctx, "CL")

		_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
			StockCardID: card.ID,
			ActorID:     actorID,
			Request:     usecase.MovementRequest{Quantity: qty(10), OccurredDate: occurred},
		})
		if err != nil {
			t.Fatalf("physical count: %v", err)
		}

		const workers = 20

		var (
			wg        sync.WaitGroup
			successes atomic.Int32
		)

		wg.Add(workers)
		for range workers {
			go func() {
				defer wg.Done()

				_, err := s.events.RecordMovement(ctx, usecase.RecordMovementInput{
					StockCardID: card.ID,
					ActorID:     actorID,
					Request:     usecase.MovementRequest{Quantity: qty(1), DestinationID: clinic.ID, OccurredDate: occurred},
				})
				if err == nil {
					successes.Add(1)
				}
			}()
		}
		wg.Wait()

		if successes.Load() != 10 {
			t.Fatalf("expected exactly 10 issues to succeed, got %d", successes.Load())
		}

		stored, err := s.cards.GetByID(ctx, card.ID)
		if err != nil {
			t.Fatalf("get stock card: %v", err)
		}
		if stored.StockOnHand != 0 {
			t.Fatalf("expected stock on hand 0, got %d", stored.StockOnHand)
		}
	})
}
