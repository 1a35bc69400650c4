package integration

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/stockledger/internal/adapter/repository/postgres"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

const actorID = "9f1c2b9e-1f6e-4a53-9d7b-3f8f0f6a4e21"

type stack struct {
	cards     *postgres.StockCardRepository
	lineItems *postgres.LineItemRepository
	outbox    *postgres.OutboxRepository
	events    *usecase.StockEventUseCase
	stock     *usecase.StockCardUseCase
	recon     *usecase.ReconciliationUseCase
}

func newStack(pool *pgxpool.Pool, policy domain.NegativeStockPolicy) *stack {
	cards := postgres.NewStockCardRepository(pool)
	lineItems := postgres.NewLineItemRepository(pool)
	outbox := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	factory := usecase.NewLineItemFactory(
		postgres.NewReasonRepository(pool),
		postgres.NewNodeRepository(pool),
		idGen,
		nil,
	)

	return &stack{
		cards:     cards,
		lineItems: lineItems,
		outbox:    outbox,
		events: usecase.NewStockEventUseCase(
			postgres.NewTxManager(pool), cards, lineItems, outbox, factory, idGen,
			usecase.WithRetrier(postgres.NewRetrier(zerolog.Nop())),
			usecase.WithNegativeStockPolicy(policy),
		),
		stock: usecase.NewStockCardUseCase(cards, lineItems, idGen, nil),
		recon: usecase.NewReconciliationUseCase(cards, lineItems, nil),
	}
}

func qty(v int) *int { return &v }
