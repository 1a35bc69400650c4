package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// ActorIDHeader carries the acting user when the body does not.
const ActorIDHeader = "X-Actor-ID"

// StockCardService is the stock card use case surface the handler needs.
type StockCardService interface {
	CreateStockCard(ctx context.Context, input usecase.CreateStockCardInput) (*domain.StockCard, error)
	GetStockCard(ctx context.Context, id string) (*domain.StockCard, error)
	ListStockCards(ctx context.Context, limit, offset int) ([]*domain.StockCard, error)
	ListLineItems(ctx context.Context, stockCardID string, limit, offset int) ([]*domain.LineItem, error)
	GetStockOnHandAt(ctx context.Context, stockCardID string, at time.Time) (*usecase.StockOnHandAt, error)
}

// MovementService records stock events.
type MovementService interface {
	RecordMovement(ctx context.Context, input usecase.RecordMovementInput) (*usecase.RecordMovementResult, error)
}

// StockCardHandler handles stock card HTTP requests.
type StockCardHandler struct {
	cards     StockCardService
	movements MovementService
	now       func() time.Time
}

// NewStockCardHandler creates a new StockCardHandler.
func NewStockCardHandler(cards StockCardService, movements MovementService) *StockCardHandler {
	return &StockCardHandler{cards: cards, movements: movements, now: time.Now}
}

// Create opens a new stock card.
func (h *StockCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStockCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cards.CreateStockCard(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create stock card", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.StockCardFromDomain(card))
}

// Get retrieves a stock card by ID.
func (h *StockCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock card ID", "")
		return
	}

	card, err := h.cards.GetStockCard(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get stock card", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StockCardFromDomain(card))
}

// List lists stock cards.
func (h *StockCardHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	cards, err := h.cards.ListStockCards(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list stock cards", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StockCardsFromDomain(cards))
}

// RecordEvent records a stock event against the card.
func (h *StockCardHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock card ID", "")
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.ActorID == "" {
		req.ActorID = r.Header.Get(ActorIDHeader)
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeDomainError(w, "invalid stock event", err)
		return
	}

	result, err := h.movements.RecordMovement(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to record stock event", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordMovementFromResult(id, result))
}

// ListLineItems lists a card's line items in append order.
func (h *StockCardHandler) ListLineItems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock card ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	items, err := h.cards.ListLineItems(r.Context(), id, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list line items", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LineItemsFromDomain(items))
}

// GetStockOnHand returns the balance as of the "at" query parameter, or now.
func (h *StockCardHandler) GetStockOnHand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock card ID", "")
		return
	}

	at := h.now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid at parameter", err.Error())
			return
		}
		at = parsed
	}

	soh, err := h.cards.GetStockOnHandAt(r.Context(), id, at)
	if err != nil {
		writeDomainError(w, "failed to get stock on hand", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StockOnHandFromDomain(soh))
}
