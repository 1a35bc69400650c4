package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// ReferenceDataService maintains reasons and nodes.
type ReferenceDataService interface {
	CreateReason(ctx context.Context, input usecase.CreateReasonInput) (*domain.Reason, error)
	GetReason(ctx context.Context, id string) (*domain.Reason, error)
	ListReasons(ctx context.Context, limit, offset int) ([]*domain.Reason, error)
	CreateNode(ctx context.Context, input usecase.CreateNodeInput) (*domain.Node, error)
	GetNode(ctx context.Context, id string) (*domain.Node, error)
	ListNodes(ctx context.Context, limit, offset int) ([]*domain.Node, error)
}

// ReferenceDataHandler handles reason and node HTTP requests.
type ReferenceDataHandler struct {
	service ReferenceDataService
}

// NewReferenceDataHandler creates a new ReferenceDataHandler.
func NewReferenceDataHandler(service ReferenceDataService) *ReferenceDataHandler {
	return &ReferenceDataHandler{service: service}
}

// CreateReason adds a reason.
func (h *ReferenceDataHandler) CreateReason(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reason, err := h.service.CreateReason(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create reason", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReasonFromDomain(reason))
}

// GetReason retrieves a reason by ID.
func (h *ReferenceDataHandler) GetReason(w http.ResponseWriter, r *http.Request) {
	reason, err := h.service.GetReason(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get reason", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReasonFromDomain(reason))
}

// ListReasons lists reasons.
func (h *ReferenceDataHandler) ListReasons(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.service.ListReasons(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, "failed to list reasons", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReasonsFromDomain(reasons))
}

// CreateNode adds a node.
func (h *ReferenceDataHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	node, err := h.service.CreateNode(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create node", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NodeFromDomain(node))
}

// GetNode retrieves a node by ID.
func (h *ReferenceDataHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	node, err := h.service.GetNode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get node", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NodeFromDomain(node))
}

// ListNodes lists nodes.
func (h *ReferenceDataHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.service.ListNodes(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, "failed to list nodes", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NodesFromDomain(nodes))
}
