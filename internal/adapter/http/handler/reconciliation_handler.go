package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/usecase"
)

// ReconciliationService checks cached balances against history.
type ReconciliationService interface {
	ReconcileCard(ctx context.Context, stockCardID string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReportObserver is told how many discrepancies a report found.
type ReportObserver interface {
	ObserveReconciliation(discrepancies int)
}

// ReconciliationHandler handles reconciliation HTTP requests.
type ReconciliationHandler struct {
	service  ReconciliationService
	observer ReportObserver
}

// NewReconciliationHandler creates a new ReconciliationHandler. observer may be nil.
func NewReconciliationHandler(service ReconciliationService, observer ReportObserver) *ReconciliationHandler {
	return &ReconciliationHandler{service: service, observer: observer}
}

// ReconcileCard reconciles a single stock card.
func (h *ReconciliationHandler) ReconcileCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock card ID", "")
		return
	}

	result, err := h.service.ReconcileCard(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to reconcile stock card", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// Report reconciles every stock card.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeDomainError(w, "failed to generate reconciliation report", err)
		return
	}

	if h.observer != nil {
		h.observer.ObserveReconciliation(len(report.Discrepancies))
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromDomain(report))
}
