package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/usecase"
)

// SaleService defines the sale posting operations used over HTTP.
type SaleService interface {
	PostSale(ctx context.Context, input usecase.PostSaleInput) (*usecase.SalePosting, error)
	PostRefund(ctx context.Context, input usecase.PostRefundInput) (*usecase.SalePosting, error)
}

// SaleHandler handles sale and refund postings.
type SaleHandler struct {
	saleUC SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC SaleService) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Post posts a completed sale. A repeated sale id answers 200 with the
// entry posted the first time.
func (h *SaleHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostSaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondError(w, "invalid sale", err)
		return
	}
	input.PostedBy = actorID(r, input.PostedBy)

	posting, err := h.saleUC.PostSale(r.Context(), input)
	if err != nil {
		respondError(w, "failed to post sale", err)
		return
	}

	writeJSON(w, postingStatus(posting), dto.SalePostingFromUseCase(posting))
}

// Refund posts the refund of the sale in the path.
func (h *SaleHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req dto.RefundSaleRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid refund", err)
		return
	}
	input.PostedBy = actorID(r, input.PostedBy)

	posting, err := h.saleUC.PostRefund(r.Context(), input)
	if err != nil {
		respondError(w, "failed to refund sale", err)
		return
	}

	writeJSON(w, postingStatus(posting), dto.SalePostingFromUseCase(posting))
}

func postingStatus(p *usecase.SalePosting) int {
	if p.AlreadyPosted {
		return http.StatusOK
	}
	return http.StatusCreated
}
