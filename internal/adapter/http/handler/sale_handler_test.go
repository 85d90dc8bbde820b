package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

type saleServiceStub struct {
	postFn   func(ctx context.Context, input usecase.PostSaleInput) (*usecase.SalePosting, error)
	refundFn func(ctx context.Context, input usecase.PostRefundInput) (*usecase.SalePosting, error)
}

func (s *saleServiceStub) PostSale(ctx context.Context, input usecase.PostSaleInput) (*usecase.SalePosting, error) {
	return s.postFn(ctx, input)
}

func (s *saleServiceStub) PostRefund(ctx context.Context, input usecase.PostRefundInput) (*usecase.SalePosting, error) {
	return s.refundFn(ctx, input)
}

func TestSaleHandler_Post(t *testing.T) {
	tests := []struct {
		name          string
		alreadyPosted bool
		expected      int
	}{
		{name: "first posting", expected: http.StatusCreated},
		{name: "repeated sale id", alreadyPosted: true, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured usecase.PostSaleInput
			h := NewSaleHandler(&saleServiceStub{
				postFn: func(ctx context.Context, input usecase.PostSaleInput) (*usecase.SalePosting, error) {
					captured = input
					return &usecase.SalePosting{
						SaleID:         input.SaleID,
						JournalEntryID: "je-1",
						Reference:      domain.SaleReference(input.SaleID),
						AlreadyPosted:  tt.alreadyPosted,
					}, nil
				},
			})

			body := `{"sale_id":"S-1","subtotal":"100","discount_amount":"10","tax_amount":"11.70","total_amount":"101.70","payment_method":"cash","posted_by":"till-1"}`
			rec := httptest.NewRecorder()
			h.Post(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(body)))

			require.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, "till-1", captured.PostedBy)
			assert.True(t, captured.Tax.Equal(decimal.RequireFromString("11.70")))

			var resp dto.SalePostingResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "SALE-S-1", resp.Reference)
			assert.Equal(t, tt.alreadyPosted, resp.AlreadyPosted)
		})
	}
}

func TestSaleHandler_PostUnbalanced(t *testing.T) {
	h := NewSaleHandler(&saleServiceStub{
		postFn: func(ctx context.Context, input usecase.PostSaleInput) (*usecase.SalePosting, error) {
			return nil, &domain.UnbalancedError{DebitSum: input.Total, CreditSum: decimal.RequireFromString("100")}
		},
	})

	body := `{"sale_id":"S-1","subtotal":"90","tax_amount":"10","total_amount":"120","payment_method":"cash","posted_by":"till-1"}`
	rec := httptest.NewRecorder()
	h.Post(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSaleHandler_Refund(t *testing.T) {
	var captured usecase.PostRefundInput
	h := NewSaleHandler(&saleServiceStub{
		refundFn: func(ctx context.Context, input usecase.PostRefundInput) (*usecase.SalePosting, error) {
			captured = input
			if input.SaleID == "missing" {
				return nil, fmt.Errorf("%w: missing", domain.ErrSaleNotFound)
			}
			return &usecase.SalePosting{SaleID: input.SaleID, JournalEntryID: "je-9", Reference: domain.RefundReference(input.SaleID)}, nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/S-1/refund", bytes.NewBufferString(`{"refund_date":"2026-10-09","posted_by":"manager"}`))
	h.Refund(rec, setChiURLParam(req, "id", "S-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "S-1", captured.SaleID)
	assert.Equal(t, "manager", captured.PostedBy)
	assert.Equal(t, 9, captured.RefundDate.Day())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/sales/missing/refund", nil)
	h.Refund(rec, setChiURLParam(req, "id", "missing"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
