package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
	"github.com/iho/gobooks/internal/usecase"
)

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	queries *generated.Queries
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return newSaleRepositoryWithDB(pool)
}

func newSaleRepositoryWithDB(db generated.DBTX) *SaleRepository {
	return &SaleRepository{queries: generated.New(db)}
}

// CreateTx inserts sale inside tx unless its id or the refund it records
// is already taken.
func (r *SaleRepository) CreateTx(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) (bool, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return false, err
	}

	n, err := queries.InsertSaleIfAbsent(ctx, generated.InsertSaleIfAbsentParams{
		ID:             sale.ID,
		Subtotal:       decimalToNumeric(sale.Subtotal),
		DiscountAmount: decimalToNumeric(sale.DiscountAmount),
		TaxAmount:      decimalToNumeric(sale.TaxAmount),
		TotalAmount:    decimalToNumeric(sale.TotalAmount),
		PaymentMethod:  sale.PaymentMethod,
		RefundOf:       stringPtrToPgText(sale.RefundOf),
		CreatedAt:      timeToPgTimestamptz(sale.CreatedAt),
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID retrieves a sale or refund row.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	row, err := r.queries.GetSale(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}

	sale := &domain.Sale{
		ID:            row.ID,
		PaymentMethod: row.PaymentMethod,
		RefundOf:      pgTextToStringPtr(row.RefundOf),
		CreatedAt:     row.CreatedAt.Time,
	}
	amounts := []struct {
		src pgtype.Numeric
		dst *decimal.Decimal
	}{
		{row.Subtotal, &sale.Subtotal},
		{row.DiscountAmount, &sale.DiscountAmount},
		{row.TaxAmount, &sale.TaxAmount},
		{row.TotalAmount, &sale.TotalAmount},
	}
	for _, a := range amounts {
		if *a.dst, err = numericToDecimal(a.src); err != nil {
			return nil, err
		}
	}

	return sale, nil
}
