package postgres

import (
	"context"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
	"github.com/iho/gobooks/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct{}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{}
}

// CreateTx inserts a raw expense row inside tx.
func (r *ExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateExpense(ctx, generated.CreateExpenseParams{
		ID:            expense.ID,
		UserID:        expense.UserID,
		CategoryID:    stringPtrToPgText(expense.CategoryID),
		Description:   expense.Description,
		Amount:        decimalToNumeric(expense.Amount),
		PaymentMethod: expense.PaymentMethod,
		Reference:     expense.Reference,
		ExpenseDate:   timeToPgDate(expense.ExpenseDate),
		CreatedAt:     timeToPgTimestamptz(expense.CreatedAt),
	})
}
