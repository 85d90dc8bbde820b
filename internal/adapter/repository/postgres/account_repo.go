package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/postgres/generated"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByCode retrieves an account by its chart-of-accounts code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// InsertIfAbsent inserts the account unless its code is already taken.
// It runs outside any caller transaction so a concurrent insert of the same
// code resolves on the unique index instead of failing the posting.
func (r *AccountRepository) InsertIfAbsent(ctx context.Context, account *domain.Account) (bool, error) {
	n, err := r.queries.InsertAccountIfAbsent(ctx, generated.InsertAccountIfAbsentParams{
		ID:        account.ID,
		Code:      account.Code,
		Name:      account.Name,
		Type:      string(account.Type),
		IsActive:  account.IsActive,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
	})
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// List retrieves accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, len(rows))
	for i, row := range rows {
		accounts[i] = rowToAccount(row)
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		Type:      domain.AccountType(row.Type),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.Time,
	}
}
