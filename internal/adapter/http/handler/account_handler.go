package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	ResolveOrCreateAccount(ctx context.Context, code string) (string, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// BalanceService computes account balances.
type BalanceService interface {
	AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
	AccountBalanceByCode(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	balanceUC BalanceService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, balanceUC BalanceService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, balanceUC: balanceUC}
}

// Resolve returns the id of the account with the given code, creating it
// when it does not exist yet.
func (h *AccountHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.accountUC.ResolveOrCreateAccount(r.Context(), req.Code)
	if err != nil {
		respondError(w, "failed to resolve account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ResolveAccountResponse{Code: req.Code, AccountID: id})
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByCode retrieves an account by its chart-of-accounts code.
func (h *AccountHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccountByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Balance returns the balance of an account as of the as_of date.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfOrToday(r)
	if err != nil {
		respondError(w, "invalid as_of", err)
		return
	}

	id := chi.URLParam(r, "id")
	balance, err := h.balanceUC.AccountBalance(r.Context(), id, asOf)
	if err != nil {
		respondError(w, "failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: id,
		AsOf:      dto.FormatDate(asOf),
		Balance:   balance,
	})
}

// BalanceByCode returns the balance of the account with the given code.
func (h *AccountHandler) BalanceByCode(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfOrToday(r)
	if err != nil {
		respondError(w, "invalid as_of", err)
		return
	}

	code := chi.URLParam(r, "code")
	balance, err := h.balanceUC.AccountBalanceByCode(r.Context(), code, asOf)
	if err != nil {
		respondError(w, "failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Code:    code,
		AsOf:    dto.FormatDate(asOf),
		Balance: balance,
	})
}
