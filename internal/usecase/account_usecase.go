package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// AccountResolver maps account codes to account ids and looks up accounts
// named by id.
type AccountResolver interface {
	ResolveOrCreateAccount(ctx context.Context, code string) (string, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AccountUseCase handles the chart of accounts.
type AccountUseCase struct {
	accountRepo AccountRepository
	cache       AccountCache
	classifier  *domain.Classifier
	idGen       IDGenerator
	retrier     Retrier
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. cache, retrier and
// metrics may be nil.
func NewAccountUseCase(
	accountRepo AccountRepository,
	cache AccountCache,
	classifier *domain.Classifier,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *AccountUseCase {
	if classifier == nil {
		classifier = domain.DefaultClassifier()
	}
	return &AccountUseCase{
		accountRepo: accountRepo,
		cache:       cache,
		classifier:  classifier,
		idGen:       idGen,
		retrier:     retrier,
		logger:      logger.With().Str("component", "accounts").Logger(),
		metrics:     metrics,
	}
}

// ResolveOrCreateAccount returns the id of the account with the given code,
// creating it on first use. The account type of a new account comes from
// the classifier. Concurrent callers always agree on a single account.
func (uc *AccountUseCase) ResolveOrCreateAccount(ctx context.Context, code string) (string, error) {
	code, err := domain.NormalizeAccountCode(code)
	if err != nil {
		return "", err
	}

	if id := uc.cachedID(ctx, code); id != "" {
		uc.countResolution("cache")
		return id, nil
	}

	var (
		id     string
		source string
	)
	err = uc.retry(ctx, func() error {
		var err error
		id, source, err = uc.resolve(ctx, code)
		return err
	})
	if err != nil {
		return "", storageError(uc.logger, "resolve_account", err, map[string]any{"code": code})
	}

	uc.countResolution(source)
	uc.storeID(ctx, code, id)
	return id, nil
}

func (uc *AccountUseCase) resolve(ctx context.Context, code string) (string, string, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err == nil {
		return account.ID, "db", nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return "", "", err
	}

	accountType, err := uc.classifier.Classify(code)
	if err != nil {
		return "", "", err
	}

	created, err := uc.accountRepo.InsertIfAbsent(ctx, &domain.Account{
		ID:        uc.idGen.Generate(),
		Code:      code,
		Name:      code,
		Type:      accountType,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", "", err
	}

	// Re-read so that a concurrent insert of the same code wins consistently.
	account, err = uc.accountRepo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return "", "", domain.IOFailure("resolve_account", domain.ErrAccountResolution)
	}
	if err != nil {
		return "", "", err
	}

	if created {
		uc.logger.Info().
			Str("code", code).
			Str("account_id", account.ID).
			Str("type", string(account.Type)).
			Msg("account created")
		if uc.metrics != nil {
			uc.metrics.AccountsCreated.Inc()
		}
		return account.ID, "created", nil
	}
	return account.ID, "db", nil
}

func (uc *AccountUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}
	return uc.retrier.Retry(ctx, op)
}

func (uc *AccountUseCase) cachedID(ctx context.Context, code string) string {
	if uc.cache == nil {
		return ""
	}
	id, err := uc.cache.GetAccountID(ctx, code)
	if err != nil {
		uc.logger.Warn().Err(err).Str("code", code).Msg("account cache read failed")
		return ""
	}
	return id
}

func (uc *AccountUseCase) storeID(ctx context.Context, code, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetAccountID(ctx, code, id); err != nil {
		uc.logger.Warn().Err(err).Str("code", code).Msg("account cache write failed")
	}
}

func (uc *AccountUseCase) countResolution(source string) {
	if uc.metrics != nil {
		uc.metrics.AccountResolutions.WithLabelValues(source).Inc()
	}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(uc.logger, "get_account", err, map[string]any{"account_id": id})
	}
	return account, nil
}

// GetAccountByCode retrieves an account by code without creating it.
func (uc *AccountUseCase) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	code, err := domain.NormalizeAccountCode(code)
	if err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, storageError(uc.logger, "get_account_by_code", err, map[string]any{"code": code})
	}
	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts ordered by code.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storageError(uc.logger, "list_accounts", err, map[string]any{"limit": limit, "offset": offset})
	}
	return accounts, nil
}
