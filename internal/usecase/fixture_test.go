package usecase_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/usecase"
	"github.com/iho/gobooks/internal/usecase/mocks"
)

// ledger wires every use case to one in-memory store.
type ledger struct {
	store       *mocks.Store
	txManager   *mocks.MockTransactionManager
	accountRepo *mocks.MockAccountRepository
	journalRepo *mocks.MockJournalRepository
	balanceRepo *mocks.MockBalanceRepository
	reconRepo   *mocks.MockReconciliationRepository
	expenseRepo *mocks.MockExpenseRepository
	ledgerRepo  *mocks.MockLedgerRepository
	saleRepo    *mocks.MockSaleRepository
	metrics     *metrics.Metrics

	accounts *usecase.AccountUseCase
	balances *usecase.BalanceUseCase
	journal  *usecase.JournalUseCase
	recon    *usecase.ReconciliationUseCase
	sales    *usecase.SaleUseCase
	reports  *usecase.ReportUseCase
}

func newLedger(t *testing.T) *ledger {
	t.Helper()

	store := mocks.NewStore()
	l := &ledger{
		store:       store,
		txManager:   mocks.NewMockTransactionManager(store),
		accountRepo: mocks.NewMockAccountRepository(store),
		journalRepo: mocks.NewMockJournalRepository(store),
		balanceRepo: mocks.NewMockBalanceRepository(store),
		reconRepo:   mocks.NewMockReconciliationRepository(store),
		expenseRepo: mocks.NewMockExpenseRepository(store),
		ledgerRepo:  mocks.NewMockLedgerRepository(store),
		saleRepo:    mocks.NewMockSaleRepository(store),
		metrics:     metrics.NewWithRegisterer(prometheus.NewRegistry()),
	}

	logger := zerolog.Nop()
	idGen := mocks.NewMockIDGenerator()

	l.accounts = usecase.NewAccountUseCase(l.accountRepo, nil, domain.DefaultClassifier(), idGen, &mocks.MockRetrier{}, logger, l.metrics)
	l.balances = usecase.NewBalanceUseCase(l.accountRepo, l.balanceRepo, logger)
	l.journal = usecase.NewJournalUseCase(l.txManager, l.journalRepo, l.expenseRepo, l.accounts, idGen, logger, l.metrics)
	l.recon = usecase.NewReconciliationUseCase(l.txManager, l.accountRepo, l.reconRepo, l.balanceRepo, l.ledgerRepo, idGen, logger, l.metrics)
	l.sales = usecase.NewSaleUseCase(l.txManager, l.saleRepo, l.journalRepo, l.journal, idGen, logger)
	l.reports = usecase.NewReportUseCase(nil, l.accountRepo, l.balanceRepo, logger)

	return l
}
