package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/usecase"
)

// Store is an in-memory ledger database shared by the mock repositories.
// Writes made through a MockTransaction are staged and only become visible
// to other readers on Commit.
type Store struct {
	mu              sync.RWMutex
	accounts        map[string]*domain.Account
	codes           map[string]string
	entries         map[string]*domain.JournalEntry
	lines           []*domain.JournalLine
	reconciliations []*domain.Reconciliation
	expenses        []*domain.Expense
	sales           map[string]*domain.Sale
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		codes:    make(map[string]string),
		entries:  make(map[string]*domain.JournalEntry),
		sales:    make(map[string]*domain.Sale),
	}
}

// Sales returns the committed sale and refund rows ordered by id.
func (s *Store) Sales() []*domain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sales := make([]*domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ID < sales[j].ID })
	return sales
}

// AccountCount returns the number of committed accounts.
func (s *Store) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// EntryCount returns the number of committed journal entries.
func (s *Store) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// LineCount returns the number of committed journal lines.
func (s *Store) LineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Expenses returns the committed raw expense rows.
func (s *Store) Expenses() []*domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Expense(nil), s.expenses...)
}

// ExpenseTotal sums committed expenses dated in [from, to].
func (s *Store) ExpenseTotal(from, to time.Time) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, e := range s.expenses {
		if inRange(e.ExpenseDate, from, to) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Line returns a committed journal line by id.
func (s *Store) Line(id string) (*domain.JournalLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		if l.ID == id {
			cp := *l
			return &cp, true
		}
	}
	return nil, false
}

// Reconciliations returns the committed reconciliation snapshots.
func (s *Store) Reconciliations() []*domain.Reconciliation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Reconciliation(nil), s.reconciliations...)
}

func inRange(t, from, to time.Time) bool {
	d := domain.NormalizeDate(t)
	return !d.Before(domain.NormalizeDate(from)) && !d.After(domain.NormalizeDate(to))
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	store *Store
	mu    sync.Mutex
	txs   []*MockTransaction
}

// NewMockTransactionManager creates a transaction manager staging writes for store.
func NewMockTransactionManager(store *Store) *MockTransactionManager {
	return &MockTransactionManager{store: store}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{store: m.store, marks: make(map[string]time.Time)}
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	return tx, nil
}

// Transactions returns every transaction begun so far.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.txs...)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool

	store           *Store
	entries         []*domain.JournalEntry
	lines           []*domain.JournalLine
	marks           map[string]time.Time
	reconciliations []*domain.Reconciliation
	expenses        []*domain.Expense
	sales           []*domain.Sale
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	if m.Committed || m.RolledBack {
		return errors.New("transaction already closed")
	}
	m.Committed = true

	s := m.store
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range m.entries {
		s.entries[e.ID] = e
	}
	s.lines = append(s.lines, m.lines...)
	for _, l := range s.lines {
		if date, ok := m.marks[l.ID]; ok {
			d := date
			l.IsReconciled = true
			l.ReconciledDate = &d
		}
	}
	s.reconciliations = append(s.reconciliations, m.reconciliations...)
	s.expenses = append(s.expenses, m.expenses...)
	for _, sale := range m.sales {
		s.sales[sale.ID] = sale
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if m.Committed || m.RolledBack {
		return nil
	}
	m.RolledBack = true
	return nil
}

func stagedTx(tx usecase.Transaction) (*MockTransaction, error) {
	mt, ok := tx.(*MockTransaction)
	if !ok || mt == nil {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	if mt.Committed || mt.RolledBack {
		return nil, errors.New("transaction already closed")
	}
	return mt, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	store *Store

	GetByIDFunc        func(ctx context.Context, id string) (*domain.Account, error)
	GetByCodeFunc      func(ctx context.Context, code string) (*domain.Account, error)
	InsertIfAbsentFunc func(ctx context.Context, account *domain.Account) (bool, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository(store *Store) *MockAccountRepository {
	return &MockAccountRepository{store: store}
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if acc, ok := m.store.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if id, ok := m.store.codes[code]; ok {
		return m.store.accounts[id], nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) InsertIfAbsent(ctx context.Context, account *domain.Account) (bool, error) {
	if m.InsertIfAbsentFunc != nil {
		return m.InsertIfAbsentFunc(ctx, account)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, exists := m.store.codes[account.Code]; exists {
		return false, nil
	}
	m.store.accounts[account.ID] = account
	m.store.codes[account.Code] = account.ID
	return true, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.store.accounts))
	for _, acc := range m.store.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	if offset >= len(accounts) {
		return []*domain.Account{}, nil
	}
	end := offset + limit
	if end > len(accounts) {
		end = len(accounts)
	}
	return accounts[offset:end], nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	store *Store

	CreateEntryFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	CreateLinesFunc        func(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByReferenceFunc     func(ctx context.Context, ref string) (*domain.JournalEntry, error)
	ListLinesByAccountFunc func(ctx context.Context, accountID string, unreconciledOnly bool, limit, offset int) ([]*domain.JournalLine, error)
}

func NewMockJournalRepository(store *Store) *MockJournalRepository {
	return &MockJournalRepository{store: store}
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, tx, entry)
	}
	mt, err := stagedTx(tx)
	if err != nil {
		return err
	}
	if isSaleReference(entry.Reference) {
		m.store.mu.RLock()
		taken := referenceTaken(m.store.entries, entry.Reference)
		m.store.mu.RUnlock()
		for _, e := range mt.entries {
			taken = taken || e.Reference == entry.Reference
		}
		if taken {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
		}
	}
	header := *entry
	header.Lines = nil
	mt.entries = append(mt.entries, &header)
	return nil
}

func (m *MockJournalRepository) CreateLines(ctx context.Context, tx usecase.Transaction, lines []*domain.JournalLine) error {
	if m.CreateLinesFunc != nil {
		return m.CreateLinesFunc(ctx, tx, lines)
	}
	mt, err := stagedTx(tx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		var header *domain.JournalEntry
		for _, e := range mt.entries {
			if e.ID == l.JournalEntryID {
				header = e
			}
		}
		if header == nil {
			return fmt.Errorf("journal entry %s not written in this transaction", l.JournalEntryID)
		}
		cp := *l
		cp.EntryDate = header.EntryDate
		mt.lines = append(mt.lines, &cp)
	}
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	e, ok := m.store.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return m.store.withLines(e), nil
}

func (m *MockJournalRepository) GetByReference(ctx context.Context, ref string) (*domain.JournalEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, ref)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var oldest *domain.JournalEntry
	for _, e := range m.store.entries {
		if e.Reference != ref {
			continue
		}
		if oldest == nil || e.CreatedAt.Before(oldest.CreatedAt) ||
			(e.CreatedAt.Equal(oldest.CreatedAt) && e.ID < oldest.ID) {
			oldest = e
		}
	}
	if oldest == nil {
		return nil, domain.ErrEntryNotFound
	}
	return m.store.withLines(oldest), nil
}

// withLines copies e with its committed lines. The caller holds s.mu.
func (s *Store) withLines(e *domain.JournalEntry) *domain.JournalEntry {
	entry := *e
	entry.Lines = nil
	for _, l := range s.lines {
		if l.JournalEntryID == e.ID {
			cp := *l
			entry.Lines = append(entry.Lines, &cp)
		}
	}
	return &entry
}

func isSaleReference(ref string) bool {
	return strings.HasPrefix(ref, domain.SaleReferencePrefix) || strings.HasPrefix(ref, domain.RefundReferencePrefix)
}

func referenceTaken(entries map[string]*domain.JournalEntry, ref string) bool {
	for _, e := range entries {
		if e.Reference == ref {
			return true
		}
	}
	return false
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, unreconciledOnly bool, limit, offset int) ([]*domain.JournalLine, error) {
	if m.ListLinesByAccountFunc != nil {
		return m.ListLinesByAccountFunc(ctx, accountID, unreconciledOnly, limit, offset)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var lines []*domain.JournalLine
	for _, l := range m.store.lines {
		if l.AccountID != accountID || (unreconciledOnly && l.IsReconciled) {
			continue
		}
		cp := *l
		lines = append(lines, &cp)
	}
	if offset >= len(lines) {
		return []*domain.JournalLine{}, nil
	}
	end := offset + limit
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end], nil
}

// MockBalanceRepository is a mock implementation of BalanceRepository.
type MockBalanceRepository struct {
	store *Store

	BalanceAsOfFunc  func(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
	TrialBalanceFunc func(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error)
}

func NewMockBalanceRepository(store *Store) *MockBalanceRepository {
	return &MockBalanceRepository{store: store}
}

func netDebit(lines []*domain.JournalLine, accountID string, from *time.Time, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.AccountID != accountID {
			continue
		}
		d := domain.NormalizeDate(l.EntryDate)
		if d.After(domain.NormalizeDate(to)) {
			continue
		}
		if from != nil && d.Before(domain.NormalizeDate(*from)) {
			continue
		}
		total = total.Add(l.DebitAmount).Sub(l.CreditAmount)
	}
	return total
}

func (m *MockBalanceRepository) BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if m.BalanceAsOfFunc != nil {
		return m.BalanceAsOfFunc(ctx, accountID, asOf)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return netDebit(m.store.lines, accountID, nil, asOf), nil
}

func (m *MockBalanceRepository) BalanceAsOfTx(ctx context.Context, tx usecase.Transaction, accountID string, asOf time.Time) (decimal.Decimal, error) {
	mt, err := stagedTx(tx)
	if err != nil {
		return decimal.Zero, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	committed := netDebit(m.store.lines, accountID, nil, asOf)
	return committed.Add(netDebit(mt.lines, accountID, nil, asOf)), nil
}

func (m *MockBalanceRepository) NetDebitBetween(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return netDebit(m.store.lines, accountID, &from, to), nil
}

func (m *MockBalanceRepository) TrialBalance(ctx context.Context, asOf time.Time) ([]*domain.TrialBalanceRow, error) {
	if m.TrialBalanceFunc != nil {
		return m.TrialBalanceFunc(ctx, asOf)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	rows := make([]*domain.TrialBalanceRow, 0, len(m.store.accounts))
	for _, acc := range m.store.accounts {
		row := &domain.TrialBalanceRow{
			AccountID:   acc.ID,
			Code:        acc.Code,
			Name:        acc.Name,
			Type:        acc.Type,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		for _, l := range m.store.lines {
			if l.AccountID == acc.ID && !domain.NormalizeDate(l.EntryDate).After(domain.NormalizeDate(asOf)) {
				row.TotalDebit = row.TotalDebit.Add(l.DebitAmount)
				row.TotalCredit = row.TotalCredit.Add(l.CreditAmount)
			}
		}
		row.Balance = row.TotalDebit.Sub(row.TotalCredit)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}

// MockReconciliationRepository is a mock implementation of ReconciliationRepository.
type MockReconciliationRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, rec *domain.Reconciliation) error
}

func NewMockReconciliationRepository(store *Store) *MockReconciliationRepository {
	return &MockReconciliationRepository{store: store}
}

func (m *MockReconciliationRepository) MarkLinesReconciled(ctx context.Context, tx usecase.Transaction, accountID string, lineIDs []string, date time.Time) ([]string, error) {
	mt, err := stagedTx(tx)
	if err != nil {
		return nil, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var marked []string
	for _, id := range lineIDs {
		if _, done := mt.marks[id]; done {
			continue
		}
		for _, l := range m.store.lines {
			if l.ID == id && l.AccountID == accountID && !l.IsReconciled {
				mt.marks[id] = date
				marked = append(marked, id)
			}
		}
	}
	return marked, nil
}

func (m *MockReconciliationRepository) Create(ctx context.Context, tx usecase.Transaction, rec *domain.Reconciliation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, rec)
	}
	mt, err := stagedTx(tx)
	if err != nil {
		return err
	}
	mt.reconciliations = append(mt.reconciliations, rec)
	return nil
}

func (m *MockReconciliationRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Reconciliation, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var recs []*domain.Reconciliation
	for _, r := range m.store.reconciliations {
		if r.AccountID == accountID {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	store *Store

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
}

func NewMockExpenseRepository(store *Store) *MockExpenseRepository {
	return &MockExpenseRepository{store: store}
}

func (m *MockExpenseRepository) CreateTx(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, expense)
	}
	mt, err := stagedTx(tx)
	if err != nil {
		return err
	}
	mt.expenses = append(mt.expenses, expense)
	return nil
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	store *Store

	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) (bool, error)
	GetByIDFunc  func(ctx context.Context, id string) (*domain.Sale, error)
}

func NewMockSaleRepository(store *Store) *MockSaleRepository {
	return &MockSaleRepository{store: store}
}

func (m *MockSaleRepository) CreateTx(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) (bool, error) {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, sale)
	}
	mt, err := stagedTx(tx)
	if err != nil {
		return false, err
	}
	m.store.mu.RLock()
	rows := make([]*domain.Sale, 0, len(m.store.sales)+len(mt.sales))
	for _, existing := range m.store.sales {
		rows = append(rows, existing)
	}
	m.store.mu.RUnlock()
	rows = append(rows, mt.sales...)

	for _, existing := range rows {
		if existing.ID == sale.ID {
			return false, nil
		}
		if sale.IsRefund() && existing.IsRefund() && *existing.RefundOf == *sale.RefundOf {
			return false, nil
		}
	}
	mt.sales = append(mt.sales, sale)
	return true, nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if sale, ok := m.store.sales[id]; ok {
		return sale, nil
	}
	return nil, domain.ErrSaleNotFound
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	store *Store

	CheckConsistencyFunc  func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
	UnbalancedEntriesFunc func(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error)
}

func NewMockLedgerRepository(store *Store) *MockLedgerRepository {
	return &MockLedgerRepository{store: store}
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	debit, credit := domain.Totals(m.store.lines)
	return debit, credit, nil
}

func (m *MockLedgerRepository) UnbalancedEntries(ctx context.Context, tolerance decimal.Decimal, limit int) ([]string, error) {
	if m.UnbalancedEntriesFunc != nil {
		return m.UnbalancedEntriesFunc(ctx, tolerance, limit)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	byEntry := make(map[string][]*domain.JournalLine)
	for _, l := range m.store.lines {
		byEntry[l.JournalEntryID] = append(byEntry[l.JournalEntryID], l)
	}
	ids := []string{}
	for id, lines := range byEntry {
		debit, credit := domain.Totals(lines)
		if debit.Sub(credit).Abs().GreaterThan(tolerance) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%04d", m.counter)
}

// MockRetrier runs the operation once, or up to Attempts times while it fails.
type MockRetrier struct {
	Attempts int

	mu    sync.Mutex
	calls int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	attempts := m.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		m.mu.Lock()
		m.calls++
		m.mu.Unlock()
		if err = operation(); err == nil {
			return nil
		}
	}
	return err
}

// Calls returns how many times an operation was attempted.
func (m *MockRetrier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
