package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// Posting sources used in logs and metrics.
const (
	sourceManual   = "manual"
	sourceExpense  = "expense"
	sourceReversal = "reversal"
)

// JournalUseCase posts balanced journal entries.
type JournalUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	expenseRepo ExpenseRepository
	accounts    AccountResolver
	idGen       IDGenerator
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	expenseRepo ExpenseRepository,
	accounts AccountResolver,
	idGen IDGenerator,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		expenseRepo: expenseRepo,
		accounts:    accounts,
		idGen:       idGen,
		logger:      logger.With().Str("component", "journal").Logger(),
		metrics:     metrics,
	}
}

// JournalLineInput is one leg of a manual entry. AccountID wins over
// AccountCode when both are set.
type JournalLineInput struct {
	AccountID   string
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// PostManualEntryInput represents input for posting a manual journal entry.
type PostManualEntryInput struct {
	Lines       []JournalLineInput
	Description string
	Reference   string
	EntryDate   time.Time
	PostedBy    string
}

// PostManualEntry validates and posts a user-composed entry. Nothing is
// written unless the lines balance, and header and lines are written in a
// single transaction.
func (uc *JournalUseCase) PostManualEntry(ctx context.Context, input PostManualEntryInput) (string, error) {
	if err := domain.ValidateActor(input.PostedBy); err != nil {
		return "", err
	}

	entry := &domain.JournalEntry{
		Reference:   strings.TrimSpace(input.Reference),
		Description: input.Description,
		EntryDate:   dateOrToday(input.EntryDate),
		CreatedBy:   input.PostedBy,
	}
	for _, l := range input.Lines {
		entry.Lines = append(entry.Lines, &domain.JournalLine{
			AccountID:    strings.TrimSpace(l.AccountID),
			AccountCode:  l.AccountCode,
			DebitAmount:  l.Debit,
			CreditAmount: l.Credit,
			Description:  l.Description,
		})
	}

	if err := entry.Prepare(); err != nil {
		uc.countError(err)
		return "", err
	}

	for _, l := range entry.Lines {
		if l.AccountID != "" {
			continue
		}
		code, err := domain.NormalizeAccountCode(l.AccountCode)
		if err != nil {
			uc.countError(err)
			return "", err
		}
		l.AccountCode = code
	}

	if err := uc.checkAccountIDs(ctx, entry.Lines); err != nil {
		uc.countError(err)
		return "", err
	}

	if err := uc.resolveLines(ctx, entry.Lines); err != nil {
		uc.countError(err)
		return "", err
	}

	if err := uc.post(ctx, entry, sourceManual); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// PostSimpleExpenseInput represents input for the two-line expense posting.
type PostSimpleExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	TenderType  string
	Reference   string
	EntryDate   time.Time
	PostedBy    string
}

// PostSimpleExpense debits the operating expense account and credits cash
// (tender "cash") or bank (anything else) in its own transaction.
func (uc *JournalUseCase) PostSimpleExpense(ctx context.Context, input PostSimpleExpenseInput) (string, error) {
	entry, err := uc.simpleExpense(ctx, input)
	if err != nil {
		uc.countError(err)
		return "", err
	}

	if err := uc.post(ctx, entry, sourceExpense); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// PostSimpleExpenseTx is PostSimpleExpense inside the caller's transaction.
// The caller commits or rolls back.
func (uc *JournalUseCase) PostSimpleExpenseTx(ctx context.Context, tx Transaction, input PostSimpleExpenseInput) (string, error) {
	entry, err := uc.simpleExpense(ctx, input)
	if err != nil {
		uc.countError(err)
		return "", err
	}

	if err := uc.write(ctx, tx, entry); err != nil {
		uc.countError(err)
		return "", storageError(uc.logger, "post_simple_expense", err, entryFields(entry))
	}

	uc.recordPosted(entry, sourceExpense, time.Now())
	return entry.ID, nil
}

func (uc *JournalUseCase) simpleExpense(ctx context.Context, input PostSimpleExpenseInput) (*domain.JournalEntry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateActor(input.PostedBy); err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		Reference:   strings.TrimSpace(input.Reference),
		Description: input.Description,
		EntryDate:   dateOrToday(input.EntryDate),
		CreatedBy:   input.PostedBy,
		Lines: []*domain.JournalLine{
			{AccountCode: domain.AccountCodeOperatingExpense, DebitAmount: input.Amount, CreditAmount: decimal.Zero},
			{AccountCode: domain.CreditAccountForTender(input.TenderType), DebitAmount: decimal.Zero, CreditAmount: input.Amount},
		},
	}
	if err := entry.Prepare(); err != nil {
		return nil, err
	}

	if err := uc.resolveLines(ctx, entry.Lines); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordExpenseInput represents a raw expense to be stored and posted.
type RecordExpenseInput struct {
	CategoryID    *string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
	ExpenseDate   time.Time
	RecordedBy    string
}

// RecordExpenseResult holds the ids written by RecordExpense.
type RecordExpenseResult struct {
	ExpenseID      string
	JournalEntryID string
}

// RecordExpense stores the raw expense row and its journal entry in one
// transaction, so the expense table and the ledger cannot drift apart.
func (uc *JournalUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*RecordExpenseResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateActor(input.RecordedBy); err != nil {
		return nil, err
	}

	expenseDate := dateOrToday(input.ExpenseDate)
	expense := &domain.Expense{
		ID:            uc.idGen.Generate(),
		UserID:        input.RecordedBy,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Reference:     strings.TrimSpace(input.Reference),
		ExpenseDate:   expenseDate,
		CreatedAt:     time.Now().UTC(),
	}
	fields := map[string]any{"expense_id": expense.ID, "amount": input.Amount.String()}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, storageError(uc.logger, "record_expense", err, fields)
	}
	defer tx.Rollback(txCtx)

	if err := uc.expenseRepo.CreateTx(txCtx, tx, expense); err != nil {
		return nil, storageError(uc.logger, "record_expense", err, fields)
	}

	entryID, err := uc.PostSimpleExpenseTx(txCtx, tx, PostSimpleExpenseInput{
		Amount:      input.Amount,
		Description: input.Description,
		TenderType:  input.PaymentMethod,
		Reference:   expense.Reference,
		EntryDate:   expenseDate,
		PostedBy:    input.RecordedBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, storageError(uc.logger, "record_expense", err, fields)
	}

	return &RecordExpenseResult{ExpenseID: expense.ID, JournalEntryID: entryID}, nil
}

// ReverseEntryInput represents input for reversing a posted entry.
type ReverseEntryInput struct {
	EntryID   string
	EntryDate time.Time
	PostedBy  string
}

// ReverseEntry posts a new entry that offsets entryID line by line. The
// original entry is left untouched.
func (uc *JournalUseCase) ReverseEntry(ctx context.Context, input ReverseEntryInput) (string, error) {
	if err := domain.ValidateActor(input.PostedBy); err != nil {
		return "", err
	}

	original, err := uc.journalRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return "", storageError(uc.logger, "reverse_entry", err, map[string]any{"entry_id": input.EntryID})
	}

	ref := original.Reference
	if ref == "" {
		ref = original.ID
	}
	reversal := &domain.JournalEntry{
		Reference:   ReversalReferencePrefix + ref,
		Description: fmt.Sprintf("Reversal of %s: %s", ref, original.Description),
		EntryDate:   dateOrToday(input.EntryDate),
		CreatedBy:   input.PostedBy,
		Lines:       original.ReversalLines(),
	}
	if err := reversal.Prepare(); err != nil {
		return "", err
	}

	if err := uc.post(ctx, reversal, sourceReversal); err != nil {
		return "", err
	}
	return reversal.ID, nil
}

// GetEntry returns an entry with its lines.
func (uc *JournalUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	entry, err := uc.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(uc.logger, "get_entry", err, map[string]any{"entry_id": id})
	}
	return entry, nil
}

// ListAccountLinesInput represents input for listing an account's lines.
type ListAccountLinesInput struct {
	AccountID        string
	UnreconciledOnly bool
	Limit            int
	Offset           int
}

// ListAccountLines lists the journal lines posted to an account, oldest first.
func (uc *JournalUseCase) ListAccountLines(ctx context.Context, input ListAccountLinesInput) ([]*domain.JournalLine, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	lines, err := uc.journalRepo.ListLinesByAccount(ctx, input.AccountID, input.UnreconciledOnly, limit, offset)
	if err != nil {
		return nil, storageError(uc.logger, "list_account_lines", err, map[string]any{"account_id": input.AccountID})
	}
	return lines, nil
}

// checkAccountIDs makes sure every account named by id exists, so an
// unknown id fails as not found instead of as a foreign key violation.
func (uc *JournalUseCase) checkAccountIDs(ctx context.Context, lines []*domain.JournalLine) error {
	checked := make(map[string]string)
	for _, l := range lines {
		if l.AccountID == "" {
			continue
		}
		code, ok := checked[l.AccountID]
		if !ok {
			account, err := uc.accounts.GetAccount(ctx, l.AccountID)
			if err != nil {
				return err
			}
			code = account.Code
			checked[l.AccountID] = code
		}
		l.AccountCode = code
	}
	return nil
}

// resolveLines fills AccountID of lines that only carry a code.
func (uc *JournalUseCase) resolveLines(ctx context.Context, lines []*domain.JournalLine) error {
	for _, l := range lines {
		if l.AccountID != "" {
			continue
		}
		id, err := uc.accounts.ResolveOrCreateAccount(ctx, l.AccountCode)
		if err != nil {
			return err
		}
		l.AccountID = id
	}
	return nil
}

// post writes a prepared entry in its own transaction.
func (uc *JournalUseCase) post(ctx context.Context, entry *domain.JournalEntry, source string) error {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		uc.countError(err)
		return storageError(uc.logger, "post_entry", err, entryFields(entry))
	}
	defer tx.Rollback(txCtx)

	if err := uc.write(txCtx, tx, entry); err != nil {
		uc.countError(err)
		return storageError(uc.logger, "post_entry", err, entryFields(entry))
	}

	if err := tx.Commit(txCtx); err != nil {
		uc.countError(err)
		return storageError(uc.logger, "post_entry", err, entryFields(entry))
	}

	uc.recordPosted(entry, source, start)
	return nil
}

// write assigns ids and writes header and lines through tx.
func (uc *JournalUseCase) write(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error {
	entry.ID = uc.idGen.Generate()
	entry.CreatedAt = time.Now().UTC()
	for _, l := range entry.Lines {
		l.ID = uc.idGen.Generate()
		l.JournalEntryID = entry.ID
		l.EntryDate = entry.EntryDate
	}

	if err := uc.journalRepo.CreateEntry(ctx, tx, entry); err != nil {
		return err
	}
	return uc.journalRepo.CreateLines(ctx, tx, entry.Lines)
}

func (uc *JournalUseCase) recordPosted(entry *domain.JournalEntry, source string, start time.Time) {
	uc.logger.Info().
		Str("entry_id", entry.ID).
		Str("reference", entry.Reference).
		Str("source", source).
		Str("total", entry.TotalAmount.String()).
		Int("lines", len(entry.Lines)).
		Msg("journal entry posted")

	if uc.metrics != nil {
		uc.metrics.EntriesPosted.WithLabelValues(source).Inc()
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
		uc.metrics.PostingAmount.Observe(entry.TotalAmount.InexactFloat64())
	}
}

func (uc *JournalUseCase) countError(err error) {
	if uc.metrics == nil {
		return
	}
	var unbalanced *domain.UnbalancedError
	switch {
	case errors.As(err, &unbalanced):
		uc.metrics.PostingErrors.WithLabelValues("unbalanced").Inc()
	case errors.Is(err, domain.ErrValidation):
		uc.metrics.PostingErrors.WithLabelValues("validation").Inc()
	default:
		uc.metrics.PostingErrors.WithLabelValues("storage").Inc()
	}
}

func entryFields(entry *domain.JournalEntry) map[string]any {
	return map[string]any{
		"entry_id":   entry.ID,
		"reference":  entry.Reference,
		"entry_date": entry.EntryDate.Format(domain.DateLayout),
		"total":      entry.TotalAmount.String(),
		"posted_by":  entry.CreatedBy,
	}
}
