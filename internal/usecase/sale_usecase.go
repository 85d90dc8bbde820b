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
)

const (
	sourceSale   = "sale"
	sourceRefund = "refund"
)

// SaleUseCase posts sales and refunds to the ledger. Each sale has at most
// one sale posting and one refund posting, keyed by reference.
type SaleUseCase struct {
	txManager   TransactionManager
	saleRepo    SaleRepository
	journalRepo JournalRepository
	journal     *JournalUseCase
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewSaleUseCase creates a new SaleUseCase. Entries are written through
// journal so they share its metrics and account resolution.
func NewSaleUseCase(
	txManager TransactionManager,
	saleRepo SaleRepository,
	journalRepo JournalRepository,
	journal *JournalUseCase,
	idGen IDGenerator,
	logger zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:   txManager,
		saleRepo:    saleRepo,
		journalRepo: journalRepo,
		journal:     journal,
		idGen:       idGen,
		logger:      logger.With().Str("component", "sales").Logger(),
	}
}

// SalePosting is the outcome of PostSale or PostRefund. AlreadyPosted is
// set when an earlier call posted the entry.
type SalePosting struct {
	SaleID         string
	JournalEntryID string
	Reference      string
	AlreadyPosted  bool
}

// PostSaleInput represents a completed sale.
type PostSaleInput struct {
	SaleID        string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	SaleDate      time.Time
	PostedBy      string
}

// PostSale stores the sale row and posts Dr cash or bank, Cr revenue,
// Cr tax payable in one transaction. Posting the same sale id again
// returns the first entry.
func (uc *SaleUseCase) PostSale(ctx context.Context, input PostSaleInput) (*SalePosting, error) {
	if err := domain.ValidateActor(input.PostedBy); err != nil {
		return nil, err
	}

	saleDate := dateOrToday(input.SaleDate)
	sale := &domain.Sale{
		ID:             strings.TrimSpace(input.SaleID),
		Subtotal:       input.Subtotal,
		DiscountAmount: input.Discount,
		TaxAmount:      input.Tax,
		TotalAmount:    input.Total,
		PaymentMethod:  strings.ToLower(strings.TrimSpace(input.PaymentMethod)),
		CreatedAt:      time.Now().UTC(),
	}
	if sale.ID == "" {
		sale.ID = uc.idGen.Generate()
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = domain.TenderCash
	}
	if err := sale.Validate(); err != nil {
		uc.journal.countError(err)
		return nil, err
	}

	ref := domain.SaleReference(sale.ID)
	if posted, err := uc.existing(ctx, sale.ID, ref); posted != nil || err != nil {
		return posted, err
	}

	entry := &domain.JournalEntry{
		Reference:   ref,
		Description: fmt.Sprintf("Sale %s", sale.ID),
		EntryDate:   saleDate,
		CreatedBy:   input.PostedBy,
		Lines:       sale.PostingLines(),
	}

	return uc.post(ctx, sale, entry, sourceSale)
}

// PostRefundInput represents a full refund of a posted sale.
type PostRefundInput struct {
	SaleID     string
	RefundDate time.Time
	PostedBy   string
}

// PostRefund records a negated refund row for the sale and posts the sale
// entry with debits and credits swapped. A sale is refunded at most once.
func (uc *SaleUseCase) PostRefund(ctx context.Context, input PostRefundInput) (*SalePosting, error) {
	if err := domain.ValidateActor(input.PostedBy); err != nil {
		return nil, err
	}
	saleID := strings.TrimSpace(input.SaleID)
	fields := map[string]any{"sale_id": saleID}

	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, storageError(uc.logger, "post_refund", err, fields)
	}
	if sale.IsRefund() {
		return nil, fmt.Errorf("%w: %s refunds %s", domain.ErrRefundOfRefund, sale.ID, *sale.RefundOf)
	}

	ref := domain.RefundReference(sale.ID)
	if posted, err := uc.existing(ctx, sale.ID, ref); posted != nil || err != nil {
		return posted, err
	}

	refundDate := dateOrToday(input.RefundDate)
	refund := sale.Refund(uc.idGen.Generate(), time.Now().UTC())
	entry := &domain.JournalEntry{
		Reference:   ref,
		Description: fmt.Sprintf("Refund of sale %s", sale.ID),
		EntryDate:   refundDate,
		CreatedBy:   input.PostedBy,
		Lines:       sale.RefundLines(),
	}

	return uc.post(ctx, refund, entry, sourceRefund)
}

// existing returns the posting already made under ref, or nil.
func (uc *SaleUseCase) existing(ctx context.Context, saleID, ref string) (*SalePosting, error) {
	entry, err := uc.journalRepo.GetByReference(ctx, ref)
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return nil, nil
	case err != nil:
		return nil, storageError(uc.logger, "find_posting", err, map[string]any{"reference": ref})
	}

	uc.logger.Info().
		Str("sale_id", saleID).
		Str("reference", ref).
		Str("entry_id", entry.ID).
		Msg("sale already posted")
	return &SalePosting{SaleID: saleID, JournalEntryID: entry.ID, Reference: ref, AlreadyPosted: true}, nil
}

// post writes the sale row and its entry in one transaction. Losing a race
// to a concurrent call for the same reference returns the winner's entry.
func (uc *SaleUseCase) post(ctx context.Context, sale *domain.Sale, entry *domain.JournalEntry, source string) (*SalePosting, error) {
	start := time.Now()

	if err := entry.Prepare(); err != nil {
		uc.journal.countError(err)
		return nil, err
	}
	if err := uc.journal.resolveLines(ctx, entry.Lines); err != nil {
		uc.journal.countError(err)
		return nil, err
	}

	saleID := sale.ID
	if sale.IsRefund() {
		saleID = *sale.RefundOf
	}
	fields := entryFields(entry)
	fields["sale_id"] = saleID

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		uc.journal.countError(err)
		return nil, storageError(uc.logger, "post_"+source, err, fields)
	}
	defer tx.Rollback(txCtx)

	written, err := uc.saleRepo.CreateTx(txCtx, tx, sale)
	if err != nil {
		uc.journal.countError(err)
		return nil, storageError(uc.logger, "post_"+source, err, fields)
	}
	if !written && sale.IsRefund() {
		_ = tx.Rollback(txCtx)
		return uc.raced(ctx, saleID, entry.Reference)
	}

	err = uc.journal.write(txCtx, tx, entry)
	if errors.Is(err, domain.ErrDuplicateReference) {
		_ = tx.Rollback(txCtx)
		return uc.raced(ctx, saleID, entry.Reference)
	}
	if err != nil {
		uc.journal.countError(err)
		return nil, storageError(uc.logger, "post_"+source, err, fields)
	}

	if err := tx.Commit(txCtx); err != nil {
		uc.journal.countError(err)
		return nil, storageError(uc.logger, "post_"+source, err, fields)
	}

	uc.journal.recordPosted(entry, source, start)
	return &SalePosting{SaleID: saleID, JournalEntryID: entry.ID, Reference: entry.Reference}, nil
}

// raced looks up the posting made by the call that won a race on ref.
func (uc *SaleUseCase) raced(ctx context.Context, saleID, ref string) (*SalePosting, error) {
	posted, err := uc.existing(ctx, saleID, ref)
	if err != nil {
		return nil, err
	}
	if posted == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateReference, ref)
	}
	return posted, nil
}
