package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/auth"
	"github.com/iho/gobooks/internal/infrastructure/config"
	"github.com/iho/gobooks/internal/infrastructure/logger"
	"github.com/iho/gobooks/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func (o *options) client() *apiClient {
	return newAPIClient(o.baseURL, o.token, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "gobooks-cli",
		Short:         "GoBooks CLI tool",
		Long:          `A command line interface for the GoBooks ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the GoBooks API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("GOBOOKS_TOKEN"), "Bearer token (defaults to $GOBOOKS_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		ledgerCmd(opts),
		accountsCmd(opts),
		entriesCmd(opts),
		expensesCmd(opts),
		salesCmd(opts),
		reconcileCmd(opts),
		reportsCmd(opts),
		tokenCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that total debits equal total credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.LedgerConsistencyResponse
			err := opts.client().get(cmd.Context(), "/api/v1/ledger/consistency", nil, &result)

			var apiErr *apiError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total debits:  %s\n", result.TotalDebits.StringFixed(2))
			fmt.Fprintf(out, "Total credits: %s\n", result.TotalCredits.StringFixed(2))
			if !result.IsConsistent {
				fmt.Fprintf(out, "Consistency check FAILED (difference %s)\n", result.Difference.StringFixed(2))
				return errors.New("ledger is inconsistent")
			}
			fmt.Fprintln(out, "Consistency check PASSED")
			return nil
		},
	})

	return cmd
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("limit", strconv.Itoa(limit))
			query.Set("offset", strconv.Itoa(offset))

			var result dto.ListAccountsResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/accounts", query, &result); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tTYPE\tNAME\tID")
			for _, a := range result.Accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Code, a.Type, a.Name, a.ID)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of accounts")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Number of accounts to skip")

	var asOf string
	balanceCmd := &cobra.Command{
		Use:   "balance <code>",
		Short: "Show the debit-positive balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if asOf != "" {
				query.Set("as_of", asOf)
			}

			var result dto.BalanceResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/accounts/code/"+url.PathEscape(args[0])+"/balance", query, &result); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s as of %s: %s\n", result.Code, result.AsOf, result.Balance.StringFixed(2))
			return nil
		},
	}
	balanceCmd.Flags().StringVar(&asOf, "as-of", "", "Balance date (YYYY-MM-DD, default today)")

	resolveCmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Resolve an account code, creating the account on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ResolveAccountResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/accounts/resolve", dto.ResolveAccountRequest{Code: args[0]}, "", &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.AccountID)
			return nil
		},
	}

	cmd.AddCommand(listCmd, balanceCmd, resolveCmd)
	return cmd
}

func entriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Journal entries",
	}

	var (
		debits, credits []string
		req             dto.PostEntryRequest
		key             string
	)
	postCmd := &cobra.Command{
		Use:     "post",
		Short:   "Post a manual journal entry",
		Example: `  gobooks-cli entries post --debit 1000=1500 --credit 3000=1500 --description "owner investment"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseLines(debits, credits)
			if err != nil {
				return err
			}
			req.Lines = lines

			var result dto.PostedEntryResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/journal-entries", req, key, &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.JournalEntryID)
			return nil
		},
	}
	postCmd.Flags().StringArrayVar(&debits, "debit", nil, "Debit line as CODE=AMOUNT (repeatable)")
	postCmd.Flags().StringArrayVar(&credits, "credit", nil, "Credit line as CODE=AMOUNT (repeatable)")
	postCmd.Flags().StringVar(&req.Description, "description", "", "Entry description")
	postCmd.Flags().StringVar(&req.Reference, "reference", "", "External reference")
	postCmd.Flags().StringVar(&req.EntryDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	postCmd.Flags().StringVar(&req.PostedBy, "posted-by", "", "Actor recorded on the entry")
	postCmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency key for safe retries")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a journal entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.JournalEntryResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/journal-entries/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	var reverse dto.ReverseEntryRequest
	reverseCmd := &cobra.Command{
		Use:   "reverse <id>",
		Short: "Post the offsetting entry of a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.PostedEntryResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/journal-entries/"+url.PathEscape(args[0])+"/reverse", reverse, "", &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.JournalEntryID)
			return nil
		},
	}
	reverseCmd.Flags().StringVar(&reverse.EntryDate, "date", "", "Reversal date (YYYY-MM-DD, default today)")
	reverseCmd.Flags().StringVar(&reverse.PostedBy, "posted-by", "", "Actor recorded on the reversal")

	cmd.AddCommand(postCmd, getCmd, reverseCmd)
	return cmd
}

func expensesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Expense postings",
	}

	var (
		req    dto.PostExpenseRequest
		amount string
		key    string
	)
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a two-line expense entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount %q: %w", amount, err)
			}
			req.Amount = value

			var result dto.PostedEntryResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/expenses/journal", req, key, &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.JournalEntryID)
			return nil
		},
	}
	postCmd.Flags().StringVar(&amount, "amount", "", "Expense amount")
	postCmd.Flags().StringVar(&req.TenderType, "tender", "cash", "Tender type (cash or bank)")
	postCmd.Flags().StringVar(&req.Description, "description", "", "Expense description")
	postCmd.Flags().StringVar(&req.Reference, "reference", "", "External reference")
	postCmd.Flags().StringVar(&req.EntryDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	postCmd.Flags().StringVar(&req.PostedBy, "posted-by", "", "Actor recorded on the entry")
	postCmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency key for safe retries")
	_ = postCmd.MarkFlagRequired("amount")

	cmd.AddCommand(postCmd)
	return cmd
}

func salesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sale and refund postings",
	}

	var (
		req     dto.PostSaleRequest
		amounts = map[string]*string{"subtotal": new(string), "discount": new(string), "tax": new(string), "total": new(string)}
	)
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a sale: Dr cash or bank, Cr revenue, Cr tax payable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := map[string]*decimal.Decimal{
				"subtotal": &req.Subtotal, "discount": &req.Discount, "tax": &req.Tax, "total": &req.Total,
			}
			for name, raw := range amounts {
				if *raw == "" {
					continue
				}
				value, err := decimal.NewFromString(*raw)
				if err != nil {
					return fmt.Errorf("invalid --%s %q: %w", name, *raw, err)
				}
				*targets[name] = value
			}

			var result dto.SalePostingResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/sales", req, "", &result); err != nil {
				return err
			}
			return printSalePosting(cmd.OutOrStdout(), result)
		},
	}
	postCmd.Flags().StringVar(&req.SaleID, "id", "", "Sale id (generated when empty)")
	postCmd.Flags().StringVar(amounts["subtotal"], "subtotal", "", "Subtotal before discount")
	postCmd.Flags().StringVar(amounts["discount"], "discount", "0", "Discount amount")
	postCmd.Flags().StringVar(amounts["tax"], "tax", "0", "Tax amount")
	postCmd.Flags().StringVar(amounts["total"], "total", "", "Total charged")
	postCmd.Flags().StringVar(&req.PaymentMethod, "payment", "cash", "Payment method (cash or bank)")
	postCmd.Flags().StringVar(&req.SaleDate, "date", "", "Sale date (YYYY-MM-DD, default today)")
	postCmd.Flags().StringVar(&req.PostedBy, "posted-by", "", "Actor recorded on the entry")
	_ = postCmd.MarkFlagRequired("subtotal")
	_ = postCmd.MarkFlagRequired("total")

	var refund dto.RefundSaleRequest
	refundCmd := &cobra.Command{
		Use:   "refund SALE_ID",
		Short: "Refund a posted sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.SalePostingResponse
			path := "/api/v1/sales/" + url.PathEscape(args[0]) + "/refund"
			if err := opts.client().post(cmd.Context(), path, refund, "", &result); err != nil {
				return err
			}
			return printSalePosting(cmd.OutOrStdout(), result)
		},
	}
	refundCmd.Flags().StringVar(&refund.RefundDate, "date", "", "Refund date (YYYY-MM-DD, default today)")
	refundCmd.Flags().StringVar(&refund.PostedBy, "posted-by", "", "Actor recorded on the entry")

	cmd.AddCommand(postCmd, refundCmd)
	return cmd
}

func printSalePosting(out io.Writer, p dto.SalePostingResponse) error {
	status := "posted"
	if p.AlreadyPosted {
		status = "already posted"
	}
	_, err := fmt.Fprintf(out, "%s %s %s (%s)\n", p.Reference, p.JournalEntryID, p.SaleID, status)
	return err
}

func reconcileCmd(opts *options) *cobra.Command {
	var (
		req       dto.ReconcileRequest
		statement string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile journal lines of an account against a statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(statement)
			if err != nil {
				return fmt.Errorf("invalid --statement-balance %q: %w", statement, err)
			}
			req.StatementBalance = value

			var result dto.ReconcileResponse
			if err := opts.client().post(cmd.Context(), "/api/v1/reconciliations", req, "", &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.ReconciliationID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.AccountID, "account", "", "Account id")
	cmd.Flags().StringVar(&statement, "statement-balance", "", "Balance on the external statement")
	cmd.Flags().StringSliceVar(&req.LineIDs, "lines", nil, "Journal line ids to mark reconciled")
	cmd.Flags().StringVar(&req.Date, "date", "", "Reconciliation date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&req.ReconciledBy, "by", "", "Actor performing the reconciliation")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("statement-balance")

	return cmd
}

func reportsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Financial reports",
	}

	var from, to string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Revenue, expenses and profit for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.PeriodSummaryResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/reports/summary", periodQuery(from, to), &result); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Period\t%s .. %s\n", result.DateFrom, result.DateTo)
			fmt.Fprintf(w, "Revenue\t%s\n", result.Revenue.StringFixed(2))
			fmt.Fprintf(w, "Expenses\t%s\n", result.Expenses.StringFixed(2))
			fmt.Fprintf(w, "Profit\t%s\n", result.Profit.StringFixed(2))
			fmt.Fprintf(w, "Margin %%\t%s\n", result.MarginPct.StringFixed(2))
			for _, c := range result.ByCategory {
				fmt.Fprintf(w, "  %s\t%s\n", c.Category, c.Total.StringFixed(2))
			}
			return w.Flush()
		},
	}

	consistencyCmd := &cobra.Command{
		Use:   "expense-consistency",
		Short: "Compare raw expense rows with the expense account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ExpenseConsistencyResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/reports/expense-consistency", periodQuery(from, to), &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	for _, c := range []*cobra.Command{summaryCmd, consistencyCmd} {
		c.Flags().StringVar(&from, "from", "", "Period start (YYYY-MM-DD)")
		c.Flags().StringVar(&to, "to", "", "Period end (YYYY-MM-DD)")
		_ = c.MarkFlagRequired("from")
		_ = c.MarkFlagRequired("to")
	}

	var asOf string
	trialCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Debit and credit totals per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if asOf != "" {
				query.Set("as_of", asOf)
			}

			var result dto.TrialBalanceResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/reports/trial-balance", query, &result); err != nil {
				return err
			}
			return printTrialBalance(cmd.OutOrStdout(), result)
		},
	}
	trialCmd.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD, default today)")

	var plFrom, plTo string
	profitCmd := &cobra.Command{
		Use:   "profit-and-loss",
		Short: "Ledger income statement for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ProfitAndLossResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/reports/profit-and-loss", periodQuery(plFrom, plTo), &result); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Period\t%s .. %s\n", result.DateFrom, result.DateTo)
			for _, l := range result.Lines {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Code, l.Type, l.Amount.StringFixed(2))
			}
			fmt.Fprintf(w, "Revenue\t\t%s\n", result.Revenue.StringFixed(2))
			fmt.Fprintf(w, "Expenses\t\t%s\n", result.Expenses.StringFixed(2))
			fmt.Fprintf(w, "Net profit\t\t%s\n", result.NetProfit.StringFixed(2))
			fmt.Fprintf(w, "Margin %%\t\t%s\n", result.MarginPct.StringFixed(2))
			return w.Flush()
		},
	}
	profitCmd.Flags().StringVar(&plFrom, "from", "", "Period start (YYYY-MM-DD)")
	profitCmd.Flags().StringVar(&plTo, "to", "", "Period end (YYYY-MM-DD)")
	_ = profitCmd.MarkFlagRequired("from")
	_ = profitCmd.MarkFlagRequired("to")

	var sheetAsOf string
	sheetCmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets, liabilities and equity at a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if sheetAsOf != "" {
				query.Set("as_of", sheetAsOf)
			}

			var result dto.BalanceSheetResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/reports/balance-sheet", query, &result); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "As of\t%s\n", result.AsOf)
			for _, l := range result.Lines {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Code, l.Type, l.Amount.StringFixed(2))
			}
			fmt.Fprintf(w, "Assets\t\t%s\n", result.Assets.StringFixed(2))
			fmt.Fprintf(w, "Liabilities\t\t%s\n", result.Liabilities.StringFixed(2))
			fmt.Fprintf(w, "Net income\t\t%s\n", result.NetIncome.StringFixed(2))
			fmt.Fprintf(w, "Equity\t\t%s\n", result.Equity.StringFixed(2))
			if !result.Difference.IsZero() {
				fmt.Fprintf(w, "DIFFERENCE\t\t%s\n", result.Difference.StringFixed(2))
			}
			return w.Flush()
		},
	}
	sheetCmd.Flags().StringVar(&sheetAsOf, "as-of", "", "Report date (YYYY-MM-DD, default today)")

	cmd.AddCommand(summaryCmd, consistencyCmd, trialCmd, profitCmd, sheetCmd)
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		role    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := issueToken(cfg, subject, domain.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Actor id carried by the token")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleViewer), "Role: admin, manager or viewer")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func issueToken(cfg *config.Config, subject string, role domain.Role) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject must not be empty")
	}
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration).Generate(domain.Actor{ID: subject, Role: role})
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	withConfig := func(apply func(cfg *config.Config, log zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
			return apply(cfg, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withConfig(func(cfg *config.Config, log zerolog.Logger) error {
				return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: withConfig(func(cfg *config.Config, log zerolog.Logger) error {
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
			}),
		},
	)

	return cmd
}

// parseLines turns CODE=AMOUNT flags into request lines.
func parseLines(debits, credits []string) ([]dto.JournalLineRequest, error) {
	lines := make([]dto.JournalLineRequest, 0, len(debits)+len(credits))
	for _, arg := range debits {
		code, amount, err := parseLine(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.JournalLineRequest{AccountCode: code, Debit: amount})
	}
	for _, arg := range credits {
		code, amount, err := parseLine(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.JournalLineRequest{AccountCode: code, Credit: amount})
	}
	return lines, nil
}

func parseLine(arg string) (string, decimal.Decimal, error) {
	code, raw, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(code) == "" {
		return "", decimal.Zero, fmt.Errorf("line %q must look like CODE=AMOUNT", arg)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("line %q: invalid amount: %w", arg, err)
	}
	return strings.TrimSpace(code), amount, nil
}

func periodQuery(from, to string) url.Values {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	return query
}

func printTrialBalance(out io.Writer, tb dto.TrialBalanceResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "CODE\tTYPE\tDEBIT\tCREDIT\tBALANCE\t\n")
	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			row.Code, row.Type,
			row.TotalDebit.StringFixed(2), row.TotalCredit.StringFixed(2), row.Balance.StringFixed(2))
	}
	fmt.Fprintf(w, "TOTAL\t\t%s\t%s\t\t\n", tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2))
	return w.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
