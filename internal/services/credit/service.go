// Package credit derives a rolling credit score from ledger history and
// runs the micro-loan lifecycle: application, disbursement and repayment.
package credit

import (
	"context"
	"math"
	"time"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/store"
	"chama/internal/validation"
)

// Service is the credit and loan interface.
type Service interface {
	ComputeScore(ctx context.Context, walletID string) (*models.CreditScore, error)
	ApplyForLoan(ctx context.Context, input ApplyLoanInput) (*LoanDecision, error)
	DisburseLoan(ctx context.Context, walletID, disbursedBy string) (*models.Loan, error)
	RepayLoan(ctx context.Context, input RepayLoanInput) (*RepaymentResult, error)
}

type service struct {
	store   *store.Store
	wallets repositories.WalletRepository
	members repositories.MemberRepository
	txns    repositories.TransactionRepository
	config  Config
}

// NewService creates a new credit service.
func NewService(st *store.Store, config Config) Service {
	if st == nil {
		panic("store is required")
	}
	if config.MonthlyRate == 0 {
		config.MonthlyRate = DefaultMonthlyRate
	}
	if config.MinimumScore == 0 {
		config.MinimumScore = MinimumScore
	}
	if config.MinimumDeposits == 0 {
		config.MinimumDeposits = MinimumDeposits
	}
	if config.CapRatio == 0 {
		config.CapRatio = LoanCapRatio
	}
	return &service{
		store:   st,
		wallets: repositories.NewWalletRepository(),
		members: repositories.NewMemberRepository(),
		txns:    repositories.NewTransactionRepository(),
		config:  config,
	}
}

func (s *service) ComputeScore(ctx context.Context, walletID string) (*models.CreditScore, error) {
	var score *models.CreditScore
	err := s.store.Update(func(tx *store.Tx) error {
		wallet, err := s.wallets.Get(tx, walletID)
		if err != nil {
			return err
		}
		sc, err := s.computeScore(tx, wallet, time.Now().UTC())
		if err != nil {
			return err
		}
		wallet.CreditScore = sc
		wallet.UpdatedAt = sc.UpdatedAt
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}
		score = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return score, nil
}

// computeScore recomputes the score from the most recent history and caches
// nothing itself; the caller persists the wallet.
func (s *service) computeScore(tx *store.Tx, wallet *models.Wallet, now time.Time) (*models.CreditScore, error) {
	records, err := s.windowRecords(tx, wallet.ID, now)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListByWallet(tx, wallet.ID)
	if err != nil {
		return nil, err
	}

	factors := computeFactors(records, wallet.Balance, len(members), now)
	return &models.CreditScore{
		Value:     weightedScore(factors),
		Factors:   factors,
		Reasons:   scoreReasons(factors),
		UpdatedAt: now,
	}, nil
}

// windowRecords returns the scoring window: the slice of the 100 most
// recent transactions that falls inside the last 30 days.
func (s *service) windowRecords(tx *store.Tx, walletID string, now time.Time) ([]models.TransactionRecord, error) {
	recent, err := s.txns.ListRecent(tx, walletID, MaxScoreRecords)
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(-ScoreWindow)
	var window []models.TransactionRecord
	for _, rec := range recent {
		if rec.CreatedAt.After(cutoff) {
			window = append(window, rec)
		}
	}
	return window, nil
}

func windowDeposits(records []models.TransactionRecord) int64 {
	var total int64
	for _, rec := range records {
		if rec.Type == models.TransactionTypeDeposit {
			total += rec.Amount
		}
	}
	return total
}

// ApplyForLoan evaluates eligibility and, if approved, replaces the
// wallet's loan with a new one in approved status. Rejection comes back as
// a decision, not an error.
func (s *service) ApplyForLoan(ctx context.Context, input ApplyLoanInput) (*LoanDecision, error) {
	if err := validation.Amount(input.Amount); err != nil {
		return nil, err
	}
	if input.TermWeeks <= 0 {
		return nil, &apperr.DomainError{
			Code:    "validation_error",
			Message: "loan term must be at least one week",
		}
	}

	var decision *LoanDecision
	err := s.store.Update(func(tx *store.Tx) error {
		wallet, err := s.wallets.Get(tx, input.WalletID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if wallet.Loan != nil &&
			wallet.Loan.Status != models.LoanStatusNone &&
			wallet.Loan.Status != models.LoanStatusCompleted {
			decision = &LoanDecision{
				Reasons: []string{"a loan is already in progress for this wallet"},
			}
			return nil
		}

		score := wallet.CreditScore
		if score == nil || now.Sub(score.UpdatedAt) > ScoreTTL {
			score, err = s.computeScore(tx, wallet, now)
			if err != nil {
				return err
			}
			wallet.CreditScore = score
		}

		records, err := s.windowRecords(tx, wallet.ID, now)
		if err != nil {
			return err
		}
		deposits := windowDeposits(records)
		limit := int64(math.Floor(float64(deposits) * s.config.CapRatio))

		var reasons []string
		if score.Value < s.config.MinimumScore {
			reasons = append(reasons, "credit score below the minimum for borrowing")
		}
		if deposits < s.config.MinimumDeposits {
			reasons = append(reasons, "not enough deposit activity in the last 30 days")
		}
		if len(reasons) == 0 && input.Amount > limit {
			reasons = append(reasons, limitReason(limit))
		}
		if len(reasons) > 0 {
			decision = &LoanDecision{Limit: limit, Score: score.Value, Reasons: reasons}
			return s.wallets.Put(tx, wallet)
		}

		schedule := scheduleFor(input.Amount, s.config.MonthlyRate, input.TermWeeks, now)
		wallet.Loan = &models.Loan{
			Principal:   input.Amount,
			Outstanding: input.Amount,
			MonthlyRate: s.config.MonthlyRate,
			TermWeeks:   input.TermWeeks,
			Status:      models.LoanStatusApproved,
			NextDueDate: schedule[0].DueDate,
			Schedule:    schedule,
			AppliedAt:   now,
			ApprovedAt:  &now,
		}
		wallet.UpdatedAt = now
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}
		decision = &LoanDecision{Approved: true, Limit: limit, Score: score.Value}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decision, nil
}

// DisburseLoan credits the principal to the wallet balance. The credit is
// recorded on the ledger so the balance stays explained by the transaction
// log.
func (s *service) DisburseLoan(ctx context.Context, walletID, disbursedBy string) (*models.Loan, error) {
	var loan *models.Loan
	err := s.store.Update(func(tx *store.Tx) error {
		wallet, err := s.wallets.Get(tx, walletID)
		if err != nil {
			return err
		}
		if wallet.Loan == nil || wallet.Loan.Status != models.LoanStatusApproved {
			return apperr.ErrLoanNotApproved
		}

		now := time.Now().UTC()
		rec := &models.TransactionRecord{
			WalletID:      wallet.ID,
			Type:          models.TransactionTypeIncome,
			Amount:        wallet.Loan.Principal,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance + wallet.Loan.Principal,
			ExecutedBy:    disbursedBy,
			Description:   "loan disbursement",
			CreatedAt:     now,
		}
		if err := s.txns.Append(tx, rec); err != nil {
			return err
		}

		wallet.Balance = rec.BalanceAfter
		wallet.Loan.Status = models.LoanStatusDisbursed
		wallet.Loan.DisbursedAt = &now
		wallet.UpdatedAt = now
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}
		loan = wallet.Loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// RepayLoan applies a repayment interest-first and appends a Repayment
// record. The cash movement itself is expected to have been recorded by the
// caller; the wallet balance is not touched here.
func (s *service) RepayLoan(ctx context.Context, input RepayLoanInput) (*RepaymentResult, error) {
	if err := validation.Amount(input.Amount); err != nil {
		return nil, err
	}

	var result *RepaymentResult
	err := s.store.Update(func(tx *store.Tx) error {
		wallet, err := s.wallets.Get(tx, input.WalletID)
		if err != nil {
			return err
		}
		loan := wallet.Loan
		if loan == nil ||
			(loan.Status != models.LoanStatusDisbursed && loan.Status != models.LoanStatusActive) {
			return apperr.ErrNoActiveLoan
		}

		now := time.Now().UTC()
		interest := interestDue(loan.Outstanding, loan.MonthlyRate)
		if interest > input.Amount {
			interest = input.Amount
		}
		reduction := input.Amount - interest
		if reduction > loan.Outstanding {
			reduction = loan.Outstanding
		}
		loan.Outstanding -= reduction
		if loan.Outstanding == 0 {
			loan.Status = models.LoanStatusCompleted
			for i := range loan.Schedule {
				loan.Schedule[i].Paid = true
			}
		} else {
			loan.Status = models.LoanStatusActive
			advanceSchedule(loan, input.Amount)
		}

		wallet.Repayments = append(wallet.Repayments, models.Repayment{
			ID:                 repositories.NewID(),
			Amount:             input.Amount,
			InterestPayment:    interest,
			PrincipalReduction: reduction,
			TransactionID:      input.TransactionID,
			PaidAt:             now,
		})
		wallet.UpdatedAt = now
		if err := s.wallets.Put(tx, wallet); err != nil {
			return err
		}

		result = &RepaymentResult{
			InterestPayment:    interest,
			PrincipalReduction: reduction,
			Outstanding:        loan.Outstanding,
			Status:             loan.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// advanceSchedule marks installments covered by this repayment as paid and
// moves the next due date forward. Due dates are evaluated lazily on the
// next call, never by a timer.
func advanceSchedule(loan *models.Loan, amount int64) {
	for i := range loan.Schedule {
		if loan.Schedule[i].Paid {
			continue
		}
		if amount < loan.Schedule[i].Amount {
			break
		}
		amount -= loan.Schedule[i].Amount
		loan.Schedule[i].Paid = true
	}
	for _, inst := range loan.Schedule {
		if !inst.Paid {
			loan.NextDueDate = inst.DueDate
			return
		}
	}
}
