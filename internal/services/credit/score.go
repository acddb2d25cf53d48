package credit

import (
	"fmt"
	"math"
	"time"

	"chama/internal/models"
)

// computeFactors derives the five 0-100 score factors from the wallet's
// recent history. records must already be limited to the scoring window.
func computeFactors(records []models.TransactionRecord, balance int64, memberCount int, now time.Time) models.ScoreFactors {
	var (
		depositCount int
		depositTotal int64
		lastDeposit  time.Time
		net          int64
	)
	executors := make(map[string]struct{})
	for _, rec := range records {
		net += rec.SignedAmount()
		if rec.ExecutedBy != "" {
			executors[rec.ExecutedBy] = struct{}{}
		}
		if rec.Type == models.TransactionTypeDeposit {
			depositCount++
			depositTotal += rec.Amount
			if rec.CreatedAt.After(lastDeposit) {
				lastDeposit = rec.CreatedAt
			}
		}
	}

	var f models.ScoreFactors

	f.DepositFrequency = math.Min(100, float64(depositCount)/frequencyTarget*100)

	if depositCount > 0 {
		avg := float64(depositTotal) / float64(depositCount)
		f.AverageDeposit = math.Min(100, avg/float64(averageTarget)*100)
	}

	// The balance at the start of the window is back-derived from the net of
	// the window's movements.
	initial := balance - net
	denom := math.Max(float64(initial), 1)
	f.BalanceGrowth = math.Min(100, math.Max(0, float64(balance-initial)/denom*100))

	if memberCount > 0 {
		f.Participation = math.Min(100, float64(len(executors))/float64(memberCount)*100)
	}

	if !lastDeposit.IsZero() {
		days := now.Sub(lastDeposit).Hours() / 24
		f.Recency = math.Max(0, 100-days*recencyDecayPerDay)
	}

	return f
}

// weightedScore collapses the factors into the single 0-100 value.
func weightedScore(f models.ScoreFactors) int {
	total := weightFrequency*f.DepositFrequency +
		weightAverage*f.AverageDeposit +
		weightGrowth*f.BalanceGrowth +
		weightParticipation*f.Participation +
		weightRecency*f.Recency
	return int(math.Round(total))
}

// scoreReasons renders one human-readable line per factor from a fixed
// threshold table.
func scoreReasons(f models.ScoreFactors) []string {
	return []string{
		reasonFor(f.DepositFrequency,
			"excellent deposit frequency",
			"good deposit frequency",
			"make deposits more regularly to improve your score"),
		reasonFor(f.AverageDeposit,
			"excellent average deposit size",
			"good average deposit size",
			"larger deposits would improve your score"),
		reasonFor(f.BalanceGrowth,
			"excellent balance growth",
			"steady balance growth",
			"grow the fund balance to improve your score"),
		reasonFor(f.Participation,
			"excellent member participation",
			"good member participation",
			"more members taking part would improve your score"),
		reasonFor(f.Recency,
			"recent deposit activity",
			"fairly recent deposit activity",
			"make a deposit soon to improve your score"),
	}
}

func reasonFor(value float64, excellent, good, improve string) string {
	switch {
	case value >= 80:
		return excellent
	case value >= 60:
		return good
	default:
		return improve
	}
}

// scheduleFor builds the weekly amortization plan: termWeeks equal
// installments covering principal plus one month of interest, due weekly
// starting seven days out. Installments are rounded up so the schedule
// always covers the owed total.
func scheduleFor(principal int64, monthlyRate float64, termWeeks int, now time.Time) []models.Installment {
	total := principal + int64(math.Round(float64(principal)*monthlyRate))
	per := (total + int64(termWeeks) - 1) / int64(termWeeks)

	schedule := make([]models.Installment, termWeeks)
	for i := range schedule {
		schedule[i] = models.Installment{
			DueDate: now.AddDate(0, 0, 7*(i+1)),
			Amount:  per,
		}
	}
	return schedule
}

// interestDue returns the interest accrued on the outstanding amount for
// one month at the loan's rate.
func interestDue(outstanding int64, monthlyRate float64) int64 {
	return int64(math.Round(float64(outstanding) * monthlyRate))
}

func limitReason(limit int64) string {
	return fmt.Sprintf("requested amount exceeds the loan limit of %d", limit)
}
