package credit

import "time"

// Scoring defaults
const (
	DefaultMonthlyRate = 0.01
	MinimumScore       = 60
	MinimumDeposits    = int64(500_000)
	LoanCapRatio       = 0.3
	ScoreTTL           = 24 * time.Hour
	ScoreWindow        = 30 * 24 * time.Hour
	MaxScoreRecords    = 100
)

// Factor weights. They sum to 1.
const (
	weightFrequency     = 0.25
	weightAverage       = 0.20
	weightGrowth        = 0.20
	weightParticipation = 0.20
	weightRecency       = 0.15
)

// Deposit-frequency factor saturates at this many deposits in the window.
const frequencyTarget = 10

// Average-deposit factor saturates at this amount in minor units.
const averageTarget = int64(1_000_000)

// Recency decays at this many points per day without a deposit, reaching
// zero after the 30-day window.
const recencyDecayPerDay = 3.33
