package models

import "time"

// ScoreFactors is the per-factor breakdown behind a credit score. Each
// factor is on a 0-100 scale before weighting.
type ScoreFactors struct {
	DepositFrequency float64 `json:"deposit_frequency"`
	AverageDeposit   float64 `json:"average_deposit"`
	BalanceGrowth    float64 `json:"balance_growth"`
	Participation    float64 `json:"participation"`
	Recency          float64 `json:"recency"`
}

// CreditScore is the cached result of the rolling score computation. It is
// considered stale for loan-eligibility purposes 24 hours after UpdatedAt.
type CreditScore struct {
	Value     int          `json:"value"`
	Factors   ScoreFactors `json:"factors"`
	Reasons   []string     `json:"reasons"`
	UpdatedAt time.Time    `json:"updated_at"`
}
