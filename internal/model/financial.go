package model

import "time"

// Frequency is how often an income or expense item recurs
type Frequency string

const (
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
	FreqYearly   Frequency = "yearly"
)

// LineItem is one entry in a financial disclosure. Frequency applies to
// income and expense items; assets and debts carry a flat amount.
type LineItem struct {
	Label     string    `json:"label" bson:"label"`
	Amount    float64   `json:"amount" bson:"amount"`
	Frequency Frequency `json:"frequency,omitempty" bson:"frequency,omitempty"`
}

// FinancialAnswerSet is one party's full financial disclosure
type FinancialAnswerSet struct {
	UserID    string     `json:"userId" bson:"_id,omitempty"`
	Income    []LineItem `json:"income" bson:"income"`
	Expenses  []LineItem `json:"expenses" bson:"expenses"`
	Assets    []LineItem `json:"assets" bson:"assets"`
	Debts     []LineItem `json:"debts" bson:"debts"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// FinancialTotals are monthly-normalized totals for one disclosure
type FinancialTotals struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	TotalAssets     float64 `json:"totalAssets"`
	TotalDebts      float64 `json:"totalDebts"`
	NetWorth        float64 `json:"netWorth"`
	MonthlyCashFlow float64 `json:"monthlyCashFlow"`
}

// DiscrepancyType classifies a flagged difference
type DiscrepancyType string

const (
	DiscrepancyAmountMismatch DiscrepancyType = "amount_mismatch"
	DiscrepancyUserMissing    DiscrepancyType = "user_missing" // spouse reported a category the user left empty
)

// Discrepancy is a material difference between the two disclosures.
// Derived on demand, never persisted.
type Discrepancy struct {
	Category     string          `json:"category"`
	Field        string          `json:"field"` // display label, e.g. "Monthly Income"
	UserAmount   float64         `json:"userAmount"`
	SpouseAmount float64         `json:"spouseAmount"`
	PercentDiff  float64         `json:"percentDiff"`
	Type         DiscrepancyType `json:"type"`
}

// ComparisonResult bundles both parties' totals with the flagged differences
type ComparisonResult struct {
	UserTotals    FinancialTotals `json:"userTotals"`
	SpouseTotals  FinancialTotals `json:"spouseTotals"`
	Discrepancies []Discrepancy   `json:"discrepancies"`
}
