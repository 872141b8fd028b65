// Package compare derives monthly-normalized totals from two independently
// collected financial disclosures and flags material differences between
// them. Results are recomputed on demand and never persisted.
package compare

import (
	"math"

	"filingdesk/internal/model"
)

const (
	// DiscrepancyThresholdPct is the minimum percent difference that gets
	// flagged. Below it the two disclosures are treated as agreeing.
	DiscrepancyThresholdPct = 10.0

	// minDivisor floors the percent-difference denominator so near-zero
	// totals cannot divide by zero or explode the percentage.
	minDivisor = 1.0

	weeksPerMonth   = 4.33
	biweeksPerMonth = 2.17
	monthsPerYear   = 12.0
)

// NormalizeToMonthly converts an amount at the given frequency to its
// monthly equivalent. An unrecognized frequency is treated as already
// monthly and passed through.
func NormalizeToMonthly(amount float64, freq model.Frequency) float64 {
	switch freq {
	case model.FreqWeekly:
		return amount * weeksPerMonth
	case model.FreqBiweekly:
		return amount * biweeksPerMonth
	case model.FreqYearly:
		return amount / monthsPerYear
	default:
		return amount
	}
}

// ComputeTotals sums a disclosure into monthly-normalized totals, rounded
// half-up on the cent
func ComputeTotals(set model.FinancialAnswerSet) model.FinancialTotals {
	var totals model.FinancialTotals
	for _, item := range set.Income {
		totals.MonthlyIncome += NormalizeToMonthly(item.Amount, item.Frequency)
	}
	for _, item := range set.Expenses {
		totals.MonthlyExpenses += NormalizeToMonthly(item.Amount, item.Frequency)
	}
	for _, item := range set.Assets {
		totals.TotalAssets += item.Amount
	}
	for _, item := range set.Debts {
		totals.TotalDebts += item.Amount
	}

	totals.MonthlyIncome = roundCents(totals.MonthlyIncome)
	totals.MonthlyExpenses = roundCents(totals.MonthlyExpenses)
	totals.TotalAssets = roundCents(totals.TotalAssets)
	totals.TotalDebts = roundCents(totals.TotalDebts)
	totals.NetWorth = roundCents(totals.TotalAssets - totals.TotalDebts)
	totals.MonthlyCashFlow = roundCents(totals.MonthlyIncome - totals.MonthlyExpenses)
	return totals
}

// DetectDiscrepancies compares the two disclosures' totals. A pair where
// both sides are exactly zero is skipped; otherwise the difference is
// flagged when it reaches DiscrepancyThresholdPct. A category the spouse
// reported that the user left entirely empty is always flagged as
// user_missing, independent of the threshold.
func DetectDiscrepancies(user, spouse model.FinancialAnswerSet) []model.Discrepancy {
	userTotals := ComputeTotals(user)
	spouseTotals := ComputeTotals(spouse)

	pairs := []struct {
		category string
		label    string
		user     float64
		spouse   float64
	}{
		{"income", "Monthly Income", userTotals.MonthlyIncome, spouseTotals.MonthlyIncome},
		{"expenses", "Monthly Expenses", userTotals.MonthlyExpenses, spouseTotals.MonthlyExpenses},
		{"assets", "Total Assets", userTotals.TotalAssets, spouseTotals.TotalAssets},
		{"debts", "Total Debts", userTotals.TotalDebts, spouseTotals.TotalDebts},
		{"net_worth", "Net Worth", userTotals.NetWorth, spouseTotals.NetWorth},
	}

	discrepancies := []model.Discrepancy{}
	for _, p := range pairs {
		if p.user == 0 && p.spouse == 0 {
			continue
		}
		pct := percentDiff(p.user, p.spouse)
		if pct >= DiscrepancyThresholdPct {
			discrepancies = append(discrepancies, model.Discrepancy{
				Category:     p.category,
				Field:        p.label,
				UserAmount:   p.user,
				SpouseAmount: p.spouse,
				PercentDiff:  pct,
				Type:         model.DiscrepancyAmountMismatch,
			})
		}
	}

	missing := []struct {
		category  string
		label     string
		userLen   int
		spouseLen int
		user      float64
		spouse    float64
	}{
		{"income", "Monthly Income", len(user.Income), len(spouse.Income), userTotals.MonthlyIncome, spouseTotals.MonthlyIncome},
		{"assets", "Total Assets", len(user.Assets), len(spouse.Assets), userTotals.TotalAssets, spouseTotals.TotalAssets},
		{"debts", "Total Debts", len(user.Debts), len(spouse.Debts), userTotals.TotalDebts, spouseTotals.TotalDebts},
	}
	for _, m := range missing {
		if m.spouseLen > 0 && m.userLen == 0 {
			discrepancies = append(discrepancies, model.Discrepancy{
				Category:     m.category,
				Field:        m.label,
				UserAmount:   m.user,
				SpouseAmount: m.spouse,
				PercentDiff:  percentDiff(m.user, m.spouse),
				Type:         model.DiscrepancyUserMissing,
			})
		}
	}

	return discrepancies
}

func percentDiff(a, b float64) float64 {
	divisor := math.Max(math.Max(a, b), minDivisor)
	return roundCents(math.Abs(a-b) / divisor * 100)
}

// roundCents rounds half-up on the second decimal place
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
