package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/model"
)

func TestNormalizeToMonthly(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		freq   model.Frequency
		want   float64
	}{
		{"monthly unchanged", 100, model.FreqMonthly, 100},
		{"yearly divided", 1200, model.FreqYearly, 100},
		{"weekly multiplied", 100, model.FreqWeekly, 433},
		{"biweekly multiplied", 100, model.FreqBiweekly, 217},
		{"unknown frequency passes through", 100, "quarterly", 100},
		{"empty frequency passes through", 250, "", 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeToMonthly(tt.amount, tt.freq), 0.001)
		})
	}
}

func TestComputeTotalsFrequencyInvariant(t *testing.T) {
	yearly := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 1200, Frequency: model.FreqYearly}},
	}
	monthly := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 100, Frequency: model.FreqMonthly}},
	}

	assert.Equal(t, 100.00, ComputeTotals(yearly).MonthlyIncome)
	assert.Equal(t, 100.00, ComputeTotals(monthly).MonthlyIncome)
}

func TestComputeTotals(t *testing.T) {
	set := model.FinancialAnswerSet{
		Income: []model.LineItem{
			{Label: "Salary", Amount: 4000, Frequency: model.FreqMonthly},
			{Label: "Side work", Amount: 6000, Frequency: model.FreqYearly},
		},
		Expenses: []model.LineItem{
			{Label: "Rent", Amount: 1800, Frequency: model.FreqMonthly},
			{Label: "Groceries", Amount: 150, Frequency: model.FreqWeekly},
		},
		Assets: []model.LineItem{
			{Label: "Checking", Amount: 5000},
			{Label: "Car", Amount: 12000},
		},
		Debts: []model.LineItem{
			{Label: "Credit card", Amount: 3000},
		},
	}

	totals := ComputeTotals(set)
	assert.Equal(t, 4500.00, totals.MonthlyIncome)
	assert.Equal(t, 2449.50, totals.MonthlyExpenses) // 1800 + 150*4.33
	assert.Equal(t, 17000.00, totals.TotalAssets)
	assert.Equal(t, 3000.00, totals.TotalDebts)
	assert.Equal(t, 14000.00, totals.NetWorth)
	assert.Equal(t, 2050.50, totals.MonthlyCashFlow)
}

func TestComputeTotalsRoundsHalfUpOnCents(t *testing.T) {
	// 0.125 is exact in binary, so the half-cent genuinely rounds up
	set := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Odd", Amount: 0.125, Frequency: model.FreqMonthly}},
	}
	assert.Equal(t, 0.13, ComputeTotals(set).MonthlyIncome)
}

func TestComputeTotalsEmptySet(t *testing.T) {
	totals := ComputeTotals(model.FinancialAnswerSet{})
	assert.Equal(t, model.FinancialTotals{}, totals)
}

func TestDetectDiscrepanciesFlagsLargeIncomeGap(t *testing.T) {
	user := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 5000, Frequency: model.FreqMonthly}},
	}
	spouse := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 3000, Frequency: model.FreqMonthly}},
	}

	discrepancies := DetectDiscrepancies(user, spouse)

	var income *model.Discrepancy
	for i := range discrepancies {
		if discrepancies[i].Field == "Monthly Income" {
			income = &discrepancies[i]
		}
	}
	require.NotNil(t, income)
	assert.Equal(t, model.DiscrepancyAmountMismatch, income.Type)
	assert.GreaterOrEqual(t, income.PercentDiff, DiscrepancyThresholdPct)
	assert.Equal(t, 5000.00, income.UserAmount)
	assert.Equal(t, 3000.00, income.SpouseAmount)
}

func TestDetectDiscrepanciesWithinBandNotFlagged(t *testing.T) {
	user := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 4800, Frequency: model.FreqMonthly}},
	}
	spouse := model.FinancialAnswerSet{
		Income: []model.LineItem{{Label: "Salary", Amount: 5000, Frequency: model.FreqMonthly}},
	}

	for _, d := range DetectDiscrepancies(user, spouse) {
		assert.NotEqual(t, "Monthly Income", d.Field)
	}
}

func TestDetectDiscrepanciesSkipsBothZero(t *testing.T) {
	assert.Empty(t, DetectDiscrepancies(model.FinancialAnswerSet{}, model.FinancialAnswerSet{}))
}

func TestDetectDiscrepanciesUserMissingCategory(t *testing.T) {
	user := model.FinancialAnswerSet{}
	spouse := model.FinancialAnswerSet{
		Assets: []model.LineItem{{Label: "House", Amount: 250000}},
	}

	discrepancies := DetectDiscrepancies(user, spouse)

	var missing *model.Discrepancy
	for i := range discrepancies {
		if discrepancies[i].Type == model.DiscrepancyUserMissing {
			missing = &discrepancies[i]
		}
	}
	require.NotNil(t, missing)
	assert.Equal(t, "assets", missing.Category)
	assert.Equal(t, 0.00, missing.UserAmount)
	assert.Equal(t, 250000.00, missing.SpouseAmount)
}

func TestDetectDiscrepanciesMissingOnlyForUserSide(t *testing.T) {
	// The spouse leaving a category empty is not flagged as user_missing
	user := model.FinancialAnswerSet{
		Debts: []model.LineItem{{Label: "Loan", Amount: 9000}},
	}
	spouse := model.FinancialAnswerSet{}

	for _, d := range DetectDiscrepancies(user, spouse) {
		assert.NotEqual(t, model.DiscrepancyUserMissing, d.Type)
	}
}

func TestDetectDiscrepanciesExpensesNeverUserMissing(t *testing.T) {
	// Only income, assets and debts get the missing-category check
	user := model.FinancialAnswerSet{}
	spouse := model.FinancialAnswerSet{
		Expenses: []model.LineItem{{Label: "Rent", Amount: 1800, Frequency: model.FreqMonthly}},
	}

	for _, d := range DetectDiscrepancies(user, spouse) {
		assert.NotEqual(t, model.DiscrepancyUserMissing, d.Type)
	}
}

func TestPercentDiffFloorsDivisor(t *testing.T) {
	// Both sides tiny: the max(...,1) floor keeps the percentage sane
	user := model.FinancialAnswerSet{
		Assets: []model.LineItem{{Label: "Cash", Amount: 0.40}},
	}
	spouse := model.FinancialAnswerSet{
		Assets: []model.LineItem{{Label: "Cash", Amount: 0.10}},
	}

	discrepancies := DetectDiscrepancies(user, spouse)
	require.NotEmpty(t, discrepancies)
	assert.Equal(t, 30.00, discrepancies[0].PercentDiff) // |0.4-0.1|/1*100
}
