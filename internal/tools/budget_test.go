package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeBudget(t *testing.T) {
	items := []BudgetItem{
		{Name: "Løn", Amount: 25000, Category: "Løn", Type: BudgetIncome},
		{Name: "Husleje", Amount: 8000, Category: "Bolig", Type: BudgetExpense},
		{Name: "El", Amount: 500, Category: "Bolig", Type: BudgetExpense},
		{Name: "Mad", Amount: 3000, Category: "Mad", Type: BudgetExpense},
	}

	summary := SummarizeBudget(items)

	assert.InDelta(t, 25000, summary.TotalIncome, 1e-9)
	assert.InDelta(t, 11500, summary.TotalExpenses, 1e-9)
	assert.InDelta(t, 13500, summary.NetIncome, 1e-9)

	require.Len(t, summary.Categories, 3)
	assert.Equal(t, "Bolig", summary.Categories[1].Category)
	assert.InDelta(t, 8500, summary.Categories[1].Amount, 1e-9)
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	summary := SummarizeBudget(nil)
	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.NetIncome)
	assert.Empty(t, summary.Categories)
}

func TestBudgetCategoriesSplit(t *testing.T) {
	var income, expense int
	for _, cat := range BudgetCategories() {
		switch cat.Type {
		case BudgetIncome:
			income++
		case BudgetExpense:
			expense++
		default:
			t.Fatalf("unexpected category type %q", cat.Type)
		}
	}
	assert.Equal(t, 4, income)
	assert.Equal(t, 10, expense)
}
