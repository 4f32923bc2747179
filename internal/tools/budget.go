package tools

const (
	BudgetIncome  string = "income"
	BudgetExpense string = "expense"
)

type BudgetItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"` // "income" or "expense"
}

type BudgetCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
}

type BudgetSummary struct {
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	NetIncome     float64         `json:"net_income"`
	Categories    []CategoryTotal `json:"categories"`
}

// BudgetCategories is the fixed category list presented by the planner.
func BudgetCategories() []BudgetCategory {
	return []BudgetCategory{
		{Name: "Løn", Color: "#10B981", Type: BudgetIncome},
		{Name: "Freelance", Color: "#059669", Type: BudgetIncome},
		{Name: "Investeringer", Color: "#047857", Type: BudgetIncome},
		{Name: "Andet indkomst", Color: "#065F46", Type: BudgetIncome},

		{Name: "Bolig", Color: "#EF4444", Type: BudgetExpense},
		{Name: "Transport", Color: "#F97316", Type: BudgetExpense},
		{Name: "Mad", Color: "#EAB308", Type: BudgetExpense},
		{Name: "Forsikringer", Color: "#8B5CF6", Type: BudgetExpense},
		{Name: "Gæld & lån", Color: "#EC4899", Type: BudgetExpense},
		{Name: "Entertainment", Color: "#06B6D4", Type: BudgetExpense},
		{Name: "Tøj & shopping", Color: "#84CC16", Type: BudgetExpense},
		{Name: "Sundhed", Color: "#F59E0B", Type: BudgetExpense},
		{Name: "Opsparing", Color: "#10B981", Type: BudgetExpense},
		{Name: "Andet udgifter", Color: "#6B7280", Type: BudgetExpense},
	}
}

// SummarizeBudget aggregates items into income/expense totals and
// per-category totals. Category order follows first appearance in the
// input so the breakdown is stable for a given submission.
func SummarizeBudget(items []BudgetItem) BudgetSummary {
	summary := BudgetSummary{Categories: []CategoryTotal{}}

	index := make(map[string]int)
	for _, item := range items {
		if item.Type == BudgetIncome {
			summary.TotalIncome += item.Amount
		} else {
			summary.TotalExpenses += item.Amount
		}

		pos, ok := index[item.Category]
		if !ok {
			pos = len(summary.Categories)
			index[item.Category] = pos
			summary.Categories = append(summary.Categories, CategoryTotal{
				Category: item.Category,
				Type:     item.Type,
			})
		}
		summary.Categories[pos].Amount += item.Amount
	}

	summary.NetIncome = summary.TotalIncome - summary.TotalExpenses
	return summary
}
