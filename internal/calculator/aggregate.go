// Package calculator computes derived figures from raw group data. It is
// pure: callers load the rows, this package does the math.
package calculator

import (
	"time"

	"github.com/ewei/budgetgroups-server/internal/models"
)

// BudgetProgress computes spend-vs-budget figures for one budget from the
// group's transactions.
//
// Only expense-type transactions count, restricted to the budget's category
// (a budget with no category covers every expense in the group) and to the
// budget's window [StartDate, EndDate]. An open-ended budget (nil EndDate)
// uses now as the window end.
//
// ProgressPercentage is clamped to [0,100]; IsOverBudget compares the
// unclamped amounts, so a caller can distinguish "shown at 100%" from
// "actually over".
func BudgetProgress(budget models.Budget, transactions []models.Transaction, now time.Time) models.BudgetProgress {
	end := now
	if budget.EndDate != nil {
		end = *budget.EndDate
	}

	var spent float64
	for _, txn := range transactions {
		if txn.Type != models.TransactionExpense {
			continue
		}
		if budget.CategoryID != nil {
			if txn.CategoryID == nil || *txn.CategoryID != *budget.CategoryID {
				continue
			}
		}
		if txn.TransactionDate.Before(budget.StartDate) || txn.TransactionDate.After(end) {
			continue
		}
		spent += txn.Amount
	}

	progress := models.BudgetProgress{
		BudgetID:        budget.ID,
		BudgetAmount:    budget.Amount,
		SpentAmount:     spent,
		RemainingAmount: budget.Amount - spent,
		IsOverBudget:    spent > budget.Amount,
	}

	if budget.Amount > 0 {
		pct := spent / budget.Amount * 100
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		progress.ProgressPercentage = pct
	} else if spent > 0 {
		progress.ProgressPercentage = 100
	}

	return progress
}

// TransactionSummary accumulates income and expense totals over a group's
// entire transaction history in a single pass. Callers wanting a windowed
// summary filter the rows before calling.
func TransactionSummary(groupID string, transactions []models.Transaction) models.TransactionSummary {
	summary := models.TransactionSummary{GroupID: groupID}
	for _, txn := range transactions {
		switch txn.Type {
		case models.TransactionIncome:
			summary.TotalIncome += txn.Amount
		case models.TransactionExpense:
			summary.TotalExpenses += txn.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	return summary
}
