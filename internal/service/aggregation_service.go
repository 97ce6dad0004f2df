package service

import (
	"context"
	"time"

	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/calculator"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Aggregation

// BudgetProgress computes spend-vs-budget figures for one budget. The
// budget is re-fetched on every call; the result reflects whatever the
// store returns at query time, not a snapshot.
func (s *DefaultService) BudgetProgress(ctx context.Context, actorID, groupID, budgetID string) (*models.BudgetProgress, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view budget progress")
	}

	budget, err := s.getGroupBudget(ctx, groupID, budgetID)
	if err != nil {
		return nil, err
	}

	txns, err := s.repo.ListTransactions(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error listing transactions")
	}

	progress := calculator.BudgetProgress(*budget, txns, time.Now().UTC())
	return &progress, nil
}

// TransactionSummary accumulates income and expense totals over the group's
// entire transaction history. Callers wanting a window filter beforehand.
func (s *DefaultService) TransactionSummary(ctx context.Context, actorID, groupID string) (*models.TransactionSummary, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view the transaction summary")
	}

	txns, err := s.repo.ListTransactions(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error listing transactions")
	}

	summary := calculator.TransactionSummary(groupID, txns)
	return &summary, nil
}
