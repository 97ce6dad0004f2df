package service

import (
	"context"
	"time"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Shared budget operations

func (s *DefaultService) CreateBudget(ctx context.Context, actorID, groupID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateEntry(role) {
		return nil, errUnauthorized("create budgets")
	}

	budget := &models.Budget{
		GroupID:    groupID,
		CreatedBy:  actorID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		return nil, upstream(err, "error creating budget")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionAddedBudget, models.EntityBudget,
		&budget.ID, models.BudgetActivityDetails{Name: budget.Name, Amount: budget.Amount, Period: budget.Period})

	return budget, nil
}

// ListBudgets returns the group's budgets; with activeOnly it restricts to
// budgets whose window covers the current date (open-ended budgets count).
func (s *DefaultService) ListBudgets(ctx context.Context, actorID, groupID string, activeOnly bool) ([]models.Budget, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view budgets")
	}

	var budgets []models.Budget
	if activeOnly {
		budgets, err = s.repo.ListActiveBudgets(ctx, groupID, time.Now().UTC())
	} else {
		budgets, err = s.repo.ListBudgets(ctx, groupID)
	}
	if err != nil {
		return nil, upstream(err, "error listing budgets")
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

func (s *DefaultService) getGroupBudget(ctx context.Context, groupID, budgetID string) (*models.Budget, error) {
	budget, err := s.repo.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, upstream(err, "error getting budget")
	}
	if budget == nil || budget.GroupID != groupID {
		return nil, apperrors.New(apperrors.NotFound, "budget not found")
	}
	return budget, nil
}

func (s *DefaultService) UpdateBudget(ctx context.Context, actorID, groupID, budgetID string, req models.UpdateBudgetRequest) (*models.Budget, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	budget, err := s.getGroupBudget(ctx, groupID, budgetID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyEntry(role, actorID, budget.CreatedBy) {
		return nil, errUnauthorized("edit this budget")
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if req.CategoryID != nil {
		budget.CategoryID = req.CategoryID
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = req.EndDate
	}

	if err := s.repo.UpdateBudget(ctx, budget); err != nil {
		return nil, upstream(err, "error updating budget")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionUpdatedBudget, models.EntityBudget,
		&budget.ID, models.BudgetActivityDetails{Name: budget.Name, Amount: budget.Amount, Period: budget.Period})

	return budget, nil
}

func (s *DefaultService) DeleteBudget(ctx context.Context, actorID, groupID, budgetID string) error {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	budget, err := s.getGroupBudget(ctx, groupID, budgetID)
	if err != nil {
		return err
	}

	if !authz.CanModifyEntry(role, actorID, budget.CreatedBy) {
		return errUnauthorized("delete this budget")
	}

	if err := s.repo.DeleteBudget(ctx, budgetID); err != nil {
		return upstream(err, "error deleting budget")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionDeletedBudget, models.EntityBudget,
		&budgetID, models.BudgetActivityDetails{Name: budget.Name, Amount: budget.Amount, Period: budget.Period})

	return nil
}
