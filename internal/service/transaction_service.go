package service

import (
	"context"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Shared transaction operations

func (s *DefaultService) CreateTransaction(ctx context.Context, actorID, groupID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateEntry(role) {
		return nil, errUnauthorized("create transactions")
	}

	txn := &models.Transaction{
		GroupID:         groupID,
		CreatedBy:       actorID,
		CategoryID:      req.CategoryID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, upstream(err, "error creating transaction")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionAddedTransaction, models.EntityTransaction,
		&txn.ID, models.TransactionActivityDetails{Amount: txn.Amount, Type: txn.Type})

	return txn, nil
}

func (s *DefaultService) ListTransactions(ctx context.Context, actorID, groupID string) ([]models.Transaction, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view transactions")
	}

	txns, err := s.repo.ListTransactions(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error listing transactions")
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

// getGroupTransaction loads a transaction and checks it belongs to the
// group named in the request path.
func (s *DefaultService) getGroupTransaction(ctx context.Context, groupID, txnID string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, upstream(err, "error getting transaction")
	}
	if txn == nil || txn.GroupID != groupID {
		return nil, apperrors.New(apperrors.NotFound, "transaction not found")
	}
	return txn, nil
}

func (s *DefaultService) UpdateTransaction(ctx context.Context, actorID, groupID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	txn, err := s.getGroupTransaction(ctx, groupID, txnID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModifyEntry(role, actorID, txn.CreatedBy) {
		return nil, errUnauthorized("edit this transaction")
	}

	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.CategoryID != nil {
		txn.CategoryID = req.CategoryID
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}

	if err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, upstream(err, "error updating transaction")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionUpdatedTransaction, models.EntityTransaction,
		&txn.ID, models.TransactionActivityDetails{Amount: txn.Amount, Type: txn.Type})

	return txn, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, actorID, groupID, txnID string) error {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	txn, err := s.getGroupTransaction(ctx, groupID, txnID)
	if err != nil {
		return err
	}

	if !authz.CanModifyEntry(role, actorID, txn.CreatedBy) {
		return errUnauthorized("delete this transaction")
	}

	if err := s.repo.DeleteTransaction(ctx, txnID); err != nil {
		return upstream(err, "error deleting transaction")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionDeletedTransaction, models.EntityTransaction,
		&txnID, models.TransactionActivityDetails{Amount: txn.Amount, Type: txn.Type})

	return nil
}
