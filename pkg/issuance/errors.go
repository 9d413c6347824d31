package issuance

import (
	"errors"
	"fmt"
)

// ErrAlreadyAssociated is returned by a LedgerClient when the account already
// holds an association with the class.
var ErrAlreadyAssociated = errors.New("account already associated with asset class")

type Stage string

const (
	StageCreateClass   Stage = "create-class"
	StageMint          Stage = "mint"
	StageAssociate     Stage = "associate"
	StageQueryBalances Stage = "query-balances"
	StageTransfer      Stage = "transfer"
)

// WorkflowError tags an underlying ledger error with the stage that failed.
type WorkflowError struct {
	Stage Stage
	Err   error
}

func (errorValue WorkflowError) Error() string {
	if errorValue.Err == nil {
		return fmt.Sprintf("%s stage failed", errorValue.Stage)
	}
	return fmt.Sprintf("%s stage failed: %v", errorValue.Stage, errorValue.Err)
}

func (errorValue WorkflowError) Unwrap() error {
	return errorValue.Err
}

type ClassCreationError struct {
	WorkflowError
	Name   string
	Symbol string
}

type MintError struct {
	WorkflowError
	Class ClassHandle
}

type AssociationError struct {
	WorkflowError
	AccountID string
	Class     ClassHandle
}

type BalanceQueryError struct {
	WorkflowError
	AccountID string
}

type TransferError struct {
	WorkflowError
	Class  ClassHandle
	Serial int64
	From   string
	To     string
}

// ConfigValidationError lists every problem found in a Config.
type ConfigValidationError struct {
	Problems []string
}

func (errorValue ConfigValidationError) Error() string {
	return fmt.Sprintf("invalid issuance config: %v", errorValue.Problems)
}

// FailedStage extracts the stage from any error produced by a workflow stage.
func FailedStage(err error) (Stage, bool) {
	var classErr ClassCreationError
	var mintErr MintError
	var associationErr AssociationError
	var balanceErr BalanceQueryError
	var transferErr TransferError

	switch {
	case errors.As(err, &classErr):
		return classErr.Stage, true
	case errors.As(err, &mintErr):
		return mintErr.Stage, true
	case errors.As(err, &associationErr):
		return associationErr.Stage, true
	case errors.As(err, &balanceErr):
		return balanceErr.Stage, true
	case errors.As(err, &transferErr):
		return transferErr.Stage, true
	}
	return "", false
}
