// Package common defines the shared error taxonomy used across the client
// layers. Callers should use errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Precondition errors: the action is blocked, there is nothing to retry.
	ErrPrecondition    = errors.New("precondition failed")
	ErrAdapterNotReady = errors.New("encryption adapter not ready")

	// Remote dependency errors.
	ErrEncryptionService = errors.New("encryption service unavailable")
	ErrDecryptionService = errors.New("decryption service unavailable")

	// A zero ciphertext handle: the contract slot was never written.
	ErrUninitializedRecord = errors.New("record not initialized")

	// The user declined the wallet signature request.
	ErrSignatureRejected = errors.New("signature request rejected by user")
)

// ValidationError reports bad user input. It is surfaced inline; the user
// corrects the value and retries explicitly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ChainMismatchError means the connected network has no deployed contract.
type ChainMismatchError struct {
	Detected uint64
	Expected []uint64
}

func (e *ChainMismatchError) Error() string {
	ids := make([]string, 0, len(e.Expected))
	for _, id := range e.Expected {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf("no contract deployed on chain %d (expected one of: %s)",
		e.Detected, strings.Join(ids, ", "))
}

// TxCategory classifies a failed transaction submission.
type TxCategory string

const (
	TxRejected          TxCategory = "user_rejected"
	TxInsufficientFunds TxCategory = "insufficient_funds"
	TxNetwork           TxCategory = "network"
	TxUnknown           TxCategory = "unknown"
)

// TransactionError wraps a failed submission with a human-readable category.
// Nothing is retried automatically; a retry is always a new user action.
type TransactionError struct {
	Category TxCategory
	Err      error
}

func (e *TransactionError) Error() string {
	switch e.Category {
	case TxRejected:
		return "transaction was cancelled by user"
	case TxInsufficientFunds:
		return "insufficient funds for transaction"
	case TxNetwork:
		return fmt.Sprintf("network error during transaction: %v", e.Err)
	default:
		return fmt.Sprintf("transaction failed: %v", e.Err)
	}
}

func (e *TransactionError) Unwrap() error { return e.Err }

// ClassifyTx maps an underlying submission failure onto a TxCategory by
// matching known substrings, defaulting to TxUnknown.
func ClassifyTx(err error) *TransactionError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "user denied"),
		errors.Is(err, ErrSignatureRejected):
		return &TransactionError{Category: TxRejected, Err: err}
	case strings.Contains(msg, "insufficient funds"):
		return &TransactionError{Category: TxInsufficientFunds, Err: err}
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "timeout"):
		return &TransactionError{Category: TxNetwork, Err: err}
	default:
		return &TransactionError{Category: TxUnknown, Err: err}
	}
}
