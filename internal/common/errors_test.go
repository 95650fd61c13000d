package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTx(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want TxCategory
	}{
		{"user rejected", errors.New("MetaMask Tx Signature: User rejected the request"), TxRejected},
		{"user denied", errors.New("user denied transaction signature"), TxRejected},
		{"signature sentinel", fmt.Errorf("signing: %w", ErrSignatureRejected), TxRejected},
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), TxInsufficientFunds},
		{"network", errors.New("network error: dial tcp: connection reset"), TxNetwork},
		{"connection refused", errors.New("dial tcp 127.0.0.1:8545: connection refused"), TxNetwork},
		{"unknown", errors.New("execution reverted"), TxUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := ClassifyTx(tt.err)
			require.NotNil(t, te)
			assert.Equal(t, tt.want, te.Category)
			assert.ErrorIs(t, te, tt.err)
		})
	}
}

func TestChainMismatchError_Message(t *testing.T) {
	err := &ChainMismatchError{Detected: 999999, Expected: []uint64{11155111, 31337}}
	assert.Contains(t, err.Error(), "999999")
	assert.Contains(t, err.Error(), "11155111")
	assert.Contains(t, err.Error(), "31337")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "amount", Reason: "must be between 1 and 10000"}
	assert.Equal(t, "invalid amount: must be between 1 and 10000", err.Error())
}
