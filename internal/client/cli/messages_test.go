package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	commonerrs "github.com/water4699/donationlog/internal/common"
)

func TestSubmitErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"validation",
			&commonerrs.ValidationError{Field: "amount", Reason: "must be a whole number"},
			"Invalid amount: must be a whole number",
		},
		{
			"adapter degraded",
			fmt.Errorf("submit: %w", commonerrs.ErrAdapterNotReady),
			"Encryption service unavailable, check 'status' and try again",
		},
		{
			"rejected",
			commonerrs.ClassifyTx(errors.New("user rejected transaction")),
			"Transaction rejected in the wallet",
		},
		{
			"insufficient funds",
			commonerrs.ClassifyTx(errors.New("insufficient funds for gas")),
			"Insufficient funds to cover the transaction",
		},
		{
			"network",
			commonerrs.ClassifyTx(errors.New("network error: timeout")),
			"Network error, the donation was not submitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, submitErrorMessage(tt.err))
		})
	}
}

func TestDecryptErrorMessage(t *testing.T) {
	assert.Equal(t,
		"Record has no ciphertext yet, it cannot be decrypted",
		decryptErrorMessage(commonerrs.ErrUninitializedRecord))
	assert.Equal(t,
		"Signature cancelled, nothing was decrypted",
		decryptErrorMessage(fmt.Errorf("sign: %w", commonerrs.ErrSignatureRejected)))
	assert.Equal(t,
		"Signature cancelled, nothing was decrypted",
		decryptErrorMessage(context.Canceled))
	assert.Contains(t,
		decryptErrorMessage(errors.New("boom")), "boom")
}
