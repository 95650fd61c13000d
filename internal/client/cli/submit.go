package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/water4699/donationlog/internal/client/services"
	commonerrs "github.com/water4699/donationlog/internal/common"
)

func (a *App) submit(ctx context.Context) {
	amount, err := GetSimpleText(a.reader, fmt.Sprintf("Donation amount (%d-%d)", services.MinDonationAmount, services.MaxDonationAmount), os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	result, err := a.submission.SubmitDonation(ctx, a.session, amount)
	if err != nil {
		fmt.Println(submitErrorMessage(err))
		return
	}

	fmt.Printf("Donation recorded: record %d, block %d, tx %s\n", result.RecordID, result.BlockNumber, result.TxHash.Hex())
}

// submitErrorMessage translates a submission failure into a message the user
// can act on. The classified category decides the wording; the raw error is
// appended for the unknown bucket only.
func submitErrorMessage(err error) string {
	var verr *commonerrs.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Reason)
	}
	if errors.Is(err, commonerrs.ErrAdapterNotReady) {
		return "Encryption service unavailable, check 'status' and try again"
	}

	var txErr *commonerrs.TransactionError
	if errors.As(err, &txErr) {
		switch txErr.Category {
		case commonerrs.TxRejected:
			return "Transaction rejected in the wallet"
		case commonerrs.TxInsufficientFunds:
			return "Insufficient funds to cover the transaction"
		case commonerrs.TxNetwork:
			return "Network error, the donation was not submitted"
		}
	}
	return "Error: " + err.Error()
}
