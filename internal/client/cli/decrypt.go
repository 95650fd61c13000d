package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/water4699/donationlog/internal/client/models"
	commonerrs "github.com/water4699/donationlog/internal/common"
)

func (a *App) decrypt(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: decrypt <id> [amount|timestamp]")
		return
	}

	recordID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("Record id must be a number")
		return
	}

	if len(args) > 1 {
		field := models.FieldName(args[1])
		if field != models.FieldAmount && field != models.FieldTimestamp {
			fmt.Println("Field must be 'amount' or 'timestamp'")
			return
		}
		_, err = a.decryption.DecryptField(ctx, a.session, recordID, field)
	} else {
		_, err = a.decryption.DecryptRecord(ctx, a.session, recordID)
	}

	if err != nil {
		fmt.Println(decryptErrorMessage(err))
		return
	}

	record, ok := a.catalog.Record(recordID)
	if !ok {
		fmt.Println("Decrypted, but the record left the view; run 'refresh'")
		return
	}
	fmt.Printf("Record %d: amount=%s timestamp=%s\n", record.RecordID, record.AmountDisplay(), record.TimestampDisplay())
}

func decryptErrorMessage(err error) string {
	switch {
	case errors.Is(err, commonerrs.ErrUninitializedRecord):
		return "Record has no ciphertext yet, it cannot be decrypted"
	case errors.Is(err, commonerrs.ErrSignatureRejected), errors.Is(err, context.Canceled):
		return "Signature cancelled, nothing was decrypted"
	case errors.Is(err, commonerrs.ErrAdapterNotReady):
		return "Encryption service unavailable, check 'status' and try again"
	}
	return "Error: " + err.Error()
}
