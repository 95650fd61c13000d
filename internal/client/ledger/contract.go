// Package ledger provides read and write access to the on-chain donation
// log contract.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// RecordMetadata is the public metadata of one donation record.
type RecordMetadata struct {
	Submitter   common.Address
	BlockNumber uint64
}

// Confirmation reports an on-chain confirmed submission.
type Confirmation struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// Contract is the client-side surface of the donation log contract. Reads
// are view calls; SubmitDonation sends a transaction whose confirmation is
// awaited separately via WaitMined.
type Contract interface {
	UserDonationCount(ctx context.Context, user common.Address) (uint64, error)
	UserDonationIDAt(ctx context.Context, user common.Address, index uint64) (uint64, error)
	RecordMetadata(ctx context.Context, recordID uint64) (RecordMetadata, error)
	EncryptedAmount(ctx context.Context, recordID uint64) (common.Hash, error)
	EncryptedTimestamp(ctx context.Context, recordID uint64) (common.Hash, error)
	NextRecordID(ctx context.Context) (uint64, error)
	UserDonationLevel(ctx context.Context, user common.Address) (uint64, error)

	SubmitDonation(ctx context.Context, opts *bind.TransactOpts, amountHandle, timestampHandle common.Hash, proof []byte) (common.Hash, error)
	WaitMined(ctx context.Context, txHash common.Hash) (*Confirmation, error)
}
