// Package models defines the client-side view of the donation ledger.
package models

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// FieldName identifies one of the two independently encryptable fields of a
// donation record.
type FieldName string

const (
	FieldAmount    FieldName = "amount"
	FieldTimestamp FieldName = "timestamp"
)

// EncryptedDisplay is the literal shown for a field that has not been
// revealed in the current session.
const EncryptedDisplay = "Encrypted"

// EncryptedField is either an opaque ciphertext handle or a revealed
// plaintext value. Decryption never mutates the on-chain ciphertext, only
// this local view.
type EncryptedField struct {
	Handle   common.Hash
	Value    uint64
	Revealed bool
}

// DonationRecord is one ledger entry as seen by this session. Both fields
// start opaque and stay opaque until a successful decryption for that
// specific field completes.
type DonationRecord struct {
	RecordID        uint64
	Submitter       common.Address
	SubmittingBlock uint64
	Amount          EncryptedField
	Timestamp       EncryptedField
}

// AmountDisplay renders the amount field, or the encrypted placeholder.
func (r DonationRecord) AmountDisplay() string {
	if !r.Amount.Revealed {
		return EncryptedDisplay
	}
	return strconv.FormatUint(r.Amount.Value, 10)
}

// TimestampDisplay renders the timestamp field as local time, or the
// encrypted placeholder.
func (r DonationRecord) TimestampDisplay() string {
	if !r.Timestamp.Revealed {
		return EncryptedDisplay
	}
	return time.Unix(int64(r.Timestamp.Value), 0).Format("2006-01-02 15:04:05")
}

// ExportedRecord is one element of the export document. Fields not revealed
// this session are exported as the literal encrypted placeholder.
type ExportedRecord struct {
	RecordID    uint64 `json:"recordId"`
	Amount      string `json:"amount"`
	Timestamp   string `json:"timestamp"`
	BlockNumber uint64 `json:"blockNumber"`
	ExportedAt  string `json:"exportedAt"`
}
