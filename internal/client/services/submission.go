package services

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/models"
	"github.com/water4699/donationlog/internal/client/relayer"
	"github.com/water4699/donationlog/internal/client/wallet"
	commonerrs "github.com/water4699/donationlog/internal/common"
	"github.com/water4699/donationlog/internal/logging"
)

// Donation amount bounds are a business rule of the ledger's accounting
// model, not a cryptographic limit.
const (
	MinDonationAmount = 1
	MaxDonationAmount = 10000
)

// SubmissionService turns a plaintext donation into an encrypted on-chain
// record: validate, encrypt, submit, await confirmation, reconcile the
// catalog. Failures are classified and surfaced; nothing is retried
// automatically, re-submission is always an explicit user action.
type SubmissionService struct {
	contract ledger.Contract
	adapter  relayer.Adapter
	signer   wallet.Signer
	catalog  *Catalog
	log      logging.Logger

	now func() time.Time
}

func NewSubmissionService(contract ledger.Contract, adapter relayer.Adapter, signer wallet.Signer, catalog *Catalog, log logging.Logger) *SubmissionService {
	return &SubmissionService{
		contract: contract,
		adapter:  adapter,
		signer:   signer,
		catalog:  catalog,
		log:      log,
		now:      time.Now,
	}
}

// SubmissionResult reports a confirmed donation.
type SubmissionResult struct {
	RecordID    uint64
	TxHash      common.Hash
	BlockNumber uint64
}

// parseAmount validates the plaintext amount before anything touches the
// encryption adapter.
func parseAmount(raw string) (uint32, error) {
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &commonerrs.ValidationError{Field: "amount", Reason: "must be a whole number"}
	}
	if amount < MinDonationAmount || amount > MaxDonationAmount {
		return 0, &commonerrs.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("must be between %d and %d", MinDonationAmount, MaxDonationAmount),
		}
	}
	return uint32(amount), nil
}

// SubmitDonation validates amount, encrypts [amount, now] bound to the
// session's (contract, user) pair, submits the handles plus proof and
// awaits confirmation. On success the new record joins the catalog in
// opaque state.
func (s *SubmissionService) SubmitDonation(ctx context.Context, sess Session, rawAmount string) (*SubmissionResult, error) {
	if err := sess.check(); err != nil {
		return nil, err
	}
	if !s.adapter.Ready() {
		return nil, commonerrs.ErrAdapterNotReady
	}

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	timestamp := s.now().Unix()
	if timestamp < 0 || timestamp > math.MaxUint32 {
		return nil, &commonerrs.ValidationError{Field: "timestamp", Reason: "outside the encryptable range"}
	}

	contractAddr := sess.Deployment.ContractAddress

	bundle, err := s.adapter.BuildEncryptedInput(ctx, contractAddr, sess.UserAddress, []uint32{amount, uint32(timestamp)})
	if err != nil {
		return nil, err
	}
	if len(bundle.Handles) != 2 {
		return nil, fmt.Errorf("%w: bundle carries %d handles, want 2", commonerrs.ErrEncryptionService, len(bundle.Handles))
	}

	opts, err := s.signer.TransactOpts(ctx, new(big.Int).SetUint64(sess.ChainID))
	if err != nil {
		return nil, commonerrs.ClassifyTx(err)
	}

	txHash, err := s.contract.SubmitDonation(ctx, opts, bundle.Handles[0], bundle.Handles[1], bundle.Proof)
	if err != nil {
		return nil, commonerrs.ClassifyTx(err)
	}
	s.log.Info(ctx, "donation submitted, awaiting confirmation", "tx", txHash.Hex())

	conf, err := s.contract.WaitMined(ctx, txHash)
	if err != nil {
		return nil, commonerrs.ClassifyTx(err)
	}

	result := &SubmissionResult{TxHash: conf.TxHash, BlockNumber: conf.BlockNumber}

	nextID, err := s.contract.NextRecordID(ctx)
	if err != nil || nextID == 0 {
		// the donation is confirmed; only the local view is incomplete
		s.log.Warn(ctx, "confirmed but record id unavailable, refresh to see the record", "err", err)
		return result, nil
	}
	result.RecordID = nextID - 1

	s.catalog.Append(models.DonationRecord{
		RecordID:        result.RecordID,
		Submitter:       sess.UserAddress,
		SubmittingBlock: conf.BlockNumber,
		Amount:          models.EncryptedField{Handle: bundle.Handles[0]},
		Timestamp:       models.EncryptedField{Handle: bundle.Handles[1]},
	})
	s.log.Info(ctx, "donation recorded", "record_id", result.RecordID, "block", conf.BlockNumber)

	return result, nil
}

// DonationLevel reports the user's cumulative donation tier.
func (s *SubmissionService) DonationLevel(ctx context.Context, sess Session) (uint64, error) {
	if err := sess.check(); err != nil {
		return 0, err
	}
	return s.contract.UserDonationLevel(ctx, sess.UserAddress)
}

// DonationStats carries the ledger-wide and per-user record totals. Record
// ids are assigned from zero, so the next id doubles as the total count.
type DonationStats struct {
	TotalRecords uint64
	UserRecords  uint64
}

// Stats reads the record totals for the status view.
func (s *SubmissionService) Stats(ctx context.Context, sess Session) (DonationStats, error) {
	if err := sess.check(); err != nil {
		return DonationStats{}, err
	}
	total, err := s.contract.NextRecordID(ctx)
	if err != nil {
		return DonationStats{}, fmt.Errorf("reading record total: %w", err)
	}
	mine, err := s.contract.UserDonationCount(ctx, sess.UserAddress)
	if err != nil {
		return DonationStats{}, fmt.Errorf("reading user record count: %w", err)
	}
	return DonationStats{TotalRecords: total, UserRecords: mine}, nil
}
