package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/models"
	"github.com/water4699/donationlog/internal/client/relayer"
	"github.com/water4699/donationlog/internal/client/wallet"
	commonerrs "github.com/water4699/donationlog/internal/common"
	"github.com/water4699/donationlog/internal/logging"
)

// Phase is the state of one field decryption attempt.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseKeyGenerated    Phase = "key_generated"
	PhaseAuthConstructed Phase = "auth_constructed"
	PhaseSigned          Phase = "signed"
	PhaseRequested       Phase = "requested"
	PhaseRevealed        Phase = "revealed"
	PhaseFailed          Phase = "failed"
)

// Attempt tracks one (record, field) decryption through its phases. A
// cancelled signature returns the attempt to idle; any other failure parks
// it in failed. Either way the record's field stays opaque.
type Attempt struct {
	ID       uuid.UUID
	RecordID uint64
	Field    models.FieldName
	Phase    Phase
	Err      error
}

// DecryptionService drives keypair generation, authorization construction,
// wallet signature and the relayer call for one record field at a time.
type DecryptionService struct {
	contract ledger.Contract
	adapter  relayer.Adapter
	signer   wallet.Signer
	catalog  *Catalog
	log      logging.Logger

	// validity window of a decryption grant, whole days, identical for
	// every field decryption in the session
	validityDays uint32

	now func() time.Time
}

func NewDecryptionService(contract ledger.Contract, adapter relayer.Adapter, signer wallet.Signer, catalog *Catalog, validityDays uint32, log logging.Logger) *DecryptionService {
	return &DecryptionService{
		contract:     contract,
		adapter:      adapter,
		signer:       signer,
		catalog:      catalog,
		log:          log,
		validityDays: validityDays,
		now:          time.Now,
	}
}

// fetchHandles loads and checks both field handles before any attempt
// starts. A zero handle means the contract slot was never written and the
// decryption must not reach the service.
func (s *DecryptionService) fetchHandles(ctx context.Context, recordID uint64) (amount, timestamp common.Hash, err error) {
	amount, err = s.contract.EncryptedAmount(ctx, recordID)
	if err != nil {
		return common.Hash{}, common.Hash{}, fmt.Errorf("fetching amount handle: %w", err)
	}
	timestamp, err = s.contract.EncryptedTimestamp(ctx, recordID)
	if err != nil {
		return common.Hash{}, common.Hash{}, fmt.Errorf("fetching timestamp handle: %w", err)
	}
	if amount == (common.Hash{}) || timestamp == (common.Hash{}) {
		return common.Hash{}, common.Hash{}, commonerrs.ErrUninitializedRecord
	}
	return amount, timestamp, nil
}

// DecryptRecord reveals both fields of one record via two independent
// single-handle attempts, each with its own fresh keypair and signature.
// A rejected signature on the first field aborts the record decrypt.
func (s *DecryptionService) DecryptRecord(ctx context.Context, sess Session, recordID uint64) ([]*Attempt, error) {
	if err := sess.check(); err != nil {
		return nil, err
	}
	if !s.adapter.Ready() {
		return nil, commonerrs.ErrAdapterNotReady
	}

	amountHandle, timestampHandle, err := s.fetchHandles(ctx, recordID)
	if err != nil {
		return nil, err
	}

	generation := s.catalog.Generation()

	first := s.decryptHandle(ctx, sess, generation, recordID, models.FieldAmount, amountHandle)
	if errors.Is(first.Err, commonerrs.ErrSignatureRejected) || errors.Is(first.Err, context.Canceled) {
		// the user backed out; do not prompt for a second signature
		return []*Attempt{first}, first.Err
	}

	attempts := []*Attempt{
		first,
		s.decryptHandle(ctx, sess, generation, recordID, models.FieldTimestamp, timestampHandle),
	}

	for _, a := range attempts {
		if a.Err != nil {
			return attempts, a.Err
		}
	}
	return attempts, nil
}

// DecryptField reveals a single field of one record.
func (s *DecryptionService) DecryptField(ctx context.Context, sess Session, recordID uint64, field models.FieldName) (*Attempt, error) {
	if err := sess.check(); err != nil {
		return nil, err
	}
	if !s.adapter.Ready() {
		return nil, commonerrs.ErrAdapterNotReady
	}

	amountHandle, timestampHandle, err := s.fetchHandles(ctx, recordID)
	if err != nil {
		return nil, err
	}

	handle := amountHandle
	if field == models.FieldTimestamp {
		handle = timestampHandle
	}

	attempt := s.decryptHandle(ctx, sess, s.catalog.Generation(), recordID, field, handle)
	return attempt, attempt.Err
}

// decryptHandle runs the full cycle for one handle. Every attempt, retries
// included, draws a brand-new keypair; a failed attempt's key is never
// reused.
func (s *DecryptionService) decryptHandle(ctx context.Context, sess Session, generation, recordID uint64, field models.FieldName, handle common.Hash) *Attempt {
	attempt := &Attempt{ID: uuid.New(), RecordID: recordID, Field: field, Phase: PhaseIdle}
	log := s.log.With("attempt_id", attempt.ID.String(), "record_id", recordID, "field", string(field))

	fail := func(err error) *Attempt {
		attempt.Phase = PhaseFailed
		attempt.Err = err
		log.Error(ctx, "decryption failed", "phase", string(attempt.Phase), "err", err)
		return attempt
	}

	keypair, err := s.adapter.GenerateKeypair()
	if err != nil {
		return fail(err)
	}
	attempt.Phase = PhaseKeyGenerated

	contractAddr := sess.Deployment.ContractAddress
	validityStart := s.now()

	authorization, err := s.adapter.BuildAuthorization(keypair.PublicKey, []common.Address{contractAddr}, validityStart, s.validityDays)
	if err != nil {
		return fail(err)
	}
	attempt.Phase = PhaseAuthConstructed

	signature, err := s.signer.SignTypedData(ctx, authorization)
	if err != nil {
		if errors.Is(err, commonerrs.ErrSignatureRejected) || errors.Is(err, context.Canceled) {
			// user backed out: no partial authorization survives
			attempt.Phase = PhaseIdle
			attempt.Err = err
			log.Info(ctx, "signature cancelled, attempt abandoned")
			return attempt
		}
		return fail(err)
	}
	attempt.Phase = PhaseSigned

	attempt.Phase = PhaseRequested
	plaintexts, err := s.adapter.UserDecrypt(ctx, relayer.DecryptRequest{
		Pairs:             []relayer.HandlePair{{Handle: handle, ContractAddress: contractAddr}},
		PrivateKey:        keypair.PrivateKey,
		PublicKey:         keypair.PublicKey,
		Signature:         signature,
		ContractAddresses: []common.Address{contractAddr},
		RequestingAddress: sess.UserAddress,
		ValidityStart:     validityStart,
		ValidityDays:      s.validityDays,
	})
	if err != nil {
		return fail(err)
	}

	value, ok := plaintexts[handle]
	if !ok {
		return fail(fmt.Errorf("%w: no plaintext for handle %s", commonerrs.ErrDecryptionService, handle.Hex()))
	}

	if !s.catalog.RevealField(generation, recordID, field, value) {
		// the catalog moved on while we were signing; drop the result
		log.Warn(ctx, "stale decryption result dropped")
		return attempt
	}

	attempt.Phase = PhaseRevealed
	log.Info(ctx, "field revealed")
	return attempt
}
