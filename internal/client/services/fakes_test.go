package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/water4699/donationlog/internal/client/deployments"
	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/relayer"
	"github.com/water4699/donationlog/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testSession() Session {
	return Session{
		UserAddress: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		ChainID:     31337,
		Deployment:  deployments.Resolve(31337),
	}
}

// fakeContract is an in-memory stand-in for the ledger contract.
type fakeContract struct {
	count    uint64
	countErr error

	ids   []uint64
	idErr map[uint64]error // by index

	meta    map[uint64]ledger.RecordMetadata
	metaErr map[uint64]error // by record id

	amountHandles    map[uint64]common.Hash
	timestampHandles map[uint64]common.Hash
	handleErr        error

	next     uint64
	nextErr  error
	level    uint64
	levelErr error

	submitHash  common.Hash
	submitErr   error
	submitCalls int

	waitConf *ledger.Confirmation
	waitErr  error
}

func (f *fakeContract) UserDonationCount(ctx context.Context, user common.Address) (uint64, error) {
	return f.count, f.countErr
}

func (f *fakeContract) UserDonationIDAt(ctx context.Context, user common.Address, index uint64) (uint64, error) {
	if err, ok := f.idErr[index]; ok {
		return 0, err
	}
	if index >= uint64(len(f.ids)) {
		return 0, fmt.Errorf("index out of range")
	}
	return f.ids[index], nil
}

func (f *fakeContract) RecordMetadata(ctx context.Context, recordID uint64) (ledger.RecordMetadata, error) {
	if err, ok := f.metaErr[recordID]; ok {
		return ledger.RecordMetadata{}, err
	}
	return f.meta[recordID], nil
}

func (f *fakeContract) EncryptedAmount(ctx context.Context, recordID uint64) (common.Hash, error) {
	return f.amountHandles[recordID], f.handleErr
}

func (f *fakeContract) EncryptedTimestamp(ctx context.Context, recordID uint64) (common.Hash, error) {
	return f.timestampHandles[recordID], f.handleErr
}

func (f *fakeContract) NextRecordID(ctx context.Context) (uint64, error) {
	return f.next, f.nextErr
}

func (f *fakeContract) UserDonationLevel(ctx context.Context, user common.Address) (uint64, error) {
	return f.level, f.levelErr
}

func (f *fakeContract) SubmitDonation(ctx context.Context, opts *bind.TransactOpts, amountHandle, timestampHandle common.Hash, proof []byte) (common.Hash, error) {
	f.submitCalls++
	return f.submitHash, f.submitErr
}

func (f *fakeContract) WaitMined(ctx context.Context, txHash common.Hash) (*ledger.Confirmation, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	if f.waitConf != nil {
		return f.waitConf, nil
	}
	return &ledger.Confirmation{TxHash: txHash, BlockNumber: 1}, nil
}

// fakeAdapter is an in-memory encryption client. Keypairs are sequential
// and therefore pairwise distinct.
type fakeAdapter struct {
	notReady bool
	lastErr  error

	buildCalls int
	buildErr   error
	bundle     *relayer.EncryptedInput
	gotFields  []uint32

	keypairCalls int

	authCalls int
	authErr   error

	decryptCalls int
	decryptErr   error
	plaintexts   map[common.Hash]uint64
	gotRequests  []relayer.DecryptRequest
	onDecrypt    func()
}

func (f *fakeAdapter) Ready() bool      { return !f.notReady }
func (f *fakeAdapter) LastError() error { return f.lastErr }

func (f *fakeAdapter) BuildEncryptedInput(ctx context.Context, contract, user common.Address, fields []uint32) (*relayer.EncryptedInput, error) {
	f.buildCalls++
	f.gotFields = append([]uint32(nil), fields...)
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	if f.bundle != nil {
		return f.bundle, nil
	}
	handles := make([]common.Hash, len(fields))
	for i := range handles {
		handles[i] = common.BigToHash(big.NewInt(int64(i + 1)))
	}
	return &relayer.EncryptedInput{Handles: handles, Proof: []byte{0x01}}, nil
}

func (f *fakeAdapter) GenerateKeypair() (relayer.Keypair, error) {
	f.keypairCalls++
	return relayer.Keypair{
		PublicKey:  fmt.Sprintf("0xpub%04d", f.keypairCalls),
		PrivateKey: fmt.Sprintf("0xpriv%04d", f.keypairCalls),
	}, nil
}

func (f *fakeAdapter) BuildAuthorization(publicKey string, contracts []common.Address, validityStart time.Time, validityDays uint32) (apitypes.TypedData, error) {
	f.authCalls++
	if f.authErr != nil {
		return apitypes.TypedData{}, f.authErr
	}
	return apitypes.TypedData{
		PrimaryType: "UserDecryptRequestVerification",
		Message: apitypes.TypedDataMessage{
			"publicKey": publicKey,
		},
	}, nil
}

func (f *fakeAdapter) UserDecrypt(ctx context.Context, req relayer.DecryptRequest) (map[common.Hash]uint64, error) {
	f.decryptCalls++
	f.gotRequests = append(f.gotRequests, req)
	if f.onDecrypt != nil {
		f.onDecrypt()
	}
	if f.decryptErr != nil {
		return nil, f.decryptErr
	}
	out := make(map[common.Hash]uint64, len(req.Pairs))
	for _, p := range req.Pairs {
		if v, ok := f.plaintexts[p.Handle]; ok {
			out[p.Handle] = v
		}
	}
	return out, nil
}

// fakeSigner signs everything with a canned signature, or rejects.
type fakeSigner struct {
	addr      common.Address
	signErr   error
	signCalls int
	optsErr   error
}

func (f *fakeSigner) Address() common.Address { return f.addr }

func (f *fakeSigner) SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error) {
	f.signCalls++
	if f.signErr != nil {
		return "", f.signErr
	}
	return "0xsignature", nil
}

func (f *fakeSigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if f.optsErr != nil {
		return nil, f.optsErr
	}
	return &bind.TransactOpts{From: f.addr, Context: ctx}, nil
}
