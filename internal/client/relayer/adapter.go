// Package relayer wraps the per-network encryption context: building
// encrypted input bundles, generating ephemeral decryption keypairs,
// constructing EIP-712 decryption grants and calling the relayer's
// user-decrypt endpoint.
package relayer

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Keypair is an ephemeral decryption keypair, hex-encoded. Generated fresh
// for every decryption request, never persisted and never reused: a leaked
// private key then compromises at most one field's ciphertext.
type Keypair struct {
	PublicKey  string
	PrivateKey string
}

// EncryptedInput is a ciphertext bundle bound to one (contract, user) pair.
// It is consumed exactly once by a contract write; the service layer rejects
// reuse against a different submission.
type EncryptedInput struct {
	Handles []common.Hash
	Proof   hexutil.Bytes
}

// HandlePair names one ciphertext handle and the contract it lives in.
type HandlePair struct {
	Handle          common.Hash    `json:"handle"`
	ContractAddress common.Address `json:"contractAddress"`
}

// DecryptRequest carries everything the relayer needs to decrypt handles
// under a signed authorization. Signature is hex without the 0x prefix.
type DecryptRequest struct {
	Pairs             []HandlePair
	PrivateKey        string
	PublicKey         string
	Signature         string
	ContractAddresses []common.Address
	RequestingAddress common.Address
	ValidityStart     time.Time
	ValidityDays      uint32
}

// Adapter is the encryption client surface the orchestrators depend on.
//
// BuildEncryptedInput and BuildAuthorization fail fast with
// common.ErrAdapterNotReady until the relayer handshake has completed;
// Ready/LastError expose the handshake state.
type Adapter interface {
	Ready() bool
	LastError() error

	// BuildEncryptedInput encrypts the ordered 32-bit fields bound to
	// (contract, user) and returns the handles plus validity proof. Remote
	// round-trip; transport failures wrap common.ErrEncryptionService.
	BuildEncryptedInput(ctx context.Context, contract, user common.Address, fields []uint32) (*EncryptedInput, error)

	// GenerateKeypair returns a fresh local keypair. Call once per field
	// decryption.
	GenerateKeypair() (Keypair, error)

	// BuildAuthorization constructs the typed-data payload granting
	// publicKey the right to decrypt handles of the listed contracts within
	// [validityStart, validityStart + validityDays]. Pure construction.
	BuildAuthorization(publicKey string, contracts []common.Address, validityStart time.Time, validityDays uint32) (apitypes.TypedData, error)

	// UserDecrypt asks the relayer to decrypt the requested handles and
	// returns plaintexts keyed by handle. Failures wrap
	// common.ErrDecryptionService.
	UserDecrypt(ctx context.Context, req DecryptRequest) (map[common.Hash]uint64, error)
}
