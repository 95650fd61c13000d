package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// KeySigner signs with a locally held ECDSA key. Suitable for CLI use where
// the key is loaded from a file or entered interactively.
type KeySigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewKeySigner builds a signer from a hex-encoded private key, with or
// without the 0x prefix.
func NewKeySigner(hexKey string) (*KeySigner, error) {
	hexKey = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return &KeySigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// LoadKeySigner reads a hex-encoded private key from path.
func LoadKeySigner(path string) (*KeySigner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return NewKeySigner(string(data))
}

func (s *KeySigner) Address() common.Address {
	return s.addr
}

// SignTypedData produces an EIP-712 signature over td, hex-encoded with the
// 0x prefix and the legacy 27/28 recovery id.
func (s *KeySigner) SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return "", fmt.Errorf("hashing typed data: %w", err)
	}
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return "", fmt.Errorf("signing typed data: %w", err)
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

func (s *KeySigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("building transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}
