// Package wallet abstracts the signing provider: typed-data signatures for
// decryption grants and transaction options for submissions.
package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signer is the wallet surface the orchestrators depend on. SignTypedData
// may suspend on human interaction and must honor ctx cancellation;
// a declined request is reported as common.ErrSignatureRejected.
type Signer interface {
	Address() common.Address
	SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error)
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}
