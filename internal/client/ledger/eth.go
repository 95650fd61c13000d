package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sethvargo/go-retry"
)

// Backend is the subset of the RPC client the contract needs: view calls,
// transaction sending and receipt lookups. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	ethereum.TransactionReader
}

// EthContract talks to the deployed donation log via a bound ABI contract.
type EthContract struct {
	address common.Address
	bound   *bind.BoundContract
	backend Backend

	pollInterval time.Duration
	waitTimeout  time.Duration
}

// NewEthContract binds the donation log ABI at address over backend.
func NewEthContract(backend Backend, address common.Address) (*EthContract, error) {
	parsed, err := abi.JSON(strings.NewReader(donationLogABI))
	if err != nil {
		return nil, fmt.Errorf("parsing contract abi: %w", err)
	}
	return &EthContract{
		address:      address,
		bound:        bind.NewBoundContract(address, parsed, backend, backend, backend),
		backend:      backend,
		pollInterval: 2 * time.Second,
		waitTimeout:  3 * time.Minute,
	}, nil
}

func (c *EthContract) callUint(ctx context.Context, method string, args ...any) (uint64, error) {
	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return 0, fmt.Errorf("%s: %w", method, err)
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected return type %T", method, out[0])
	}
	return v.Uint64(), nil
}

func (c *EthContract) callHandle(ctx context.Context, method string, args ...any) (common.Hash, error) {
	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return common.Hash{}, fmt.Errorf("%s: %w", method, err)
	}
	raw, ok := out[0].([32]byte)
	if !ok {
		return common.Hash{}, fmt.Errorf("%s: unexpected return type %T", method, out[0])
	}
	return common.Hash(raw), nil
}

func (c *EthContract) UserDonationCount(ctx context.Context, user common.Address) (uint64, error) {
	return c.callUint(ctx, "getUserDonationCount", user)
}

func (c *EthContract) UserDonationIDAt(ctx context.Context, user common.Address, index uint64) (uint64, error) {
	return c.callUint(ctx, "getUserDonationIdAt", user, new(big.Int).SetUint64(index))
}

func (c *EthContract) RecordMetadata(ctx context.Context, recordID uint64) (RecordMetadata, error) {
	var out []any
	err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getRecordMetadata", new(big.Int).SetUint64(recordID))
	if err != nil {
		return RecordMetadata{}, fmt.Errorf("getRecordMetadata: %w", err)
	}
	submitter, ok := out[0].(common.Address)
	if !ok {
		return RecordMetadata{}, fmt.Errorf("getRecordMetadata: unexpected submitter type %T", out[0])
	}
	block, ok := out[1].(*big.Int)
	if !ok {
		return RecordMetadata{}, fmt.Errorf("getRecordMetadata: unexpected block type %T", out[1])
	}
	return RecordMetadata{Submitter: submitter, BlockNumber: block.Uint64()}, nil
}

func (c *EthContract) EncryptedAmount(ctx context.Context, recordID uint64) (common.Hash, error) {
	return c.callHandle(ctx, "getEncryptedAmount", new(big.Int).SetUint64(recordID))
}

func (c *EthContract) EncryptedTimestamp(ctx context.Context, recordID uint64) (common.Hash, error) {
	return c.callHandle(ctx, "getEncryptedTimestamp", new(big.Int).SetUint64(recordID))
}

func (c *EthContract) NextRecordID(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "nextRecordId")
}

func (c *EthContract) UserDonationLevel(ctx context.Context, user common.Address) (uint64, error) {
	return c.callUint(ctx, "getUserDonationLevel", user)
}

func (c *EthContract) SubmitDonation(ctx context.Context, opts *bind.TransactOpts, amountHandle, timestampHandle common.Hash, proof []byte) (common.Hash, error) {
	if opts.Context == nil {
		opts.Context = ctx
	}
	tx, err := c.bound.Transact(opts, "submitDonation", [32]byte(amountHandle), [32]byte(timestampHandle), proof)
	if err != nil {
		return common.Hash{}, fmt.Errorf("submitDonation: %w", err)
	}
	return tx.Hash(), nil
}

// WaitMined polls for the transaction receipt until it is available or ctx
// expires. A reverted transaction is a hard failure.
func (c *EthContract) WaitMined(ctx context.Context, txHash common.Hash) (*Confirmation, error) {
	backoff := retry.WithMaxDuration(c.waitTimeout, retry.NewConstant(c.pollInterval))

	var conf *Confirmation
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return retry.RetryableError(err)
			}
			return fmt.Errorf("fetching receipt: %w", err)
		}
		if receipt.Status != types.ReceiptStatusSuccessful {
			return fmt.Errorf("transaction %s reverted", txHash.Hex())
		}
		conf = &Confirmation{TxHash: txHash, BlockNumber: receipt.BlockNumber.Uint64()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conf, nil
}
