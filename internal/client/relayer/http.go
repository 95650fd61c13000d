package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	commonerrs "github.com/water4699/donationlog/internal/common"
	"github.com/water4699/donationlog/internal/logging"
)

// Client talks JSON over HTTP to the relayer service. One Client serves one
// network: the chain id is fixed at construction.
type Client struct {
	baseURL string
	chainID uint64
	http    *http.Client
	log     logging.Logger

	mu      sync.RWMutex
	ready   bool
	lastErr error
}

func NewClient(baseURL string, chainID uint64, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		chainID: chainID,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Connect performs the relayer handshake. Until it succeeds the client
// reports not ready and the input/authorization builders fail fast.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/keyurl", nil)
	if err != nil {
		return c.setHandshakeResult(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return c.setHandshakeResult(fmt.Errorf("relayer handshake: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.setHandshakeResult(fmt.Errorf("relayer handshake: status %d", resp.StatusCode))
	}
	return c.setHandshakeResult(nil)
}

func (c *Client) setHandshakeResult(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	c.ready = err == nil
	if err != nil {
		c.log.Warn(context.Background(), "relayer handshake failed", "err", err)
		return fmt.Errorf("%w: %v", commonerrs.ErrEncryptionService, err)
	}
	c.log.Info(context.Background(), "relayer handshake ok", "url", c.baseURL, "chain_id", c.chainID)
	return nil
}

func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

type inputProofRequest struct {
	ContractAddress common.Address `json:"contractAddress"`
	UserAddress     common.Address `json:"userAddress"`
	Bits            []int          `json:"bits"`
	Values          []uint32       `json:"values"`
}

type inputProofResponse struct {
	Handles    []string `json:"handles"`
	InputProof string   `json:"inputProof"`
}

func (c *Client) BuildEncryptedInput(ctx context.Context, contract, user common.Address, fields []uint32) (*EncryptedInput, error) {
	if !c.Ready() {
		return nil, commonerrs.ErrAdapterNotReady
	}
	if len(fields) == 0 {
		return nil, &commonerrs.ValidationError{Field: "fields", Reason: "at least one field is required"}
	}

	bits := make([]int, len(fields))
	for i := range bits {
		bits[i] = 32
	}
	body := inputProofRequest{
		ContractAddress: contract,
		UserAddress:     user,
		Bits:            bits,
		Values:          fields,
	}

	var out inputProofResponse
	if err := c.post(ctx, "/v1/input-proof", body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", commonerrs.ErrEncryptionService, err)
	}
	if len(out.Handles) != len(fields) {
		return nil, fmt.Errorf("%w: expected %d handles, got %d", commonerrs.ErrEncryptionService, len(fields), len(out.Handles))
	}

	handles := make([]common.Hash, 0, len(out.Handles))
	for _, h := range out.Handles {
		raw, err := hexutil.Decode(h)
		if err != nil || len(raw) != common.HashLength {
			return nil, fmt.Errorf("%w: malformed handle %q", commonerrs.ErrEncryptionService, h)
		}
		handles = append(handles, common.BytesToHash(raw))
	}
	proof, err := hexutil.Decode(out.InputProof)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed input proof", commonerrs.ErrEncryptionService)
	}

	return &EncryptedInput{Handles: handles, Proof: proof}, nil
}

func (c *Client) GenerateKeypair() (Keypair, error) {
	return generateKeypair()
}

func (c *Client) BuildAuthorization(publicKey string, contracts []common.Address, validityStart time.Time, validityDays uint32) (apitypes.TypedData, error) {
	if !c.Ready() {
		return apitypes.TypedData{}, commonerrs.ErrAdapterNotReady
	}
	return buildAuthorization(c.chainID, publicKey, contracts, validityStart, validityDays)
}

type userDecryptRequest struct {
	HandleContractPairs []HandlePair     `json:"handleContractPairs"`
	PrivateKey          string           `json:"privateKey"`
	PublicKey           string           `json:"publicKey"`
	Signature           string           `json:"signature"`
	ContractAddresses   []common.Address `json:"contractAddresses"`
	RequestingAddress   common.Address   `json:"requestingAddress"`
	StartTimestamp      int64            `json:"startTimestamp"`
	DurationDays        uint32           `json:"durationDays"`
}

func (c *Client) UserDecrypt(ctx context.Context, req DecryptRequest) (map[common.Hash]uint64, error) {
	if !c.Ready() {
		return nil, commonerrs.ErrAdapterNotReady
	}
	if len(req.Pairs) == 0 {
		return nil, &commonerrs.ValidationError{Field: "handles", Reason: "at least one handle is required"}
	}

	body := userDecryptRequest{
		HandleContractPairs: req.Pairs,
		PrivateKey:          req.PrivateKey,
		PublicKey:           req.PublicKey,
		Signature:           strings.TrimPrefix(req.Signature, "0x"),
		ContractAddresses:   req.ContractAddresses,
		RequestingAddress:   req.RequestingAddress,
		StartTimestamp:      req.ValidityStart.Unix(),
		DurationDays:        req.ValidityDays,
	}

	var out map[string]string
	if err := c.post(ctx, "/v1/user-decrypt", body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", commonerrs.ErrDecryptionService, err)
	}

	plaintexts := make(map[common.Hash]uint64, len(out))
	for handle, value := range out {
		raw, err := hexutil.Decode(handle)
		if err != nil || len(raw) != common.HashLength {
			return nil, fmt.Errorf("%w: malformed handle %q in response", commonerrs.ErrDecryptionService, handle)
		}
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed plaintext for %s", commonerrs.ErrDecryptionService, handle)
		}
		plaintexts[common.BytesToHash(raw)] = v
	}
	return plaintexts, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relayer %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
