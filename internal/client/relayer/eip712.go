package relayer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// decryptVerificationType is the struct the user signs to authorize a
// decryption. The relayer verifies the signature against the same layout.
const decryptVerificationType = "UserDecryptRequestVerification"

// buildAuthorization assembles the typed-data grant. validityStart is
// truncated to whole seconds and the window is expressed in whole days.
func buildAuthorization(chainID uint64, publicKey string, contracts []common.Address, validityStart time.Time, validityDays uint32) (apitypes.TypedData, error) {
	if publicKey == "" {
		return apitypes.TypedData{}, fmt.Errorf("authorization requires a public key")
	}
	if len(contracts) == 0 {
		return apitypes.TypedData{}, fmt.Errorf("authorization requires at least one contract address")
	}
	if validityDays == 0 {
		return apitypes.TypedData{}, fmt.Errorf("authorization requires a non-zero validity window")
	}

	addrs := make([]any, 0, len(contracts))
	for _, a := range contracts {
		addrs = append(addrs, a.Hex())
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			decryptVerificationType: {
				{Name: "publicKey", Type: "bytes"},
				{Name: "contractAddresses", Type: "address[]"},
				{Name: "startTimestamp", Type: "uint256"},
				{Name: "durationDays", Type: "uint256"},
			},
		},
		PrimaryType: decryptVerificationType,
		Domain: apitypes.TypedDataDomain{
			Name:    "Decryption",
			Version: "1",
			ChainId: math.NewHexOrDecimal256(int64(chainID)),
		},
		Message: apitypes.TypedDataMessage{
			"publicKey":         publicKey,
			"contractAddresses": addrs,
			"startTimestamp":    strconv.FormatInt(validityStart.Unix(), 10),
			"durationDays":      strconv.FormatUint(uint64(validityDays), 10),
		},
	}, nil
}
