package ledger

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationLogABI(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(donationLogABI))
	require.NoError(t, err)

	for _, name := range []string{
		"submitDonation",
		"getUserDonationCount",
		"getUserDonationIdAt",
		"getRecordMetadata",
		"getEncryptedAmount",
		"getEncryptedTimestamp",
		"nextRecordId",
		"getUserDonationLevel",
	} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "method %s missing", name)
	}

	// the write takes two handles plus the proof
	assert.Len(t, parsed.Methods["submitDonation"].Inputs, 3)
}
