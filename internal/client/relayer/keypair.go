package relayer

import (
	"crypto/rand"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/nacl/box"
)

// generateKeypair draws a fresh curve25519 keypair from crypto/rand.
func generateKeypair() (Keypair, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, fmt.Errorf("generating keypair: %w", err)
	}
	return Keypair{
		PublicKey:  hexutil.Encode(pub[:]),
		PrivateKey: hexutil.Encode(priv[:]),
	}, nil
}
