package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
)

// GenerateKey returns a fresh secp256k1 keypair.
func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey := privateKey.Public().(*ecdsa.PublicKey)
	return privateKey, publicKey, nil
}
