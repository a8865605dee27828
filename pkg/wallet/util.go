package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// rootKeyParams only provides the serialization version bytes of the root
// key; they take no part in derivation.
var rootKeyParams = &chaincfg.MainNetParams

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func generateSeedFromMnemonic(mnemonic []string) ([]byte, error) {
	m := strings.Join(mnemonic, " ")
	return bip39.NewSeedWithErrorChecking(m, "")
}

func isMnemonicValid(mnemonic []string) bool {
	m := strings.Join(mnemonic, " ")
	return bip39.IsMnemonicValid(m)
}

func generateRootKey(seed []byte) (*hdkeychain.ExtendedKey, error) {
	rootKey, err := hdkeychain.NewMaster(seed, rootKeyParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return rootKey, nil
}

// restoreRootKey rebuilds a depth 0 root key from its raw parts.
func restoreRootKey(chainCode, privateKey []byte) *hdkeychain.ExtendedKey {
	return hdkeychain.NewExtendedKey(
		rootKeyParams.HDPrivateKeyID[:],
		privateKey,
		chainCode,
		[]byte{0x00, 0x00, 0x00, 0x00},
		0,
		0,
		true,
	)
}

// isValidScalar reports whether b encodes a private key in the range [1, n-1].
func isValidScalar(b []byte) bool {
	if len(b) != btcec.PrivKeyBytesLen {
		return false
	}
	var s btcec.ModNScalar
	overflow := s.SetByteSlice(b)
	return !overflow && !s.IsZero()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
