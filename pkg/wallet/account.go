package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Account is a keypair derived at a given index of the Stacks subtree. It is
// a plain value: copies compare equal with == when they hold the same keys.
type Account struct {
	index      uint32
	publicKey  [btcec.PubKeyBytesLenCompressed]byte
	privateKey [btcec.PrivKeyBytesLen]byte
}

// Index returns the derivation index of the account.
func (a Account) Index() uint32 {
	return a.index
}

// PublicKey returns the parsed compressed public key of the account.
func (a Account) PublicKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(a.publicKey[:])
}

// PublicKeyBytes returns the 33 bytes compressed public key.
func (a Account) PublicKeyBytes() []byte {
	b := make([]byte, len(a.publicKey))
	copy(b, a.publicKey[:])
	return b
}

// PrivateKey returns the private key of the account.
func (a Account) PrivateKey() *btcec.PrivateKey {
	privateKey, _ := btcec.PrivKeyFromBytes(a.privateKey[:])
	return privateKey
}

// IsZero returns whether the account holds no key material.
func (a Account) IsZero() bool {
	return a == Account{}
}

// Zero clears the key material of this copy of the account.
func (a *Account) Zero() {
	zero(a.privateKey[:])
	zero(a.publicKey[:])
}

// String implements the fmt.Stringer interface. The private key is never
// printed.
func (a Account) String() string {
	return fmt.Sprintf(
		"account(%d, %s)", a.index, hex.EncodeToString(a.publicKey[:]),
	)
}

// GoString implements the fmt.GoStringer interface so that %#v does not leak
// the private key either.
func (a Account) GoString() string {
	return a.String()
}
