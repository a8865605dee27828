package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/stacks-wallet/pkg/wallet"
)

// Vault is the persisted form of a wallet: the root key encrypted with the
// owner's password and the indexes of the accounts derived so far. No key
// material is ever stored in clear.
type Vault struct {
	ID             string
	Name           string
	EncryptedKey   []byte
	AccountIndexes []uint32
	CreatedAt      int64
}

// NewVault returns a new Vault for the given encrypted root key.
func NewVault(name string, encryptedKey []byte) (*Vault, error) {
	if len(name) <= 0 {
		return nil, ErrVaultNullName
	}
	if err := validateEncryptedKey(encryptedKey); err != nil {
		return nil, err
	}

	return &Vault{
		ID:             uuid.New().String(),
		Name:           name,
		EncryptedKey:   encryptedKey,
		AccountIndexes: []uint32{},
		CreatedAt:      time.Now().Unix(),
	}, nil
}

// SetEncryptedKey replaces the encrypted root key, for example after a
// password change.
func (v *Vault) SetEncryptedKey(encryptedKey []byte) error {
	if err := validateEncryptedKey(encryptedKey); err != nil {
		return err
	}
	v.EncryptedKey = encryptedKey
	return nil
}

// AddAccountIndex records a derived account index, keeping the list sorted
// and free of duplicates. It returns whether the index was not known yet.
func (v *Vault) AddAccountIndex(index uint32) bool {
	i := sort.Search(len(v.AccountIndexes), func(i int) bool {
		return v.AccountIndexes[i] >= index
	})
	if i < len(v.AccountIndexes) && v.AccountIndexes[i] == index {
		return false
	}

	v.AccountIndexes = append(v.AccountIndexes, 0)
	copy(v.AccountIndexes[i+1:], v.AccountIndexes[i:])
	v.AccountIndexes[i] = index
	return true
}

// HasAccountIndex returns whether the index was recorded.
func (v *Vault) HasAccountIndex(index uint32) bool {
	i := sort.Search(len(v.AccountIndexes), func(i int) bool {
		return v.AccountIndexes[i] >= index
	})
	return i < len(v.AccountIndexes) && v.AccountIndexes[i] == index
}

func validateEncryptedKey(encryptedKey []byte) error {
	if len(encryptedKey) < wallet.MinVaultSize {
		return ErrVaultInvalidEncryptedKey
	}
	return nil
}
