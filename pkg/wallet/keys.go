package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// deriveAccount derives the account at the given index of the Stacks subtree
// of root.
func deriveAccount(root *hdkeychain.ExtendedKey, index uint32) (Account, error) {
	derivationPath, err := ParseDerivationPath(StacksDerivationPath)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	hdNode := root
	for _, step := range append(derivationPath, index) {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return Account{}, fmt.Errorf("%w: %w", ErrDerivation, err)
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	account := Account{index: index}
	copy(account.publicKey[:], publicKey.SerializeCompressed())
	copy(account.privateKey[:], privateKey.Serialize())
	return account, nil
}
