package wallet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullRootKey ...
	ErrNullRootKey = errors.New("wallet root key is null")

	// ErrInvalidMnemonic is returned for malformed phrases, unknown words or a
	// bad checksum.
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidSeed is returned when the seed cannot produce a usable root key.
	ErrInvalidSeed = errors.New("seed cannot be used as root key")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)

	// ErrDerivation wraps any failure of the key tree while deriving an account.
	ErrDerivation = errors.New("account derivation failed")
	// ErrEncoding wraps any failure while rendering an address.
	ErrEncoding = errors.New("address encoding failed")
	// ErrCryptoSetup wraps failures while preparing the vault cipher.
	ErrCryptoSetup = errors.New("vault cipher setup failed")
	// ErrAuthentication is returned when a vault fails tag verification: wrong
	// passphrase, tampered or truncated data.
	ErrAuthentication = errors.New("vault authentication failed")
	// ErrMalformedVault is returned when a vault is too short or decrypts to a
	// payload of unexpected shape.
	ErrMalformedVault = errors.New("vault data is malformed")
)

// Accounts maps derivation indexes to already derived accounts.
type Accounts map[uint32]Account

// Wallet holds a root extended private key and a cache of the accounts
// derived from it. A Wallet is not safe for concurrent use: callers that
// share one must serialize access to it.
type Wallet struct {
	rootKey  *hdkeychain.ExtendedKey
	accounts Accounts
}

func newWallet(rootKey *hdkeychain.ExtendedKey) *Wallet {
	// Derive lazily caches the public key of the parent, fill it now so that
	// later derivations only read the root key.
	_, _ = rootKey.ECPubKey()

	return &Wallet{
		rootKey:  rootKey,
		accounts: Accounts{},
	}
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic []string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMnemonic, ErrNullMnemonic)
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the root key of the wallet from the seed of
// the provided mnemonic, using an empty extra passphrase
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed, err := generateSeedFromMnemonic(opts.Mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	rootKey, err := generateRootKey(seed)
	if err != nil {
		return nil, err
	}

	return newWallet(rootKey), nil
}

// FromSecretKey creates a wallet from a space separated mnemonic phrase, also
// known as the Stacks "secret key".
func FromSecretKey(secretKey string) (*Wallet, error) {
	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic: strings.Fields(secretKey),
	})
}

// GetAccount returns the account at the given derivation index. The account is
// derived and cached on first access; later calls return the cached value.
func (w *Wallet) GetAccount(index uint32) (Account, error) {
	if account, ok := w.accounts[index]; ok {
		return account, nil
	}

	account, err := w.DeriveAccount(index)
	if err != nil {
		return Account{}, err
	}
	w.SetAccount(index, account)
	return account, nil
}

// SetAccount stores the account at the given index, overwriting any previous
// entry. The account is not checked against the wallet's root key.
func (w *Wallet) SetAccount(index uint32, account Account) {
	w.accounts[index] = account
}

// DeriveAccount derives the account at the given index without touching the
// cache. It only reads the root key so it can be called concurrently.
func (w *Wallet) DeriveAccount(index uint32) (Account, error) {
	if w.rootKey == nil {
		return Account{}, ErrNullRootKey
	}
	return deriveAccount(w.rootKey, index)
}

// AccountCount returns the number of cached accounts.
func (w *Wallet) AccountCount() int {
	return len(w.accounts)
}

// Indexes returns the sorted list of cached derivation indexes.
func (w *Wallet) Indexes() []uint32 {
	indexes := make([]uint32, 0, len(w.accounts))
	for i := range w.accounts {
		indexes = append(indexes, i)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	return indexes
}
