package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the size of the random salt prefixing every vault.
	SaltSize = 16
	// KeyIterations is the PBKDF2-HMAC-SHA512 iteration count.
	KeyIterations = 100000
	// EncryptionKeySize selects AES-128.
	EncryptionKeySize = 16
	// NonceSize is the standard AES-GCM nonce size.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag size.
	TagSize = 16
	// ChainCodeSize is the size of the root key chain code.
	ChainCodeSize = 32
	// MinVaultSize is the size of a vault holding an empty payload.
	MinVaultSize = SaltSize + TagSize
)

// randReader is the source of vault salts.
var randReader io.Reader = rand.Reader

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  []byte
	Passphrase string
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	return nil
}

// Encrypt encrypts (with AES-128-GCM) a plaintext with a key stretched from the
// provided passphrase. The result is salt | ciphertext | tag.
func Encrypt(opts EncryptOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoSetup, err)
	}

	gcm, nonce, err := newVaultCipher([]byte(opts.Passphrase), salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, SaltSize+len(opts.PlainText)+gcm.Overhead())
	out = append(out, salt...)
	return gcm.Seal(out, nonce, opts.PlainText, nil), nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	CypherText []byte
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	if len(o.CypherText) < MinVaultSize {
		return ErrMalformedVault
	}
	return nil
}

// Decrypt opens a vault produced by Encrypt with the provided passphrase
func Decrypt(opts DecryptOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	salt, data := opts.CypherText[:SaltSize], opts.CypherText[SaltSize:]

	gcm, nonce, err := newVaultCipher([]byte(opts.Passphrase), salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return plaintext, nil
}

// DeriveKey stretches the passphrase with the salt into an AES-128 key and
// the GCM nonce that goes with it.
func DeriveKey(passphrase, salt []byte) ([]byte, []byte) {
	keyAndNonce := pbkdf2.Key(
		passphrase, salt, KeyIterations, EncryptionKeySize+NonceSize, sha512.New,
	)
	return keyAndNonce[:EncryptionKeySize], keyAndNonce[EncryptionKeySize:]
}

func newVaultCipher(passphrase, salt []byte) (cipher.AEAD, []byte, error) {
	key, nonce := DeriveKey(passphrase, salt)
	defer zero(key)

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCryptoSetup, err)
	}
	gcm, err := cipher.NewGCM(blockCipher)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCryptoSetup, err)
	}
	return gcm, nonce, nil
}

// EncryptKey serializes the root key as chain code | private key and encrypts
// it with the passphrase. Cached accounts are not part of the vault.
func (w *Wallet) EncryptKey(passphrase string) ([]byte, error) {
	if w.rootKey == nil {
		return nil, ErrNullRootKey
	}

	privateKey, err := w.rootKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCryptoSetup, err)
	}

	plaintext := make([]byte, 0, ChainCodeSize+btcec.PrivKeyBytesLen)
	plaintext = append(plaintext, w.rootKey.ChainCode()...)
	plaintext = append(plaintext, privateKey.Serialize()...)
	defer zero(plaintext)

	return Encrypt(EncryptOpts{
		PlainText:  plaintext,
		Passphrase: passphrase,
	})
}

// NewWalletFromEncryptedKey decrypts a vault produced by EncryptKey and returns
// a wallet with a depth 0 root key and no cached accounts.
func NewWalletFromEncryptedKey(passphrase string, data []byte) (*Wallet, error) {
	if len(data) < MinVaultSize {
		return nil, ErrMalformedVault
	}

	plaintext, err := Decrypt(DecryptOpts{
		CypherText: data,
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, err
	}
	defer zero(plaintext)

	if len(plaintext) <= ChainCodeSize {
		return nil, ErrMalformedVault
	}
	chainCode, privateKey := plaintext[:ChainCodeSize], plaintext[ChainCodeSize:]
	if !isValidScalar(privateKey) {
		return nil, ErrMalformedVault
	}

	// NewExtendedKey keeps references to its arguments.
	rootKey := restoreRootKey(
		append([]byte{}, chainCode...), append([]byte{}, privateKey...),
	)
	return newWallet(rootKey), nil
}
