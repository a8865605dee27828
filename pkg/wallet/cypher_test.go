package wallet

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	plaintext := []byte("super secret message")

	for _, passphrase := range []string{"supersecurekey", ""} {
		cyphertext, err := Encrypt(EncryptOpts{
			PlainText:  plaintext,
			Passphrase: passphrase,
		})
		require.NoError(t, err)
		assert.Len(t, cyphertext, SaltSize+len(plaintext)+TagSize)

		revealedtext, err := Decrypt(DecryptOpts{
			CypherText: cyphertext,
			Passphrase: passphrase,
		})
		require.NoError(t, err)
		assert.Equal(t, plaintext, revealedtext)
	}
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	opts := EncryptOpts{
		PlainText:  []byte("super secret message"),
		Passphrase: "supersecurekey",
	}
	first, err := Encrypt(opts)
	require.NoError(t, err)
	second, err := Encrypt(opts)
	require.NoError(t, err)

	assert.NotEqual(t, first[:SaltSize], second[:SaltSize])
	assert.NotEqual(t, first, second)
}

func TestFailingEncrypt(t *testing.T) {
	_, err := Encrypt(EncryptOpts{
		PlainText:  nil,
		Passphrase: "supersecurekey",
	})
	assert.Equal(t, ErrNullPlainText, err)

	defer func(r io.Reader) { randReader = r }(randReader)
	randReader = bytes.NewReader([]byte{1, 2, 3})
	_, err = Encrypt(EncryptOpts{
		PlainText:  []byte("super secret message"),
		Passphrase: "supersecurekey",
	})
	assert.ErrorIs(t, err, ErrCryptoSetup)
}

func TestFailingDecrypt(t *testing.T) {
	tests := []struct {
		opts DecryptOpts
		err  error
	}{
		{
			opts: DecryptOpts{
				CypherText: nil,
				Passphrase: "supersecurekey",
			},
			err: ErrNullCypherText,
		},
		{
			opts: DecryptOpts{
				CypherText: make([]byte, MinVaultSize-1),
				Passphrase: "supersecurekey",
			},
			err: ErrMalformedVault,
		},
		{
			opts: DecryptOpts{
				CypherText: make([]byte, MinVaultSize),
				Passphrase: "supersecurekey",
			},
			err: ErrAuthentication,
		},
	}
	for _, tt := range tests {
		_, err := Decrypt(tt.opts)
		assert.ErrorIs(t, err, tt.err)
	}
}

func TestEncryptKeyRoundTrip(t *testing.T) {
	wallet, err := FromSecretKey(testSecretKey)
	require.NoError(t, err)
	_, err = wallet.GetAccount(0)
	require.NoError(t, err)
	_, err = wallet.GetAccount(5)
	require.NoError(t, err)

	for _, passphrase := range []string{"hello world", "", "ünïcödé pässphräse"} {
		data, err := wallet.EncryptKey(passphrase)
		require.NoError(t, err)
		assert.Len(t, data, SaltSize+ChainCodeSize+32+TagSize)

		restored, err := NewWalletFromEncryptedKey(passphrase, data)
		require.NoError(t, err)

		assertSameRootKey(t, wallet, restored)
		assert.Equal(t, uint8(0), restored.rootKey.Depth())
		assert.Zero(t, restored.AccountCount())

		expected, err := wallet.GetAccount(5)
		require.NoError(t, err)
		account, err := restored.GetAccount(5)
		require.NoError(t, err)
		assert.Equal(t, expected, account)
	}
	assert.Equal(t, 2, wallet.AccountCount())
}

func TestRestoredWalletAddresses(t *testing.T) {
	wallet, err := FromSecretKey(testSecretKey)
	require.NoError(t, err)
	data, err := wallet.EncryptKey("hello world")
	require.NoError(t, err)

	restored, err := NewWalletFromEncryptedKey("hello world", data)
	require.NoError(t, err)
	account, err := restored.GetAccount(0)
	require.NoError(t, err)
	address, err := account.Address(MainnetP2PKH)
	require.NoError(t, err)
	assert.Equal(t, "SP384CVPNDTYA0E92TKJZQTYXQHNZSWGCAG7SAPVB", address)

	// the restored root key can be encrypted again
	again, err := restored.EncryptKey("other passphrase")
	require.NoError(t, err)
	restoredAgain, err := NewWalletFromEncryptedKey("other passphrase", again)
	require.NoError(t, err)
	assertSameRootKey(t, wallet, restoredAgain)
}

func TestWrongPassphraseIsRejected(t *testing.T) {
	wallet, err := FromSecretKey(testSecretKey)
	require.NoError(t, err)
	data, err := wallet.EncryptKey("hello world")
	require.NoError(t, err)

	for _, passphrase := range []string{"hello world!", "Hello world", ""} {
		restored, err := NewWalletFromEncryptedKey(passphrase, data)
		assert.ErrorIs(t, err, ErrAuthentication)
		assert.Nil(t, restored)
	}
}

func TestTamperedVaultIsRejected(t *testing.T) {
	wallet, err := FromSecretKey(testSecretKey)
	require.NoError(t, err)
	data, err := wallet.EncryptKey("hello world")
	require.NoError(t, err)

	// salt, first/last ciphertext bytes, first/last tag bytes
	positions := []int{
		0,
		SaltSize,
		SaltSize + ChainCodeSize,
		len(data) - TagSize - 1,
		len(data) - TagSize,
		len(data) - 1,
	}
	for _, i := range positions {
		tampered := append([]byte{}, data...)
		tampered[i] ^= 0x01

		restored, err := NewWalletFromEncryptedKey("hello world", tampered)
		assert.ErrorIs(t, err, ErrAuthentication, "position %d", i)
		assert.Nil(t, restored)
	}
}

func TestMalformedVault(t *testing.T) {
	wallet, err := FromSecretKey(testSecretKey)
	require.NoError(t, err)
	data, err := wallet.EncryptKey("hello world")
	require.NoError(t, err)

	// truncated inputs
	for _, size := range []int{0, SaltSize, MinVaultSize - 1} {
		_, err := NewWalletFromEncryptedKey("hello world", data[:size])
		assert.Equal(t, ErrMalformedVault, err, "size %d", size)
	}
	_, err = NewWalletFromEncryptedKey("hello world", data[:len(data)-1])
	assert.ErrorIs(t, err, ErrAuthentication)

	// authentic payloads of the wrong shape
	tests := [][]byte{
		bytes.Repeat([]byte{1}, ChainCodeSize),
		bytes.Repeat([]byte{1}, ChainCodeSize+31),
		bytes.Repeat([]byte{1}, ChainCodeSize+33),
		append(bytes.Repeat([]byte{1}, ChainCodeSize), make([]byte, 32)...),
		append(bytes.Repeat([]byte{1}, ChainCodeSize), bytes.Repeat([]byte{0xff}, 32)...),
	}
	for _, plaintext := range tests {
		vault, err := Encrypt(EncryptOpts{
			PlainText:  plaintext,
			Passphrase: "hello world",
		})
		require.NoError(t, err)

		restored, err := NewWalletFromEncryptedKey("hello world", vault)
		assert.True(t, errors.Is(err, ErrMalformedVault))
		assert.Nil(t, restored)
	}
}

func TestDeriveKey(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)

	key, nonce := DeriveKey([]byte("hello world"), salt)
	assert.Len(t, key, EncryptionKeySize)
	assert.Len(t, nonce, NonceSize)

	otherKey, otherNonce := DeriveKey([]byte("hello world"), salt)
	assert.Equal(t, key, otherKey)
	assert.Equal(t, nonce, otherNonce)

	otherKey, _ = DeriveKey([]byte("hello world"), bytes.Repeat([]byte{8}, SaltSize))
	assert.NotEqual(t, key, otherKey)
}

func TestEncryptKeyWithoutRootKey(t *testing.T) {
	wallet := &Wallet{accounts: Accounts{}}
	_, err := wallet.EncryptKey("hello world")
	assert.Equal(t, ErrNullRootKey, err)
}
