package wallet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// AddressVersion identifies the network and the kind (single signature or
// script) of a Stacks address.
type AddressVersion byte

const (
	// MainnetP2PKH renders "SP" addresses.
	MainnetP2PKH AddressVersion = 22
	// MainnetP2SH renders "SM" addresses.
	MainnetP2SH AddressVersion = 20
	// TestnetP2PKH renders "ST" addresses.
	TestnetP2PKH AddressVersion = 26
	// TestnetP2SH renders "SN" addresses.
	TestnetP2SH AddressVersion = 21
)

const (
	// AddressPrefix is the first character of every Stacks address.
	AddressPrefix = "S"
	// AddressHashSize is the size of the public key hash carried by an address.
	AddressHashSize = 20

	// C32Alphabet is the Crockford base32 alphabet used by c32check.
	C32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	c32ChecksumSize = 4
	maxC32Version   = 31
)

var (
	ErrInvalidAddressLength   = errors.New("bad address length")
	ErrInvalidAddressPrefix   = errors.New("bad address prefix")
	ErrInvalidAddressVersion  = errors.New("bad address version")
	ErrInvalidAddressEncoding = errors.New("bad address encoding")
	ErrInvalidAddressChecksum = errors.New("bad address checksum")

	c32Normalizer = strings.NewReplacer("O", "0", "L", "1", "I", "1")
)

// IsMainnet returns whether the version belongs to mainnet.
func (v AddressVersion) IsMainnet() bool {
	return v == MainnetP2PKH || v == MainnetP2SH
}

// String implements the fmt.Stringer interface.
func (v AddressVersion) String() string {
	switch v {
	case MainnetP2PKH:
		return "mainnet-p2pkh"
	case MainnetP2SH:
		return "mainnet-p2sh"
	case TestnetP2PKH:
		return "testnet-p2pkh"
	case TestnetP2SH:
		return "testnet-p2sh"
	default:
		return fmt.Sprintf("version(%d)", byte(v))
	}
}

// Address returns the address of the account for the given version.
func (a Account) Address(version AddressVersion) (string, error) {
	publicKey, err := a.PublicKey()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return AddressFromPublicKey(publicKey, version)
}

// AddressFromPublicKey hashes the compressed public key and renders it as a
// c32check address with the given version.
func AddressFromPublicKey(
	publicKey *btcec.PublicKey,
	version AddressVersion,
) (string, error) {
	if publicKey == nil {
		return "", fmt.Errorf("%w: public key is null", ErrEncoding)
	}
	address, err := c32Address(version, btcutil.Hash160(publicKey.SerializeCompressed()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return address, nil
}

// ParseAddress decodes a Stacks address into its version and public key hash.
func ParseAddress(s string) (AddressVersion, []byte, error) {
	if len(s) < 3 {
		return 0, nil, ErrInvalidAddressLength
	}
	if !strings.HasPrefix(s, AddressPrefix) {
		return 0, nil, ErrInvalidAddressPrefix
	}

	s = c32Normalizer.Replace(strings.ToUpper(s[1:]))
	version := strings.IndexByte(C32Alphabet, s[0])
	if version < 0 {
		return 0, nil, ErrInvalidAddressVersion
	}

	hash, err := c32CheckDecode(AddressVersion(version), s[1:])
	if err != nil {
		return 0, nil, err
	}
	if len(hash) != AddressHashSize {
		return 0, nil, ErrInvalidAddressLength
	}
	return AddressVersion(version), hash, nil
}

func c32Address(version AddressVersion, data []byte) (string, error) {
	if version > maxC32Version {
		return "", ErrInvalidAddressVersion
	}

	var buf bytes.Buffer
	buf.WriteString(AddressPrefix)
	buf.WriteByte(C32Alphabet[version])
	buf.WriteString(c32CheckEncode(version, data))
	return buf.String(), nil
}

func c32Checksum(version AddressVersion, data []byte) []byte {
	payload := append([]byte{byte(version)}, data...)
	return chainhash.DoubleHashB(payload)[:c32ChecksumSize]
}

func c32CheckEncode(version AddressVersion, data []byte) string {
	payload := make([]byte, 0, len(data)+c32ChecksumSize)
	payload = append(payload, data...)
	payload = append(payload, c32Checksum(version, data)...)
	return c32Encode(payload)
}

func c32CheckDecode(version AddressVersion, s string) ([]byte, error) {
	payload, err := c32Decode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) < c32ChecksumSize {
		return nil, ErrInvalidAddressLength
	}

	data := payload[:len(payload)-c32ChecksumSize]
	checksum := payload[len(payload)-c32ChecksumSize:]
	if !bytes.Equal(c32Checksum(version, data), checksum) {
		return nil, ErrInvalidAddressChecksum
	}
	return data, nil
}

// c32Encode encodes data as a big-endian number in base32, keeping one '0'
// digit for every leading zero byte.
func c32Encode(data []byte) string {
	out := make([]byte, 0, len(data)*8/5+1)

	var carry, carryBits uint
	for i := len(data) - 1; i >= 0; i-- {
		carry |= uint(data[i]) << carryBits
		carryBits += 8
		for carryBits >= 5 {
			out = append(out, C32Alphabet[carry&0x1f])
			carry >>= 5
			carryBits -= 5
		}
	}
	if carryBits > 0 {
		out = append(out, C32Alphabet[carry&0x1f])
	}

	for len(out) > 0 && out[len(out)-1] == C32Alphabet[0] {
		out = out[:len(out)-1]
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, C32Alphabet[0])
	}

	return string(reverseBytes(out))
}

// c32Decode is the inverse of c32Encode. The input must be normalized.
func c32Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*5/8+1)

	var carry, carryBits uint
	for i := len(s) - 1; i >= 0; i-- {
		value := strings.IndexByte(C32Alphabet, s[i])
		if value < 0 {
			return nil, ErrInvalidAddressEncoding
		}
		carry |= uint(value) << carryBits
		carryBits += 5
		if carryBits >= 8 {
			out = append(out, byte(carry))
			carry >>= 8
			carryBits -= 8
		}
	}
	if carryBits > 0 {
		out = append(out, byte(carry))
	}

	for len(out) > 0 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	for i := 0; i < len(s) && s[i] == C32Alphabet[0]; i++ {
		out = append(out, 0)
	}

	return reverseBytes(out), nil
}

func reverseBytes(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
