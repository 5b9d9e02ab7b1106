package pwsafe

import (
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/twofish"
)

const blockSize = twofish.BlockSize // 16

// eofSentinel is the literal plaintext written verbatim in the
// ciphertext stream to mark the end of the encrypted field region.
var eofSentinel = []byte("PWS3-EOFPWS3-EOF")

// pwsTag is the fixed 4-byte file-format tag.
var pwsTag = []byte("PWS3")

// twofishECBEncrypt encrypts data, which must be an exact multiple of
// the Twofish block size, into a new slice one block at a time — the package only exposes a cipher.Block, so ECB mode over the
// two-block K/L envelope is just two independent block operations,
// exactly mirroring Crypto++'s ECB_Mode<Twofish> used by the original.
func twofishECBEncrypt(key, data []byte) ([]byte, error) {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += blockSize {
		block.Encrypt(out[off:off+blockSize], data[off:off+blockSize])
	}
	return out, nil
}

func twofishECBDecrypt(key, data []byte) ([]byte, error) {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += blockSize {
		block.Decrypt(out[off:off+blockSize], data[off:off+blockSize])
	}
	return out, nil
}

func newTwofishCBCEncrypter(key, iv []byte) (cipher.BlockMode, error) {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewCBCEncrypter(block, iv), nil
}

func newTwofishCBCDecrypter(key, iv []byte) (cipher.BlockMode, error) {
	block, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewCBCDecrypter(block, iv), nil
}

// constantTimeEqual does a constant-time byte-slice comparison, used
// for both the passphrase-hash check and the HMAC tag check — a naive
// bytes.Equal is a timing-oracle bug for these two comparisons
// specifically.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

func passphraseHash(stretched []byte) [32]byte {
	return sha256.Sum256(stretched)
}

func newFieldHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

// zero overwrites b with zero bytes, for key/passphrase material that
// should not linger in memory after use.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
