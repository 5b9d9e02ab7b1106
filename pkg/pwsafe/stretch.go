package pwsafe

import "crypto/sha256"

// Stretch derives a 32-byte key from salt and passphrase by iterated
// SHA-256, per the V3 key-stretching algorithm: H0 = SHA256(pass||salt),
// then H_{i+1} = SHA256(H_i) for nIter rounds. Deterministic,
// side-effect-free.
func Stretch(salt, passphrase []byte, nIter uint32) [32]byte {
	h := sha256.New()
	h.Write(passphrase)
	h.Write(salt)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))

	for i := uint32(0); i < nIter; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return sum
}
