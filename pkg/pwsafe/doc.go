/*
Package pwsafe implements the core of a password-safe data engine: the
in-memory database model of password records and the PasswordSafe V3
authenticated-encrypted on-disk container used to persist it.

The package decrypts, authenticates, and parses a version-3 safe file
into a structured record collection, permits edits (create/update/delete
records and groups), and writes a round-trip-compatible encrypted file
under a user-supplied passphrase.

# V3 container layout

	+0     4      "PWS3"
	+4     32     salt
	+36    4      n_iter (u32 little-endian)
	+40    32     SHA256(stretch(salt, pass, n_iter))
	+72    32     Twofish-ECB(stretched, K)   // 2 blocks
	+104   32     Twofish-ECB(stretched, L)   // 2 blocks
	+136   16     IV
	+152   ...    CBC-encrypted TLV field stream
	...    16     EOF sentinel "PWS3-EOFPWS3-EOF" (unencrypted, matched in ciphertext)
	end-32 32     HMAC-SHA256 over plaintext field payload bytes, in emission order

Reads are strictly sequential: tag check, then key derivation, then the
passphrase-hash check (before any ciphertext is touched), then the K/L
envelope, then the field stream, and finally the HMAC check last. No
partial database is ever returned from a failed read.
*/
package pwsafe
