package pwsafe

import (
	"crypto/rand"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const writeIterations = 2048

// v3Writer serializes, encrypts, MACs, and atomically replaces a V3
// file. Constructed with a destination, a database, and a passphrase;
// write order is exactly the reverse of v3Reader's.
type v3Writer struct {
	dst        io.Writer
	db         *Database
	passphrase []byte

	stretched [32]byte
	k, l      []byte
	iv        []byte

	enc cipherBlockMode
	mac hash.Hash
}

// Write serializes db, encrypts it under passphrase, and atomically
// replaces the file at path: it writes the full image to a fresh
// sibling temp file, closes it, then renames over the target. Any
// error removes the temp file and leaves the target path untouched.
func Write(db *Database, path string, passphrase []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pwsafe-tmp-*")
	if err != nil {
		return newErr(CannotWriteFile, errors.Wrapf(err, "pwsafe: create temp in %s", dir))
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := &v3Writer{dst: tmp, db: db, passphrase: passphrase}
	if err := w.write(); err != nil {
		zero(w.stretched[:])
		zero(w.k)
		zero(w.l)
		zero(w.iv)
		return err
	}
	zero(w.stretched[:])
	zero(w.k)
	zero(w.l)
	zero(w.iv)

	if err := tmp.Close(); err != nil {
		return newErr(WriteError, errors.Wrap(err, "pwsafe: closing temp file"))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return newErr(WriteError, errors.Wrapf(err, "pwsafe: rename %s to %s", tmpPath, path))
	}
	cleanup = false
	return nil
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (w *v3Writer) writeRaw(b []byte) error {
	if _, err := w.dst.Write(b); err != nil {
		return newErr(WriteError, errors.Wrap(err, "pwsafe: short write"))
	}
	return nil
}

func (w *v3Writer) writeTag() error {
	return w.writeRaw(pwsTag)
}

func (w *v3Writer) writePassphrase() error {
	salt, err := randBytes(32)
	if err != nil {
		return newErr(Unspecified, err)
	}
	nIterBuf := make([]byte, 4)
	WriteUint32LE(nIterBuf, writeIterations)

	w.stretched = Stretch(salt, w.passphrase, writeIterations)
	keyHash := passphraseHash(w.stretched[:])

	if err := w.writeRaw(salt); err != nil {
		return err
	}
	if err := w.writeRaw(nIterBuf); err != nil {
		return err
	}
	return w.writeRaw(keyHash[:])
}

func (w *v3Writer) writeEnvelope() error {
	k, err := randBytes(32)
	if err != nil {
		return newErr(Unspecified, err)
	}
	l, err := randBytes(32)
	if err != nil {
		return newErr(Unspecified, err)
	}
	w.k, w.l = k, l

	kCipher, err := twofishECBEncrypt(w.stretched[:], k)
	if err != nil {
		return newErr(Unspecified, errors.Wrap(err, "pwsafe: encrypting K"))
	}
	lCipher, err := twofishECBEncrypt(w.stretched[:], l)
	if err != nil {
		return newErr(Unspecified, errors.Wrap(err, "pwsafe: encrypting L"))
	}
	if err := w.writeRaw(kCipher); err != nil {
		return err
	}
	return w.writeRaw(lCipher)
}

func (w *v3Writer) writeIV() error {
	iv, err := randBytes(blockSize)
	if err != nil {
		return newErr(Unspecified, err)
	}
	w.iv = iv
	return w.writeRaw(iv)
}

// writeCBCBlock encrypts and writes one plaintext block. Every block
// written is exactly blockSize bytes after CBC.
func (w *v3Writer) writeCBCBlock(plain []byte) error {
	out := make([]byte, blockSize)
	w.enc.CryptBlocks(out, plain)
	return w.writeRaw(out)
}

// writeField emits one TLV field: first block is length+type+up to 11
// payload bytes, subsequent blocks are 16 payload bytes each. Padding
// past the payload is cryptographically random, never zero, so the
// final block does not leak payload-length granularity.
func (w *v3Writer) writeField(typ byte, data []byte) error {
	total := len(data)

	first := make([]byte, blockSize)
	WriteUint32LE(first, uint32(total))
	first[4] = typ

	head := total
	if head > blockSize-5 {
		head = blockSize - 5
	}
	copy(first[5:5+head], data[:head])
	if pad := blockSize - 5 - head; pad > 0 {
		r, err := randBytes(pad)
		if err != nil {
			return newErr(Unspecified, err)
		}
		copy(first[5+head:], r)
	}
	if err := w.writeCBCBlock(first); err != nil {
		return err
	}
	w.mac.Write(data[:head])

	off := head
	for off < total {
		blk := make([]byte, blockSize)
		n := total - off
		if n > blockSize {
			n = blockSize
		}
		copy(blk, data[off:off+n])
		if pad := blockSize - n; pad > 0 {
			r, err := randBytes(pad)
			if err != nil {
				return newErr(Unspecified, err)
			}
			copy(blk[n:], r)
		}
		if err := w.writeCBCBlock(blk); err != nil {
			return err
		}
		w.mac.Write(data[off : off+n])
		off += n
	}
	return nil
}

// writeFields emits every field in h's stored order, then a 0xFF
// length-0 terminator field. A holder with no fields at all writes
// nothing, not even a terminator (matching the original writer).
func (w *v3Writer) writeFields(h *Holder) error {
	if h.Count() == 0 {
		return nil
	}
	for i := 0; i < h.Count(); i++ {
		f := h.FieldByIndex(i)
		if err := w.writeField(f.Type(), f.Data()); err != nil {
			return err
		}
	}
	return w.writeField(recordTerminator, nil)
}

func (w *v3Writer) writeEOF() error {
	return w.writeRaw(eofSentinel)
}

func (w *v3Writer) writeHMAC() error {
	return w.writeRaw(w.mac.Sum(nil))
}

func (w *v3Writer) write() error {
	if err := w.writeTag(); err != nil {
		return err
	}
	if err := w.writePassphrase(); err != nil {
		return err
	}
	if err := w.writeEnvelope(); err != nil {
		return err
	}
	if err := w.writeIV(); err != nil {
		return err
	}

	enc, err := newTwofishCBCEncrypter(w.k, w.iv)
	if err != nil {
		return newErr(Unspecified, errors.Wrap(err, "pwsafe: init cipher"))
	}
	w.enc = enc
	w.mac = newFieldHMAC(w.l)

	if !w.db.header.HasField(HeaderVersion) {
		return newErr(MalformedFile, errors.New("pwsafe: header missing VERSION field"))
	}
	if err := w.writeFields(&w.db.header.Holder); err != nil {
		return err
	}
	for _, r := range w.db.records {
		if err := w.writeFields(&r.Holder); err != nil {
			return err
		}
	}

	if err := w.writeEOF(); err != nil {
		return err
	}
	return w.writeHMAC()
}
