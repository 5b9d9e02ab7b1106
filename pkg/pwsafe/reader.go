package pwsafe

import (
	"bytes"
	"hash"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// v3Reader parses, authenticates, and decrypts a V3 file. Constructed
// with a source and a passphrase, driven by a single read() entry
// point, with each wire-format step kept as its own unexported method
// in on-disk order.
type v3Reader struct {
	src        io.Reader
	passphrase []byte

	stretched [32]byte
	k, l      []byte
	iv        []byte

	dec cipherBlockMode
	mac hash.Hash
}

// cipherBlockMode is the subset of cipher.BlockMode the reader needs,
// named locally so reader.go does not have to import crypto/cipher
// just for the type.
type cipherBlockMode interface {
	CryptBlocks(dst, src []byte)
}

// Open reads, authenticates, and decrypts a V3 file at path under
// passphrase, returning a fully populated Database. No partial
// database is ever returned on error: the HMAC check is the last step,
// and every failure returns a nil Database.
func Open(path string, passphrase []byte) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(FileNotFound, err)
		}
		return nil, newErr(Unspecified, errors.Wrapf(err, "pwsafe: open %s", path))
	}
	defer f.Close()

	r := &v3Reader{src: f, passphrase: passphrase}
	db, err := r.read()
	zero(r.stretched[:])
	zero(r.k)
	zero(r.l)
	zero(r.iv)
	return db, err
}

func (r *v3Reader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, newErr(MalformedFile, errors.Wrap(err, "pwsafe: short read"))
	}
	return buf, nil
}

func (r *v3Reader) checkTag() error {
	buf, err := r.readExact(4)
	if err != nil {
		return newErr(InvalidTag, errors.Wrap(err, "pwsafe: reading tag"))
	}
	if !bytes.Equal(buf, pwsTag) {
		return newErr(InvalidTag, nil)
	}
	return nil
}

func (r *v3Reader) checkPassphrase() error {
	salt, err := r.readExact(32)
	if err != nil {
		return err
	}
	nIterBuf, err := r.readExact(4)
	if err != nil {
		return err
	}
	nIter := ReadUint32LE(nIterBuf)

	r.stretched = Stretch(salt, r.passphrase, nIter)

	savedHash, err := r.readExact(32)
	if err != nil {
		return err
	}
	computed := passphraseHash(r.stretched[:])
	if !constantTimeEqual(computed[:], savedHash) {
		return newErr(InvalidPassword, nil)
	}
	return nil
}

func (r *v3Reader) readEnvelope() error {
	kCipher, err := r.readExact(32)
	if err != nil {
		return err
	}
	lCipher, err := r.readExact(32)
	if err != nil {
		return err
	}
	k, err := twofishECBDecrypt(r.stretched[:], kCipher)
	if err != nil {
		return newErr(Unspecified, errors.Wrap(err, "pwsafe: decrypting K"))
	}
	l, err := twofishECBDecrypt(r.stretched[:], lCipher)
	if err != nil {
		return newErr(Unspecified, errors.Wrap(err, "pwsafe: decrypting L"))
	}
	r.k, r.l = k, l
	return nil
}

// readCBCBlock reads one ciphertext block, matching the EOF sentinel
// verbatim before decrypting — the sentinel is never itself encrypted.
// Returns (block, true) on an ordinary field block, or (nil, false) at
// the EOF sentinel.
func (r *v3Reader) readCBCBlock() ([]byte, bool, error) {
	raw, err := r.readExact(blockSize)
	if err != nil {
		return nil, false, err
	}
	if bytes.Equal(raw, eofSentinel) {
		return nil, false, nil
	}
	out := make([]byte, blockSize)
	r.dec.CryptBlocks(out, raw)
	return out, true, nil
}

// readField reads one TLV field from the CBC stream: first block holds
// length+type+up to 11 payload bytes, subsequent blocks hold 16 more
// payload bytes each. Returns the field type, its payload, and whether
// the EOF sentinel was hit instead of a field.
func (r *v3Reader) readField() (typ byte, data []byte, eof bool, err error) {
	first, ok, err := r.readCBCBlock()
	if err != nil {
		return 0, nil, false, err
	}
	if !ok {
		return 0, nil, true, nil
	}

	length := ReadUint32LE(first)
	typ = first[4]

	want := int(length)
	head := want
	if head > blockSize-5 {
		head = blockSize - 5
	}
	data = append(data, first[5:5+head]...)
	r.mac.Write(first[5 : 5+head])
	want -= head

	for want > 0 {
		blk, ok, err := r.readCBCBlock()
		if err != nil {
			return 0, nil, false, err
		}
		if !ok {
			return 0, nil, false, newErr(MalformedFile, errors.New("pwsafe: EOF sentinel mid-field"))
		}
		n := want
		if n > blockSize {
			n = blockSize
		}
		data = append(data, blk[:n]...)
		r.mac.Write(blk[:n])
		want -= n
	}
	return typ, data, false, nil
}

// readFields reads fields into h until a 0xFF terminator field or the
// EOF sentinel is encountered. eof reports which one ended the stream.
func (r *v3Reader) readFields(h *Holder) (eof bool, err error) {
	for {
		typ, data, hitEOF, err := r.readField()
		if err != nil {
			return false, err
		}
		if hitEOF {
			return true, nil
		}
		if typ == recordTerminator {
			return false, nil
		}
		h.Add(typ, data)
	}
}

// integrityErr reports a field-stream error as HmacMismatch when the
// stored tag can still be read after the EOF sentinel and does not
// match: tampered ciphertext decrypts to garbled lengths and types.
// Otherwise err is returned unchanged.
func (r *v3Reader) integrityErr(err error) error {
	savedMAC, rerr := r.readExact(32)
	if rerr == nil && !constantTimeEqual(r.mac.Sum(nil), savedMAC) {
		return newErr(HmacMismatch, err)
	}
	return err
}

func (r *v3Reader) read() (*Database, error) {
	if err := r.checkTag(); err != nil {
		return nil, err
	}
	if err := r.checkPassphrase(); err != nil {
		return nil, err
	}
	if err := r.readEnvelope(); err != nil {
		return nil, err
	}

	iv, err := r.readExact(blockSize)
	if err != nil {
		return nil, err
	}
	r.iv = iv

	dec, err := newTwofishCBCDecrypter(r.k, r.iv)
	if err != nil {
		return nil, newErr(Unspecified, errors.Wrap(err, "pwsafe: init cipher"))
	}
	r.dec = dec
	r.mac = newFieldHMAC(r.l)

	header := &Header{}
	eof, err := r.readFields(&header.Holder)
	if err == nil && eof {
		err = newErr(MalformedFile, errors.New("pwsafe: EOF sentinel before header terminator"))
	}
	if err != nil {
		return nil, r.integrityErr(err)
	}
	if !header.HasField(HeaderVersion) {
		return nil, newErr(MalformedFile, errors.New("pwsafe: missing header VERSION field"))
	}

	var records []*Record
	for {
		rec := &Record{}
		eof, err := r.readFields(&rec.Holder)
		if err != nil {
			return nil, r.integrityErr(err)
		}
		if eof {
			break
		}
		records = append(records, rec)
	}

	savedMAC, err := r.readExact(32)
	if err != nil {
		return nil, err
	}
	computedMAC := r.mac.Sum(nil)
	if !constantTimeEqual(computedMAC, savedMAC) {
		return nil, newErr(HmacMismatch, nil)
	}

	db := &Database{
		header:     header,
		records:    records,
		passphrase: append([]byte(nil), r.passphrase...),
	}
	db.rebuildTree()
	return db, nil
}
