package pwsafe

import "strings"

// Record field type codes, per the V3 format.
const (
	RecordUUID                 = 0x01
	RecordGroup                = 0x02
	RecordTitle                = 0x03
	RecordUsername             = 0x04
	RecordNotes                = 0x05
	RecordPassword             = 0x06
	RecordCreationTime         = 0x07
	RecordPassModificationTime = 0x08
	RecordLastAccessTime       = 0x09
	RecordPassExpiryTime       = 0x0a
	RecordLastModificationTime = 0x0c
	RecordURL                  = 0x0d
	RecordAutotype             = 0x0e
	RecordPassHistory          = 0x0f
	RecordPassPolicy           = 0x10
	RecordPassExpiryInterval   = 0x11

	// recordTerminator is the wire-only 0xFF sentinel field; it is
	// never stored in the in-memory holder.
	recordTerminator = 0xff
)

// Record is a field holder representing one stored credential,
// identified by its UUID field.
type Record struct {
	Holder
}

// newEmptyRecord builds a record with a fresh UUID, empty TITLE, and
// empty PASSWORD set, as a freshly created record requires.
func newEmptyRecord() *Record {
	r := &Record{}
	r.Add(RecordUUID, newUUIDBytes())
	r.Add(RecordTitle, nil)
	r.Add(RecordPassword, nil)
	return r
}

// UUID returns the record's identity field.
func (r *Record) UUID() [16]byte {
	f, err := r.FieldByType(RecordUUID)
	if err != nil {
		return [16]byte{}
	}
	return f.UUID()
}

// Group returns the GROUP field, or "" if absent (top-level record).
func (r *Record) Group() string { return r.textOr(RecordGroup, "") }

// SetGroup sets the GROUP field to the given dot-delimited path.
func (r *Record) SetGroup(path string) { r.SetField(RecordGroup, []byte(path)) }

// Title returns the TITLE field, or "" if absent.
func (r *Record) Title() string { return r.textOr(RecordTitle, "") }

// SetTitle sets the TITLE field.
func (r *Record) SetTitle(v string) { r.SetField(RecordTitle, []byte(v)) }

// Username returns the USERNAME field, or "" if absent.
func (r *Record) Username() string { return r.textOr(RecordUsername, "") }

// SetUsername sets the USERNAME field.
func (r *Record) SetUsername(v string) { r.SetField(RecordUsername, []byte(v)) }

// Notes returns the NOTES field, or "" if absent.
func (r *Record) Notes() string { return r.textOr(RecordNotes, "") }

// SetNotes sets the NOTES field.
func (r *Record) SetNotes(v string) { r.SetField(RecordNotes, []byte(v)) }

// Password returns the PASSWORD field, or "" if absent.
func (r *Record) Password() string { return r.textOr(RecordPassword, "") }

// SetPassword sets the PASSWORD field.
func (r *Record) SetPassword(v string) { r.SetField(RecordPassword, []byte(v)) }

// URL returns the URL field, or "" if absent.
func (r *Record) URL() string { return r.textOr(RecordURL, "") }

// SetURL sets the URL field.
func (r *Record) SetURL(v string) { r.SetField(RecordURL, []byte(v)) }

// groupPrefixMatch reports whether a record's GROUP equals path or has
// it as a dot-prefix — the rule delete_group uses to select victims.
func groupPrefixMatch(group, path string) bool {
	if group == path {
		return true
	}
	return strings.HasPrefix(group, path+".")
}
