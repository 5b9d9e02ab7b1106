package pwsafe

import "github.com/cockroachdb/errors"

// Database owns a header and an ordered list of records — the in-memory
// safe. A record's identity is its UUID; the facade enforces UUID
// uniqueness on insert by always generating a fresh one.
type Database struct {
	header     *Header
	records    []*Record
	passphrase []byte

	synthetic map[string]bool // group paths created empty via CreateGroup
	tree      *Tree
}

// EntryKind distinguishes the two kinds of top-level/per-group entries
// Roots/Subgroups callers see.
type EntryKind int

const (
	// EntryRecord marks an Entry wrapping a *Record.
	EntryRecord EntryKind = iota
	// EntryGroup marks an Entry wrapping a group path.
	EntryGroup
)

// Entry is one element of Roots(): either a Record or a Group path.
type Entry struct {
	Kind   EntryKind
	Record *Record
	Group  string
}

// CreateEmpty builds a fresh, empty database: a new header UUID and
// VERSION=3, no records.
func CreateEmpty() *Database {
	db := &Database{
		header:    newEmptyHeader(),
		synthetic: make(map[string]bool),
	}
	db.rebuildTree()
	return db
}

// Header returns the database's header.
func (db *Database) Header() *Header { return db.header }

// Records returns every record in database order.
func (db *Database) Records() []*Record {
	return append([]*Record(nil), db.records...)
}

// rebuildTree recomputes the derived group tree from the current
// record GROUP strings plus any synthetic (still-empty) groups. Called
// after every structural mutation, per the group-derivation invariant:
// the tree depends only on the current state, never on history.
func (db *Database) rebuildTree() {
	var synth []string
	for p := range db.synthetic {
		synth = append(synth, p)
	}
	db.tree = DeriveTree(db.records, synth)
}

// CreateRecord creates a new record with a fresh UUID, the given
// title, an empty password, and (if group is non-empty) the given
// GROUP path. Returns the new record.
func (db *Database) CreateRecord(title, group string) *Record {
	r := newEmptyRecord()
	r.SetTitle(title)
	if group != "" {
		r.SetGroup(group)
	}
	db.records = append(db.records, r)
	db.rebuildTree()
	return r
}

// CreateGroup registers an empty synthetic group at the given path
// (optionally under parent). It materializes no field until a record
// is filed under it; Roots()/Subgroups() will still expose it.
func (db *Database) CreateGroup(name, parent string) string {
	if db.synthetic == nil {
		db.synthetic = make(map[string]bool)
	}
	path := name
	if parent != "" {
		path = parent + "." + name
	}
	db.synthetic[path] = true
	db.rebuildTree()
	return path
}

// DeleteRecord removes the record with the given UUID, if present.
func (db *Database) DeleteRecord(id [16]byte) {
	out := db.records[:0]
	for _, r := range db.records {
		if r.UUID() != id {
			out = append(out, r)
		}
	}
	db.records = out
	db.rebuildTree()
}

// DeleteGroup removes every record whose GROUP equals path or has it
// as a dot-prefix, and drops the synthetic group entry (if any).
func (db *Database) DeleteGroup(path string) {
	out := db.records[:0]
	for _, r := range db.records {
		if !groupPrefixMatch(r.Group(), path) {
			out = append(out, r)
		}
	}
	db.records = out
	delete(db.synthetic, path)
	for p := range db.synthetic {
		if groupPrefixMatch(p, path) {
			delete(db.synthetic, p)
		}
	}
	db.rebuildTree()
}

// Roots returns the top-level entities: groups whose path contains no
// dot, followed by records with empty GROUP in database order. Groups
// under a CreateGroup path come first, in no defined order; groups
// that only record GROUP strings introduce follow in first-appearance
// order.
func (db *Database) Roots() []Entry {
	var out []Entry
	for _, p := range db.tree.Roots() {
		out = append(out, Entry{Kind: EntryGroup, Group: p})
	}
	for _, r := range db.records {
		if r.Group() == "" {
			out = append(out, Entry{Kind: EntryRecord, Record: r})
		}
	}
	return out
}

// Subgroups returns the direct child group paths of path.
func (db *Database) Subgroups(path string) []string {
	return db.tree.Subgroups(path)
}

// GroupRecords returns the records filed directly under path.
func (db *Database) GroupRecords(path string) []*Record {
	return db.tree.Records(path)
}

// DeepRecords returns every record under path, recursively.
func (db *Database) DeepRecords(path string) []*Record {
	return db.tree.DeepRecords(path)
}

// Save writes the database to path under its current passphrase,
// atomically.
func (db *Database) Save(path string) error {
	return Write(db, path, db.passphrase)
}

// SaveWithNewKey writes the database to path under newPassphrase; on
// success, the in-memory passphrase is replaced.
func (db *Database) SaveWithNewKey(path string, newPassphrase []byte) error {
	if err := Write(db, path, newPassphrase); err != nil {
		return err
	}
	zero(db.passphrase)
	db.passphrase = append([]byte(nil), newPassphrase...)
	return nil
}

// recordByUUID returns the live record for a UUID; RecordByUUID is its
// exported form.
func (db *Database) recordByUUID(id [16]byte) (*Record, error) {
	for _, r := range db.records {
		if r.UUID() == id {
			return r, nil
		}
	}
	return nil, errors.Newf("pwsafe: no record with uuid %x", id)
}

// RecordByUUID returns the record identified by id.
func (db *Database) RecordByUUID(id [16]byte) (*Record, error) {
	return db.recordByUUID(id)
}
