package pwsafe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadTagRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.psafe3")
	require.NoError(t, os.WriteFile(path, []byte("ABCDrest of a file that is not PWS3"), 0o600))

	_, err := Open(path, []byte("whatever"))
	require.True(t, Is(err, InvalidTag))
}

func TestEmptySaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.psafe3")

	db := CreateEmpty()
	require.NoError(t, db.Save(path))

	db2, err := Open(path, nil)
	require.NoError(t, err)
	require.Len(t, db2.Records(), 0)
	require.EqualValues(t, 3, db2.Header().Version())
	require.NotEqual(t, [16]byte{}, db2.Header().UUID())
}

func TestBadPasswordRejectedBeforeHmac(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	require.NoError(t, Write(db, path, []byte("correct")))

	_, err := Open(path, []byte("wrong"))
	require.True(t, Is(err, InvalidPassword))
}

func TestTamperedCiphertextCausesHmacMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	db.CreateRecord("mail", "Work.Email")
	require.NoError(t, Write(db, path, []byte("pw")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flip one bit well inside the CBC region (after the 152-byte
	// fixed header, before the trailing 32-byte HMAC).
	require.Greater(t, len(data), 152+32+1)
	data[200] ^= 0x01
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Open(path, []byte("pw"))
	require.True(t, Is(err, HmacMismatch))
}

func TestRoundTripRecordAndGroupTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	rec := db.CreateRecord("mail", "Work.Email")
	rec.SetUsername("alice")
	rec.SetPassword("s3cr3t")

	require.NoError(t, Write(db, path, []byte("pw")))

	db2, err := Open(path, []byte("pw"))
	require.NoError(t, err)
	require.Len(t, db2.Records(), 1)

	got := db2.Records()[0]
	require.Equal(t, "mail", got.Title())
	require.Equal(t, "alice", got.Username())
	require.Equal(t, "s3cr3t", got.Password())
	require.Equal(t, "Work.Email", got.Group())
	require.Equal(t, rec.UUID(), got.UUID())

	roots := db2.Roots()
	require.Len(t, roots, 1)
	require.Equal(t, EntryGroup, roots[0].Kind)
	require.Equal(t, "Work", roots[0].Group)

	subs := db2.Subgroups("Work")
	require.Equal(t, []string{"Work.Email"}, subs)

	deep := db2.DeepRecords("Work")
	require.Len(t, deep, 1)
	require.Equal(t, "mail", deep[0].Title())
}

func TestRoundTripStableAcrossRepeatedSaveOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	db.CreateRecord("one", "")
	db.CreateRecord("two", "")
	require.NoError(t, Write(db, path, []byte("pw")))

	db2, err := Open(path, []byte("pw"))
	require.NoError(t, err)
	require.NoError(t, Write(db2, path, []byte("pw")))

	db3, err := Open(path, []byte("pw"))
	require.NoError(t, err)

	require.Len(t, db3.Records(), 2)
	require.Equal(t, "one", db3.Records()[0].Title())
	require.Equal(t, "two", db3.Records()[1].Title())
}

func TestUnknownFieldSurvivesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	rec := db.CreateRecord("x", "")
	rec.Add(0x7f, []byte("mystery payload"))
	require.NoError(t, Write(db, path, []byte("pw")))

	db2, err := Open(path, []byte("pw"))
	require.NoError(t, err)

	got := db2.Records()[0]
	f, err := got.FieldByType(0x7f)
	require.NoError(t, err)
	require.Equal(t, "mystery payload", f.Text())
}

func TestZeroLengthFieldPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	db := CreateEmpty()
	rec := db.CreateRecord("x", "")
	rec.SetNotes("")
	require.NoError(t, Write(db, path, []byte("pw")))

	db2, err := Open(path, []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "", db2.Records()[0].Notes())
}

func TestDeleteGroupRemovesPrefixedRecordsOnly(t *testing.T) {
	db := CreateEmpty()
	db.CreateRecord("a", "Work.Email")
	db.CreateRecord("b", "Work.Chat")
	db.CreateRecord("c", "Personal")
	db.CreateRecord("d", "Work")

	db.DeleteGroup("Work")

	require.Len(t, db.Records(), 1)
	require.Equal(t, "Personal", db.Records()[0].Group())
}

func TestAtomicWriteLeavesOriginalUntouchedOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "safe.psafe3")

	original := CreateEmpty()
	require.NoError(t, Write(original, path, []byte("pw")))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Provoke a write failure by writing into a directory that does not
	// exist, so the temp file cannot even be created, and assert that
	// the failed write leaves the original file alone and does not leak
	// a temp file.
	roDir := filepath.Join(dir, "no-such-subdir")
	err = Write(original, filepath.Join(roDir, "safe.psafe3"), []byte("pw"))
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1) // only the original safe file remains
}
