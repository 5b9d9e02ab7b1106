package pwsafe

import "github.com/google/uuid"

// newUUIDBytes returns a fresh random (V4) UUID as its raw 16 bytes,
// the representation the UUID field payload stores on the wire.
func newUUIDBytes() []byte {
	id := uuid.New()
	return id[:]
}
