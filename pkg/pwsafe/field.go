package pwsafe

import "encoding/binary"

// Field is an immutable TLV: a type code and an opaque payload. Typed
// views are accessors over the payload; they assert a minimum length
// and do no bounds-corrective work beyond that.
type Field struct {
	typ  byte
	data []byte
}

// NewField copies data into a new immutable Field of the given type.
func NewField(typ byte, data []byte) Field {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Field{typ: typ, data: cp}
}

// Type returns the field's type code.
func (f Field) Type() byte { return f.typ }

// Data returns the field's raw payload bytes.
func (f Field) Data() []byte { return f.data }

// Text returns the payload interpreted as UTF-8 text, as-is.
func (f Field) Text() string { return string(f.data) }

// Uint16 returns the payload's first two bytes as a little-endian uint16.
func (f Field) Uint16() uint16 {
	if len(f.data) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(f.data)
}

// Uint32 returns the payload's first four bytes as a little-endian uint32.
func (f Field) Uint32() uint32 {
	if len(f.data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(f.data)
}

// Time returns the payload interpreted as a little-endian POSIX
// timestamp, the same encoding as Uint32.
func (f Field) Time() uint32 { return f.Uint32() }

// UUID returns the payload's first 16 bytes verbatim.
func (f Field) UUID() [16]byte {
	var out [16]byte
	copy(out[:], f.data)
	return out
}

// Holder is an ordered sequence of fields preserving insertion order.
// Multiple fields of the same type are tolerated on read, but
// SetField's replace-in-place contract assumes at most one.
type Holder struct {
	fields []Field
}

// Add appends a field, always creating a new slot.
func (h *Holder) Add(typ byte, data []byte) {
	h.fields = append(h.fields, NewField(typ, data))
}

// SetField replaces the first field of the given type in place,
// preserving its slot; if no such field exists, it is appended.
func (h *Holder) SetField(typ byte, data []byte) {
	for i, f := range h.fields {
		if f.typ == typ {
			h.fields[i] = NewField(typ, data)
			return
		}
	}
	h.Add(typ, data)
}

// RemoveField removes every field of the given type.
func (h *Holder) RemoveField(typ byte) {
	out := h.fields[:0]
	for _, f := range h.fields {
		if f.typ != typ {
			out = append(out, f)
		}
	}
	h.fields = out
}

// HasField reports whether any field of the given type is present.
func (h *Holder) HasField(typ byte) bool {
	for _, f := range h.fields {
		if f.typ == typ {
			return true
		}
	}
	return false
}

// FieldByType returns the first field of the given type.
func (h *Holder) FieldByType(typ byte) (Field, error) {
	for _, f := range h.fields {
		if f.typ == typ {
			return f, nil
		}
	}
	return Field{}, errFieldNotFound
}

// FieldByIndex returns the field at the given position.
func (h *Holder) FieldByIndex(i int) Field {
	return h.fields[i]
}

// Count returns the number of fields held.
func (h *Holder) Count() int {
	return len(h.fields)
}

// textOr returns the text of the first field of typ, or def if absent.
// Used by the optional convenience accessors (group/username/notes).
func (h *Holder) textOr(typ byte, def string) string {
	f, err := h.FieldByType(typ)
	if err != nil {
		return def
	}
	return f.Text()
}
