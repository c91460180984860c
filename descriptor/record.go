package descriptor

import (
	"encoding/binary"
	"fmt"
)

// Packed wire layout. Every record has identical size and alignment so a
// descriptor region can be read as a homogeneous array: entry count is
// (end-start)/RecordSize. Heterogeneous per-device payload is reached
// indirectly: the id lives in a separate name table addressed by offset, and
// the hooks live in a table addressed by index.
const (
	// RecordSize is the packed size of one record in bytes.
	RecordSize = 16
	// RecordAlign is the minimum alignment of a descriptor region.
	RecordAlign = 4
)

// Record is the packed form of one descriptor.
type Record struct {
	NameOff  uint32 // byte offset of the id in the name table
	NameLen  uint32 // byte length of the id
	Priority int32
	Hook     uint32 // index into the hook table bound at load time
}

// Put encodes r into b, which must be at least RecordSize bytes.
// Little-endian, matching the packing side in descgen.
func (r Record) Put(b []byte) {
	binary.LittleEndian.PutUint32(b[0:], r.NameOff)
	binary.LittleEndian.PutUint32(b[4:], r.NameLen)
	binary.LittleEndian.PutUint32(b[8:], uint32(r.Priority))
	binary.LittleEndian.PutUint32(b[12:], r.Hook)
}

// DecodeRecord reads one packed record from b.
func DecodeRecord(b []byte) Record {
	return Record{
		NameOff:  binary.LittleEndian.Uint32(b[0:]),
		NameLen:  binary.LittleEndian.Uint32(b[4:]),
		Priority: int32(binary.LittleEndian.Uint32(b[8:])),
		Hook:     uint32(binary.LittleEndian.Uint32(b[12:])),
	}
}

// Entry is one declaration handed to Pack.
type Entry struct {
	ID       string
	Priority int32
}

// Pack builds a descriptor region and its name table from a set of
// declarations, in declaration order. Hook indices are assigned positionally:
// entry i binds to hook-table slot i on the loading side.
func Pack(entries []Entry) (region, names []byte, err error) {
	region = make([]byte, 0, len(entries)*RecordSize)
	var buf [RecordSize]byte
	for i, e := range entries {
		if e.ID == "" {
			return nil, nil, fmt.Errorf("descriptor: entry %d has empty id", i)
		}
		if len(e.ID) > MaxIDLen {
			return nil, nil, fmt.Errorf("descriptor: id %q exceeds %d bytes", e.ID, MaxIDLen)
		}
		r := Record{
			NameOff:  uint32(len(names)),
			NameLen:  uint32(len(e.ID)),
			Priority: e.Priority,
			Hook:     uint32(i),
		}
		names = append(names, e.ID...)
		r.Put(buf[:])
		region = append(region, buf[:]...)
	}
	return region, names, nil
}
