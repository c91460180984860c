package registry

import (
	"fmt"

	"dedrv-go/descriptor"
	"dedrv-go/errcode"
)

// LayoutError reports a descriptor region whose layout cannot be trusted:
// inconsistent boundary markers, bad alignment, a size that is not an exact
// multiple of the record size, or a record pointing outside its tables.
// It is always fatal; there is no partial-trust mode.
type LayoutError struct {
	Reason     string
	Start, End int
}

func (e *LayoutError) Error() string {
	if e.Start != 0 || e.End != 0 {
		return fmt.Sprintf("registry layout fault [%#x,%#x): %s", e.Start, e.End, e.Reason)
	}
	return "registry layout fault: " + e.Reason
}

// Code implements the errcode coder interface.
func (e *LayoutError) Code() errcode.Code { return errcode.LayoutFault }

// FromRegion interprets mem[start:end) as a packed array of descriptor
// records (see descriptor.Record). start and end play the role of the
// boundary markers exported by the build: the entry count is
// (end-start)/RecordSize. names is the table record ids point into; hooks is
// the table record hook indices bind to, in packing order.
func FromRegion(mem []byte, start, end int, names []byte, hooks []descriptor.Hooks) (*Registry, error) {
	switch {
	case start < 0 || end > len(mem):
		return nil, &LayoutError{Reason: "markers outside region memory", Start: start, End: end}
	case end < start:
		return nil, &LayoutError{Reason: "end marker before start marker", Start: start, End: end}
	case start%descriptor.RecordAlign != 0:
		return nil, &LayoutError{Reason: fmt.Sprintf("start not %d-byte aligned", descriptor.RecordAlign), Start: start, End: end}
	case (end-start)%descriptor.RecordSize != 0:
		return nil, &LayoutError{
			Reason: fmt.Sprintf("size %d not a multiple of record size %d", end-start, descriptor.RecordSize),
			Start:  start, End: end,
		}
	}

	n := (end - start) / descriptor.RecordSize
	recs := make([]descriptor.Descriptor, 0, n)
	for i := 0; i < n; i++ {
		rec := descriptor.DecodeRecord(mem[start+i*descriptor.RecordSize:])
		// Bounds math in uint64: converting a uint32 offset straight to int
		// wraps negative on 32-bit targets and would slip past the check.
		nameEnd := uint64(rec.NameOff) + uint64(rec.NameLen)
		if rec.NameLen == 0 || nameEnd > uint64(len(names)) {
			return nil, &LayoutError{Reason: fmt.Sprintf("record %d: id outside name table", i), Start: start, End: end}
		}
		if uint64(rec.Hook) >= uint64(len(hooks)) {
			return nil, &LayoutError{Reason: fmt.Sprintf("record %d: hook index %d out of range", i, rec.Hook), Start: start, End: end}
		}
		h := hooks[rec.Hook]
		d := descriptor.Descriptor{
			ID:       string(names[rec.NameOff:nameEnd]),
			Priority: rec.Priority,
			Init:     h.Init,
			Cleanup:  h.Cleanup,
		}
		if err := d.Check(); err != nil {
			return nil, &LayoutError{Reason: fmt.Sprintf("record %d: %v", i, err), Start: start, End: end}
		}
		recs = append(recs, d)
	}
	return &Registry{recs: recs}, nil
}
