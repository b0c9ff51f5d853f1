package value

import (
	"encoding/binary"
	"fmt"

	"github.com/brightlake/dicomcore/dicom/vr"
)

// TagRef is the (group, element) pair an AttributeTag value points at. It
// mirrors tag.Tag's shape without importing dicom/tag, again to avoid a
// cycle (dicom/tag does not import dicom/value, but keeping this package
// free of a tag dependency keeps the value layer self-contained).
type TagRef struct {
	Group, Element uint16
}

func (t TagRef) String() string { return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element) }

// TagValue is the explicit, typed representation of an AttributeTag (VR AT)
// value: the element parser produces one directly rather than folding the
// group/element pair into IntValue's int64 slot, so naturalize/denaturalize
// and dump tooling see a tag reference instead of an opaque packed integer.
type TagValue struct {
	values []TagRef
}

// NewTagValue creates a TagValue from one or more tag references.
func NewTagValue(values []TagRef) *TagValue {
	return &TagValue{values: values}
}

// VR always returns vr.AttributeTag.
func (t *TagValue) VR() vr.VR { return vr.AttributeTag }

// Tags returns the tag references.
func (t *TagValue) Tags() []TagRef { return t.values }

func (t *TagValue) String() string {
	if len(t.values) == 0 {
		return ""
	}
	s := t.values[0].String()
	for _, v := range t.values[1:] {
		s += "\\" + v.String()
	}
	return s
}

// Bytes encodes in little-endian order, matching every transfer syntax
// except Explicit VR Big Endian. Callers writing to the wire should use
// BytesOrder (via EncodeBytes) instead so the transfer syntax's byte order
// is honored.
func (t *TagValue) Bytes() []byte {
	return t.BytesOrder(binary.LittleEndian)
}

// BytesOrder encodes each tag reference as two 2-byte fields (group, then
// element), each in the given byte order, per PS3.5 7.1.2 ("AT" is a pair
// of 2-byte fields, not one 4-byte field, so byte order applies per field).
func (t *TagValue) BytesOrder(order binary.ByteOrder) []byte {
	out := make([]byte, len(t.values)*4)
	for i, v := range t.values {
		order.PutUint16(out[i*4:], v.Group)
		order.PutUint16(out[i*4+2:], v.Element)
	}
	return out
}

func (t *TagValue) Equals(other Value) bool {
	o, ok := other.(*TagValue)
	if !ok || len(t.values) != len(o.values) {
		return false
	}
	for i := range t.values {
		if t.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

var _ Value = (*TagValue)(nil)

// BulkDataValue represents a large binary value (typically OB/OW pixel or
// waveform data) that a caller has chosen to divert out of the in-memory
// dataset during parsing (ParseOptions.isBulkdata) rather than materialize
// as a BytesValue. BulkDataURI and BulkDataUUID are kept as two distinct
// fields rather than a union: a diverted value commonly needs both a
// caller-facing locator (URI, e.g. a file path or object-store key the
// bulk bytes were written to) and a stable internal identifier (UUID) used
// to correlate it back to its element across the naturalize/denaturalize
// round trip, and a single implementation surveyed in the example pack
// that serializes bulk data never needed to pick one over the other.
type BulkDataValue struct {
	vr           vr.VR
	bulkDataURI  string
	bulkDataUUID string
	length       int
}

// NewBulkDataValue creates a diverted bulk-data placeholder for the given
// VR (OB, OW, OD, OF, OL, OV, or UN), recording where the real bytes were
// written (uri) and/or an internal identifier (uuid), plus the original
// encoded length for round-trip length accounting.
func NewBulkDataValue(v vr.VR, uri, uuid string, length int) *BulkDataValue {
	return &BulkDataValue{vr: v, bulkDataURI: uri, bulkDataUUID: uuid, length: length}
}

func (b *BulkDataValue) VR() vr.VR { return b.vr }

// BulkDataURI returns the external locator for the diverted bytes, or "" if
// none was assigned.
func (b *BulkDataValue) BulkDataURI() string { return b.bulkDataURI }

// BulkDataUUID returns the internal correlation identifier, or "" if none
// was assigned.
func (b *BulkDataValue) BulkDataUUID() string { return b.bulkDataUUID }

// Length returns the original encoded value length in bytes.
func (b *BulkDataValue) Length() int { return b.length }

func (b *BulkDataValue) String() string {
	return fmt.Sprintf("BulkData(uri=%s, uuid=%s, %d bytes)", b.bulkDataURI, b.bulkDataUUID, b.length)
}

// Bytes returns nil: the actual payload lives wherever BulkDataURI points,
// not in memory.
func (b *BulkDataValue) Bytes() []byte { return nil }

func (b *BulkDataValue) Equals(other Value) bool {
	o, ok := other.(*BulkDataValue)
	if !ok {
		return false
	}
	return b.vr == o.vr && b.bulkDataURI == o.bulkDataURI && b.bulkDataUUID == o.bulkDataUUID
}

var _ Value = (*BulkDataValue)(nil)
