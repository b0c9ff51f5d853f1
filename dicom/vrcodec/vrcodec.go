// Package vrcodec implements the per-VR read/write contract: one Codec per
// value representation, rather than the ad hoc classification switches a
// stream-oriented parser tends to accumulate.
//
// vr.VR cannot itself carry these methods (dicom/vr is a leaf package
// dicom/value already imports, and a Codec needs to construct value.Value
// results), so the contract lives here instead, one level up from both.
// Reader is a minimal structural interface rather than *dicom.Reader so this
// package never has to import the root dicom package (which in turn imports
// vrcodec) — dicom.Reader already satisfies it without either side naming
// the other.
package vrcodec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
)

// Reader is the read surface a Codec needs to decode one element's body.
// *dicom.Reader satisfies this structurally.
type Reader interface {
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
	ReadBytes(n int) ([]byte, error)
}

// Codec is the per-VR wire contract: Read decodes a value of this VR's
// shape of the given byte length from r; Write encodes val back to its wire
// bytes in the requested byte order. Both sides operate on a single VR's
// family of values (a string VR, the four-width integer family, the two
// float widths, binary/opaque, or AttributeTag) rather than one VR each, to
// avoid fourteen near-identical copies of the same few decode shapes.
type Codec interface {
	Read(r Reader, v vr.VR, length uint32, littleEndian bool) (value.Value, error)
	Write(val value.Value, littleEndian bool) ([]byte, error)
}

// For returns the Codec for v. Sequence of Items is deliberately excluded —
// it recurses back into the parser's own state machine (nested DataSets)
// rather than decoding a flat value from a byte run, so it stays a
// dedicated method on the parser/writer instead of a Codec implementation;
// callers must intercept vr.SequenceOfItems before calling For. Every other
// VR, including ones the catalog doesn't recognize, falls through to the
// opaque-bytes codec, matching how an unrecognized VR has always been
// treated by this codec: read its bytes verbatim and let the caller
// reinterpret them later if it learns more (e.g. from a private dictionary).
func For(v vr.VR) Codec {
	switch {
	case v == vr.AttributeTag:
		return attributeTagCodec{}
	case v.IsStringType():
		return stringCodec{}
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return floatCodec{}
	case v.IsNumericType():
		return intCodec{}
	default:
		return bytesCodec{}
	}
}

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// stringCodec handles every text VR: backslash-separated values, trailing
// NUL/space padding trimmed on read.
type stringCodec struct{}

func (stringCodec) Read(r Reader, v vr.VR, length uint32, _ bool) (value.Value, error) {
	data, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read string data: %w", err)
	}

	str := strings.TrimRight(string(data), "\x00 ")

	var values []string
	if str == "" {
		values = []string{}
	} else {
		values = strings.Split(str, "\\")
	}

	val, err := value.NewStringValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create string value: %w", err)
	}
	return val, nil
}

func (stringCodec) Write(val value.Value, littleEndian bool) ([]byte, error) {
	return value.EncodeBytes(val, byteOrder(littleEndian)), nil
}

// attributeTagCodec handles VR AT: pairs of 2-byte (group, element) fields.
type attributeTagCodec struct{}

func (attributeTagCodec) Read(r Reader, _ vr.VR, length uint32, _ bool) (value.Value, error) {
	if length%4 != 0 {
		return nil, fmt.Errorf("invalid length %d for VR AT (not multiple of 4)", length)
	}

	numValues := int(length) / 4
	refs := make([]value.TagRef, numValues)
	for i := 0; i < numValues; i++ {
		group, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		element, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		refs[i] = value.TagRef{Group: group, Element: element}
	}

	return value.NewTagValue(refs), nil
}

func (attributeTagCodec) Write(val value.Value, littleEndian bool) ([]byte, error) {
	return value.EncodeBytes(val, byteOrder(littleEndian)), nil
}

// intCodec handles the fixed-width integer VRs: SS/US (2 bytes), SL/UL (4
// bytes), SV/UV (8 bytes).
type intCodec struct{}

func (intCodec) Read(r Reader, v vr.VR, length uint32, littleEndian bool) (value.Value, error) {
	var bytesPerValue int
	switch v {
	case vr.SignedShort, vr.UnsignedShort:
		bytesPerValue = 2
	case vr.SignedLong, vr.UnsignedLong:
		bytesPerValue = 4
	case vr.SignedVeryLong, vr.UnsignedVeryLong:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported integer VR: %s", v.String())
	}

	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	order := byteOrder(littleEndian)
	values := make([]int64, 0, numValues)
	for i := 0; i < numValues; i++ {
		var val int64
		switch v {
		case vr.SignedShort:
			u16, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(int16(u16))
		case vr.UnsignedShort:
			u16, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(u16)
		case vr.SignedLong:
			u32, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(int32(u32))
		case vr.UnsignedLong:
			u32, err := r.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)
		case vr.SignedVeryLong, vr.UnsignedVeryLong:
			data, err := r.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			val = int64(order.Uint64(data))
		}
		values = append(values, val)
	}

	intVal, err := value.NewIntValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create int value: %w", err)
	}
	return intVal, nil
}

func (intCodec) Write(val value.Value, littleEndian bool) ([]byte, error) {
	return value.EncodeBytes(val, byteOrder(littleEndian)), nil
}

// floatCodec handles FL (float32) and FD (float64).
type floatCodec struct{}

func (floatCodec) Read(r Reader, v vr.VR, length uint32, littleEndian bool) (value.Value, error) {
	var bytesPerValue int
	switch v {
	case vr.FloatingPointSingle:
		bytesPerValue = 4
	case vr.FloatingPointDouble:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported float VR: %s", v.String())
	}

	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	order := byteOrder(littleEndian)
	values := make([]float64, 0, numValues)
	for i := 0; i < numValues; i++ {
		if v == vr.FloatingPointSingle {
			data, err := r.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			values = append(values, float64(math.Float32frombits(order.Uint32(data))))
		} else {
			data, err := r.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			values = append(values, math.Float64frombits(order.Uint64(data)))
		}
	}

	floatVal, err := value.NewFloatValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create float value: %w", err)
	}
	return floatVal, nil
}

func (floatCodec) Write(val value.Value, littleEndian bool) ([]byte, error) {
	return value.EncodeBytes(val, byteOrder(littleEndian)), nil
}

// bytesCodec handles the opaque/binary VRs: OB, OD, OF, OL, OV, OW, UN, and
// any VR readValue falls through to (treated as Unknown).
type bytesCodec struct{}

func (bytesCodec) Read(r Reader, v vr.VR, length uint32, _ bool) (value.Value, error) {
	data, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read binary data: %w", err)
	}

	bytesVal, err := value.NewBytesValue(v, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create bytes value: %w", err)
	}
	return bytesVal, nil
}

func (bytesCodec) Write(val value.Value, littleEndian bool) ([]byte, error) {
	return value.EncodeBytes(val, byteOrder(littleEndian)), nil
}
