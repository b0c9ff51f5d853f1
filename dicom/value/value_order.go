package value

import (
	"encoding/binary"
	"math"

	"github.com/brightlake/dicomcore/dicom/vr"
)

// BytesOrder encodes the integer values using the given byte order. Bytes()
// on IntValue always used binary.LittleEndian regardless of the active
// transfer syntax; BytesOrder lets the writer apply Explicit VR Big Endian
// (or any other declared order) uniformly instead of hardcoding one order
// at the value layer.
func (i *IntValue) BytesOrder(order binary.ByteOrder) []byte {
	if len(i.values) == 0 {
		return []byte{}
	}

	bytesPerValue := i.vr.ComponentWidth()
	result := make([]byte, len(i.values)*bytesPerValue)
	offset := 0

	for _, val := range i.values {
		switch i.vr {
		case vr.SignedShort:
			order.PutUint16(result[offset:], uint16(int16(val)))
		case vr.UnsignedShort:
			order.PutUint16(result[offset:], uint16(val))
		case vr.SignedLong:
			order.PutUint32(result[offset:], uint32(int32(val)))
		case vr.UnsignedLong:
			order.PutUint32(result[offset:], uint32(val))
		case vr.AttributeTag:
			group := uint16((val >> 16) & 0xFFFF)
			element := uint16(val & 0xFFFF)
			order.PutUint16(result[offset:], group)
			order.PutUint16(result[offset+2:], element)
		case vr.SignedVeryLong, vr.UnsignedVeryLong:
			order.PutUint64(result[offset:], uint64(val))
		}
		offset += bytesPerValue
	}

	return result
}

// BytesOrder encodes the float values using the given byte order, mirroring
// IntValue.BytesOrder.
func (f *FloatValue) BytesOrder(order binary.ByteOrder) []byte {
	if len(f.values) == 0 {
		return []byte{}
	}

	bytesPerValue := 8
	if f.vr == vr.FloatingPointSingle {
		bytesPerValue = 4
	}

	result := make([]byte, len(f.values)*bytesPerValue)
	offset := 0
	for _, val := range f.values {
		if f.vr == vr.FloatingPointSingle {
			order.PutUint32(result[offset:], math.Float32bits(float32(val)))
		} else {
			order.PutUint64(result[offset:], math.Float64bits(val))
		}
		offset += bytesPerValue
	}
	return result
}
