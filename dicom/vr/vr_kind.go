package vr

// Kind classifies how a VR's bytes are physically laid out on the wire,
// independent of what the value means semantically. The parser and writer
// dispatch on Kind rather than switching on every individual VR constant.
type Kind uint8

const (
	// KindBinaryFixed covers VRs whose value is one or more fixed-width
	// binary numbers (US, SS, UL, SL, UV, SV, FL, FD, AT).
	KindBinaryFixed Kind = iota
	// KindBinaryOpaque covers VRs whose value is an opaque byte stream
	// with no further structure imposed by this package (OB, OW, OD, OF,
	// OL, OV, UN).
	KindBinaryOpaque
	// KindTextASCII covers VRs restricted to the default character
	// repertoire regardless of Specific Character Set (AE, AS, CS, DA,
	// DS, DT, IS, TM, UI, UR).
	KindTextASCII
	// KindTextEncoded covers VRs whose text is affected by Specific
	// Character Set (LO, LT, PN, SH, ST, UC, UT).
	KindTextEncoded
	// KindSequence is SQ: a nested dataset, not a flat value at all.
	KindSequence
)

// Kind reports the physical layout category of the VR.
func (v VR) Kind() Kind {
	switch v {
	case UnsignedShort, SignedShort, UnsignedLong, SignedLong,
		UnsignedVeryLong, SignedVeryLong, FloatingPointSingle, FloatingPointDouble,
		AttributeTag:
		return KindBinaryFixed
	case OtherByte, OtherWord, OtherDouble, OtherFloat, OtherLong, OtherVeryLong, Unknown:
		return KindBinaryOpaque
	case ApplicationEntity, AgeString, CodeString, Date, DecimalString, DateTime,
		IntegerString, Time, UniqueIdentifier, UniversalResourceIdentifier:
		return KindTextASCII
	case LongString, LongText, PersonName, ShortString, ShortText,
		UnlimitedCharacters, UnlimitedText:
		return KindTextEncoded
	case SequenceOfItems:
		return KindSequence
	default:
		return KindBinaryOpaque
	}
}

// LengthFieldWidth returns the width, in bytes, of the value-length field
// used when this VR is encoded under Explicit VR: 4 for the VRs PS3.5
// Table 7.1-1 marks as using a 32-bit length with 2 reserved bytes, 2
// otherwise. Implicit VR always uses a 4-byte length regardless of VR.
func (v VR) LengthFieldWidth() int {
	if v.UsesExplicitLength32() {
		return 4
	}
	return 2
}

// IsFixedLength reports whether every value of this VR occupies the same
// number of bytes per component (true for all binary numeric VRs and AT;
// false for every string VR, since string VRs are padded to the value's
// own even length rather than a VR-wide fixed width).
func (v VR) IsFixedLength() bool {
	return v.Kind() == KindBinaryFixed
}

// ComponentWidth returns the byte width of a single component for
// KindBinaryFixed VRs, or 0 if not applicable.
func (v VR) ComponentWidth() int {
	switch v {
	case UnsignedShort, SignedShort:
		return 2
	case UnsignedLong, SignedLong, FloatingPointSingle, AttributeTag:
		return 4
	case UnsignedVeryLong, SignedVeryLong, FloatingPointDouble:
		return 8
	default:
		return 0
	}
}

// AllowsMultiple reports whether this VR's dictionary entries are
// conventionally allowed to carry more than one value (VM > 1). SQ, the
// "Other*" binary array VRs, and UT/UR/ST/LT (explicitly VM=1 per PS3.5)
// are excluded.
func (v VR) AllowsMultiple() bool {
	switch v {
	case OtherByte, OtherWord, OtherDouble, OtherFloat, OtherLong, OtherVeryLong,
		Unknown, SequenceOfItems, UnlimitedText, UniversalResourceIdentifier,
		ShortText, LongText:
		return false
	default:
		return true
	}
}

// ReturnsArray reports whether this VR's natural Go representation is a
// slice (numeric and string multi-valued VRs) rather than a scalar.
func (v VR) ReturnsArray() bool {
	return v.IsNumericType() || (v.IsStringType() && v.AllowsMultiple()) || v == AttributeTag
}

// RangeMatchMaxLength returns the maximum length to apply to a DA/DT/TM
// value that contains a '-' (i.e. is a PS3.4 C.2.2.2.5 date/time range
// query rather than a single value), which DICOM permits to exceed the
// VR's normal single-value MaxLength by doubling it plus the separator.
func (v VR) RangeMatchMaxLength() int {
	switch v {
	case Date, DateTime, Time:
		return v.MaxLength()*2 + 1
	default:
		return v.MaxLength()
	}
}
