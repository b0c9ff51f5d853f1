package value

import (
	"fmt"
	"strings"

	"github.com/brightlake/dicomcore/dicom/vr"
)

// Dataset is the minimal surface SequenceValue needs from the root dicom
// package's DataSet type. It is defined here, rather than importing dicom
// directly, to avoid a cycle: the root package imports dicom/value for
// Element.Value(), so dicom/value cannot import dicom back. Concrete
// *dicom.DataSet values satisfy this interface.
type Dataset interface {
	fmt.Stringer
}

// SequenceValue represents a Sequence of Items (VR SQ): zero or more nested
// datasets. Unlike every other Value in this package, SQ has no flat byte
// encoding of its own; Bytes() returns nil and callers needing the wire
// form must re-encode each item through the writer.
//
// The teacher's element_parser.go never built this: it skipped SQ bodies
// entirely and stored a placeholder BytesValue. SequenceValue is new.
type SequenceValue struct {
	items []Dataset
	// undefinedLength records whether the sequence was encoded with length
	// 0xFFFFFFFF and closed by a Sequence Delimitation Item, so the writer
	// can preserve that framing choice on round trip.
	undefinedLength bool
}

// NewSequenceValue creates a Sequence value from already-parsed item
// datasets.
func NewSequenceValue(items []Dataset, undefinedLength bool) *SequenceValue {
	return &SequenceValue{items: items, undefinedLength: undefinedLength}
}

// VR always returns vr.SequenceOfItems.
func (s *SequenceValue) VR() vr.VR { return vr.SequenceOfItems }

// Items returns the nested datasets contained in this sequence.
func (s *SequenceValue) Items() []Dataset { return s.items }

// UndefinedLength reports whether this sequence was (or should be, on
// write) framed with an undefined length and delimitation item rather than
// an explicit byte count.
func (s *SequenceValue) UndefinedLength() bool { return s.undefinedLength }

// Bytes always returns nil: a sequence has no flat value encoding, it is
// encoded item-by-item by the writer's sequence path.
func (s *SequenceValue) Bytes() []byte { return nil }

// String renders a short summary rather than the nested content, matching
// how the teacher's Element.String truncates long values.
func (s *SequenceValue) String() string {
	return fmt.Sprintf("Sequence[%d item(s)]", len(s.items))
}

// Equals compares item count only; nested dataset equality is the caller's
// responsibility since Dataset here is a narrow interface.
func (s *SequenceValue) Equals(other Value) bool {
	o, ok := other.(*SequenceValue)
	if !ok {
		return false
	}
	return len(s.items) == len(o.items)
}

var _ Value = (*SequenceValue)(nil)

// PersonNameComponentGroup holds the five components of
// one PN group: FamilyName, GivenName, MiddleName, Prefix, Suffix, joined
// internally by '^' as PS3.5 6.2.1.1 specifies.
type PersonNameComponentGroup struct {
	FamilyName string
	GivenName  string
	MiddleName string
	Prefix     string
	Suffix     string
}

func (g PersonNameComponentGroup) String() string {
	return strings.Join([]string{g.FamilyName, g.GivenName, g.MiddleName, g.Prefix, g.Suffix}, "^")
}

// PersonNameValue represents a structured PN value: up to three coding
// system representations (Alphabetic, Ideographic, Phonetic) per PS3.5
// 6.2.1, separated by '='. Most values use only the Alphabetic group.
type PersonNameValue struct {
	values []PersonNameComponents
}

// PersonNameComponents is one whole PN value (one of possibly several,
// separated by backslash at the element level).
type PersonNameComponents struct {
	Alphabetic  PersonNameComponentGroup
	Ideographic *PersonNameComponentGroup
	Phonetic    *PersonNameComponentGroup
}

func (c PersonNameComponents) String() string {
	parts := []string{c.Alphabetic.String()}
	if c.Ideographic != nil {
		parts = append(parts, c.Ideographic.String())
	}
	if c.Phonetic != nil {
		parts = append(parts, c.Phonetic.String())
	}
	// Trim trailing empty groups so a purely-alphabetic name round-trips
	// without spurious "=" separators.
	for len(parts) > 1 && parts[len(parts)-1] == "^^^^" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "=")
}

// NewPersonNameValue creates a structured PersonNameValue.
func NewPersonNameValue(values []PersonNameComponents) *PersonNameValue {
	return &PersonNameValue{values: values}
}

// VR always returns vr.PersonName.
func (p *PersonNameValue) VR() vr.VR { return vr.PersonName }

// Components returns the parsed per-value component groups.
func (p *PersonNameValue) Components() []PersonNameComponents { return p.values }

// String joins the component-group strings for each value with backslash.
func (p *PersonNameValue) String() string {
	parts := make([]string, len(p.values))
	for i, v := range p.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\\")
}

// Bytes re-derives the raw wire text from the structured components; odd
// length is padded with a single trailing space per PN's padding rule.
func (p *PersonNameValue) Bytes() []byte {
	s := p.String()
	if len(s)%2 == 1 {
		s += " "
	}
	return []byte(s)
}

// Equals compares the string form of both values.
func (p *PersonNameValue) Equals(other Value) bool {
	o, ok := other.(*PersonNameValue)
	if !ok {
		return false
	}
	return p.String() == o.String()
}

var _ Value = (*PersonNameValue)(nil)
