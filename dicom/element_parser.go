// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/brightlake/dicomcore/dicom/element"
	"github.com/brightlake/dicomcore/dicom/pixel"
	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
	"github.com/brightlake/dicomcore/dicom/vrcodec"
)

// Delimiter tags bracketing Sequence of Items (SQ) and encapsulated Pixel
// Data content. All three carry a 4-byte length field with no VR.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
const (
	itemTagUint32                 = uint32(0xFFFEE000)
	itemDelimitationTagUint32     = uint32(0xFFFEE00D)
	sequenceDelimitationTagUint32 = uint32(0xFFFEE0DD)
)

// ElementParser reads individual DICOM data elements from a binary stream.
//
// It handles both Explicit VR and Implicit VR encoding based on the Transfer Syntax.
// Element structure varies by VR:
//   - Explicit VR (most VRs): Tag(4) + VR(2) + Length(2) + Value(n)
//   - Explicit VR (OB/OW/SQ/etc): Tag(4) + VR(2) + Reserved(2) + Length(4) + Value(n)
//   - Implicit VR: Tag(4) + Length(4) + Value(n), VR looked up in dictionary
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type ElementParser struct {
	reader *Reader
	ts     *TransferSyntax
	opts   *ParseOptions
}

// NewElementParser creates a new element parser with the specified reader and transfer syntax.
func NewElementParser(reader *Reader, ts *TransferSyntax) *ElementParser {
	return NewElementParserWithOptions(reader, ts, nil)
}

// NewElementParserWithOptions creates an element parser with a non-default
// ParseOptions. opts may be nil, matching NewElementParser's behavior.
func NewElementParserWithOptions(reader *Reader, ts *TransferSyntax, opts *ParseOptions) *ElementParser {
	return &ElementParser{
		reader: reader,
		ts:     ts,
		opts:   opts,
	}
}

// ReadElement reads the next data element from the stream.
//
// Returns an error if the element cannot be parsed or if the stream ends unexpectedly.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
func (p *ElementParser) ReadElement() (*element.Element, error) {
	// Read tag (4 bytes: group + element)
	t, err := p.readTag()
	if err != nil {
		return nil, fmt.Errorf("failed to read tag: %w", err)
	}

	return p.readElementBody(t)
}

// readElementBody reads the VR, length and value for a tag that has
// already been consumed from the stream. ReadElement and the item-body
// readers (used inside Sequences, see readItemBody) share this path so a
// nested dataset's elements are parsed exactly like top-level ones.
func (p *ElementParser) readElementBody(t tag.Tag) (*element.Element, error) {
	// Read VR based on transfer syntax
	var v vr.VR
	var length uint32
	var err error

	if p.ts.ExplicitVR {
		// Explicit VR: VR is in the file
		v, err = p.readVRExplicit()
		if err != nil {
			return nil, fmt.Errorf("failed to read VR for tag %s: %w", t, err)
		}

		// Read length (2 or 4 bytes depending on VR)
		length, err = p.readLength(v)
		if err != nil {
			return nil, fmt.Errorf("failed to read length for tag %s: %w", t, err)
		}
	} else {
		// Implicit VR: VR must be looked up from tag dictionary
		v, err = p.readVRImplicit(t)
		if err != nil {
			return nil, fmt.Errorf("failed to look up VR for tag %s: %w", t, err)
		}

		// For Implicit VR, length is always 4 bytes
		length, err = p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read length for tag %s: %w", t, err)
		}

		// Tags the dictionary does not know: undefined length means SQ,
		// Pixel Data is OW, a private creator is LO, anything else stays UN.
		if v == vr.Unknown {
			switch {
			case length == 0xFFFFFFFF:
				v = vr.SequenceOfItems
			case t.Group == 0x7FE0 && t.Element == 0x0010:
				v = vr.OtherWord
			case t.Group%2 == 1 && t.Element > 0x0000 && t.Element < 0x0100:
				v = vr.LongString
			}
		}
	}

	// Read value based on VR type
	val, err := p.readValue(t, v, length)
	if err != nil {
		return nil, fmt.Errorf("failed to read value for tag %s: %w", t, err)
	}

	// Create and return element
	elem, err := element.NewElement(t, v, val)
	if err != nil {
		return nil, fmt.Errorf("failed to create element for tag %s: %w", t, err)
	}

	return elem, nil
}

// readTag reads a DICOM tag (group and element).
func (p *ElementParser) readTag() (tag.Tag, error) {
	// Read group (2 bytes)
	group, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag group: %w", err)
	}

	// Read element (2 bytes)
	elem, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag element: %w", err)
	}

	return tag.New(group, elem), nil
}

// readVRExplicit reads a 2-byte VR in Explicit VR encoding.
func (p *ElementParser) readVRExplicit() (vr.VR, error) {
	// Read 2-byte VR string
	vrStr, err := p.reader.ReadString(2)
	if err != nil {
		return 0, fmt.Errorf("failed to read VR: %w", err)
	}

	// Parse VR string
	v, err := vr.Parse(vrStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVR, vrStr)
	}

	return v, nil
}

// readVRImplicit looks up the VR for a tag from the DICOM data dictionary.
// This is used for Implicit VR transfer syntaxes where VR is not encoded in the file.
//
// For tags with multiple possible VRs (e.g., PixelData can be "OB or OW"),
// this returns the first VR in the list as the default.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementParser) readVRImplicit(t tag.Tag) (vr.VR, error) {
	// Look up tag in dictionary
	info, err := tag.Find(t)
	if err != nil {
		// Tag not in dictionary - use UN (Unknown) as fallback
		return vr.Unknown, nil
	}

	// Return first VR (for tags with multiple VRs like "OB or OW", use the first one)
	if len(info.VRs) == 0 {
		return vr.Unknown, nil
	}

	return info.VRs[0], nil
}

// readLength reads the value length field.
//
// Length encoding depends on VR:
//   - Most VRs: 2-byte uint16
//   - OB, OD, OF, OL, OV, OW, SQ, UC, UN, UR, UT: 2-byte reserved (0x0000) + 4-byte uint32
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementParser) readLength(v vr.VR) (uint32, error) {
	// Check if this VR uses 32-bit length field
	if v.UsesExplicitLength32() {
		// Read 2-byte reserved field (must be 0x0000)
		reserved, err := p.reader.ReadUint16()
		if err != nil {
			return 0, fmt.Errorf("failed to read reserved field: %w", err)
		}
		if reserved != 0x0000 {
			// Not strictly an error per standard, but log for debugging
			// Standard says it "should" be 0x0000 but implementations may vary
		}

		// Read 4-byte length
		length, err := p.reader.ReadUint32()
		if err != nil {
			return 0, fmt.Errorf("failed to read 32-bit length: %w", err)
		}

		return length, nil
	}

	// Read 2-byte length for standard VRs
	length16, err := p.reader.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("failed to read 16-bit length: %w", err)
	}

	return uint32(length16), nil
}

// readValue reads and parses the value field based on VR type.
func (p *ElementParser) readValue(t tag.Tag, v vr.VR, length uint32) (value.Value, error) {
	// Handle empty values
	if length == 0 {
		return p.createEmptyValue(v)
	}

	// For a non-empty element of defined length, a caller-supplied per-tag
	// handler takes priority over every other dispatch path, including
	// bulkdata diversion and sequences.
	if p.opts != nil && length != 0xFFFFFFFF {
		if handler, ok := p.opts.Handlers[t]; ok {
			raw, err := p.reader.ReadBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("failed to read bytes for handler on tag %s: %w", t, err)
			}
			return handler(BulkdataHeader{Tag: t, VR: v, Length: length}, bytes.NewReader(raw))
		}
	}

	// Optional bulkdata diversion: for non-sequence, defined-length
	// elements, a caller-supplied (or size-threshold-based) policy may
	// choose to stream the body to its own sink rather than materialize
	// it in the dataset.
	if v != vr.SequenceOfItems && length != 0xFFFFFFFF {
		hdr := BulkdataHeader{Tag: t, VR: v, Length: length}
		if p.opts.shouldDivertBulkdata(hdr) {
			return divertBulkdata(p.reader, p.opts, hdr)
		}
	}

	// Handle undefined length (0xFFFFFFFF)
	if length == 0xFFFFFFFF {
		// Sequences with undefined length are delimited by a Sequence
		// Delimitation Item (FFFE,E0DD).
		if v == vr.SequenceOfItems {
			return p.readUndefinedLengthSequence(t)
		}

		// Encapsulated pixel data (OB/OW with undefined length) is used for
		// compressed transfer syntaxes (JPEG, JPEG 2000, RLE, etc.). Per
		// DICOM Part 5, Section A.4: fragments bracketed by Item
		// (FFFE,E000), terminated by Sequence Delimitation (FFFE,E0DD),
		// with the first item holding the Basic Offset Table.
		//
		// DICOM Standard Reference:
		// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
		if (v == vr.OtherByte || v == vr.OtherWord) && t.Group == 0x7FE0 && t.Element == 0x0010 {
			return p.readEncapsulatedPixelData(t, v)
		}

		return nil, fmt.Errorf("%w: undefined length for non-sequence VR %s", ErrUndefinedLength, v.String())
	}

	// Sequence of Items recurses back into the parser's own state machine
	// (nested DataSets) rather than decoding a flat value, so it stays a
	// dedicated method instead of a vrcodec.Codec (see dicom/vrcodec's
	// package doc and DESIGN.md for why).
	if v == vr.SequenceOfItems {
		return p.readDefinedLengthSequence(t, length)
	}

	return vrcodec.For(v).Read(p.reader, v, length, p.littleEndian())
}

// littleEndian reports the active transfer syntax's byte order as the bool
// vrcodec.Codec's Read/Write expect, keeping vrcodec free of any dependency
// on this package's TransferSyntax type.
func (p *ElementParser) littleEndian() bool {
	return p.ts.ByteOrder == binary.LittleEndian
}

// createEmptyValue creates an empty value for the given VR.
func (p *ElementParser) createEmptyValue(v vr.VR) (value.Value, error) {
	switch {
	case v == vr.SequenceOfItems:
		return value.NewBytesValue(vr.SequenceOfItems, []byte{})
	case v == vr.AttributeTag:
		return value.NewTagValue(nil), nil
	case v.IsStringType():
		return value.NewStringValue(v, []string{})
	case v.IsNumericType():
		return value.NewIntValue(v, []int64{})
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return value.NewFloatValue(v, []float64{})
	case v.IsBinaryType():
		return value.NewBytesValue(v, []byte{})
	default:
		return value.NewBytesValue(vr.Unknown, []byte{})
	}
}

// readDefinedLengthSequence parses a Sequence of Items whose outer length is
// known: items are read until the cumulative bytes consumed reach length.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementParser) readDefinedLengthSequence(seqTag tag.Tag, length uint32) (value.Value, error) {
	endPos := p.reader.Position() + int64(length)
	items := make([]value.Dataset, 0)
	for p.reader.Position() < endPos {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("failed to read item tag in sequence %s: %w", seqTag, err)
		}
		if t.Uint32() != itemTagUint32 {
			return nil, fmt.Errorf("%w: expected Item tag in sequence %s, got %s", ErrInvalidSequence, seqTag, t)
		}

		itemLength, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length in sequence %s: %w", seqTag, err)
		}

		item, err := p.readItemBody(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item in sequence %s: %w", seqTag, err)
		}
		items = append(items, item)
	}
	return value.NewSequenceValue(items, false), nil
}

// readUndefinedLengthSequence parses a Sequence of Items terminated by a
// Sequence Delimitation Item rather than a known byte count.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementParser) readUndefinedLengthSequence(seqTag tag.Tag) (value.Value, error) {
	items := make([]value.Dataset, 0)
	for {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("failed to read item tag in sequence %s: %w", seqTag, err)
		}

		if t.Uint32() == sequenceDelimitationTagUint32 {
			if _, err := p.reader.ReadUint32(); err != nil {
				return nil, fmt.Errorf("failed to read sequence delimitation length for %s: %w", seqTag, err)
			}
			return value.NewSequenceValue(items, true), nil
		}
		if t.Uint32() != itemTagUint32 {
			return nil, fmt.Errorf("%w: expected Item tag in sequence %s, got %s", ErrInvalidSequence, seqTag, t)
		}

		itemLength, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length in sequence %s: %w", seqTag, err)
		}

		item, err := p.readItemBody(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item in sequence %s: %w", seqTag, err)
		}
		items = append(items, item)
	}
}

// readItemBody parses one Item's nested dataset, either to a known length or,
// if itemLength is undefined (0xFFFFFFFF), until an Item Delimitation Item is
// found. Each element inside the item is read via readElementBody, the same
// path used for top-level elements, so nesting is uniform at any depth.
func (p *ElementParser) readItemBody(itemLength uint32) (*DataSet, error) {
	ds := NewDataSet()

	if itemLength == 0xFFFFFFFF {
		for {
			t, err := p.readTag()
			if err != nil {
				return nil, fmt.Errorf("failed to read tag in item: %w", err)
			}
			if t.Uint32() == itemDelimitationTagUint32 {
				if _, err := p.reader.ReadUint32(); err != nil {
					return nil, fmt.Errorf("failed to read item delimitation length: %w", err)
				}
				return ds, nil
			}

			elem, err := p.readElementBody(t)
			if err != nil {
				return nil, fmt.Errorf("failed to read element %s in item: %w", t, err)
			}
			if err := ds.Add(elem); err != nil {
				return nil, fmt.Errorf("failed to add element %s to item: %w", t, err)
			}
		}
	}

	endPos := p.reader.Position() + int64(itemLength)
	for p.reader.Position() < endPos {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("failed to read tag in item: %w", err)
		}

		elem, err := p.readElementBody(t)
		if err != nil {
			return nil, fmt.Errorf("failed to read element %s in item: %w", t, err)
		}
		if err := ds.Add(elem); err != nil {
			return nil, fmt.Errorf("failed to add element %s to item: %w", t, err)
		}
	}
	return ds, nil
}

// readEncapsulatedPixelData reads a Pixel Data element (7FE0,0010) whose
// length is undefined, meaning its content is a Basic Offset Table item
// followed by one or more per-frame fragment items, terminated by a
// Sequence Delimitation Item. The raw item stream is captured verbatim and
// handed to pixel.ParseEncapsulatedPixelData so the Basic Offset Table and
// fragment boundaries are decoded by the same logic used for standalone
// encapsulated pixel data blobs.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func (p *ElementParser) readEncapsulatedPixelData(pixelTag tag.Tag, pixelVR vr.VR) (value.Value, error) {
	var raw []byte
	for {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("failed to read item tag in encapsulated pixel data: %w", err)
		}

		tagBuf := make([]byte, 4)
		binary.LittleEndian.PutUint16(tagBuf[0:2], t.Group)
		binary.LittleEndian.PutUint16(tagBuf[2:4], t.Element)
		raw = append(raw, tagBuf...)

		length, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length in encapsulated pixel data: %w", err)
		}
		lenBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(lenBuf, length)
		raw = append(raw, lenBuf...)

		if t.Uint32() == sequenceDelimitationTagUint32 {
			break
		}
		if t.Uint32() != itemTagUint32 {
			return nil, fmt.Errorf("%w: expected Item tag in encapsulated pixel data %s, got %s", ErrInvalidSequence, pixelTag, t)
		}

		if length > 0 && length != 0xFFFFFFFF {
			data, err := p.reader.ReadBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("failed to read fragment data in encapsulated pixel data: %w", err)
			}
			raw = append(raw, data...)
		}
	}

	encap, err := pixel.ParseEncapsulatedPixelData(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encapsulated pixel data %s: %w", pixelTag, err)
	}

	frames := make([][]byte, encap.NumFrames())
	for i := range frames {
		frags, err := encap.GetFrameFragments(i)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble frame %d of %s: %w", i, pixelTag, err)
		}
		frames[i] = pixel.ConcatenateFragments(frags)
	}

	return value.NewFramesValue(pixelVR, frames, true), nil
}
