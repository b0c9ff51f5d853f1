package dicombuf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/flate"
	"golang.org/x/text/encoding"
)

// ErrEncoding is returned when a string cannot be decoded with the stream's
// active character-set encoding.
var ErrEncoding = fmt.Errorf("dicombuf: encoding error")

// ByteStream is a cursor over a SplitView. It tracks the active byte order
// (per transfer syntax) and an optional text decoder (per Specific Character
// Set), and exposes the read primitives the element parser needs.
//
// A ByteStream never mutates the underlying SplitView's contents; Fill
// appends new data to the view and advances its writable boundary.
type ByteStream struct {
	view            *SplitView
	offset          int64
	littleEndian    bool
	decoder         *encoding.Decoder
	decoderName     string
	limit           int64 // exclusive upper bound this stream may read to
}

// NewByteStream creates a stream over an existing SplitView, reading from
// the start, in the given byte order.
func NewByteStream(view *SplitView, littleEndian bool) *ByteStream {
	return &ByteStream{view: view, littleEndian: littleEndian, limit: view.Size()}
}

// NewByteStreamFromReader drains r fully into a fresh SplitView and returns
// a ByteStream over it. Used at the outer file-I/O boundary, where an
// io.Reader is still the natural interface (see spec's file framing).
func NewByteStreamFromReader(r io.Reader, littleEndian bool) (*ByteStream, error) {
	sv := NewSplitView()
	buf := bufio.NewReaderSize(r, DefaultGrowSize)
	for {
		chunk := sv.addBuffer(DefaultGrowSize)
		n, err := io.ReadFull(buf, chunk)
		if n < len(chunk) {
			// Shrink the final, partially-filled view to its true size so
			// Size() does not overcount.
			sv.views[len(sv.views)-1].data = chunk[:n]
			sv.size -= int64(len(chunk) - n)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dicombuf: read: %w", err)
		}
	}
	return NewByteStream(sv, littleEndian), nil
}

// NewDeflatedByteStream wraps the remainder of r in a raw DEFLATE reader
// (Deflated Explicit VR Little Endian transfer syntax) before draining it,
// per DICOM PS3.5 Annex A.5.
func NewDeflatedByteStream(r io.Reader, littleEndian bool) (*ByteStream, error) {
	fr := flate.NewReader(r)
	defer fr.Close()
	return NewByteStreamFromReader(fr, littleEndian)
}

func (s *ByteStream) order() binary.ByteOrder {
	if s.littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// SetByteOrder switches the active byte order, used when the writer or
// parser pushes a new transfer syntax context (e.g. entering an item whose
// enclosing transfer syntax differs, which in practice never happens in
// DICOM but is kept symmetric with the write-side encoder stack).
func (s *ByteStream) SetByteOrder(littleEndian bool) { s.littleEndian = littleEndian }

// LittleEndian reports the stream's current byte order.
func (s *ByteStream) LittleEndian() bool { return s.littleEndian }

// SetDecoder installs the text decoder used by ReadEncodedString and
// ReadPaddedEncodedString. name is the canonical encoding name, kept for
// diagnostics and for vrMap-style provenance in the naturalized dataset.
func (s *ByteStream) SetDecoder(dec *encoding.Decoder, name string) {
	s.decoder = dec
	s.decoderName = name
}

// DecoderName returns the canonical name of the currently active decoder,
// or "" if none has been set (implying the default ISO-IR 6 / us-ascii
// repertoire).
func (s *ByteStream) DecoderName() string { return s.decoderName }

// Offset returns the current read position.
func (s *ByteStream) Offset() int64 { return s.offset }

// Seek moves the read position to an absolute offset within the stream's
// bounds.
func (s *ByteStream) Seek(offset int64) error {
	if offset < 0 || offset > s.limit {
		return ErrOutOfBounds
	}
	s.offset = offset
	return nil
}

// Remaining returns the number of bytes left before the stream's limit.
func (s *ByteStream) Remaining() int64 { return s.limit - s.offset }

// More reports whether at least n more bytes are available to read.
func (s *ByteStream) More(n int64) bool { return s.Remaining() >= n }

// Sub returns a bounded child stream covering exactly the next n bytes of
// this stream, and advances this stream's offset past them. Used to parse a
// sequence Item's contents without letting a malformed nested length read
// past the item boundary.
func (s *ByteStream) Sub(n int64) (*ByteStream, error) {
	if !s.More(n) {
		return nil, fmt.Errorf("%w: requested sub-stream of %d bytes, %d remaining", ErrOutOfBounds, n, s.Remaining())
	}
	child := &ByteStream{
		view:         s.view,
		offset:       s.offset,
		littleEndian: s.littleEndian,
		decoder:      s.decoder,
		decoderName:  s.decoderName,
		limit:        s.offset + n,
	}
	s.offset += n
	return child, nil
}

// ReadBytes reads n raw bytes and advances the cursor.
func (s *ByteStream) ReadBytes(n int) ([]byte, error) {
	if int64(n) > s.Remaining() {
		return nil, fmt.Errorf("%w: requested %d bytes, %d remaining", ErrOutOfBounds, n, s.Remaining())
	}
	b, err := s.view.slice(s.offset, n)
	if err != nil {
		return nil, err
	}
	s.offset += int64(n)
	return b, nil
}

// ReadUint16 reads a 2-byte unsigned integer in the stream's byte order.
func (s *ByteStream) ReadUint16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return s.order().Uint16(b), nil
}

// ReadUint32 reads a 4-byte unsigned integer in the stream's byte order.
func (s *ByteStream) ReadUint32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return s.order().Uint32(b), nil
}

// ReadInt16/ReadInt32/ReadUint64/ReadInt64 are the remaining fixed-width
// integer readers used by SS/SL/SV/UV values.

func (s *ByteStream) ReadInt16() (int16, error) {
	v, err := s.ReadUint16()
	return int16(v), err
}

func (s *ByteStream) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

func (s *ByteStream) ReadUint64() (uint64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return s.order().Uint64(b), nil
}

func (s *ByteStream) ReadInt64() (int64, error) {
	v, err := s.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a 4-byte IEEE-754 single precision float (VR FL).
func (s *ByteStream) ReadFloat32() (float32, error) {
	v, err := s.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an 8-byte IEEE-754 double precision float (VR FD).
func (s *ByteStream) ReadFloat64() (float64, error) {
	v, err := s.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadAsciiString reads n bytes and returns them as a plain ASCII/Latin-1
// string, used for VRs that are defined to be restricted to the default
// character repertoire regardless of Specific Character Set (AE, CS, DA,
// TM, UI).
func (s *ByteStream) ReadAsciiString(n int) (string, error) {
	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadPaddedAsciiString reads n bytes as ReadAsciiString, then trims exactly
// one trailing pad byte (space or NUL) if present, per PS3.5 6.2 (odd-length
// values are padded to even length with a single pad byte, never more).
func (s *ByteStream) ReadPaddedAsciiString(n int) (string, error) {
	str, err := s.ReadAsciiString(n)
	if err != nil {
		return "", err
	}
	return trimOnePad(str), nil
}

// ReadEncodedString reads n bytes and decodes them with the stream's active
// character-set decoder. With no decoder installed this behaves like
// ReadAsciiString (default repertoire).
func (s *ByteStream) ReadEncodedString(n int) (string, error) {
	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if s.decoder == nil {
		return string(b), nil
	}
	out, err := s.decoder.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return string(out), nil
}

// ReadPaddedEncodedString is ReadEncodedString followed by trimming exactly
// one trailing pad byte from the decoded result.
func (s *ByteStream) ReadPaddedEncodedString(n int) (string, error) {
	str, err := s.ReadEncodedString(n)
	if err != nil {
		return "", err
	}
	return trimOnePad(str), nil
}

func trimOnePad(s string) string {
	if n := len(s); n > 0 {
		last := s[n-1]
		if last == ' ' || last == 0x00 {
			return s[:n-1]
		}
	}
	return s
}

// Skip advances the cursor by n bytes without reading their content, used
// to discard padding or an unsupported fragment.
func (s *ByteStream) Skip(n int64) error {
	if n > s.Remaining() {
		return ErrOutOfBounds
	}
	s.offset += n
	return nil
}

// peekAsciiUpper is a small helper the parser uses to sniff a tag string
// without consuming it (e.g. VR dispatch on explicit-VR streams).
func peekAsciiUpper(b []byte) string {
	return strings.ToUpper(string(b))
}
