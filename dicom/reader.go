// Package dicom provides DICOM file parsing and manipulation.
//
// This package implements a DICOM file parser following the DICOM standard Part 10.
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html
package dicom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/brightlake/dicomcore/dicombuf"
)

// Reader wraps an io.Reader and provides DICOM-specific binary reading operations.
// It supports both Little Endian and Big Endian byte ordering, which can be changed
// dynamically during parsing.
//
// Reader stays responsible for pulling bytes off the underlying io.Reader one
// request at a time rather than draining it up front: the parser needs to
// hand the not-yet-consumed remainder of that same io.Reader to a DEFLATE
// wrapper once it learns the transfer syntax is compressed (see
// ParseReaderWithOptions), and dicombuf.SplitView has no incremental
// "fill as you go" mode to support that split. What Reader delegates to
// dicombuf is the actual byte-order-aware decoding: every fixed-width value
// and raw byte run is decoded by wrapping the freshly-read bytes in a
// dicombuf.ByteStream and calling its Read* methods, the same primitives the
// sequence/item/pixel-data paths use once a whole dataset (or deflated
// stream) has been buffered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
type Reader struct {
	r            io.Reader
	littleEndian bool
	position     int64
}

// NewReader creates a new DICOM binary reader with the specified byte order.
//
// Parameters:
//   - r: The underlying io.Reader to read from
//   - byteOrder: The byte order to use (binary.LittleEndian or binary.BigEndian)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
func NewReader(r io.Reader, byteOrder binary.ByteOrder) *Reader {
	return &Reader{
		r:            r,
		littleEndian: byteOrder == binary.LittleEndian,
	}
}

// pull reads exactly n bytes off the underlying io.Reader and wraps them in
// a one-shot dicombuf.ByteStream in the reader's current byte order, so
// callers decode through the same primitives the rest of the codec uses.
func (r *Reader) pull(n int) (*dicombuf.ByteStream, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	if err != nil {
		if err == io.EOF && read == 0 {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF || (err == io.EOF && read > 0) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read %d bytes: %w", n, err)
	}

	r.position += int64(n)
	return dicombuf.NewByteStream(dicombuf.NewSplitViewFromBytes(buf), r.littleEndian), nil
}

// ReadUint16 reads a 16-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint16() (uint16, error) {
	bs, err := r.pull(2)
	if err != nil {
		return 0, err
	}
	v, err := bs.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("failed to read uint16: %w", err)
	}
	return v, nil
}

// ReadUint32 reads a 32-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint32() (uint32, error) {
	bs, err := r.pull(4)
	if err != nil {
		return 0, err
	}
	v, err := bs.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("failed to read uint32: %w", err)
	}
	return v, nil
}

// ReadBytes reads exactly n bytes from the reader.
//
// Returns an error if fewer than n bytes are available.
// Returns an empty slice if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	bs, err := r.pull(n)
	if err != nil {
		return nil, err
	}
	b, err := bs.ReadBytes(n)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d bytes: %w", n, err)
	}
	return b, nil
}

// ReadString reads exactly n bytes and returns them as a string.
//
// DICOM strings may contain null terminators or trailing spaces which are preserved.
// The caller is responsible for trimming if needed.
//
// Returns an error if fewer than n bytes are available.
// Returns an empty string if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (r *Reader) ReadString(n int) (string, error) {
	if n == 0 {
		return "", nil
	}

	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// SetByteOrder changes the byte order for subsequent read operations.
//
// This is used when switching between File Meta Information (always Little Endian)
// and the main dataset (which may use Big Endian depending on Transfer Syntax).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (r *Reader) SetByteOrder(order binary.ByteOrder) {
	r.littleEndian = order == binary.LittleEndian
}

// Position returns the current byte position in the stream.
//
// This tracks the total number of bytes read from the underlying reader,
// which is useful for parsing operations that need to know byte offsets.
func (r *Reader) Position() int64 {
	return r.position
}
