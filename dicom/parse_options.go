package dicom

import (
	"bytes"
	"fmt"

	"github.com/brightlake/dicomcore/dicom/tag"
	"github.com/brightlake/dicomcore/dicom/value"
	"github.com/brightlake/dicomcore/dicom/vr"
)

// BulkdataHeader describes the element the parser is about to read the
// value of, passed to ParseOptions.IsBulkdata and ParseOptions.WriteBulkdata
// before the default body read.
type BulkdataHeader struct {
	Tag    tag.Tag
	VR     vr.VR
	Length uint32
}

// ParseOptions configures DataSet parsing behavior. The zero value matches
// ParseFile/ParseReader's unconfigured behavior: no tag bound, no bulkdata
// diversion, errors are fatal.
type ParseOptions struct {
	// IgnoreErrors downgrades recoverable parse failures (truncated
	// element bodies, malformed sequence framing) to a warning recorded on
	// the returned DataSet (see DataSet.Warnings) instead of aborting the
	// parse. UnknownVR and NumericParse already recover locally regardless
	// of this flag.
	IgnoreErrors bool

	// UntilTag bounds the parse to a tag prefix: once an element at or
	// past UntilTag is encountered, the parser stops and returns the
	// dataset built so far. Used to parse just the File Meta group, or a
	// caller-chosen prefix of a large dataset.
	UntilTag *tag.Tag

	// IncludeUntilTagValue, when UntilTag is set, includes the element at
	// UntilTag itself in the returned dataset. When false (the default),
	// the boundary element is excluded.
	IncludeUntilTagValue bool

	// StopOnGreaterTag, when UntilTag is set, also stops at the first
	// element whose tag compares greater than UntilTag even if no element
	// exactly matching UntilTag was present (datasets need not contain
	// every tag). When false, only an exact match stops the parse.
	StopOnGreaterTag bool

	// ForceStoreRaw names the option of keeping the original wire bytes of
	// every element. The parser does not read this field: setting it has no
	// effect, and elements keep only their decoded values.
	ForceStoreRaw bool

	// NoCopy names the option of letting large binary element bodies share
	// the input's backing buffers. The parser does not read this field:
	// setting it has no effect, and every element body is copied into
	// dataset-owned memory.
	NoCopy bool

	// SeparateUncompressedFrames names the option of splitting native
	// (non-encapsulated) Pixel Data into one slice per frame. The parser
	// does not read this field: setting it has no effect, and native Pixel
	// Data is returned as a single flat buffer. ExtractPixelData splits
	// frames after parsing.
	SeparateUncompressedFrames bool

	// FragmentMultiframe mirrors the writer-side option of the same name:
	// kept here so a parse-then-rewrite round trip can preserve the
	// caller's fragmentation preference without an extra argument.
	FragmentMultiframe bool

	// AllowInvalidVRLength mirrors WriteOptions.AllowInvalidVRLength so a
	// parse-then-rewrite caller can keep the preference on one struct. The
	// parser does not check value lengths against VR maximums and does not
	// read this field; only the writer's option has an effect.
	AllowInvalidVRLength bool

	// PrivateTagBulkdataSize and PublicTagBulkdataSize set the default
	// bulkdata diversion threshold (in bytes) for private (odd group) and
	// public (even group) tags respectively, used when IsBulkdata is nil
	// and WriteBulkdata is set. A value of 0 disables the size-based
	// default for that tag class.
	PrivateTagBulkdataSize int `validate:"gte=0"`
	PublicTagBulkdataSize  int `validate:"gte=0"`

	// IsBulkdata, when set, overrides the size-based default: it is
	// consulted for every non-sequence element before the default body
	// read, and diversion only happens when it (or the size-based
	// default) returns true and WriteBulkdata is set.
	IsBulkdata func(BulkdataHeader) bool

	// WriteBulkdata consumes an element's raw bytes, writing them
	// wherever the caller wants them to live, and returns a reference
	// (URI and/or UUID) to stand in for the value in the parsed dataset.
	// Required for bulkdata diversion to take effect.
	WriteBulkdata func(BulkdataHeader, *bytes.Reader) (uri, uuid string, err error)

	// Handlers overrides the default per-tag element reader. A handler is
	// consulted before the built-in VR dispatch for any element whose tag
	// it covers, letting a caller special-case tags the generic decoder
	// would otherwise mishandle.
	Handlers map[tag.Tag]func(BulkdataHeader, *bytes.Reader) (value.Value, error)
}

// shouldDivertBulkdata reports whether hdr should be diverted through
// WriteBulkdata, consulting IsBulkdata when set and otherwise falling back
// to the private/public size thresholds. The size-threshold default only
// fires for VRs that are actually bulky in practice (vr.VR.DefaultBulkdataEligible);
// a caller-supplied IsBulkdata bypasses this restriction entirely.
func (o *ParseOptions) shouldDivertBulkdata(hdr BulkdataHeader) bool {
	if o == nil || o.WriteBulkdata == nil {
		return false
	}
	if o.IsBulkdata != nil {
		return o.IsBulkdata(hdr)
	}
	if !hdr.VR.DefaultBulkdataEligible() {
		return false
	}
	if hdr.Tag.IsPrivate() {
		return o.PrivateTagBulkdataSize > 0 && int(hdr.Length) >= o.PrivateTagBulkdataSize
	}
	return o.PublicTagBulkdataSize > 0 && int(hdr.Length) >= o.PublicTagBulkdataSize
}

// pastUntilTag reports whether, given these options, the parser should stop
// before adding elem to the dataset. It returns (stop, include): stop means
// no further elements should be read, include means elem itself should
// still be added before stopping.
func (o *ParseOptions) pastUntilTag(t tag.Tag) (stop, include bool) {
	if o == nil || o.UntilTag == nil {
		return false, true
	}
	switch cmp := t.Compare(*o.UntilTag); {
	case cmp == 0:
		return true, o.IncludeUntilTagValue
	case cmp > 0:
		if o.StopOnGreaterTag {
			return true, false
		}
		return false, true
	default:
		return false, true
	}
}

// divertBulkdata reads raw via the parser's reader and hands it to
// opts.WriteBulkdata, wrapping the result in a value.BulkDataValue.
func divertBulkdata(reader *Reader, opts *ParseOptions, hdr BulkdataHeader) (value.Value, error) {
	raw, err := reader.ReadBytes(int(hdr.Length))
	if err != nil {
		return nil, fmt.Errorf("%w: reading bulkdata body for %s: %v", ErrBulkdataRead, hdr.Tag, err)
	}

	uri, uuid, err := opts.WriteBulkdata(hdr, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBulkdataRead, err)
	}

	return value.NewBulkDataValue(hdr.VR, uri, uuid, int(hdr.Length)), nil
}
